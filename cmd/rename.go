package cmd

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeitkraut/safename/internal/history"
	"github.com/zeitkraut/safename/internal/notification"
	"github.com/zeitkraut/safename/internal/planner"
	"github.com/zeitkraut/safename/internal/vault"
)

var renameCmd = &cobra.Command{
	Use:   "rename [file]",
	Short: "Rename unsafe files to their sanitized names",
	Long: `Rename applies the sanitized names computed by 'safename check'.

Without arguments, every unsafe file in the vault is renamed. The moves are
issued concurrently and independently: a failure in one never blocks or rolls
back the others.

With a vault-relative file path as argument, only that file is renamed.
A file that is already safe is a successful no-op.

When rename.automatically is enabled, the original base name is recorded as a
front-matter alias before the move so links using the old name keep resolving.`,
	Example: `  # Rename every unsafe file
  safename rename

  # Show what would be renamed without touching anything
  safename rename --dry-run

  # Rename a single file
  safename rename "notes/bad?.md"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRename,
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(renameCmd)

	renameCmd.Flags().Bool("dry-run", false, "show planned renames without performing them")
}

func runRename(cmd *cobra.Command, args []string) error {
	cfg = GetConfig()
	if err := validateConfigOrExit(cfg, "rename"); err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run") // nolint:errcheck // Flag registered above

	vlt, pl, err := newPlannerFromConfig(cfg)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return runSingleRename(vlt, pl, args[0], dryRun)
	}
	return runBatchRename(pl, dryRun)
}

func runSingleRename(vlt *vault.OSVault, pl *planner.Planner, rawPath string, dryRun bool) error {
	relPath := normalizeVaultPath(rawPath)

	f, err := findFile(vlt, relPath)
	if err != nil {
		return err
	}

	entry := pl.Evaluate(f)
	if entry.AlreadySafe {
		fmt.Printf("✅ %s is already safe, nothing to do\n", f.Path())
		return nil
	}

	if dryRun {
		fmt.Printf("🔸 DRY RUN: Would rename %s -> %s\n", f.Path(), entry.TargetPath())
		return nil
	}

	result := pl.Rename(f, renameOptions(cfg))
	printRenameResult(result)

	if result.Outcome == planner.OutcomeRenamed {
		if err := recordHistory([]planner.Result{result}); err != nil {
			fmt.Printf("⚠️  Failed to update rename history: %v\n", err)
		}
	}

	if result.Err != nil {
		return result.Err
	}
	return nil
}

func runBatchRename(pl *planner.Planner, dryRun bool) error {
	fmt.Println("🔍 Collecting files to rename...")

	entries, err := pl.FilesToRename()
	if err != nil {
		return fmt.Errorf("failed to plan renames: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("✅ All file names are safe, nothing to rename")
		return nil
	}

	fmt.Printf("📦 Found %d file(s) to rename\n\n", len(entries))

	if dryRun {
		for _, e := range entries {
			fmt.Printf("🔸 DRY RUN: Would rename %s -> %s\n", e.File.Path(), e.TargetPath())
		}
		return nil
	}

	summary := pl.RenameAll(entries, renameOptions(cfg))

	var renamed []planner.Result
	for _, r := range summary.Results {
		printRenameResult(r)
		if r.Outcome == planner.OutcomeRenamed {
			renamed = append(renamed, r)
		}
	}

	if err := recordHistory(renamed); err != nil {
		fmt.Printf("⚠️  Failed to update rename history: %v\n", err)
	}

	fmt.Println()
	fmt.Printf("✅ Batch rename complete: %d renamed, %d failed\n", summary.Renamed, summary.Failed)

	if err := sendRenameNotification(summary); err != nil {
		fmt.Printf("⚠️  %v\n", err)
	}

	return nil
}

func printRenameResult(r planner.Result) {
	if r.AliasErr != nil {
		fmt.Printf("⚠️  Could not record alias for %s: %v\n", r.Entry.File.Path(), r.AliasErr)
	}

	switch r.Outcome {
	case planner.OutcomeRenamed:
		fmt.Printf("✏️  %s -> %s\n", r.Entry.File.Path(), r.Entry.TargetPath())
	case planner.OutcomeExists:
		fmt.Printf("⛔ %s: target %s already exists\n", r.Entry.File.Path(), r.Entry.TargetPath())
	case planner.OutcomeFailed:
		fmt.Printf("❌ %s: %v\n", r.Entry.File.Path(), r.Err)
	case planner.OutcomeAlreadySafe:
		fmt.Printf("✅ %s is already safe\n", r.Entry.File.Path())
	}
}

func recordHistory(renamed []planner.Result) error {
	if len(renamed) == 0 {
		return nil
	}

	hist, err := history.Load(cfg.Output.HistoryFile)
	if err != nil {
		return err
	}
	for _, r := range renamed {
		hist.Record(r.Entry.File.Path(), r.Entry.TargetPath())
	}
	return hist.Save()
}

func sendRenameNotification(summary planner.Summary) error {
	notifier, err := notification.NewNotifier(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}
	if !notifier.IsEnabled() {
		return nil
	}

	if verbose {
		fmt.Println("📧 Sending notification...")
	}

	if err := notifier.SendRenameSummary(cfg.Vault.Path, summary.Renamed, summary.Failed); err != nil {
		return fmt.Errorf("notification failed: %w", err)
	}

	fmt.Println("✅ Notification sent successfully")
	return nil
}

// normalizeVaultPath converts user input to a vault-relative slash path.
func normalizeVaultPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return path.Clean(p)
}

// findFile locates a vault file by its vault-relative path.
func findFile(vlt vault.Vault, relPath string) (vault.File, error) {
	files, err := vlt.ListFiles()
	if err != nil {
		return vault.File{}, fmt.Errorf("failed to list vault files: %w", err)
	}

	for _, f := range files {
		if f.Path() == relPath {
			return f, nil
		}
	}
	return vault.File{}, fmt.Errorf("file not found in vault: %s", relPath)
}
