package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zeitkraut/safename/internal/history"
	"github.com/zeitkraut/safename/internal/planner"
	"github.com/zeitkraut/safename/internal/vault"
	"github.com/zeitkraut/safename/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rename newly created files automatically",
	Long: `Watch subscribes to file-creation events under the vault root and
renames each new file after a short settle delay, giving the creating
process time to finish writing.

The subscription is scoped to this command: it starts here and is
unsubscribed on Ctrl-C or SIGTERM. Requires rename.automatically to be
enabled.

The settle delay is best effort. A process that is still writing when the
delay expires races the rename; pick a larger watch.settle_delay if your
tooling creates files slowly.`,
	Example: `  # Watch the configured vault
  safename watch

  # Watch with verbose per-event output
  safename watch --verbose`,
	RunE: runWatch,
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg = GetConfig()
	if err := validateConfigOrExit(cfg, "watch"); err != nil {
		return err
	}

	if !cfg.Rename.Automatically {
		return fmt.Errorf("automatic renaming is disabled\n\nSet rename.automatically to true in %s to use 'safename watch'", cfg.ConfigFilePath)
	}

	vlt, pl, err := newPlannerFromConfig(cfg)
	if err != nil {
		return err
	}

	opts := renameOptions(cfg)

	// One journal instance shared by all handler invocations. Handlers run
	// from concurrent settle timers; per-event load-record-save would let
	// simultaneous events overwrite each other's entries.
	hist, err := history.Load(cfg.Output.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to load rename history: %w", err)
	}

	handler := func(relPath string) {
		f := vault.File{
			Name: path.Base(relPath),
			Dir:  path.Dir(relPath),
			Kind: vault.KindFile,
		}
		if f.Dir == "." {
			f.Dir = ""
		}

		result := pl.Rename(f, opts)
		switch result.Outcome {
		case planner.OutcomeAlreadySafe:
			if verbose {
				fmt.Printf("✅ %s created with a safe name\n", relPath)
			}
		case planner.OutcomeRenamed:
			printRenameResult(result)
			hist.Record(result.Entry.File.Path(), result.Entry.TargetPath())
			if err := hist.Save(); err != nil {
				fmt.Printf("⚠️  Failed to update rename history: %v\n", err)
			}
		case planner.OutcomeFailed:
			// A failed move on a freshly created file usually means it was
			// moved away or deleted during the settle delay.
			if verbose {
				printRenameResult(result)
			}
		default:
			printRenameResult(result)
		}
	}

	watcher, err := watch.New(vlt.Root(), cfg.Watch.SettleDelay, handler)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Close() // nolint:errcheck // Close error not actionable in defer context

	fmt.Printf("👀 Watching %s (settle delay: %s)\n", cfg.Vault.Path, cfg.Watch.SettleDelay)
	fmt.Println("   Press Ctrl-C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\n🛑 Stopping watcher...")
	if err := watcher.Close(); err != nil {
		return fmt.Errorf("failed to stop watcher cleanly: %w", err)
	}

	fmt.Println("✅ Watcher stopped")
	return nil
}
