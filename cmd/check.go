package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeitkraut/safename/internal/planner"
	"github.com/zeitkraut/safename/internal/reporting"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report files whose names need sanitizing",
	Long: `Check computes the safe name for every file in the vault and reports
which files would be renamed, what their new names would be, and which
renames are blocked because the target name is already taken.

Nothing is modified; this is a read-only planning pass.`,
	Example: `  # Check the configured vault
  safename check

  # Check and keep the report under the reports directory
  safename check --save

  # Check a different vault
  SAFENAME_VAULT_PATH=/path/to/vault safename check`,
	RunE: runCheck,
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("save", false, "write the report to the reports directory")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg = GetConfig()
	if err := validateConfigOrExit(cfg, "check"); err != nil {
		return err
	}

	save, _ := cmd.Flags().GetBool("save") // nolint:errcheck // Flag registered above

	if verbose {
		fmt.Printf("📁 Vault: %s\n", cfg.Vault.Path)
		fmt.Printf("🔤 Additional characters: %q\n", cfg.Rename.AdditionalCharacters)
	}

	fmt.Println("🔍 Checking file names...")
	fmt.Println()

	_, pl, err := newPlannerFromConfig(cfg)
	if err != nil {
		return err
	}

	entries, err := pl.PlanAll()
	if err != nil {
		return fmt.Errorf("failed to plan renames: %w", err)
	}

	tally := tallyCollisions(pl, entries)
	for p, checkErr := range tally.unverified {
		fmt.Printf("⚠️  Could not check target for %s: %v\n", p, checkErr)
	}

	report := reporting.GenerateRenameReport(entries, tally.collisions)
	fmt.Println(report)

	if save {
		path, err := reporting.SaveReport(report, cfg)
		if err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Printf("💾 Report saved to %s\n", path)
	}

	switch {
	case tally.toRename == 0 && len(tally.collisions) == 0 && len(tally.unverified) == 0:
		fmt.Println("✅ All file names are safe")
	case len(tally.collisions) == 0 && len(tally.unverified) == 0:
		fmt.Printf("✏️  %d file(s) to rename. Run 'safename rename' to apply.\n", tally.toRename)
	default:
		fmt.Printf("✏️  %d file(s) to rename", tally.toRename)
		if len(tally.collisions) > 0 {
			fmt.Printf(", ⛔ %d blocked by collisions", len(tally.collisions))
		}
		if len(tally.unverified) > 0 {
			fmt.Printf(", ⚠️  %d with unverified targets", len(tally.unverified))
		}
		fmt.Println()
	}

	return nil
}

// collisionTally buckets unsafe entries by target availability. Entries whose
// target could not be checked are tracked separately so the summary never
// silently undercounts them.
type collisionTally struct {
	toRename   int
	collisions map[string]bool
	unverified map[string]error
}

func tallyCollisions(pl *planner.Planner, entries []planner.Entry) collisionTally {
	tally := collisionTally{
		collisions: make(map[string]bool),
		unverified: make(map[string]error),
	}

	for _, e := range entries {
		if e.AlreadySafe {
			continue
		}
		occupied, err := pl.CheckCollision(e)
		switch {
		case err != nil:
			tally.unverified[e.File.Path()] = err
		case occupied:
			tally.collisions[e.File.Path()] = true
		default:
			tally.toRename++
		}
	}
	return tally
}
