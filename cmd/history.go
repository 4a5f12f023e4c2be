package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeitkraut/safename/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the journal of performed renames",
	Long: `History commands for inspecting and clearing the rename journal.

The journal records every rename safename has performed (old path, new path,
timestamp), giving you an audit trail of how file names changed over time.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded renames",
	Long: `Display the rename journal showing each performed rename with its
old path, new path and timestamp, oldest first.`,
	Example: `  # List all recorded renames
  safename history list

  # List with verbose output
  safename history list --verbose`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg = GetConfig()
		if err := validateConfigOrExit(cfg, "history"); err != nil {
			return err
		}

		// Load journal
		hist, err := history.Load(cfg.Output.HistoryFile)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		items := hist.All()

		// Write output to stdout; errors writing to stdout are not actionable in CLI context
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "📊 Rename History:")
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")

		if len(items) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ℹ️  No renames recorded")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   History file: %s\n", cfg.Output.HistoryFile)
			return nil
		}

		// Create table writer
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "Time\tFrom\tTo")
		_, _ = fmt.Fprintln(w, "----\t----\t--")

		for _, item := range items {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", item.Time.Format("2006-01-02 15:04:05"), item.From, item.To)
		}

		_ = w.Flush() // Flush buffered output; error not actionable in CLI display context
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Total: %d rename(s)\n", len(items))
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "History file: %s\n", cfg.Output.HistoryFile)
		if !hist.LastUpdated.IsZero() {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Last updated: %s\n", hist.LastUpdated.Format(time.RFC3339))
		}

		return nil
	},
}

var historyResetCmd = &cobra.Command{
	Use:   "reset [path-filter]",
	Short: "Clear the rename journal (optionally for matching paths)",
	Long: `Reset clears the rename journal.

Without arguments, all recorded renames are removed.
With a path or pattern, only entries whose old or new path matches are removed.

The journal is an audit trail only; resetting it does not undo any rename.`,
	Example: `  # Clear the whole journal
  safename history reset --force

  # Clear only entries under a folder
  safename history reset "^drafts/" --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg = GetConfig()
		if err := validateConfigOrExit(cfg, "history"); err != nil {
			return err
		}

		filter := ""
		if len(args) > 0 {
			filter = args[0]
		}

		if filter == "" {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "⚠️  Clearing the ENTIRE rename journal")
		} else {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "⚠️  Clearing journal entries matching: %s\n", filter)
		}

		if !force {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "❌ Aborted (use --force to confirm)")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "This removes the audit trail of performed renames.")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Run with --force if you're sure.")
			return nil
		}

		// Load journal
		hist, err := history.Load(cfg.Output.HistoryFile)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if filter == "" {
			// Reset all
			oldCount := hist.Count()
			if err := hist.Delete(); err != nil {
				return fmt.Errorf("failed to delete history file: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✅ History reset complete")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   Removed %d rename(s) from the journal\n", oldCount)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   Deleted: %s\n", cfg.Output.HistoryFile)
		} else {
			// Reset filtered
			count, err := hist.ResetFiltered(filter)
			if err != nil {
				return fmt.Errorf("failed to reset filtered history: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
			if count == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ℹ️  No journal entries matched pattern: %s\n", filter)
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✅ History reset complete")
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   Removed %d rename(s) matching '%s'\n", count, filter)
			}
		}

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyResetCmd)

	// Reset-specific flags
	historyResetCmd.Flags().BoolVar(&force, "force", false, "confirm history reset")
}
