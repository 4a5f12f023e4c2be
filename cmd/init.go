package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zeitkraut/safename/internal/templates"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize safename configuration and directory structure",
	Long: `Init creates the necessary configuration files and directories for safename.

This command will create:
  - config.yaml (sample configuration file)
  - .env (environment variable template)
  - reports/ (directory for rename reports)
  - .safename/ (directory for the rename history journal)

Run this once when setting up safename for the first time.`,
	Example: `  # Initialize in current directory
  safename init

  # Force overwrite existing files
  safename init --force`,
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println("🔧 Initializing safename...")

		dirs := []string{
			"reports",
			".safename",
		}

		for _, dir := range dirs {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
			fmt.Printf("✅ Created directory: %s\n", dir)
		}

		files := map[string][]byte{
			"config.yaml": templates.ConfigYAML,
			".env":        templates.EnvFile,
		}

		for filename, content := range files {
			if _, err := os.Stat(filename); err == nil && !force {
				fmt.Printf("⚠️  Skipping %s (already exists, use --force to overwrite)\n", filename)
				continue
			}

			if err := os.WriteFile(filename, content, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", filename, err)
			}

			fmt.Printf("✅ Created %s\n", filename)
		}

		fmt.Println("\n🎉 Initialization complete!")
		fmt.Println("\n📝 Next steps:")
		fmt.Println("   1. Edit config.yaml to point vault.path at your vault")
		fmt.Println("   2. Run 'safename check' to see which files need renaming")
		fmt.Println("   3. Run 'safename rename --dry-run' to preview the renames")
		fmt.Println("   4. Run 'safename rename' to apply them")

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration files")
}
