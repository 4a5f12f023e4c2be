package cmd

import (
	"fmt"

	"github.com/zeitkraut/safename/internal/config"
	"github.com/zeitkraut/safename/internal/planner"
	"github.com/zeitkraut/safename/internal/sanitize"
	"github.com/zeitkraut/safename/internal/vault"
)

// validateConfigOrExit guards command handlers against a missing or broken
// configuration. Returns a user-facing error that points at 'safename init'.
func validateConfigOrExit(cfg *config.Config, _ string) error {
	if cfg == nil {
		if err := GetConfigLoadError(); err != nil {
			return fmt.Errorf("configuration could not be loaded: %w\n\nRun 'safename init' to create a fresh config.yaml", err)
		}
		return fmt.Errorf("configuration not loaded\n\nSafename has not been initialized in this directory.\nRun 'safename init' to set up safename and create the necessary configuration")
	}
	return nil
}

// newPlannerFromConfig builds the vault and planner from an explicit config
// value. Both components receive their settings as parameters; nothing reads
// configuration ambiently.
func newPlannerFromConfig(cfg *config.Config) (*vault.OSVault, *planner.Planner, error) {
	vlt, err := vault.NewOSVault(cfg.Vault.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open vault at %s: %w", cfg.Vault.Path, err)
	}

	allow := sanitize.NewAllowList(cfg.Rename.AdditionalCharacters)
	return vlt, planner.New(vlt, allow), nil
}

// renameOptions derives the rename side-effect policy from config.
// Alias recording follows the rename.automatically setting, including for
// manually triggered renames.
func renameOptions(cfg *config.Config) planner.Options {
	return planner.Options{
		RecordAlias: cfg.Rename.Automatically,
	}
}
