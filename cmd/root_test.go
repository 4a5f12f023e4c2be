package cmd

import (
	"testing"
)

const testFalseValue = "false"

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	cmd := rootCmd

	if cmd.Use != "safename" {
		t.Errorf("Expected command use 'safename', got '%s'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Expected command short description to be set")
	}

	if cmd.Long == "" {
		t.Error("Expected command long description to be set")
	}

	if cmd.Version == "" {
		t.Error("Expected command version to be set")
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	cmd := rootCmd
	flags := cmd.PersistentFlags()

	// Check --config flag
	configFlag := flags.Lookup("config")
	if configFlag == nil {
		t.Error("Expected 'config' flag to be defined")
	} else if configFlag.DefValue != "" {
		t.Errorf("Expected 'config' flag default to be empty, got '%s'", configFlag.DefValue)
	}

	// Check --verbose flag
	verboseFlag := flags.Lookup("verbose")
	if verboseFlag == nil {
		t.Fatal("Expected 'verbose' flag to be defined")
	}

	if verboseFlag.DefValue != testFalseValue {
		t.Errorf("Expected 'verbose' flag default to be 'false', got '%s'", verboseFlag.DefValue)
	}
}

func TestRootCmd_RegisteredSubcommands(t *testing.T) {
	t.Parallel()

	expected := []string{"init", "check", "rename", "watch", "history"}

	registered := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		registered[sub.Name()] = true
	}

	for _, name := range expected {
		if !registered[name] {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}
