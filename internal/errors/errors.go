// Package apperrors provides domain-specific error types for the safename application.
// These error types include contextual information to aid debugging and error reporting.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrAlreadyExists signals that a rename destination is already occupied.
// The move is refused without side effects; the caller surfaces the attempted
// name to the user. Check with errors.Is.
var ErrAlreadyExists = errors.New("destination already exists")

// ConfigurationError represents configuration-related errors.
// It includes the configuration file path and specific key that caused the error.
type ConfigurationError struct {
	ConfigPath string // Path to the configuration file
	Key        string // Configuration key that caused the error
	Err        error  // Underlying error
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error in %s (key: %s): %v", e.ConfigPath, e.Key, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.ConfigPath, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// VaultError represents vault file-system operation errors.
// It includes the vault-relative path and the operation that failed.
type VaultError struct {
	Path      string // Vault-relative path the operation targeted
	Operation string // Operation that failed (e.g., "List", "Move", "AddAlias")
	Err       error  // Underlying error
}

// Error implements the error interface for VaultError.
func (e *VaultError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("vault %s failed (path: %s): %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("vault %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *VaultError) Unwrap() error {
	return e.Err
}

// RenameError represents a failed rename attempt.
// It includes both the source path and the computed target path.
type RenameError struct {
	Source string // Vault-relative path of the file being renamed
	Target string // Vault-relative path the rename aimed at
	Err    error  // Underlying error
}

// Error implements the error interface for RenameError.
func (e *RenameError) Error() string {
	return fmt.Sprintf("rename %s -> %s failed: %v", e.Source, e.Target, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *RenameError) Unwrap() error {
	return e.Err
}
