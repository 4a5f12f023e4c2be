// Package history manages the persistent journal of performed renames.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"
)

// History represents the persistent journal of renames
type History struct {
	Version     string       `json:"version"`
	LastUpdated time.Time    `json:"last_updated"`
	Entries     []RenameItem `json:"entries"`
	mu          sync.RWMutex `json:"-"`
	filePath    string       `json:"-"`
	modified    bool         `json:"-"`
}

// RenameItem records one performed rename
type RenameItem struct {
	Time time.Time `json:"time"`
	From string    `json:"from"`
	To   string    `json:"to"`
}

// Load loads the journal from a JSON file at the specified path.
// Returns a new History instance populated from the file, or an empty journal if the file doesn't exist.
// Returns error if the file cannot be read or parsed.
func Load(filePath string) (*History, error) {
	h := &History{
		Version:  "1",
		filePath: filePath,
	}

	// If file doesn't exist, return empty journal
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return h, nil
	}

	// Read file
	data, err := os.ReadFile(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		return nil, fmt.Errorf("failed to read history file from %s: %w", filePath, err)
	}

	// Unmarshal JSON
	if err := json.Unmarshal(data, h); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", filePath, err)
	}

	h.filePath = filePath
	return h, nil
}

// Save saves the journal to the JSON file atomically.
// Uses a temporary file and rename operation to ensure atomic writes.
// Only saves if the journal has been modified since the last save.
// Returns error if the file cannot be written or synced.
func (h *History) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.saveUnlocked()
}

// saveUnlocked performs the save operation without acquiring the lock
// Caller must hold the lock
func (h *History) saveUnlocked() error {
	if !h.modified {
		return nil // No changes to save
	}

	h.LastUpdated = time.Now()

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history for %s: %w", h.filePath, err)
	}

	// Ensure the parent directory exists (default location lives under ./.safename)
	dir := filepath.Dir(h.filePath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s for history %s: %w", dir, h.filePath, err)
	}

	// Atomic write: write to temp file, then rename
	tmpFile, err := os.CreateTemp(dir, "history-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in directory %s for history %s: %w", dir, h.filePath, err)
	}
	tmpPath := tmpFile.Name()

	// Write data
	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()    // Best effort cleanup
		_ = os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("failed to write temp file %s for history %s: %w", tmpPath, h.filePath, err)
	}

	// Sync to disk
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()    // Best effort cleanup
		_ = os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("failed to sync temp file %s for history %s: %w", tmpPath, h.filePath, err)
	}

	_ = tmpFile.Close() // Explicit ignore - we've already synced

	// Atomic rename
	if err := os.Rename(tmpPath, h.filePath); err != nil {
		_ = os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("failed to rename temp file %s to %s: %w", tmpPath, h.filePath, err)
	}

	h.modified = false
	return nil
}

// Record appends one performed rename to the journal.
// Marks the journal as modified requiring a save operation.
func (h *History) Record(from, to string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Entries = append(h.Entries, RenameItem{
		Time: time.Now(),
		From: from,
		To:   to,
	})
	h.modified = true
}

// ResetAll clears the journal and persists the change to disk.
// Returns error if the save operation fails.
func (h *History) ResetAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Entries = nil
	h.modified = true

	return h.saveUnlocked()
}

// ResetFiltered removes journal entries matching a regular expression pattern.
// The pattern is matched against both the old and the new path.
// Returns the number of entries removed and any error encountered.
// Returns error if the pattern is empty or invalid regex.
func (h *History) ResetFiltered(pattern string) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if pattern == "" {
		return 0, fmt.Errorf("pattern cannot be empty for ResetFiltered operation on history %s", h.filePath)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid pattern %q for ResetFiltered operation on history %s: %w", pattern, h.filePath, err)
	}

	kept := h.Entries[:0]
	count := 0
	for _, item := range h.Entries {
		if re.MatchString(item.From) || re.MatchString(item.To) {
			count++
			continue
		}
		kept = append(kept, item)
	}
	h.Entries = kept

	if count > 0 {
		h.modified = true
		if err := h.saveUnlocked(); err != nil {
			return count, err
		}
	}

	return count, nil
}

// All returns a copy of all journal entries, oldest first.
// Safe for concurrent use with journal modifications.
func (h *History) All() []RenameItem {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]RenameItem, len(h.Entries))
	copy(result, h.Entries)
	return result
}

// Count returns the number of entries currently in the journal.
// Thread-safe for concurrent access.
func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Entries)
}

// Delete removes the journal file from disk and clears in-memory entries.
// Returns error if the file cannot be deleted (except if it doesn't exist).
func (h *History) Delete() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.Remove(h.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete history file %s: %w", h.filePath, err)
	}

	h.Entries = nil
	h.modified = false
	return nil
}
