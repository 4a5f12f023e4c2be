// Package reporting generates human-readable reports of rename plans.
package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeitkraut/safename/internal/config"
	"github.com/zeitkraut/safename/internal/planner"
)

// GenerateRenameReport formats a full planning pass as a markdown report.
// Every file appears in the table: safe files as confirmation, unsafe files
// with their target name, and collisions flagged as blocked. The collisions
// map is keyed by source path.
func GenerateRenameReport(entries []planner.Entry, collisions map[string]bool) string {
	var sb strings.Builder

	timestamp := time.Now().Format(time.RFC1123)

	toRename := 0
	blocked := 0
	for _, e := range entries {
		if e.AlreadySafe {
			continue
		}
		if collisions[e.File.Path()] {
			blocked++
		} else {
			toRename++
		}
	}

	// Header
	sb.WriteString("# Rename Report\n\n")
	sb.WriteString(fmt.Sprintf("**Date:** %s  \n", timestamp))
	sb.WriteString(fmt.Sprintf("**Files Checked:** %d  \n", len(entries)))
	sb.WriteString(fmt.Sprintf("**Files To Rename:** %d  \n", toRename))
	sb.WriteString(fmt.Sprintf("**Blocked By Collision:** %d\n\n", blocked))

	// Plan Section
	sb.WriteString("## 📋 Plan\n\n")
	sb.WriteString("| File | Safe Name | Status |\n")
	sb.WriteString("|------|-----------|--------|\n")

	for _, e := range entries {
		status := "✅ already safe"
		safeName := "-"
		switch {
		case e.AlreadySafe:
			// keep defaults
		case collisions[e.File.Path()]:
			safeName = e.SafeName
			status = fmt.Sprintf("⛔ blocked: `%s` already exists", e.TargetPath())
		default:
			safeName = e.SafeName
			status = "✏️ rename"
		}
		sb.WriteString(fmt.Sprintf("| `%s` | `%s` | %s |\n", e.File.Path(), safeName, status))
	}
	sb.WriteString("\n")

	if blocked > 0 {
		sb.WriteString("Blocked renames are never attempted. Remove or rename the file occupying the target path, then run the check again.\n")
	}

	return sb.String()
}

// SaveReport writes a report into the reports directory and returns the file path.
func SaveReport(content string, cfg *config.Config) (string, error) {
	if err := os.MkdirAll(cfg.Output.ReportsDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	// Generate filename: YYYY-MM-DD_HH-MM-SS.md
	filename := time.Now().Format("2006-01-02_15-04-05") + ".md"
	filePath := filepath.Join(cfg.Output.ReportsDir, filename)

	// Write file
	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return filePath, nil
}
