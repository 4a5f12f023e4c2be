// Package planner decides which vault files need renaming and carries the
// renames out, individually or as a concurrent batch.
package planner

import (
	"errors"
	"sync"

	apperrors "github.com/zeitkraut/safename/internal/errors"
	"github.com/zeitkraut/safename/internal/sanitize"
	"github.com/zeitkraut/safename/internal/vault"
)

// Options controls rename side effects.
type Options struct {
	// RecordAlias writes the original base name to the file's front matter
	// before the move so links using the old name keep resolving. Gated by
	// the rename.automatically setting, also for manually triggered renames.
	RecordAlias bool
}

// Planner computes and executes rename plans. It is stateless apart from its
// collaborators and safe for concurrent use.
type Planner struct {
	vlt   vault.Vault
	allow sanitize.AllowList
}

// New creates a Planner operating on the given vault with the given
// allow-list. Both are explicit parameters; the planner reads no ambient
// configuration.
func New(vlt vault.Vault, allow sanitize.AllowList) *Planner {
	return &Planner{vlt: vlt, allow: allow}
}

// Evaluate computes the plan entry for a single file.
func (p *Planner) Evaluate(f vault.File) Entry {
	safeName := sanitize.Name(f.Name, p.allow)
	return Entry{
		File:        f,
		SafeName:    safeName,
		AlreadySafe: safeName == f.Name,
	}
}

// PlanAll evaluates every regular file in the vault. Used in report mode,
// where safe files are listed alongside unsafe ones.
func (p *Planner) PlanAll() ([]Entry, error) {
	files, err := p.vlt.ListFiles()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		entries = append(entries, p.Evaluate(f))
	}
	return entries, nil
}

// FilesToRename returns plan entries for unsafe files only.
func (p *Planner) FilesToRename() ([]Entry, error) {
	entries, err := p.PlanAll()
	if err != nil {
		return nil, err
	}

	toRename := entries[:0]
	for _, e := range entries {
		if !e.AlreadySafe {
			toRename = append(toRename, e)
		}
	}
	return toRename, nil
}

// CheckCollision reports whether the entry's target path is already occupied
// by a different file or folder. A colliding rename must be surfaced to the
// caller, never attempted.
func (p *Planner) CheckCollision(e Entry) (bool, error) {
	target := e.TargetPath()
	if target == e.File.Path() {
		return false, nil
	}
	return p.vlt.Exists(target)
}

// Rename performs a single rename attempt: evaluate, optionally record the
// alias, then request the move. An already-safe file short-circuits to a
// no-op success. The alias write happens before the move and is not rolled
// back if the move fails; an alias pointing at a name that still exists
// remains valid.
func (p *Planner) Rename(f vault.File, opts Options) Result {
	entry := p.Evaluate(f)
	if entry.AlreadySafe {
		return Result{Entry: entry, Outcome: OutcomeAlreadySafe}
	}

	result := Result{Entry: entry}

	if opts.RecordAlias {
		result.AliasErr = p.vlt.AddAlias(f, f.BaseName())
	}

	target := entry.TargetPath()
	err := p.vlt.Move(f, target)
	switch {
	case err == nil:
		result.Outcome = OutcomeRenamed
	case errors.Is(err, apperrors.ErrAlreadyExists):
		result.Outcome = OutcomeExists
		result.Err = &apperrors.RenameError{Source: f.Path(), Target: target, Err: err}
	default:
		result.Outcome = OutcomeFailed
		result.Err = &apperrors.RenameError{Source: f.Path(), Target: target, Err: err}
	}
	return result
}

// RenameAll renames every entry concurrently and joins on completion of the
// full set. The moves are independent: no ordering guarantee exists between
// them, a failure in one does not cancel the others, and two entries racing
// for the same target degenerate to one success and one rejection. There is
// no cancellation of an in-flight batch.
func (p *Planner) RenameAll(entries []Entry, opts Options) Summary {
	results := make([]Result, len(entries))

	var wg sync.WaitGroup
	for i, e := range entries {
		i, e := i, e
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.Rename(e.File, opts)
		}()
	}
	wg.Wait()

	summary := Summary{Results: results}
	for _, r := range results {
		switch r.Outcome {
		case OutcomeRenamed:
			summary.Renamed++
		case OutcomeExists, OutcomeFailed:
			summary.Failed++
		case OutcomeAlreadySafe:
			// No-op success; nothing to count.
		}
	}
	return summary
}
