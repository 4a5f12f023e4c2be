package planner

import "github.com/zeitkraut/safename/internal/vault"

// Entry is the outcome of evaluating one file: the name it should have and
// whether it already has it. Entries are computed fresh on every planning
// pass and never cached across vault mutations.
type Entry struct {
	File        vault.File
	SafeName    string
	AlreadySafe bool
}

// TargetPath returns the vault-relative path the file would be moved to.
func (e Entry) TargetPath() string {
	return vault.JoinPath(e.File.Dir, e.SafeName)
}

// Outcome classifies a single rename attempt.
type Outcome int

// Rename outcomes. AlreadySafe is a success, not an error: invoking a rename
// on a file that needs none is a no-op.
const (
	OutcomeAlreadySafe Outcome = iota
	OutcomeRenamed
	OutcomeExists
	OutcomeFailed
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadySafe:
		return "already safe"
	case OutcomeRenamed:
		return "renamed"
	case OutcomeExists:
		return "destination exists"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one rename attempt. AliasErr carries a failed
// alias write separately: the alias is recorded before the move and its
// failure does not stop the rename.
type Result struct {
	Entry    Entry
	Outcome  Outcome
	Err      error
	AliasErr error
}

// Summary aggregates a batch rename. There is no rollback: files renamed
// before a later failure stay renamed.
type Summary struct {
	Renamed int
	Failed  int
	Results []Result
}
