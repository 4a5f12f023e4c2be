// Package vault abstracts the directory tree of notes that safename operates
// on. The core planning logic only sees this interface; the OS-backed
// implementation lives in os.go.
package vault

// Vault defines the interface for vault file-system operations.
// Implementations must provide file listing, an atomic non-overwriting move,
// and front-matter alias editing. All paths are vault-relative with forward
// slashes.
type Vault interface {
	// ListFiles returns every regular file currently in the vault.
	// Folders are not returned but their names still occupy paths; use Exists
	// to probe for them.
	ListFiles() ([]File, error)

	// Exists reports whether any entry (file or folder) occupies relPath.
	Exists(relPath string) (bool, error)

	// Move renames f to dstPath. The move is refused if the destination is
	// already occupied; in that case the returned error wraps
	// apperrors.ErrAlreadyExists and the source file is left untouched.
	// The destination is never silently overwritten.
	Move(f File, dstPath string) error

	// AddAlias appends alias to the "aliases" list in the file's front
	// matter, creating the field (and the front-matter block) if absent.
	// Only markdown files carry front matter; for any other file this is a
	// no-op.
	AddAlias(f File, alias string) error
}
