package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	apperrors "github.com/zeitkraut/safename/internal/errors"
)

// OSVault is the operating-system backed Vault implementation rooted at a
// directory. Dot-directories (e.g. .git, .obsidian) are excluded from
// listings and never touched.
type OSVault struct {
	root string

	// moveMu serializes Move calls. os.Rename replaces an existing
	// destination, so the existence check and the rename must not
	// interleave across concurrent batch moves targeting the same path.
	moveMu sync.Mutex
}

// Compile-time verification that OSVault implements Vault
var _ Vault = (*OSVault)(nil)

// NewOSVault opens a vault rooted at the given directory.
// Returns error if the directory does not exist or is not a directory.
func NewOSVault(root string) (*OSVault, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &apperrors.VaultError{Path: root, Operation: "Open", Err: err}
	}
	if !info.IsDir() {
		return nil, &apperrors.VaultError{Path: root, Operation: "Open", Err: fmt.Errorf("not a directory")}
	}
	return &OSVault{root: root}, nil
}

// Root returns the vault root directory as given to NewOSVault.
func (v *OSVault) Root() string {
	return v.root
}

// ListFiles walks the vault and returns every regular file with its
// vault-relative path split into name and parent directory.
func (v *OSVault) ListFiles() ([]File, error) {
	var files []File

	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// The root itself may be a dot-directory (e.g. vault at "."),
			// only skip dot-directories below it.
			if p != v.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		relSlash := filepath.ToSlash(rel)

		dir := ""
		if idx := strings.LastIndex(relSlash, "/"); idx >= 0 {
			dir = relSlash[:idx]
		}

		files = append(files, File{
			Name: d.Name(),
			Dir:  dir,
			Kind: KindFile,
		})
		return nil
	})
	if err != nil {
		return nil, &apperrors.VaultError{Path: v.root, Operation: "List", Err: err}
	}

	return files, nil
}

// Exists reports whether any entry occupies relPath, file or folder alike.
func (v *OSVault) Exists(relPath string) (bool, error) {
	_, err := os.Stat(v.abs(relPath))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &apperrors.VaultError{Path: relPath, Operation: "Stat", Err: err}
}

// Move renames f to dstPath without overwriting. Moves are serialized, so
// two concurrent moves racing for the same destination resolve to one
// success and one rejection. A race against an external process writing the
// destination between check and rename remains possible.
func (v *OSVault) Move(f File, dstPath string) error {
	v.moveMu.Lock()
	defer v.moveMu.Unlock()

	occupied, err := v.Exists(dstPath)
	if err != nil {
		return err
	}
	if occupied {
		return &apperrors.VaultError{
			Path:      dstPath,
			Operation: "Move",
			Err:       fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, dstPath),
		}
	}

	if err := os.Rename(v.abs(f.Path()), v.abs(dstPath)); err != nil {
		return &apperrors.VaultError{Path: f.Path(), Operation: "Move", Err: err}
	}
	return nil
}

// AddAlias appends alias to the aliases list in the file's front matter.
// Non-markdown files have no front matter and are skipped.
func (v *OSVault) AddAlias(f File, alias string) error {
	if !f.IsMarkdown() {
		return nil
	}

	absPath := v.abs(f.Path())

	info, err := os.Stat(absPath)
	if err != nil {
		return &apperrors.VaultError{Path: f.Path(), Operation: "AddAlias", Err: err}
	}

	content, err := os.ReadFile(absPath) // #nosec G304 -- path derives from a vault listing, not raw user input
	if err != nil {
		return &apperrors.VaultError{Path: f.Path(), Operation: "AddAlias", Err: err}
	}

	updated, err := appendAlias(content, alias)
	if err != nil {
		return &apperrors.VaultError{Path: f.Path(), Operation: "AddAlias", Err: err}
	}

	if err := os.WriteFile(absPath, updated, info.Mode().Perm()); err != nil {
		return &apperrors.VaultError{Path: f.Path(), Operation: "AddAlias", Err: err}
	}
	return nil
}

// abs converts a vault-relative slash path to a native absolute path.
func (v *OSVault) abs(relPath string) string {
	return filepath.Join(v.root, filepath.FromSlash(relPath))
}
