package vault

import "strings"

// Kind distinguishes regular files from folders. Folders are never renamed or
// aliased but still occupy path segments, so they participate in collision
// checks.
type Kind int

// Entry kinds.
const (
	KindFile Kind = iota
	KindFolder
)

// File represents one vault entry. Paths inside the vault are always
// forward-slash separated and relative to the vault root, regardless of the
// host operating system.
type File struct {
	Name string // Final path segment, including extension
	Dir  string // Parent path, "" for the vault root
	Kind Kind
}

// Path returns the vault-relative path of the file.
func (f File) Path() string {
	return JoinPath(f.Dir, f.Name)
}

// BaseName returns the file name without its extension. Used as the alias
// recorded before a rename so links using the old name keep resolving.
func (f File) BaseName() string {
	if idx := strings.LastIndex(f.Name, "."); idx > 0 {
		return f.Name[:idx]
	}
	return f.Name
}

// IsMarkdown reports whether the file is a markdown note. Only markdown notes
// carry front matter and can receive aliases.
func (f File) IsMarkdown() bool {
	return strings.HasSuffix(strings.ToLower(f.Name), ".md")
}

// JoinPath joins a parent path and a name into a vault-relative path.
// Empty segments (from leading, trailing, or doubled separators) are dropped.
func JoinPath(dir, name string) string {
	segments := make([]string, 0, 8)
	for _, seg := range strings.Split(dir, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if name != "" {
		segments = append(segments, name)
	}
	return strings.Join(segments, "/")
}
