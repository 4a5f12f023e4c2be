package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/zeitkraut/safename/internal/errors"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func TestNewOSVault(t *testing.T) {
	root := t.TempDir()

	v, err := NewOSVault(root)
	require.NoError(t, err)
	assert.Equal(t, root, v.Root())
}

func TestNewOSVault_MissingDirectory(t *testing.T) {
	_, err := NewOSVault(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestNewOSVault_NotADirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.md", "x")

	_, err := NewOSVault(filepath.Join(root, "file.md"))
	assert.Error(t, err)
}

func TestOSVault_ListFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "top.md", "x")
	writeFile(t, root, "sub/inner.md", "x")
	writeFile(t, root, "sub/deep/leaf.txt", "x")
	writeFile(t, root, ".obsidian/workspace.json", "x") // hidden dir, skipped
	writeFile(t, root, "sub/.hidden", "x")              // hidden file, skipped

	v, err := NewOSVault(root)
	require.NoError(t, err)

	files, err := v.ListFiles()
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path())
	}
	sort.Strings(paths)

	assert.Equal(t, []string{"sub/deep/leaf.txt", "sub/inner.md", "top.md"}, paths)
}

func TestOSVault_ListFiles_SplitsNameAndDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sub/inner.md", "x")

	v, err := NewOSVault(root)
	require.NoError(t, err)

	files, err := v.ListFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "inner.md", files[0].Name)
	assert.Equal(t, "sub", files[0].Dir)
	assert.Equal(t, KindFile, files[0].Kind)
}

func TestOSVault_Exists(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sub/inner.md", "x")

	v, err := NewOSVault(root)
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "existing file", path: "sub/inner.md", want: true},
		{name: "existing folder", path: "sub", want: true},
		{name: "missing entry", path: "sub/other.md", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Exists(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOSVault_Move(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad?.md", "content")

	v, err := NewOSVault(root)
	require.NoError(t, err)

	f := File{Name: "bad?.md", Kind: KindFile}
	require.NoError(t, v.Move(f, "bad-.md"))

	moved, err := v.Exists("bad-.md")
	require.NoError(t, err)
	assert.True(t, moved)

	gone, err := v.Exists("bad?.md")
	require.NoError(t, err)
	assert.False(t, gone)

	data, err := os.ReadFile(filepath.Join(root, "bad-.md"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestOSVault_Move_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad?.md", "source")
	writeFile(t, root, "bad-.md", "occupant")

	v, err := NewOSVault(root)
	require.NoError(t, err)

	f := File{Name: "bad?.md", Kind: KindFile}
	err = v.Move(f, "bad-.md")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	// Neither file may change.
	src, readErr := os.ReadFile(filepath.Join(root, "bad?.md"))
	require.NoError(t, readErr)
	assert.Equal(t, "source", string(src))

	dst, readErr := os.ReadFile(filepath.Join(root, "bad-.md"))
	require.NoError(t, readErr)
	assert.Equal(t, "occupant", string(dst))
}

func TestOSVault_Move_ConcurrentMovesToSameTarget(t *testing.T) {
	root := t.TempDir()

	const movers = 16
	for i := 0; i < movers; i++ {
		writeFile(t, root, fmt.Sprintf("note?%d.md", i), fmt.Sprintf("content-%d", i))
	}

	v, err := NewOSVault(root)
	require.NoError(t, err)

	errs := make([]error, movers)
	var wg sync.WaitGroup
	for i := 0; i < movers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := File{Name: fmt.Sprintf("note?%d.md", i), Kind: KindFile}
			errs[i] = v.Move(f, "note-.md")
		}()
	}
	wg.Wait()

	winner := -1
	for i, err := range errs {
		if err == nil {
			require.Equal(t, -1, winner, "more than one move claimed the target")
			winner = i
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	}
	require.NotEqual(t, -1, winner, "no move claimed the target")

	// The winner's content must survive untouched and every loser must
	// still hold its source file.
	data, err := os.ReadFile(filepath.Join(root, "note-.md"))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("content-%d", winner), string(data))

	for i := 0; i < movers; i++ {
		if i == winner {
			continue
		}
		src, readErr := os.ReadFile(filepath.Join(root, fmt.Sprintf("note?%d.md", i)))
		require.NoError(t, readErr)
		assert.Equal(t, fmt.Sprintf("content-%d", i), string(src))
	}
}

func TestOSVault_Move_RefusesFolderTarget(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad?.md", "source")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bad-.md"), 0o750))

	v, err := NewOSVault(root)
	require.NoError(t, err)

	err = v.Move(File{Name: "bad?.md", Kind: KindFile}, "bad-.md")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestOSVault_AddAlias_SkipsNonMarkdown(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "image?.png", "binary")

	v, err := NewOSVault(root)
	require.NoError(t, err)

	require.NoError(t, v.AddAlias(File{Name: "image?.png", Kind: KindFile}, "image?"))

	data, err := os.ReadFile(filepath.Join(root, "image?.png"))
	require.NoError(t, err)
	assert.Equal(t, "binary", string(data))
}

func TestOSVault_AddAlias_CreatesFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad?.md", "# Heading\n\nBody text.\n")

	v, err := NewOSVault(root)
	require.NoError(t, err)

	require.NoError(t, v.AddAlias(File{Name: "bad?.md", Kind: KindFile}, "bad?"))

	data, err := os.ReadFile(filepath.Join(root, "bad?.md"))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "aliases:")
	assert.Contains(t, content, "bad?")
	assert.Contains(t, content, "# Heading\n\nBody text.\n")
}
