package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempHistoryPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "history.json")
}

func TestLoad_MissingFile(t *testing.T) {
	h, err := Load(tempHistoryPath(t))
	require.NoError(t, err)
	assert.Equal(t, 0, h.Count())
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := tempHistoryPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestRecordAndSave_RoundTrip(t *testing.T) {
	path := tempHistoryPath(t)

	h, err := Load(path)
	require.NoError(t, err)

	h.Record("bad?.md", "bad-.md")
	h.Record("sub/old*.md", "sub/old-.md")
	require.NoError(t, h.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.Count())

	items := reloaded.All()
	assert.Equal(t, "bad?.md", items[0].From)
	assert.Equal(t, "bad-.md", items[0].To)
	assert.Equal(t, "sub/old*.md", items[1].From)
	assert.False(t, items[0].Time.IsZero())
}

func TestRecordAndSave_ConcurrentWritersLoseNoEntries(t *testing.T) {
	path := tempHistoryPath(t)

	h, err := Load(path)
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Record(fmt.Sprintf("file?%d.md", i), fmt.Sprintf("file-%d.md", i))
			assert.NoError(t, h.Save())
		}()
	}
	wg.Wait()

	require.Equal(t, writers, h.Count())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, writers, reloaded.Count())
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".safename", "history.json")

	h, err := Load(path)
	require.NoError(t, err)

	h.Record("a?.md", "a-.md")
	require.NoError(t, h.Save())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSave_NoOpWithoutChanges(t *testing.T) {
	path := tempHistoryPath(t)

	h, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, h.Save())

	// Nothing was modified, so no file should appear.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestResetAll(t *testing.T) {
	path := tempHistoryPath(t)

	h, err := Load(path)
	require.NoError(t, err)
	h.Record("a?.md", "a-.md")
	require.NoError(t, h.Save())

	require.NoError(t, h.ResetAll())
	assert.Equal(t, 0, h.Count())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Count())
}

func TestResetFiltered(t *testing.T) {
	path := tempHistoryPath(t)

	h, err := Load(path)
	require.NoError(t, err)
	h.Record("drafts/a?.md", "drafts/a-.md")
	h.Record("notes/b?.md", "notes/b-.md")
	require.NoError(t, h.Save())

	count, err := h.ResetFiltered("^drafts/")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Equal(t, 1, h.Count())
	assert.Equal(t, "notes/b?.md", h.All()[0].From)
}

func TestResetFiltered_MatchesNewPath(t *testing.T) {
	h, err := Load(tempHistoryPath(t))
	require.NoError(t, err)
	h.Record("x?.md", "renamed/x-.md")

	count, err := h.ResetFiltered("^renamed/")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestResetFiltered_EmptyPattern(t *testing.T) {
	h, err := Load(tempHistoryPath(t))
	require.NoError(t, err)

	_, err = h.ResetFiltered("")
	assert.Error(t, err)
}

func TestResetFiltered_InvalidPattern(t *testing.T) {
	h, err := Load(tempHistoryPath(t))
	require.NoError(t, err)

	_, err = h.ResetFiltered("[")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	path := tempHistoryPath(t)

	h, err := Load(path)
	require.NoError(t, err)
	h.Record("a?.md", "a-.md")
	require.NoError(t, h.Save())

	require.NoError(t, h.Delete())
	assert.Equal(t, 0, h.Count())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting again is fine.
	assert.NoError(t, h.Delete())
}
