package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/comic-sorter/internal/testutil"
)

func TestWatcher_StartStop(t *testing.T) {
	w := NewWatcher(t.TempDir(), 50*time.Millisecond, nil, func([]string) {})
	require.NoError(t, w.Start())
	assert.NoError(t, w.Stop())
	// A second stop is a no-op.
	assert.NoError(t, w.Stop())
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing"), 50*time.Millisecond, nil, func([]string) {})
	assert.Error(t, w.Start())
}

func TestWatcher_ReportsSettledComics(t *testing.T) {
	root := t.TempDir()
	got := make(chan []string, 4)
	w := NewWatcher(root, 100*time.Millisecond, nil, func(paths []string) { got <- paths })
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "drop"), 0755))
	// Give the watcher a moment to pick up the new directory.
	time.Sleep(100 * time.Millisecond)

	testutil.TouchFiles(t, root, "Saga 10.cbz", "Saga 2.cbz", "readme.txt", "drop/Maus.pdf")

	select {
	case paths := <-got:
		assert.Equal(t, []string{
			filepath.Join(root, "Saga 2.cbz"),
			filepath.Join(root, "Saga 10.cbz"),
			filepath.Join(root, "drop", "Maus.pdf"),
		}, paths)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report new files")
	}
}

func TestWatcher_DropsVanishedFiles(t *testing.T) {
	root := t.TempDir()
	called := make(chan []string, 1)
	w := NewWatcher(root, 200*time.Millisecond, nil, func(paths []string) { called <- paths })
	require.NoError(t, w.Start())
	defer w.Stop()

	files := testutil.TouchFiles(t, root, "Gone 1.cbz")
	require.NoError(t, os.Remove(files[0]))

	select {
	case paths := <-called:
		t.Fatalf("unexpected callback with %v", paths)
	case <-time.After(600 * time.Millisecond):
	}
}
