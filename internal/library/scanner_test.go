// This file tests comic file discovery.

package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/comic-sorter/internal/testutil"
)

func TestScan(t *testing.T) {
	root := t.TempDir()
	testutil.TouchFiles(t, root,
		"Saga 10.cbz",
		"Saga 2.cbz",
		"notes.txt",
		".hidden.cbz",
		"Marvel/X-Men 1.cbr",
		".trash/Batman 1.cbz",
		"Books/Maus.pdf",
	)

	t.Run("Recursive", func(t *testing.T) {
		files, err := Scan(root, true)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "Saga 2.cbz"),
			filepath.Join(root, "Saga 10.cbz"),
			filepath.Join(root, "Books", "Maus.pdf"),
			filepath.Join(root, "Marvel", "X-Men 1.cbr"),
		}, files)
	})

	t.Run("Top level only", func(t *testing.T) {
		files, err := Scan(root, false)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "Saga 2.cbz"),
			filepath.Join(root, "Saga 10.cbz"),
		}, files)
	})

	t.Run("Missing root", func(t *testing.T) {
		_, err := Scan(filepath.Join(root, "nope"), true)
		assert.Error(t, err)
	})

	t.Run("Root is a file", func(t *testing.T) {
		f := filepath.Join(root, "notes.txt")
		_, err := os.Stat(f)
		require.NoError(t, err)
		_, err = Scan(f, true)
		assert.Error(t, err)
	})
}
