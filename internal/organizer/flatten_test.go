package organizer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/comic-sorter/internal/models"
	"github.com/vrsandeep/comic-sorter/internal/testutil"
)

func TestFlatten(t *testing.T) {
	root := t.TempDir()
	testutil.TouchFiles(t, root,
		"top.cbz",
		"a/b/one.cbz",
		"c/top.cbz",
		"d/.hidden/secret.cbz",
		"e/notes.txt",
	)

	summary, err := NewMover(root, MoverOptions{}).Flatten(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Results, 2)

	assert.FileExists(t, filepath.Join(root, "top.cbz"))
	assert.FileExists(t, filepath.Join(root, "one.cbz"))
	assert.FileExists(t, filepath.Join(root, "top (1).cbz"))
	assert.Equal(t, models.MoveStatusRenamed, summary.Results[1].Status)

	assert.NoDirExists(t, filepath.Join(root, "a"))
	assert.NoDirExists(t, filepath.Join(root, "c"))
	assert.FileExists(t, filepath.Join(root, "d", ".hidden", "secret.cbz"), "hidden directories are left alone")
	assert.FileExists(t, filepath.Join(root, "e", "notes.txt"))
}

func TestFlatten_DryRun(t *testing.T) {
	root := t.TempDir()
	files := testutil.TouchFiles(t, root, "a/one.cbz")

	summary, err := NewMover(root, MoverOptions{DryRun: true}).Flatten(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, models.MoveStatusPlanned, summary.Results[0].Status)
	assert.Equal(t, filepath.Join(root, "one.cbz"), summary.Results[0].Destination)
	assert.FileExists(t, files[0])
}

func TestFlatten_MissingRoot(t *testing.T) {
	_, err := NewMover(filepath.Join(t.TempDir(), "missing"), MoverOptions{}).Flatten(context.Background())
	assert.Error(t, err)
}
