//go:build unix

package organizer

import (
	"context"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/comic-sorter/internal/models"
	"github.com/vrsandeep/comic-sorter/internal/testutil"
)

func TestRenameCrossDevice(t *testing.T) {
	orig := renameFunc
	t.Cleanup(func() { renameFunc = orig })
	renameFunc = func(src, dst string) error {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: syscall.EXDEV}
	}

	err := rename("/a", "/b")
	require.Error(t, err)
	assert.True(t, IsCrossDevice(err))
	assert.ErrorIs(t, err, syscall.EXDEV)
	assert.False(t, IsCrossDevice(os.ErrNotExist))
}

func TestApply_CrossDeviceFailsFile(t *testing.T) {
	orig := renameFunc
	t.Cleanup(func() { renameFunc = orig })
	renameFunc = func(src, dst string) error {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: syscall.EXDEV}
	}

	in, out := t.TempDir(), t.TempDir()
	files := testutil.TouchFiles(t, in, "x.cbz")

	summary, err := NewMover(out, MoverOptions{}).Apply(context.Background(), []models.Assignment{
		{Source: files[0], Folder: "Unsorted/x"},
	})
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, models.MoveStatusFailed, summary.Results[0].Status)
	assert.Contains(t, summary.Results[0].Error, "across file systems")
	assert.FileExists(t, files[0], "source must stay in place")
}
