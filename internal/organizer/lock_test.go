package organizer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockRoot(t *testing.T) {
	root := t.TempDir()

	unlock, err := LockRoot(root)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, LockFileName))

	_, err = LockRoot(root)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, unlock())

	unlock, err = LockRoot(root)
	require.NoError(t, err)
	require.NoError(t, unlock())
}

func TestLockRoot_MissingRoot(t *testing.T) {
	_, err := LockRoot(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrLocked)
}
