package organizer

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the root while a run holds it.
const LockFileName = ".comic-sorter.lock"

// ErrLocked means another run is already organizing the same root.
var ErrLocked = errors.New("root is locked by another run")

// LockRoot takes an exclusive advisory lock on root. It fails fast with
// ErrLocked instead of waiting. The returned function releases the lock.
func LockRoot(root string) (func() error, error) {
	lock := flock.New(filepath.Join(root, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", root, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", root, ErrLocked)
	}
	return lock.Unlock, nil
}
