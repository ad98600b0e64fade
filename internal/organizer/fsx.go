package organizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxSuffix bounds the " (n)" retries when a destination name is taken.
const maxSuffix = 100

// renameFunc is swapped in tests to simulate cross-device failures.
var renameFunc = os.Rename

// ErrDestinationTaken means every suffixed candidate name already exists.
var ErrDestinationTaken = errors.New("destination name taken")

// CrossDeviceError reports a rename that failed because source and
// destination are on different file systems. Files are never copied and
// deleted implicitly.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("cannot move %q to %q across file systems: %v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice reports whether err is a CrossDeviceError.
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// rename wraps os.Rename and marks EXDEV failures explicitly.
func rename(src, dst string) error {
	if err := renameFunc(src, dst); err != nil {
		if isEXDEV(err) {
			return &CrossDeviceError{Src: src, Dst: dst, Err: err}
		}
		return err
	}
	return nil
}

// suffixedName returns "name (n).ext", or name itself for n == 0.
func suffixedName(name string, n int) string {
	if n == 0 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n, ext)
}

// freeDestination finds the first name in dir, starting with name and then
// trying " (1)" to " (100)", that neither exists nor is in reserved. src
// itself counts as free so a file already in place is left alone.
func freeDestination(src, dir, name string, reserved map[string]bool) (string, error) {
	for n := 0; n <= maxSuffix; n++ {
		candidate := filepath.Join(dir, suffixedName(name, n))
		if samePath(src, candidate) {
			return candidate, nil
		}
		if reserved[candidate] {
			continue
		}
		if _, err := os.Lstat(candidate); err != nil {
			if os.IsNotExist(err) {
				return candidate, nil
			}
			return "", err
		}
	}
	return "", fmt.Errorf("%s in %s: %w", name, dir, ErrDestinationTaken)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// pruneEmptyDirs removes empty directories below root, deepest first.
// root itself is kept. Directories holding only hidden files such as
// .DS_Store are not considered empty.
func pruneEmptyDirs(root string) error {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		entries, err := os.ReadDir(dirs[i])
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		if len(entries) == 0 {
			if err := os.Remove(dirs[i]); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}
