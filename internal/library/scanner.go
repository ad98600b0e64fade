// This file contains the logic for discovering comic files on disk.

package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vrsandeep/comic-sorter/internal/util"
)

// Scan walks root and returns the comic files it contains, in natural order
// so that issue 2 precedes issue 10. Hidden files and directories are
// skipped. When recursive is false only the top level of root is listed.
func Scan(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsComicFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	SortNatural(files)
	return files, nil
}

// SortNatural orders paths naturally by directory, then by file name.
func SortNatural(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		di, dj := filepath.Dir(paths[i]), filepath.Dir(paths[j])
		if di != dj {
			return util.NaturalLess(di, dj)
		}
		return util.NaturalLess(filepath.Base(paths[i]), filepath.Base(paths[j]))
	})
}
