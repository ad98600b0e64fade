package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vrsandeep/comic-sorter/internal/library"
	"github.com/vrsandeep/comic-sorter/internal/models"
	"github.com/vrsandeep/comic-sorter/internal/series"
	"github.com/vrsandeep/comic-sorter/internal/util"
)

// MergeFolders moves the comic files of every source folder into the target
// folder of a consolidation suggestion and removes sources left empty.
// Folders are relative to the root.
func (m *Mover) MergeFolders(ctx context.Context, merge series.FolderMerge) (*models.BatchSummary, error) {
	if len(util.FolderSegments(merge.Target)) == 0 {
		return nil, fmt.Errorf("merge target cannot be empty")
	}

	var plan []models.Assignment
	for _, src := range merge.Sources {
		dir := m.folderPath(src)
		files, err := library.Scan(dir, false)
		if err != nil {
			return nil, fmt.Errorf("merge source %s: %w", src, err)
		}
		for _, f := range files {
			plan = append(plan, models.Assignment{Source: f, Folder: merge.Target})
		}
	}

	summary, err := m.Apply(ctx, plan)
	if err != nil || m.dryRun {
		return summary, err
	}
	for _, src := range merge.Sources {
		m.removeIfEmpty(m.folderPath(src))
	}
	return summary, nil
}

// ExtractHiddenSeries moves each hidden group out of its folder into a
// sibling folder named after the group, under the same publisher.
func (m *Mover) ExtractHiddenSeries(ctx context.Context, hidden series.HiddenSeries) (*models.BatchSummary, error) {
	publisher := models.UnsortedPublisher
	if segs := util.FolderSegments(hidden.Folder); len(segs) > 0 {
		publisher = segs[0]
	}

	var plan []models.Assignment
	for _, g := range hidden.Groups {
		folder := util.JoinFolder(publisher, g.Name)
		for _, f := range g.Files {
			plan = append(plan, models.Assignment{Source: f, Folder: folder})
		}
	}
	return m.Apply(ctx, plan)
}

// FolderContents lists the comic files of every folder below the root,
// keyed by folder path relative to the root with forward slashes. Files at
// the root itself are keyed by "".
func (m *Mover) FolderContents() (map[string][]string, error) {
	files, err := library.Scan(m.root, true)
	if err != nil {
		return nil, err
	}
	contents := make(map[string][]string)
	for _, f := range files {
		rel, err := filepath.Rel(m.root, filepath.Dir(f))
		if err != nil {
			return nil, err
		}
		key := filepath.ToSlash(rel)
		if key == "." {
			key = ""
		}
		contents[key] = append(contents[key], f)
	}
	return contents, nil
}

// Folders summarizes FolderContents as consolidation input, leaving out the
// root itself.
func Folders(contents map[string][]string) []series.Folder {
	folders := make([]series.Folder, 0, len(contents))
	for path, files := range contents {
		if path == "" {
			continue
		}
		folders = append(folders, series.Folder{Path: path, Files: len(files)})
	}
	sort.Slice(folders, func(i, j int) bool {
		return util.NaturalLess(folders[i].Path, folders[j].Path)
	})
	return folders
}

func (m *Mover) folderPath(folder string) string {
	return filepath.Join(append([]string{m.root}, util.FolderSegments(folder)...)...)
}

func (m *Mover) removeIfEmpty(dir string) {
	for dir != m.root && len(dir) > len(m.root) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			m.logger.Warn("failed to remove empty folder", "path", dir, "error", err)
			return
		}
		dir = filepath.Dir(dir)
	}
}
