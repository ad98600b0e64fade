package series

import (
	"sort"
	"strings"

	"github.com/vrsandeep/comic-sorter/internal/models"
	"github.com/vrsandeep/comic-sorter/internal/util"
)

// Folder is an assigned destination folder ("Publisher/Series") and the
// number of files in it.
type Folder struct {
	Path  string `json:"path"`
	Files int    `json:"files"`
}

// FolderMerge suggests moving the contents of Sources into Target.
type FolderMerge struct {
	Target  string   `json:"target"`
	Sources []string `json:"sources"`
}

// HiddenSeries reports series groups found among the files of one folder
// that do not match the folder's own name.
type HiddenSeries struct {
	Folder string               `json:"folder"`
	Groups []models.SeriesGroup `json:"groups"`
}

// splitFolder returns the leading publisher segment (empty for single
// segment folders) and the final segment.
func splitFolder(folder string) (publisher, name string) {
	segs := util.FolderSegments(folder)
	switch len(segs) {
	case 0:
		return "", ""
	case 1:
		return "", segs[0]
	default:
		return segs[0], segs[len(segs)-1]
	}
}

// ConsolidateFolders clusters near-duplicate folders. Two folders are only
// compared when their publisher segments match, and their final segments
// must score at least threshold. The clustering is the same greedy pass the
// detector uses. Each merge targets the member holding the most files.
func ConsolidateFolders(folders []Folder, threshold float64) []FolderMerge {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultConsolidateThreshold
	}

	type entry struct {
		Folder
		publisher  string
		name       string
		normalized string
	}
	entries := make([]entry, 0, len(folders))
	for _, f := range folders {
		pub, name := splitFolder(f.Path)
		if name == "" {
			continue
		}
		entries = append(entries, entry{Folder: f, publisher: pub, name: name, normalized: Normalize(name)})
	}

	var merges []FolderMerge
	processed := make([]bool, len(entries))
	for i := range entries {
		if processed[i] {
			continue
		}
		processed[i] = true
		cluster := []entry{entries[i]}
		for j := i + 1; j < len(entries); j++ {
			if processed[j] || !strings.EqualFold(entries[i].publisher, entries[j].publisher) {
				continue
			}
			if similarityNormalized(entries[i].normalized, entries[j].normalized) >= threshold {
				processed[j] = true
				cluster = append(cluster, entries[j])
			}
		}
		if len(cluster) < 2 {
			continue
		}

		target := 0
		for k := 1; k < len(cluster); k++ {
			c, t := cluster[k], cluster[target]
			if c.Files > t.Files || (c.Files == t.Files && len(c.name) < len(t.name)) {
				target = k
			}
		}
		merge := FolderMerge{Target: cluster[target].Path}
		for k, c := range cluster {
			if k != target {
				merge.Sources = append(merge.Sources, c.Path)
			}
		}
		merges = append(merges, merge)
	}
	return merges
}

// FindHiddenSeries looks inside each folder holding two or more files for
// series groups that do not match the folder name, such as a run of issues
// sitting loose in a publisher-only folder. contents maps a folder to the
// files it holds. Folders are reported in name order.
func (d *Detector) FindHiddenSeries(contents map[string][]string, threshold float64) []HiddenSeries {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultConsolidateThreshold
	}

	folders := make([]string, 0, len(contents))
	for f := range contents {
		folders = append(folders, f)
	}
	sort.Strings(folders)

	var hidden []HiddenSeries
	for _, folder := range folders {
		files := contents[folder]
		if len(files) < 2 {
			continue
		}
		_, name := splitFolder(folder)
		var found []models.SeriesGroup
		for _, g := range d.Detect(files) {
			if name != "" && Similarity(g.Name, name) >= threshold {
				continue
			}
			found = append(found, g)
		}
		if len(found) > 0 {
			hidden = append(hidden, HiddenSeries{Folder: folder, Groups: found})
		}
	}
	return hidden
}
