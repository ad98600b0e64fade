// Package series groups comic files into inferred series using fuzzy name
// similarity, and suggests folder consolidations for near-duplicate series
// folders.
package series

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/vrsandeep/comic-sorter/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultThreshold            = 0.5
	DefaultConsolidateThreshold = 0.65
)

// Detector clusters files whose candidate series names are similar.
type Detector struct {
	threshold float64
	logger    *slog.Logger
}

// NewDetector creates a detector. A threshold outside (0,1] falls back to
// DefaultThreshold.
func NewDetector(threshold float64, logger *slog.Logger) *Detector {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Detector{threshold: threshold, logger: logger}
}

// Threshold returns the minimum similarity for two files to share a group.
func (d *Detector) Threshold() float64 {
	return d.threshold
}

// member is one file taking part in clustering.
type member struct {
	path       string
	candidate  string
	normalized string
	known      bool
}

// Detect groups files by the series name guessed from their file names.
// Only groups with at least two files are returned, largest first.
func (d *Detector) Detect(files []string) []models.SeriesGroup {
	return d.DetectWithMetadata(files, nil)
}

// DetectWithMetadata groups files like Detect, but a file whose entry in
// known is non-empty uses that series name instead of its file name. Files
// sharing the same known name form one group named exactly after it,
// whatever their file names say.
func (d *Detector) DetectWithMetadata(files []string, known map[string]string) []models.SeriesGroup {
	var groups []models.SeriesGroup

	// Exact groups from known series names, in order of first appearance.
	byName := make(map[string][]string)
	var order []string
	for _, f := range files {
		name := strings.TrimSpace(known[f])
		if name == "" {
			continue
		}
		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = append(byName[name], f)
	}
	consumed := make(map[string]bool)
	for _, name := range order {
		members := byName[name]
		if len(members) < 2 {
			continue
		}
		groups = append(groups, models.SeriesGroup{Name: name, Files: members})
		for _, f := range members {
			consumed[f] = true
		}
	}

	// Fuzzy pass over everything else.
	var pool []member
	for _, f := range files {
		if consumed[f] {
			continue
		}
		candidate := strings.TrimSpace(known[f])
		fromMetadata := candidate != ""
		if !fromMetadata {
			candidate = CandidateName(f)
		}
		pool = append(pool, member{path: f, candidate: candidate, normalized: Normalize(candidate), known: fromMetadata})
	}
	groups = append(groups, d.cluster(pool)...)

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].FileCount() > groups[j].FileCount()
	})
	d.logger.Debug("series detection finished", "files", len(files), "groups", len(groups))
	return groups
}

// cluster is a single greedy pass: each unprocessed member collects every
// later unprocessed member similar enough to itself. Similarity is not
// chained, so A~B and B~C leaves C out of A's group unless A~C.
func (d *Detector) cluster(pool []member) []models.SeriesGroup {
	var groups []models.SeriesGroup
	processed := make([]bool, len(pool))
	for i := range pool {
		if processed[i] {
			continue
		}
		processed[i] = true
		members := []member{pool[i]}
		for j := i + 1; j < len(pool); j++ {
			if processed[j] {
				continue
			}
			if similarityNormalized(pool[i].normalized, pool[j].normalized) >= d.threshold {
				processed[j] = true
				members = append(members, pool[j])
			}
		}
		if len(members) < 2 {
			continue
		}
		groups = append(groups, models.SeriesGroup{Name: groupName(members), Files: paths(members)})
	}
	return groups
}

// groupName is the shortest candidate among members. Names taken from file
// names are title-cased; a known series name is kept as written.
func groupName(members []member) string {
	shortest := members[0]
	for _, m := range members[1:] {
		if len([]rune(m.candidate)) < len([]rune(shortest.candidate)) {
			shortest = m
		}
	}
	if shortest.known {
		return shortest.candidate
	}
	return TitleCase(shortest.candidate)
}

func paths(members []member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.path
	}
	return out
}

// TitleCase capitalizes the first letter of every word and lowercases the
// rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(s), " "))
}

// FileLookup maps every grouped file to its group name.
func FileLookup(groups []models.SeriesGroup) map[string]string {
	lookup := make(map[string]string)
	for _, g := range groups {
		for _, f := range g.Files {
			lookup[f] = g.Name
		}
	}
	return lookup
}

// KnownSeries collects the series names that resolution established from
// metadata rather than from the file name, keyed by file path. Records from
// filename analysis or publisher detection only echo the file name and are
// left out.
func KnownSeries(records []*models.ComicMetadata) map[string]string {
	known := make(map[string]string)
	for _, rec := range records {
		if rec == nil || NameDerived(rec) {
			continue
		}
		key := rec.Path
		if key == "" {
			key = rec.OriginalFilename
		}
		known[key] = rec.Series
	}
	return known
}

// NameDerived reports whether a record has no series beyond what its file
// name says: either none at all, or one from publisher detection or filename
// analysis.
func NameDerived(rec *models.ComicMetadata) bool {
	if rec.Series == "" {
		return true
	}
	switch rec.Source {
	case models.SourceFilenameAnalysis, models.SourcePublisherDetection:
		return true
	}
	return false
}
