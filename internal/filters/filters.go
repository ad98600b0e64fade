// Package filters sorts files into folders using a hand-written tree of
// regular expressions instead of resolved metadata.
package filters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/vrsandeep/comic-sorter/internal/util"
)

// Filter is one node of the tree. Pattern is tested case-insensitively
// against file names. Children only see the files their parent matched.
type Filter struct {
	Name    string    `json:"name"`
	Pattern string    `json:"pattern"`
	Filters []*Filter `json:"filters,omitempty"`

	re *regexp.Regexp
}

type document struct {
	Filters []*Filter `json:"filters"`
}

// Set is a validated filter tree.
type Set struct {
	filters []*Filter
}

// Load reads a filter document from path.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open filters: %w", err)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse decodes and validates a filter document.
func Parse(r io.Reader) (*Set, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode filters: %w", err)
	}
	if len(doc.Filters) == 0 {
		return nil, errors.New("no filters defined")
	}
	if err := compile(doc.Filters, ""); err != nil {
		return nil, err
	}
	return &Set{filters: doc.Filters}, nil
}

func compile(filters []*Filter, parent string) error {
	for i, f := range filters {
		if f == nil {
			return fmt.Errorf("filter %s[%d] is empty", parent, i)
		}
		label := f.Name
		if parent != "" {
			label = parent + "/" + f.Name
		}
		if util.SanitizeSegment(f.Name) == "" {
			return fmt.Errorf("filter %s[%d] has no usable name", parent, i)
		}
		if f.Pattern == "" {
			return fmt.Errorf("filter %q has no pattern", label)
		}
		re, err := regexp.Compile("(?i)" + f.Pattern)
		if err != nil {
			return fmt.Errorf("filter %q: %w", label, err)
		}
		f.re = re
		if err := compile(f.Filters, label); err != nil {
			return err
		}
	}
	return nil
}

// Filters returns the top level of the tree.
func (s *Set) Filters() []*Filter {
	return s.filters
}

// Assign maps each matching file to its folder relative to the output root,
// such as "Marvel/Spider-Man". At every level the first filter whose pattern
// matches a file's name takes it. A file matched by a parent but by none of
// its children stays in the parent's folder. Files no top-level filter
// matches are left out.
func (s *Set) Assign(files []string) map[string]string {
	out := make(map[string]string)
	assign(s.filters, files, "", out)
	return out
}

func assign(filters []*Filter, files []string, prefix string, out map[string]string) {
	remaining := files
	for _, f := range filters {
		var matched, rest []string
		for _, file := range remaining {
			if f.re.MatchString(filepath.Base(file)) {
				matched = append(matched, file)
			} else {
				rest = append(rest, file)
			}
		}
		remaining = rest
		if len(matched) == 0 {
			continue
		}

		folder := util.SanitizeSegment(f.Name)
		if prefix != "" {
			folder = prefix + "/" + folder
		}
		for _, file := range matched {
			out[file] = folder
		}
		if len(f.Filters) > 0 {
			assign(f.Filters, matched, folder, out)
		}
	}
}
