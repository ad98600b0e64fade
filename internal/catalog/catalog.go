// Package catalog holds the reference tables used to classify comics: the
// canonical publisher list, the alias table mapping free-text spellings onto
// it, and the ordered series pattern catalog.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed data/catalog.toml
var defaultCatalog []byte

// Pattern is one entry of the series pattern catalog.
type Pattern struct {
	Regexp    *regexp.Regexp
	Series    string
	Publisher string
}

// SeriesMatch is the result of a successful pattern lookup.
type SeriesMatch struct {
	Series    string
	Publisher string
}

// Catalog is immutable once built and safe for concurrent use.
type Catalog struct {
	publishers []string
	canonical  map[string]string // lowercase canonical name -> canonical name
	aliases    map[string]string // lowercase alias -> canonical name
	patterns   []Pattern
}

type fileFormat struct {
	Publishers []string          `toml:"publishers"`
	Aliases    map[string]string `toml:"aliases"`
	Patterns   []struct {
		Pattern   string `toml:"pattern"`
		Series    string `toml:"series"`
		Publisher string `toml:"publisher"`
	} `toml:"patterns"`
}

// Default returns the built-in catalog. It panics if the embedded data is
// invalid, which can only happen through a broken build.
func Default() *Catalog {
	c, err := Parse(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in catalog: %v", err))
	}
	return c
}

// Load reads a catalog from a TOML file.
func Load(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	c, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a TOML catalog.
func Parse(r io.Reader) (*Catalog, error) {
	var raw fileFormat
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		canonical: make(map[string]string, len(raw.Publishers)),
		aliases:   make(map[string]string, len(raw.Aliases)),
	}
	for _, p := range raw.Publishers {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, fmt.Errorf("catalog: empty publisher name")
		}
		key := strings.ToLower(name)
		if _, dup := c.canonical[key]; dup {
			return nil, fmt.Errorf("catalog: duplicate publisher %q", name)
		}
		c.canonical[key] = name
		c.publishers = append(c.publishers, name)
	}

	for alias, target := range raw.Aliases {
		if alias != strings.ToLower(alias) {
			return nil, fmt.Errorf("catalog: alias %q must be lowercase", alias)
		}
		if !c.isCanonical(target) {
			return nil, fmt.Errorf("catalog: alias %q maps to unknown publisher %q", alias, target)
		}
		c.aliases[alias] = target
	}

	for i, p := range raw.Patterns {
		if p.Series == "" {
			return nil, fmt.Errorf("catalog: pattern %d has no series", i+1)
		}
		if p.Publisher != "" && !c.isCanonical(p.Publisher) {
			return nil, fmt.Errorf("catalog: pattern %q uses unknown publisher %q", p.Series, p.Publisher)
		}
		re, err := regexp.Compile("(?i)" + p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("catalog: pattern %q: %w", p.Series, err)
		}
		c.patterns = append(c.patterns, Pattern{Regexp: re, Series: p.Series, Publisher: p.Publisher})
	}

	return c, nil
}

// isCanonical reports whether name is exactly one of the canonical publishers.
func (c *Catalog) isCanonical(name string) bool {
	got, ok := c.canonical[strings.ToLower(name)]
	return ok && got == name
}

// Publishers returns the canonical publisher names in declaration order.
func (c *Catalog) Publishers() []string {
	out := make([]string, len(c.publishers))
	copy(out, c.publishers)
	return out
}

// Patterns returns the series pattern catalog in match order.
func (c *Catalog) Patterns() []Pattern {
	out := make([]Pattern, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// IsKnownPublisher reports whether name is an alias or, ignoring case, a
// canonical publisher.
func (c *Catalog) IsKnownPublisher(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return false
	}
	if _, ok := c.aliases[key]; ok {
		return true
	}
	_, ok := c.canonical[key]
	return ok
}

// Normalize maps a free-text publisher onto the catalog. Aliases resolve to
// their canonical name; other known publishers are returned as given. The
// second result is false for empty or unrecognized input, which callers route
// to the Unsorted bucket.
func (c *Catalog) Normalize(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if canonical, ok := c.aliases[strings.ToLower(name)]; ok {
		return canonical, true
	}
	if c.IsKnownPublisher(name) {
		return name, true
	}
	return "", false
}

// MatchSeries returns the first catalog entry whose pattern matches filename.
// Underscores are treated as spaces when the raw name does not match.
func (c *Catalog) MatchSeries(filename string) (SeriesMatch, bool) {
	spaced := strings.ReplaceAll(filename, "_", " ")
	for _, p := range c.patterns {
		if p.Regexp.MatchString(filename) || (spaced != filename && p.Regexp.MatchString(spaced)) {
			return SeriesMatch{Series: p.Series, Publisher: p.Publisher}, true
		}
	}
	return SeriesMatch{}, false
}

// DetectPublisherToken returns the first canonical publisher whose name
// appears, ignoring case and underscores, anywhere in filename.
func (c *Catalog) DetectPublisherToken(filename string) (string, bool) {
	lower := strings.ToLower(strings.ReplaceAll(filename, "_", " "))
	for _, p := range c.publishers {
		if strings.Contains(lower, strings.ToLower(p)) {
			return p, true
		}
	}
	return "", false
}
