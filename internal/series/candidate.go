package series

import (
	"path/filepath"
	"regexp"
	"strings"
)

// candidateRule extracts a series name candidate from a cleaned filename.
type candidateRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// candidateRules are tried in order; the first whose capture is longer than
// two characters wins.
var candidateRules = []candidateRule{
	{"issue_and_year", regexp.MustCompile(`(?i)^(.+?)(?:\s+#?|\s*#)\d{1,4}\s*\(\s*(?:19|20)\d{2}\s*\)`)},
	{"volume_marker", regexp.MustCompile(`(?i)^(.+?)\s+v\d+\b`)},
	{"colon_subtitle", regexp.MustCompile(`^(.+?)\s*:\s*\S`)},
	{"volume_word", regexp.MustCompile(`(?i)^(.+?)\s+(?:volume|vol\.?|book|part|chapter|ch\.?)\s*\d+`)},
	{"issue_marker", regexp.MustCompile(`(?i)^(.+?)\s*(?:#|\bissue\s*|\bno\.?\s*)\d+`)},
	{"year_only", regexp.MustCompile(`^(.+?)\s*\(?\b(?:19|20)\d{2}\b\)?`)},
	{"dash_subtitle", regexp.MustCompile(`^(.+?)\s+-\s+\S`)},
	{"trailing_long_number", regexp.MustCompile(`^(.+?)\s+\d{3,}\b`)},
	{"trailing_short_number", regexp.MustCompile(`^(.+?)\s+\d{1,2}\b`)},
	{"trailing_digits", regexp.MustCompile(`^(.+?)\d+$`)},
	{"first_word", regexp.MustCompile(`^(\w+)`)},
}

var (
	bracketSpans = regexp.MustCompile(`\[[^\]]*\]`)
	extension    = regexp.MustCompile(`\.[A-Za-z0-9]{1,5}$`)
)

// prepare strips the extension, bracketed tags and underscore separators.
func prepare(filename string) string {
	name := filepath.Base(filename)
	name = extension.ReplaceAllString(name, "")
	name = bracketSpans.ReplaceAllString(name, " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.Join(strings.Fields(name), " ")
}

// CandidateName guesses the series a file belongs to from its name alone.
func CandidateName(filename string) string {
	name, _ := candidateName(filename)
	return name
}

// candidateName also reports which rule produced the candidate, or "whole_name".
func candidateName(filename string) (string, string) {
	name := prepare(filename)
	for _, rule := range candidateRules {
		m := rule.Pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		candidate := strings.Trim(m[1], " -:#,.")
		if len([]rune(candidate)) > 2 {
			return candidate, rule.Name
		}
	}
	return name, "whole_name"
}
