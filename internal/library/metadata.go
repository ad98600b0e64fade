// This file handles the logic for extracting metadata from file names.
// Nothing here touches the file contents; every function is a pure string
// transformation and never fails.

package library

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	reExtension    = regexp.MustCompile(`^\.[A-Za-z0-9]{1,5}$`)
	reBracketSpan  = regexp.MustCompile(`\[[^\]]*\]`)
	reParenSpan    = regexp.MustCompile(`\([^)]*\)`)
	reVolumeToken  = regexp.MustCompile(`(?i)\bv\d+\b`)
	reHashIssue    = regexp.MustCompile(`#\s*\d+`)
	reBareYear     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	reWhitespace   = regexp.MustCompile(`\s+`)
	reExplicitHash = regexp.MustCompile(`#\s*(\d{1,4})\b`)
	reNumberToken  = regexp.MustCompile(`\b(\d{1,4})\b`)
	reOfTotal      = regexp.MustCompile(`(?i)\bof\s+\d+\b`)
	reYearToken    = regexp.MustCompile(`(?:^|[^0-9])((?:19|20)[0-9]{2})(?:[^0-9]|$)`)
	reYearShape    = regexp.MustCompile(`^(?:19|20)\d{2}$`)
)

// comicExtensions lists the recognized comic containers.
var comicExtensions = map[string]bool{
	".cbr":  true,
	".cbz":  true,
	".pdf":  true,
	".epub": true,
}

// Extension returns the lowercase extension of path including the dot,
// e.g. ".cbz". It returns "" when there is no extension.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// IsComicFile reports whether path has one of the recognized comic extensions.
func IsComicFile(path string) bool {
	return comicExtensions[Extension(path)]
}

// ProbesEmbedded reports whether files of this type can carry embedded
// ComicInfo metadata. Only CBZ and CBR archives are probed.
func ProbesEmbedded(path string) bool {
	ext := Extension(path)
	return ext == ".cbz" || ext == ".cbr"
}

// stripExtension removes a short alphanumeric extension. Names such as
// "Batman Vol. 1" keep their trailing text.
func stripExtension(name string) string {
	ext := filepath.Ext(name)
	if ext != "" && reExtension.MatchString(ext) {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

// CleanedName reduces a filename to the bare title used for lookups.
// For example: The_Walking_Dead_#001_(2023)_[Digital].cbz -> The Walking Dead
func CleanedName(filename string) string {
	name := stripExtension(filepath.Base(filename))
	name = strings.ReplaceAll(name, "_", " ")
	name = reBracketSpan.ReplaceAllString(name, " ")
	name = reParenSpan.ReplaceAllString(name, " ")
	name = reVolumeToken.ReplaceAllString(name, " ")
	name = reHashIssue.ReplaceAllString(name, " ")
	name = reBareYear.ReplaceAllString(name, " ")
	name = strings.ReplaceAll(name, "-", " ")
	name = reWhitespace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// IssueNumber extracts the issue number from a filename.
//
// An explicit "#N" token always wins. Otherwise bracketed and parenthesized
// spans, volume tokens and "of N" totals are dropped and the last standalone
// number of one to four digits is used, skipping numbers shaped like a year
// (19xx/20xx). "Spider-Man 2099 005.cbz" therefore yields 5.
func IssueNumber(filename string) (int, bool) {
	name := stripExtension(filepath.Base(filename))

	if m := reExplicitHash.FindStringSubmatch(name); m != nil {
		return atoi(m[1])
	}

	name = strings.ReplaceAll(name, "_", " ")
	name = reBracketSpan.ReplaceAllString(name, " ")
	name = reParenSpan.ReplaceAllString(name, " ")
	name = reVolumeToken.ReplaceAllString(name, " ")
	name = reOfTotal.ReplaceAllString(name, " ")

	matches := reNumberToken.FindAllStringSubmatch(name, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		token := matches[i][1]
		if reYearShape.MatchString(token) {
			continue
		}
		return atoi(token)
	}
	return 0, false
}

// Year returns the first four-digit token starting with 19 or 20.
// Issue numbers such as "#001" are never read as years.
func Year(filename string) (int, bool) {
	m := reYearToken.FindStringSubmatch(filepath.Base(filename))
	if m == nil {
		return 0, false
	}
	return atoi(m[1])
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
