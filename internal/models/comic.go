// This file defines the records produced while resolving comic metadata.

package models

// Confidence is a coarse ranking of how trustworthy a resolved record is.
type Confidence string

const (
	ConfidenceHighest Confidence = "highest"
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
)

// Source names the resolution stage that produced a record.
type Source string

const (
	SourceComicInfo          Source = "comicinfo-xml"
	SourceAPILookup          Source = "api-lookup"
	SourceAPINonComic        Source = "api-lookup-non-comic-publisher"
	SourcePatternMatch       Source = "pattern-match"
	SourcePublisherDetection Source = "publisher-detection"
	SourceFilenameAnalysis   Source = "filename-analysis"
)

// Confidence returns the confidence that goes with records from this source.
// The two are never chosen independently.
func (s Source) Confidence() Confidence {
	switch s {
	case SourceComicInfo:
		return ConfidenceHighest
	case SourceAPILookup, SourcePatternMatch:
		return ConfidenceHigh
	case SourceAPINonComic, SourcePublisherDetection:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// UnsortedPublisher is the folder used for files whose publisher is unknown
// or not a comic publisher.
const UnsortedPublisher = "Unsorted"

// ComicMetadata is the resolved view of a single comic file.
// Series and Publisher are empty when absent; IssueNumber is nil when absent
// because issue #0 is a real issue. Year is 0 when absent.
type ComicMetadata struct {
	Path             string     `json:"path,omitempty"`
	OriginalFilename string     `json:"original_filename"`
	CleanedName      string     `json:"cleaned_name"`
	IssueNumber      *float64   `json:"issue_number,omitempty"`
	Year             int        `json:"year,omitempty"`
	Series           string     `json:"series,omitempty"`
	Publisher        string     `json:"publisher,omitempty"`
	SuggestedFolder  string     `json:"suggested_folder"`
	Confidence       Confidence `json:"confidence"`
	Source           Source     `json:"source"`
}

// NewComicMetadata creates a record stamped with the source and the
// confidence that source implies.
func NewComicMetadata(source Source) *ComicMetadata {
	return &ComicMetadata{Source: source, Confidence: source.Confidence()}
}

// EmbeddedMetadata is the catalog record stored inside a comic archive
// (ComicInfo.xml). It is built fresh for each file and never mutated.
type EmbeddedMetadata struct {
	Series          string
	Number          *float64
	NumberRaw       string
	Volume          int
	Title           string
	Publisher       string
	Imprint         string
	Year            int
	Month           int
	Day             int
	Writer          string
	Penciller       string
	Inker           string
	Colorist        string
	Letterer        string
	CoverArtist     string
	Editor          string
	Summary         string
	StoryArc        string
	SeriesGroup     string
	AlternateSeries string
	AlternateNumber string
	Format          string
	AgeRating       string
	Web             string
	PageCount       int
	LanguageISO     string
}

// PublisherOrImprint returns the publisher, falling back to the imprint.
func (m *EmbeddedMetadata) PublisherOrImprint() string {
	if m.Publisher != "" {
		return m.Publisher
	}
	return m.Imprint
}

// LookupResult is the best guess returned by the bibliographic search API.
type LookupResult struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// SeriesGroup is a set of two or more files inferred to belong to the same
// series.
type SeriesGroup struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

// FileCount returns the number of member files.
func (g SeriesGroup) FileCount() int {
	return len(g.Files)
}
