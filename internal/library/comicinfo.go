// This file decodes the ComicInfo.xml document stored inside comic archives.

package library

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/vrsandeep/comic-sorter/internal/models"
)

// ComicInfoFileName is the conventional name of the embedded metadata entry.
// Lookups against archive entries are case-insensitive.
const ComicInfoFileName = "comicinfo.xml"

// comicInfoXML mirrors the ComicInfo schema. Numeric fields are kept as
// strings so that a single malformed value does not reject the document.
type comicInfoXML struct {
	XMLName         xml.Name `xml:"ComicInfo"`
	Series          string   `xml:"Series"`
	Number          string   `xml:"Number"`
	Volume          string   `xml:"Volume"`
	Title           string   `xml:"Title"`
	Publisher       string   `xml:"Publisher"`
	Imprint         string   `xml:"Imprint"`
	Year            string   `xml:"Year"`
	Month           string   `xml:"Month"`
	Day             string   `xml:"Day"`
	Writer          string   `xml:"Writer"`
	Penciller       string   `xml:"Penciller"`
	Inker           string   `xml:"Inker"`
	Colorist        string   `xml:"Colorist"`
	Letterer        string   `xml:"Letterer"`
	CoverArtist     string   `xml:"CoverArtist"`
	Editor          string   `xml:"Editor"`
	Summary         string   `xml:"Summary"`
	StoryArc        string   `xml:"StoryArc"`
	SeriesGroup     string   `xml:"SeriesGroup"`
	AlternateSeries string   `xml:"AlternateSeries"`
	AlternateNumber string   `xml:"AlternateNumber"`
	Format          string   `xml:"Format"`
	AgeRating       string   `xml:"AgeRating"`
	Web             string   `xml:"Web"`
	PageCount       string   `xml:"PageCount"`
	LanguageISO     string   `xml:"LanguageISO"`
}

// DecodeComicInfo parses a ComicInfo document. Any decoding failure is
// returned as a *ParseError.
func DecodeComicInfo(r io.Reader) (*models.EmbeddedMetadata, error) {
	var doc comicInfoXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &ParseError{Err: err}
	}

	t := strings.TrimSpace
	meta := &models.EmbeddedMetadata{
		Series:          t(doc.Series),
		NumberRaw:       t(doc.Number),
		Volume:          parseInt(doc.Volume),
		Title:           t(doc.Title),
		Publisher:       t(doc.Publisher),
		Imprint:         t(doc.Imprint),
		Year:            parseInt(doc.Year),
		Month:           parseInt(doc.Month),
		Day:             parseInt(doc.Day),
		Writer:          t(doc.Writer),
		Penciller:       t(doc.Penciller),
		Inker:           t(doc.Inker),
		Colorist:        t(doc.Colorist),
		Letterer:        t(doc.Letterer),
		CoverArtist:     t(doc.CoverArtist),
		Editor:          t(doc.Editor),
		Summary:         t(doc.Summary),
		StoryArc:        t(doc.StoryArc),
		SeriesGroup:     t(doc.SeriesGroup),
		AlternateSeries: t(doc.AlternateSeries),
		AlternateNumber: t(doc.AlternateNumber),
		Format:          t(doc.Format),
		AgeRating:       t(doc.AgeRating),
		Web:             t(doc.Web),
		PageCount:       parseInt(doc.PageCount),
		LanguageISO:     t(doc.LanguageISO),
	}
	if n, ok := parseIssueNumber(meta.NumberRaw); ok {
		meta.Number = &n
	}
	return meta, nil
}

// parseIssueNumber accepts integer and fractional issue numbers ("1", "001",
// "1.5", "½"). Variant suffixes such as "1A" are not numbers.
func parseIssueNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if s == "½" {
		return 0.5, true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
