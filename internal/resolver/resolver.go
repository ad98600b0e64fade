// Package resolver turns a comic file into a metadata record by trying, in
// order, embedded ComicInfo data, the remote lookup API and the pattern
// catalog. The first stage that produces an answer wins.
package resolver

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vrsandeep/comic-sorter/internal/catalog"
	"github.com/vrsandeep/comic-sorter/internal/library"
	"github.com/vrsandeep/comic-sorter/internal/lookup"
	"github.com/vrsandeep/comic-sorter/internal/models"
)

// EmbeddedReader reads the ComicInfo record stored inside a comic archive.
type EmbeddedReader interface {
	ReadEmbedded(ctx context.Context, path string) (*models.EmbeddedMetadata, error)
}

// Lookuper searches the remote bibliographic API for a title.
type Lookuper interface {
	Lookup(ctx context.Context, title string) (*models.LookupResult, error)
}

// Options wires a Resolver. Catalog is required; Reader and Lookup may be nil
// to disable their stages.
type Options struct {
	Catalog       *catalog.Catalog
	Reader        EmbeddedReader
	Lookup        Lookuper
	LookupEnabled bool
	Logger        *slog.Logger
}

// Resolver implements the source-priority state machine.
type Resolver struct {
	catalog       *catalog.Catalog
	reader        EmbeddedReader
	lookup        Lookuper
	lookupEnabled bool
	logger        *slog.Logger
}

// Input describes one file to resolve. Path enables the embedded stage;
// Filename defaults to the base name of Path.
type Input struct {
	Filename string
	Path     string
}

// New creates a resolver.
func New(opts Options) *Resolver {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		catalog:       opts.Catalog,
		reader:        opts.Reader,
		lookup:        opts.Lookup,
		lookupEnabled: opts.LookupEnabled && opts.Lookup != nil,
		logger:        opts.Logger,
	}
}

// LookupEnabled reports whether the remote lookup stage runs.
func (r *Resolver) LookupEnabled() bool {
	return r.lookupEnabled
}

// Resolve produces a record for a single file. It never fails: every stage
// that cannot answer hands over to the next, and the last stage always
// produces a low-confidence record.
func (r *Resolver) Resolve(ctx context.Context, in Input) *models.ComicMetadata {
	filename := in.Filename
	if filename == "" {
		filename = filepath.Base(in.Path)
	}

	base := baseFields{
		path:     in.Path,
		filename: filename,
		cleaned:  library.CleanedName(filename),
	}
	if n, ok := library.IssueNumber(filename); ok {
		f := float64(n)
		base.issue = &f
	}
	if y, ok := library.Year(filename); ok {
		base.year = y
	}

	if in.Path != "" && r.reader != nil {
		if rec := r.fromEmbedded(ctx, base); rec != nil {
			return rec
		}
	}
	if r.lookupEnabled {
		if rec := r.fromLookup(ctx, base); rec != nil {
			return rec
		}
	}
	return r.fromPatterns(base)
}

// baseFields are the filename-derived values shared by every stage.
type baseFields struct {
	path     string
	filename string
	cleaned  string
	issue    *float64
	year     int
}

// label is the name used for a folder when nothing better is known.
func (b baseFields) label() string {
	if b.cleaned != "" {
		return b.cleaned
	}
	if name := strings.TrimSpace(strings.TrimSuffix(b.filename, filepath.Ext(b.filename))); name != "" {
		return name
	}
	return "Unknown"
}

func (b baseFields) record(source models.Source) *models.ComicMetadata {
	rec := models.NewComicMetadata(source)
	rec.Path = b.path
	rec.OriginalFilename = b.filename
	rec.CleanedName = b.cleaned
	rec.IssueNumber = b.issue
	rec.Year = b.year
	return rec
}

func (r *Resolver) fromEmbedded(ctx context.Context, base baseFields) *models.ComicMetadata {
	meta, err := r.reader.ReadEmbedded(ctx, base.path)
	if err != nil {
		r.logger.Debug("no embedded metadata", "path", base.path, "outcome", library.Classify(err), "error", err)
		return nil
	}
	if meta == nil || strings.TrimSpace(meta.Series) == "" {
		r.logger.Debug("embedded metadata has no series", "path", base.path)
		return nil
	}

	rec := base.record(models.SourceComicInfo)
	rec.Series = strings.TrimSpace(meta.Series)
	if meta.Number != nil {
		n := *meta.Number
		rec.IssueNumber = &n
	}
	if meta.Year > 0 {
		rec.Year = meta.Year
	}
	publisher, ok := r.catalog.Normalize(meta.PublisherOrImprint())
	if !ok {
		publisher = models.UnsortedPublisher
	}
	rec.Publisher = publisher
	rec.SuggestedFolder = folder(publisher, rec.Series, base.label())
	return rec
}

func (r *Resolver) fromLookup(ctx context.Context, base baseFields) *models.ComicMetadata {
	result, err := r.lookup.Lookup(ctx, base.cleaned)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Debug("lookup found nothing", "file", base.filename, "query", base.cleaned, "error", err)
		}
		return nil
	}
	if result == nil || strings.TrimSpace(result.Publisher) == "" {
		return nil
	}

	title := strings.TrimSpace(result.Title)
	if title == "" {
		title = base.label()
	}

	var rec *models.ComicMetadata
	if publisher, ok := r.catalog.Normalize(result.Publisher); ok {
		rec = base.record(models.SourceAPILookup)
		rec.Publisher = publisher
	} else {
		r.logger.Debug("lookup publisher is not a comic publisher", "file", base.filename, "publisher", result.Publisher)
		rec = base.record(models.SourceAPINonComic)
		rec.Publisher = models.UnsortedPublisher
	}
	rec.Series = title
	if rec.Year == 0 {
		if y, ok := lookup.PublishedYear(result.PublishedDate); ok {
			rec.Year = y
		}
	}
	rec.SuggestedFolder = folder(rec.Publisher, title, base.label())
	return rec
}

func (r *Resolver) fromPatterns(base baseFields) *models.ComicMetadata {
	match, matched := r.catalog.MatchSeries(base.filename)
	var detected string
	if token, ok := r.catalog.DetectPublisherToken(base.filename); ok {
		detected, _ = r.catalog.Normalize(token)
	}

	switch {
	case matched:
		rec := base.record(models.SourcePatternMatch)
		publisher, ok := r.catalog.Normalize(match.Publisher)
		if !ok {
			publisher = detected
		}
		if publisher == "" {
			publisher = models.UnsortedPublisher
		}
		rec.Series = match.Series
		rec.Publisher = publisher
		rec.SuggestedFolder = folder(publisher, match.Series, base.label())
		return rec

	case detected != "":
		rec := base.record(models.SourcePublisherDetection)
		rec.Publisher = detected
		rec.Series = base.cleaned
		rec.SuggestedFolder = folder(detected, base.label(), base.label())
		return rec

	default:
		rec := base.record(models.SourceFilenameAnalysis)
		rec.Publisher = models.UnsortedPublisher
		rec.SuggestedFolder = folder(models.UnsortedPublisher, base.label(), base.label())
		return rec
	}
}
