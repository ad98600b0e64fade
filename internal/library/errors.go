// This file classifies the ways reading embedded metadata can come up empty.

package library

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEmbeddedMetadata means the archive has no ComicInfo.xml entry.
	ErrNoEmbeddedMetadata = errors.New("no embedded metadata")
	// ErrUnsupportedFormat means the container is never probed (PDF, EPUB, ...).
	ErrUnsupportedFormat = errors.New("unsupported container format")
)

// ParseError wraps a failure to open an archive or decode its metadata.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse embedded metadata: %v", e.Err)
	}
	return fmt.Sprintf("parse embedded metadata from %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadOutcome tags the result of an embedded metadata read.
type ReadOutcome string

const (
	OutcomeFound       ReadOutcome = "found"
	OutcomeNotFound    ReadOutcome = "not_found"
	OutcomeUnsupported ReadOutcome = "unsupported"
	OutcomeParseError  ReadOutcome = "parse_error"
)

// Classify maps an error returned by ReadEmbedded to its outcome. Callers in
// the resolver treat every outcome other than OutcomeFound the same way; the
// tag exists for logging.
func Classify(err error) ReadOutcome {
	var parseErr *ParseError
	switch {
	case err == nil:
		return OutcomeFound
	case errors.Is(err, ErrUnsupportedFormat):
		return OutcomeUnsupported
	case errors.Is(err, ErrNoEmbeddedMetadata):
		return OutcomeNotFound
	case errors.As(err, &parseErr):
		return OutcomeParseError
	default:
		return OutcomeParseError
	}
}
