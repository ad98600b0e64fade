// This file is responsible for reading the embedded ComicInfo.xml entry from
// .cbz (ZIP) and .cbr (RAR) archives.

package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/vrsandeep/comic-sorter/internal/models"
)

var errStopExtract = errors.New("stop extraction")

// ComicInfoReader reads embedded metadata from comic archives.
type ComicInfoReader struct{}

// NewComicInfoReader creates a new ComicInfoReader.
func NewComicInfoReader() *ComicInfoReader {
	return &ComicInfoReader{}
}

// ReadEmbedded returns the ComicInfo record stored in the archive at
// filePath. PDF and EPUB files return ErrUnsupportedFormat without being
// opened; archives without a ComicInfo.xml entry return ErrNoEmbeddedMetadata;
// unreadable archives and malformed documents return a *ParseError.
func (r *ComicInfoReader) ReadEmbedded(ctx context.Context, filePath string) (*models.EmbeddedMetadata, error) {
	if !ProbesEmbedded(filePath) {
		return nil, ErrUnsupportedFormat
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, &ParseError{Path: filePath, Err: err}
	}
	defer f.Close()

	// CBR files are sometimes ZIPs with the wrong extension, so the format is
	// identified from the stream header rather than trusted from the name.
	format, _, err := archives.Identify(ctx, filepath.Base(filePath), f)
	if err != nil {
		return nil, &ParseError{Path: filePath, Err: err}
	}
	extractor, ok := format.(archives.Extractor)
	if !ok {
		return nil, &ParseError{Path: filePath, Err: fmt.Errorf("%s is not an extractable archive", format.Extension())}
	}
	// ZIP extraction needs random access, so hand over the rewound file itself.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, &ParseError{Path: filePath, Err: err}
	}

	var meta *models.EmbeddedMetadata
	var decodeErr error
	err = extractor.Extract(ctx, f, func(ctx context.Context, info archives.FileInfo) error {
		if info.IsDir() || !strings.EqualFold(path.Base(info.NameInArchive), ComicInfoFileName) {
			return nil
		}
		entry, err := info.Open()
		if err != nil {
			return err
		}
		defer entry.Close()
		meta, decodeErr = DecodeComicInfo(entry)
		return errStopExtract
	})
	if decodeErr != nil {
		var parseErr *ParseError
		if errors.As(decodeErr, &parseErr) {
			parseErr.Path = filePath
		}
		return nil, decodeErr
	}
	if meta != nil {
		return meta, nil
	}
	if err != nil && !errors.Is(err, errStopExtract) {
		return nil, &ParseError{Path: filePath, Err: err}
	}
	return nil, ErrNoEmbeddedMetadata
}
