// This file tests reading embedded ComicInfo metadata from archives.

package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/comic-sorter/internal/testutil"
)

func TestReadEmbedded(t *testing.T) {
	tempDir := t.TempDir()
	reader := NewComicInfoReader()
	ctx := context.Background()

	t.Run("Reads ComicInfo from CBZ", func(t *testing.T) {
		cbz := testutil.CreateTestCBZ(t, tempDir, "batman001.cbz", map[string]string{
			"01.jpg": "image data",
			"ComicInfo.xml": testutil.ComicInfoXML(map[string]string{
				"Series":    "Batman",
				"Number":    "1",
				"Publisher": "DC Comics",
				"Year":      "2016",
				"Writer":    "Tom King",
				"PageCount": "24",
			}),
		})

		meta, err := reader.ReadEmbedded(ctx, cbz)
		require.NoError(t, err)
		assert.Equal(t, "Batman", meta.Series)
		assert.Equal(t, "DC Comics", meta.Publisher)
		require.NotNil(t, meta.Number)
		assert.Equal(t, 1.0, *meta.Number)
		assert.Equal(t, 2016, meta.Year)
		assert.Equal(t, "Tom King", meta.Writer)
		assert.Equal(t, 24, meta.PageCount)
		assert.Equal(t, OutcomeFound, Classify(err))
	})

	t.Run("Entry name is matched case-insensitively in subfolders", func(t *testing.T) {
		cbz := testutil.CreateTestCBZ(t, tempDir, "nested.cbz", map[string]string{
			"pages/01.jpg": "image data",
			"meta/COMICINFO.XML": testutil.ComicInfoXML(map[string]string{
				"Series": "Saga",
				"Number": "1.5",
			}),
		})

		meta, err := reader.ReadEmbedded(ctx, cbz)
		require.NoError(t, err)
		assert.Equal(t, "Saga", meta.Series)
		require.NotNil(t, meta.Number)
		assert.Equal(t, 1.5, *meta.Number)
	})

	t.Run("Archive without ComicInfo", func(t *testing.T) {
		cbz := testutil.CreateTestCBZ(t, tempDir, "plain.cbz", map[string]string{"01.jpg": "image data"})

		meta, err := reader.ReadEmbedded(ctx, cbz)
		assert.Nil(t, meta)
		assert.True(t, errors.Is(err, ErrNoEmbeddedMetadata))
		assert.Equal(t, OutcomeNotFound, Classify(err))
	})

	t.Run("Malformed ComicInfo", func(t *testing.T) {
		cbz := testutil.CreateTestCBZ(t, tempDir, "broken.cbz", map[string]string{
			"ComicInfo.xml": "<ComicInfo><Series>Batman</Ser",
		})

		meta, err := reader.ReadEmbedded(ctx, cbz)
		assert.Nil(t, meta)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, cbz, parseErr.Path)
		assert.Equal(t, OutcomeParseError, Classify(err))
	})

	t.Run("Corrupted archive", func(t *testing.T) {
		bad := filepath.Join(tempDir, "corrupt.cbz")
		require.NoError(t, os.WriteFile(bad, []byte("definitely not a zip"), 0o644))

		meta, err := reader.ReadEmbedded(ctx, bad)
		assert.Nil(t, meta)
		assert.Equal(t, OutcomeParseError, Classify(err))
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := reader.ReadEmbedded(ctx, filepath.Join(tempDir, "missing.cbr"))
		assert.Equal(t, OutcomeParseError, Classify(err))
	})

	t.Run("PDF and EPUB are never probed", func(t *testing.T) {
		for _, name := range []string{"book.pdf", "book.epub"} {
			meta, err := reader.ReadEmbedded(ctx, filepath.Join(tempDir, name))
			assert.Nil(t, meta)
			assert.True(t, errors.Is(err, ErrUnsupportedFormat), name)
			assert.Equal(t, OutcomeUnsupported, Classify(err))
		}
	})
}

func TestParseIssueNumber(t *testing.T) {
	testCases := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"1", 1, true},
		{"001", 1, true},
		{"1.5", 1.5, true},
		{"½", 0.5, true},
		{"0", 0, true},
		{"1A", 0, false},
		{"", 0, false},
	}
	for _, tc := range testCases {
		n, ok := parseIssueNumber(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.expected, n, tc.in)
	}
}
