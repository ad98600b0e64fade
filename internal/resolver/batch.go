package resolver

import (
	"context"

	"github.com/vrsandeep/comic-sorter/internal/models"
)

// ProgressFunc is called after each file of a batch is resolved. index is
// zero-based.
type ProgressFunc func(index, total int, record *models.ComicMetadata)

// ResolveBatch resolves paths one after another, in order. Lookup calls are
// spaced by the lookup client's own rate gate, so files that never reach the
// lookup stage are not delayed. On cancellation the records resolved so far
// are returned together with the context error.
func (r *Resolver) ResolveBatch(ctx context.Context, paths []string, progress ProgressFunc) ([]*models.ComicMetadata, error) {
	records := make([]*models.ComicMetadata, 0, len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("batch resolution interrupted", "resolved", len(records), "total", len(paths))
			return records, err
		}
		rec := r.Resolve(ctx, Input{Path: p})
		records = append(records, rec)
		r.logger.Debug("resolved file",
			"file", rec.OriginalFilename,
			"source", rec.Source,
			"folder", rec.SuggestedFolder)
		if progress != nil {
			progress(i, len(paths), rec)
		}
	}
	return records, nil
}
