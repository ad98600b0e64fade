// Package organizer turns resolved metadata into destination folders and
// moves files into the publisher/series hierarchy without overwriting
// anything.
package organizer

import (
	"github.com/vrsandeep/comic-sorter/internal/models"
	"github.com/vrsandeep/comic-sorter/internal/series"
	"github.com/vrsandeep/comic-sorter/internal/util"
)

// BuildPlan decides the final folder of every record. A record whose series
// came from metadata keeps its suggested folder. A record whose series only
// echoes its file name, and that belongs to a detected series group, moves to
// "{publisher or Unsorted}/{group name}".
// Anything else keeps its suggested folder. Groups are keyed by record path,
// falling back to the original filename.
func BuildPlan(records []*models.ComicMetadata, groups []models.SeriesGroup) []models.Assignment {
	grouped := series.FileLookup(groups)

	plan := make([]models.Assignment, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		key := recordKey(rec)
		folder := rec.SuggestedFolder
		if series.NameDerived(rec) {
			if name, ok := grouped[key]; ok {
				publisher := rec.Publisher
				if publisher == "" {
					publisher = models.UnsortedPublisher
				}
				if f := util.JoinFolder(publisher, name); len(util.FolderSegments(f)) == 2 {
					folder = f
				}
			}
		}
		plan = append(plan, models.Assignment{Source: key, Folder: folder, Record: rec})
	}
	return plan
}

func recordKey(rec *models.ComicMetadata) string {
	if rec.Path != "" {
		return rec.Path
	}
	return rec.OriginalFilename
}
