package organizer

import (
	"context"
	"path/filepath"

	"github.com/vrsandeep/comic-sorter/internal/library"
	"github.com/vrsandeep/comic-sorter/internal/models"
)

// Flatten moves every comic file found below the root's subdirectories into
// the root itself, then removes directories left empty. Name clashes get the
// usual " (n)" suffix.
func (m *Mover) Flatten(ctx context.Context) (*models.BatchSummary, error) {
	files, err := library.Scan(m.root, true)
	if err != nil {
		return nil, err
	}

	var plan []models.Assignment
	for _, f := range files {
		if filepath.Dir(f) == m.root {
			continue
		}
		plan = append(plan, models.Assignment{Source: f})
	}

	summary, err := m.Apply(ctx, plan)
	if err != nil || m.dryRun {
		return summary, err
	}
	if err := pruneEmptyDirs(m.root); err != nil {
		m.logger.Warn("failed to remove empty directories", "root", m.root, "error", err)
	}
	return summary, nil
}
