package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vrsandeep/comic-sorter/internal/models"
	"github.com/vrsandeep/comic-sorter/internal/util"
)

// Journal records completed moves so that a run can be undone.
type Journal interface {
	BeginRun(root string, dryRun bool) (*models.JournalRun, error)
	RecordMove(runID, source, destination string) error
	FinishRun(runID string) error
}

// MoverOptions configures a Mover.
type MoverOptions struct {
	DryRun  bool
	Journal Journal
	Logger  *slog.Logger
}

// Mover applies plans below an output root.
type Mover struct {
	root    string
	dryRun  bool
	journal Journal
	logger  *slog.Logger
	now     func() time.Time
}

// NewMover creates a mover for root.
func NewMover(root string, opts MoverOptions) *Mover {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Mover{
		root:    filepath.Clean(root),
		dryRun:  opts.DryRun,
		journal: opts.Journal,
		logger:  opts.Logger,
		now:     time.Now,
	}
}

// Root returns the output root.
func (m *Mover) Root() string {
	return m.root
}

// DryRun reports whether the mover only plans.
func (m *Mover) DryRun() bool {
	return m.dryRun
}

// Apply moves every assignment to <root>/<folder>/<filename>. A taken
// destination gets a " (n)" suffix. Per-file failures are reported in the
// summary and do not stop the batch; an error is returned only for an
// unusable root, a journal failure at the start, or cancellation.
func (m *Mover) Apply(ctx context.Context, plan []models.Assignment) (*models.BatchSummary, error) {
	summary := &models.BatchSummary{Root: m.root, DryRun: m.dryRun, StartedAt: m.now()}
	defer func() { summary.FinishedAt = m.now() }()

	if !m.dryRun {
		if err := util.ValidateOutputRoot(m.root); err != nil {
			return summary, err
		}
	}

	var runID string
	if m.journal != nil && !m.dryRun && len(plan) > 0 {
		run, err := m.journal.BeginRun(m.root, m.dryRun)
		if err != nil {
			return summary, err
		}
		runID = run.ID
		summary.RunID = runID
		defer func() {
			if err := m.journal.FinishRun(runID); err != nil {
				m.logger.Warn("failed to close journal run", "run", runID, "error", err)
			}
		}()
	}

	reserved := make(map[string]bool)
	for _, a := range plan {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result := m.moveOne(a, runID, reserved)
		summary.Results = append(summary.Results, result)
	}

	counts := summary.Counts()
	m.logger.Info("organize batch finished",
		"root", m.root,
		"dry_run", m.dryRun,
		"moved", counts[models.MoveStatusMoved]+counts[models.MoveStatusRenamed],
		"failed", counts[models.MoveStatusFailed])
	return summary, nil
}

func (m *Mover) moveOne(a models.Assignment, runID string, reserved map[string]bool) models.MoveResult {
	result := models.MoveResult{Source: a.Source}
	fail := func(err error) models.MoveResult {
		result.Status = models.MoveStatusFailed
		result.Error = err.Error()
		m.logger.Warn("failed to move file", "source", a.Source, "folder", a.Folder, "error", err)
		return result
	}

	info, err := os.Stat(a.Source)
	if err != nil {
		return fail(err)
	}
	if !info.Mode().IsRegular() {
		return fail(fmt.Errorf("%s is not a regular file", a.Source))
	}

	dir := m.root
	if segs := util.FolderSegments(a.Folder); len(segs) > 0 {
		dir = filepath.Join(append([]string{m.root}, segs...)...)
	}
	name := filepath.Base(a.Source)

	dest, err := freeDestination(a.Source, dir, name, reserved)
	if err != nil {
		return fail(err)
	}
	result.Destination = dest
	reserved[dest] = true

	switch {
	case samePath(a.Source, dest):
		result.Status = models.MoveStatusUnchanged
		return result
	case m.dryRun:
		result.Status = models.MoveStatusPlanned
		return result
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(err)
	}
	if err := rename(a.Source, dest); err != nil {
		return fail(err)
	}

	result.Status = models.MoveStatusMoved
	if filepath.Base(dest) != name {
		result.Status = models.MoveStatusRenamed
	}
	if runID != "" {
		if err := m.journal.RecordMove(runID, a.Source, dest); err != nil {
			// The file has moved; only the undo record is missing.
			m.logger.Warn("failed to journal move", "source", a.Source, "destination", dest, "error", err)
		}
	}
	m.logger.Debug("moved file", "source", a.Source, "destination", dest)
	return result
}
