package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vrsandeep/comic-sorter/internal/models"
)

// UndoJournal is the part of the journal store needed to reverse a run.
type UndoJournal interface {
	LastRun() (*models.JournalRun, error)
	GetRun(runID string) (*models.JournalRun, error)
	MovesForRun(runID string) ([]models.JournalMove, error)
	MarkUndone(runID string) error
}

// Undo reverses the moves of the most recent run that has not been undone.
// See UndoRun.
func Undo(ctx context.Context, journal UndoJournal, logger *slog.Logger) (*models.BatchSummary, error) {
	run, err := journal.LastRun()
	if err != nil {
		return nil, err
	}
	return undoRun(ctx, journal, run, logger)
}

// UndoRun reverses the moves of one run, newest first. A file is put back
// only when its original path is free; otherwise that move fails and the
// file stays where it is. The run is marked undone once every move was
// attempted, even if some failed.
func UndoRun(ctx context.Context, journal UndoJournal, runID string, logger *slog.Logger) (*models.BatchSummary, error) {
	run, err := journal.GetRun(runID)
	if err != nil {
		return nil, err
	}
	if run.Undone {
		return nil, fmt.Errorf("run %s was already undone", runID)
	}
	return undoRun(ctx, journal, run, logger)
}

func undoRun(ctx context.Context, journal UndoJournal, run *models.JournalRun, logger *slog.Logger) (*models.BatchSummary, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	moves, err := journal.MovesForRun(run.ID)
	if err != nil {
		return nil, err
	}

	summary := &models.BatchSummary{RunID: run.ID, Root: run.Root, StartedAt: time.Now()}
	for i := len(moves) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			summary.FinishedAt = time.Now()
			return summary, err
		}
		mv := moves[i]
		result := models.MoveResult{Source: mv.Destination, Destination: mv.Source}
		if err := restore(mv); err != nil {
			result.Status = models.MoveStatusFailed
			result.Error = err.Error()
			logger.Warn("failed to undo move", "from", mv.Destination, "to", mv.Source, "error", err)
		} else {
			result.Status = models.MoveStatusMoved
		}
		summary.Results = append(summary.Results, result)
	}

	if err := journal.MarkUndone(run.ID); err != nil {
		return summary, err
	}
	if err := pruneEmptyDirs(run.Root); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to remove empty directories", "root", run.Root, "error", err)
	}
	summary.FinishedAt = time.Now()
	logger.Info("undo finished", "run", run.ID, "restored", summary.Counts()[models.MoveStatusMoved], "failed", len(summary.Failed()))
	return summary, nil
}

func restore(mv models.JournalMove) error {
	if _, err := os.Lstat(mv.Destination); err != nil {
		return err
	}
	if _, err := os.Lstat(mv.Source); err == nil {
		return fmt.Errorf("%s: %w", mv.Source, os.ErrExist)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(mv.Source), 0o755); err != nil {
		return err
	}
	return rename(mv.Destination, mv.Source)
}
