// This file holds the library maintenance operations that work on an
// already organized output root.

package core

import (
	"context"
	"fmt"

	"github.com/vrsandeep/comic-sorter/internal/filters"
	"github.com/vrsandeep/comic-sorter/internal/library"
	"github.com/vrsandeep/comic-sorter/internal/models"
	"github.com/vrsandeep/comic-sorter/internal/organizer"
	"github.com/vrsandeep/comic-sorter/internal/series"
)

// ConsolidateReport lists near-duplicate series folders and series hiding
// inside other folders.
type ConsolidateReport struct {
	Root   string                `json:"root"`
	Merges []series.FolderMerge  `json:"merges"`
	Hidden []series.HiddenSeries `json:"hidden"`
}

// Consolidate inspects root, the configured output when empty, and
// suggests folder merges.
func (a *App) Consolidate(root string) (*ConsolidateReport, error) {
	if root == "" {
		root = a.config.Library.Output
	}
	contents, err := a.newMover(root, true).FolderContents()
	if err != nil {
		return nil, err
	}
	threshold := a.config.Series.ConsolidateThreshold
	return &ConsolidateReport{
		Root:   root,
		Merges: series.ConsolidateFolders(organizer.Folders(contents), threshold),
		Hidden: a.detector.FindHiddenSeries(contents, threshold),
	}, nil
}

// ApplyConsolidation carries out every suggestion of a report, merges
// first. Results of all moves are collected into one summary.
func (a *App) ApplyConsolidation(ctx context.Context, report *ConsolidateReport, dryRun bool) (*models.BatchSummary, error) {
	if !dryRun {
		unlock, err := a.lockOutput(report.Root)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	mover := a.newMover(report.Root, dryRun)
	total := &models.BatchSummary{Root: mover.Root(), DryRun: dryRun}
	collect := func(s *models.BatchSummary, err error) error {
		if s != nil {
			if total.StartedAt.IsZero() {
				total.StartedAt = s.StartedAt
			}
			total.FinishedAt = s.FinishedAt
			total.Results = append(total.Results, s.Results...)
		}
		return err
	}

	for _, m := range report.Merges {
		if err := collect(mover.MergeFolders(ctx, m)); err != nil {
			return total, fmt.Errorf("merge into %s: %w", m.Target, err)
		}
	}
	for _, h := range report.Hidden {
		if err := collect(mover.ExtractHiddenSeries(ctx, h)); err != nil {
			return total, fmt.Errorf("extract series from %s: %w", h.Folder, err)
		}
	}
	return total, nil
}

// Filter sorts the inbox with the manual filter tree from filters.path.
// Files no filter matches stay where they are.
func (a *App) Filter(ctx context.Context, opts OrganizeOptions) (*models.BatchSummary, error) {
	opts = a.withDefaults(opts)
	set, err := filters.Load(a.config.Filters.Path)
	if err != nil {
		return nil, err
	}
	files, err := library.Scan(opts.Input, true)
	if err != nil {
		return nil, err
	}

	assigned := set.Assign(files)
	plan := make([]models.Assignment, 0, len(assigned))
	for _, f := range files {
		if folder, ok := assigned[f]; ok {
			plan = append(plan, models.Assignment{Source: f, Folder: folder})
		}
	}
	a.logger.Info("manual filters matched", "files", len(files), "matched", len(plan))

	if !opts.DryRun {
		unlock, err := a.lockOutput(opts.Output)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}
	return a.newMover(opts.Output, opts.DryRun).Apply(ctx, plan)
}

// Flatten pulls every comic file below root up into root itself.
func (a *App) Flatten(ctx context.Context, root string, dryRun bool) (*models.BatchSummary, error) {
	if root == "" {
		root = a.config.Library.Input
	}
	if !dryRun {
		unlock, err := a.lockOutput(root)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}
	return a.newMover(root, dryRun).Flatten(ctx)
}

// Undo reverses the given run, or the most recent one when runID is empty.
func (a *App) Undo(ctx context.Context, runID string) (*models.BatchSummary, error) {
	st, err := a.Store()
	if err != nil {
		return nil, err
	}
	logger := a.logger.With("component", "organizer")
	if runID == "" {
		return organizer.Undo(ctx, st, logger)
	}
	return organizer.UndoRun(ctx, st, runID, logger)
}

// Runs lists recent journal runs, newest first.
func (a *App) Runs(limit int) ([]*models.JournalRun, error) {
	st, err := a.Store()
	if err != nil {
		return nil, err
	}
	return st.ListRuns(limit)
}
