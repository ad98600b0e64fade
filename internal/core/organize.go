// This file wires the resolve, detect, plan and move stages into the
// organize pipeline.

package core

import (
	"context"
	"fmt"

	"github.com/vrsandeep/comic-sorter/internal/library"
	"github.com/vrsandeep/comic-sorter/internal/models"
	"github.com/vrsandeep/comic-sorter/internal/organizer"
	"github.com/vrsandeep/comic-sorter/internal/resolver"
	"github.com/vrsandeep/comic-sorter/internal/series"
	"github.com/vrsandeep/comic-sorter/internal/util"
)

// OrganizeOptions selects the inbox and output root of one run. Empty
// paths fall back to the configured library paths.
type OrganizeOptions struct {
	Input    string
	Output   string
	DryRun   bool
	Progress resolver.ProgressFunc
}

// OrganizeReport carries the intermediate results of a run along with the
// move summary.
type OrganizeReport struct {
	Records []*models.ComicMetadata `json:"records"`
	Groups  []models.SeriesGroup    `json:"groups"`
	Plan    []models.Assignment     `json:"plan"`
	Summary *models.BatchSummary    `json:"summary"`
}

func (a *App) withDefaults(opts OrganizeOptions) OrganizeOptions {
	if opts.Input == "" {
		opts.Input = a.config.Library.Input
	}
	if opts.Output == "" {
		opts.Output = a.config.Library.Output
	}
	return opts
}

// Organize resolves every comic file in the inbox, groups files the
// resolver could not place into detected series and moves them under the
// output root. The output root is locked for the duration of a real run.
func (a *App) Organize(ctx context.Context, opts OrganizeOptions) (*OrganizeReport, error) {
	opts = a.withDefaults(opts)

	files, err := library.Scan(opts.Input, true)
	if err != nil {
		return nil, err
	}
	report := &OrganizeReport{}
	if len(files) == 0 {
		a.logger.Info("inbox is empty", "input", opts.Input)
		report.Summary = &models.BatchSummary{Root: opts.Output, DryRun: opts.DryRun}
		return report, nil
	}

	mover := a.newMover(opts.Output, opts.DryRun)
	if !opts.DryRun {
		unlock, err := a.lockOutput(opts.Output)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	report.Records, err = a.resolver.ResolveBatch(ctx, files, opts.Progress)
	if err != nil {
		return report, err
	}
	report.Groups = a.detector.DetectWithMetadata(files, series.KnownSeries(report.Records))
	report.Plan = organizer.BuildPlan(report.Records, report.Groups)

	report.Summary, err = mover.Apply(ctx, report.Plan)
	return report, err
}

// ResolveFiles resolves the given files without moving anything.
func (a *App) ResolveFiles(ctx context.Context, paths []string, progress resolver.ProgressFunc) ([]*models.ComicMetadata, error) {
	return a.resolver.ResolveBatch(ctx, paths, progress)
}

// DetectSeries groups the comic files below input. With withMetadata set,
// files are resolved first and series names established from metadata
// take precedence over file names.
func (a *App) DetectSeries(ctx context.Context, input string, withMetadata bool) ([]models.SeriesGroup, error) {
	if input == "" {
		input = a.config.Library.Input
	}
	files, err := library.Scan(input, true)
	if err != nil {
		return nil, err
	}
	if !withMetadata {
		return a.detector.Detect(files), nil
	}
	records, err := a.resolver.ResolveBatch(ctx, files, nil)
	if err != nil {
		return nil, err
	}
	return a.detector.DetectWithMetadata(files, series.KnownSeries(records)), nil
}

func (a *App) newMover(root string, dryRun bool) *organizer.Mover {
	opts := organizer.MoverOptions{
		DryRun: dryRun,
		Logger: a.logger.With("component", "organizer"),
	}
	if a.store != nil {
		opts.Journal = a.store
	}
	return organizer.NewMover(root, opts)
}

// lockOutput makes sure root exists and takes its run lock.
func (a *App) lockOutput(root string) (func(), error) {
	if err := util.ValidateOutputRoot(root); err != nil {
		return nil, fmt.Errorf("output root: %w", err)
	}
	unlock, err := organizer.LockRoot(root)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := unlock(); err != nil {
			a.logger.Warn("failed to release root lock", "root", root, "error", err)
		}
	}, nil
}

