// This file runs the long-lived inbox watcher and the scheduled sweep.

package core

import (
	"context"
	"errors"

	"github.com/vrsandeep/comic-sorter/internal/jobs"
	"github.com/vrsandeep/comic-sorter/internal/library"
)

func (a *App) registerJobs() {
	a.jobManager.Register(jobs.InboxSweepJobID, "Inbox sweep", func(ctx context.Context, jc jobs.JobContext) error {
		cfg := jc.Config()
		report, err := a.Organize(ctx, OrganizeOptions{
			Input:  cfg.Library.Input,
			Output: cfg.Library.Output,
			DryRun: cfg.DryRun,
		})
		if err != nil {
			return err
		}
		if failed := report.Summary.Failed(); len(failed) > 0 {
			jc.Logger().Warn("inbox sweep left files behind", "failed", len(failed))
		}
		return nil
	})
}

// Watch organizes the inbox once, then again whenever new files settle in
// it and on the configured sweep interval, until ctx is canceled.
func (a *App) Watch(ctx context.Context) error {
	input := a.config.Library.Input
	trigger := func() {
		if err := a.jobManager.Trigger(ctx, jobs.InboxSweepJobID, a); err != nil {
			a.logger.Warn("could not start inbox sweep", "error", err)
		}
	}

	watcher := library.NewWatcher(input, a.config.DebounceDelay(), a.logger.With("component", "watcher"), func(paths []string) {
		a.logger.Info("new files in inbox", "count", len(paths))
		trigger()
	})
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	scheduler := jobs.StartJobs(ctx, a)
	if scheduler == nil {
		// The scheduler runs an initial sweep itself.
		trigger()
	}

	a.logger.Info("watching inbox", "input", input, "output", a.config.Library.Output)
	<-ctx.Done()

	if scheduler != nil {
		scheduler.Stop()
	}
	a.jobManager.Wait()
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}
