package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
)

// InboxSweepJobID organizes whatever is sitting in the inbox.
const InboxSweepJobID = "inbox-sweep"

// StartJobs starts the background job scheduler. It returns nil when no
// job is scheduled; otherwise the caller stops the returned scheduler on
// shutdown.
func StartJobs(ctx context.Context, app JobContext) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	if !startInboxSweepJob(ctx, s, app) {
		return nil
	}

	app.Logger().Info("starting background job scheduler")
	s.StartAsync()
	return s
}

func startInboxSweepJob(ctx context.Context, s *gocron.Scheduler, app JobContext) bool {
	logger := app.Logger()
	interval := app.Config().Watch.ScanInterval
	if interval == 0 {
		logger.Info("inbox sweep interval is 0, scheduled sweep is disabled")
		return false
	}

	logger.Info("scheduling job", "job", InboxSweepJobID, "every_minutes", interval)
	_, err := s.Every(interval).Minutes().Do(func() {
		logger.Debug("scheduler is triggering job", "job", InboxSweepJobID)
		// Submit the job to the manager instead of running it directly.
		// This prevents conflicts with watcher triggered runs.
		err := app.JobManager().RunJob(ctx, InboxSweepJobID, app)
		if errors.Is(err, ErrJobRunning) {
			logger.Debug("scheduled job skipped, another job is running", "job", InboxSweepJobID)
		} else if err != nil {
			logger.Warn("scheduled job could not start", "job", InboxSweepJobID, "error", err)
		}
	})
	if err != nil {
		logger.Error("error scheduling job", "job", InboxSweepJobID, "error", err)
		return false
	}
	return true
}
