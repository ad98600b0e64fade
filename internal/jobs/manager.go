package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/vrsandeep/comic-sorter/internal/config"
)

var (
	ErrJobRunning  = errors.New("a job is already running")
	ErrJobNotFound = errors.New("job not found")
)

// JobContext is an interface that provides the necessary dependencies for a job to run.
// The core.App struct will implement this interface.
type JobContext interface {
	Config() *config.Config
	Logger() *slog.Logger
	JobManager() *JobManager
}

// JobTask is the work behind a registered job. A returned error marks the
// run as failed.
type JobTask func(ctx context.Context, jc JobContext) error

type JobStatus struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"` // "idle", "running", "success", "failed"
	Message   string    `json:"message"`
	StartTime time.Time `json:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"`
}

type registeredJob struct {
	name string
	task JobTask
}

// JobManager runs registered jobs one at a time. Organizing the same inbox
// from two jobs at once would race on the same files.
type JobManager struct {
	mu      sync.Mutex
	jobs    map[string]registeredJob
	status  map[string]*JobStatus
	running bool
	rerun   map[string]bool
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewManager(logger *slog.Logger) *JobManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &JobManager{
		jobs:   make(map[string]registeredJob),
		status: make(map[string]*JobStatus),
		rerun:  make(map[string]bool),
		logger: logger,
	}
}

func (jm *JobManager) Register(id, name string, task JobTask) {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	jm.jobs[id] = registeredJob{name: name, task: task}
	jm.status[id] = &JobStatus{ID: id, Name: name, Status: "idle"}
}

// RunJob starts a job in the background. It fails with ErrJobRunning when
// any job is already running.
func (jm *JobManager) RunJob(ctx context.Context, id string, jc JobContext) error {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	if jm.running {
		return ErrJobRunning
	}
	return jm.startLocked(ctx, id, jc)
}

// Trigger starts a job like RunJob, but when another run is in progress it
// queues one more run of id to start as soon as the current one ends.
// Repeated triggers while busy collapse into a single queued run.
func (jm *JobManager) Trigger(ctx context.Context, id string, jc JobContext) error {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	if _, ok := jm.jobs[id]; !ok {
		return fmt.Errorf("job '%s': %w", id, ErrJobNotFound)
	}
	if jm.running {
		jm.rerun[id] = true
		return nil
	}
	return jm.startLocked(ctx, id, jc)
}

func (jm *JobManager) startLocked(ctx context.Context, id string, jc JobContext) error {
	job, ok := jm.jobs[id]
	if !ok {
		return fmt.Errorf("job '%s': %w", id, ErrJobNotFound)
	}

	jm.running = true
	status := jm.status[id]
	status.Status = "running"
	status.StartTime = time.Now()
	status.EndTime = time.Time{}
	status.Message = "Job started..."

	jm.logger.Info("starting job", "job", id)
	jm.wg.Add(1)
	// Run the actual task in a new goroutine so it doesn't block.
	go func() {
		defer jm.wg.Done()
		var taskErr error
		defer func() {
			// Ensure we always update the status and release the manager
			jm.mu.Lock()
			defer jm.mu.Unlock()
			if r := recover(); r != nil {
				jm.logger.Error("job panicked", "job", id, "panic", r)
				status.Status = "failed"
				status.Message = fmt.Sprintf("Job panicked: %v", r)
			} else if taskErr != nil {
				jm.logger.Error("job failed", "job", id, "error", taskErr)
				status.Status = "failed"
				status.Message = taskErr.Error()
			} else {
				status.Status = "success"
				status.Message = "Job completed successfully."
			}
			status.EndTime = time.Now()
			jm.running = false
			jm.logger.Info("finished job", "job", id, "status", status.Status)

			for next := range jm.rerun {
				delete(jm.rerun, next)
				if ctx.Err() != nil {
					continue
				}
				if err := jm.startLocked(ctx, next, jc); err != nil {
					jm.logger.Warn("queued job could not start", "job", next, "error", err)
				}
				break
			}
		}()

		taskErr = job.task(ctx, jc)
	}()
	return nil
}

// Wait blocks until no job is running, including queued reruns.
func (jm *JobManager) Wait() {
	jm.wg.Wait()
}

// GetStatus returns a snapshot of every registered job, ordered by ID.
func (jm *JobManager) GetStatus() []JobStatus {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	statuses := make([]JobStatus, 0, len(jm.status))
	for _, s := range jm.status {
		statuses = append(statuses, *s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses
}
