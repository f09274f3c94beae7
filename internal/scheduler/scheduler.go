package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// ErrAlreadyRunning is returned by RunNow while another run is in progress.
var ErrAlreadyRunning = errors.New("job is already running")

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs a Job on cron schedules and on demand. At most one run is
// in progress at a time; a tick or RunNow that arrives during a run is skipped.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context

	job  Job
	name string

	running sync.Mutex
	active  sync.WaitGroup

	mu   sync.Mutex
	runs int
	last error
}

// NewScheduler creates a Scheduler whose cron specs carry a seconds field.
func NewScheduler(ctx context.Context, name string, job Job) *Scheduler {
	logger := cron.PrintfLogger(log.StandardLogger())
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		Ctx:  ctx,
		job:  job,
		name: name,
	}
}

// Register adds the job under spec, e.g. "0 30 22 * * 1-5".
func (s *Scheduler) Register(spec string) (cron.EntryID, error) {
	id, err := s.Cron.AddFunc(spec, func() { s.run() })
	if err != nil {
		return 0, fmt.Errorf("register %s task %q: %w", s.name, spec, err)
	}
	return id, nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	for _, e := range s.Cron.Entries() {
		log.Infof("scheduler started, next %s run at %s", s.name, e.Next.Format(time.RFC3339))
	}
}

// Stop stops the scheduler and waits for running jobs, including RunNow
// calls, to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.active.Wait()
	log.Info("scheduler stopped")
}

// RunNow executes the job immediately on the caller's goroutine. It returns
// ErrAlreadyRunning without running the job if a run is in progress.
func (s *Scheduler) RunNow() error {
	return s.run()
}

// Trigger starts a run in the background. Stop waits for it.
func (s *Scheduler) Trigger() {
	s.active.Add(1)
	go func() {
		defer s.active.Done()
		_ = s.run()
	}()
}

// Runs returns how many runs completed and the last run's error.
func (s *Scheduler) Runs() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs, s.last
}

func (s *Scheduler) run() error {
	s.active.Add(1)
	defer s.active.Done()

	if err := s.Ctx.Err(); err != nil {
		return err
	}
	if !s.running.TryLock() {
		log.Warnf("%s task still running, skipped", s.name)
		return ErrAlreadyRunning
	}
	defer s.running.Unlock()

	log.Infof("running %s task", s.name)
	err := s.job(s.Ctx)
	if err != nil {
		log.WithError(err).Errorf("%s task failed", s.name)
	}

	s.mu.Lock()
	s.runs++
	s.last = err
	s.mu.Unlock()
	return err
}
