package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultJobTimeout bounds a single run of a scheduled job
const DefaultJobTimeout = 2 * time.Hour

// ErrJobRunning is returned when a job is started while a previous run of it
// has not finished
var ErrJobRunning = errors.New("job is already running")

// Job represents a scheduled job
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// RunResult records the outcome of the latest run of a job
type RunResult struct {
	StartedAt time.Time
	Duration  time.Duration
	Err       error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron      *cron.Cron
	timeout   time.Duration
	mu        sync.Mutex
	jobs      map[string]Job
	running   map[string]bool
	results   map[string]RunResult
	isRunning bool
}

// NewScheduler creates a scheduler whose cron specs include a seconds field.
// A zero timeout means DefaultJobTimeout.
func NewScheduler(timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cron.VerbosePrintfLogger(log.Default())),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger), cron.Recover(cron.DefaultLogger)),
		),
		timeout: timeout,
		jobs:    make(map[string]Job),
		running: make(map[string]bool),
		results: make(map[string]RunResult),
	}
}

// AddJob adds a job to the scheduler with a cron specification
func (s *Scheduler) AddJob(spec string, job Job) error {
	name := job.Name()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	_, err := s.cron.AddFunc(spec, func() {
		log.Printf("Starting scheduled job: %s", name)
		if err := s.run(job); errors.Is(err, ErrJobRunning) {
			log.Printf("Skipping job %s: previous run still in progress", name)
		} else if err != nil {
			log.Printf("Error running job %s: %v", name, err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}

	s.jobs[name] = job
	return nil
}

// run executes job unless another run of it, scheduled or manual, is in
// progress
func (s *Scheduler) run(job Job) error {
	name := job.Name()

	s.mu.Lock()
	if s.running[name] {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", name, ErrJobRunning)
	}
	s.running[name] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.running, name)
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	err := job.Run(ctx)
	duration := time.Since(start)

	s.mu.Lock()
	s.results[name] = RunResult{StartedAt: start, Duration: duration, Err: err}
	s.mu.Unlock()

	if err == nil {
		log.Printf("Completed job %s in %s", name, duration)
	}
	return err
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
	log.Println("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

// RunJobNow runs a job immediately outside of schedule. It returns
// ErrJobRunning if the job is already running.
func (s *Scheduler) RunJobNow(name string) error {
	s.mu.Lock()
	job, exists := s.jobs[name]
	s.mu.Unlock()
	if !exists {
		return fmt.Errorf("job %s not registered", name)
	}

	log.Printf("Manually running job: %s", name)
	return s.run(job)
}

// LastResult returns the outcome of the latest run of a job
func (s *Scheduler) LastResult(name string) (RunResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[name]
	return result, ok
}
