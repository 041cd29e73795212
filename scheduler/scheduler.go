package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrUnknownJob is returned by Run for a name that was never registered.
var ErrUnknownJob = errors.New("scheduler: unknown job")

// TaskFn is the function signature for scheduled tasks.
type TaskFn func(ctx context.Context) error

// JobInfo describes a registered job.
type JobInfo struct {
	Name string    `json:"name"`
	Spec string    `json:"spec"`
	Next time.Time `json:"next"`
	Prev time.Time `json:"prev"`
}

type jobEntry struct {
	id   cron.EntryID
	spec string
	fn   TaskFn
}

// Scheduler runs named cron jobs.
type Scheduler struct {
	mu     sync.Mutex
	cron   *cron.Cron
	jobs   map[string]*jobEntry
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Scheduler. Jobs do not fire until Start is called.
func New(logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(),
		jobs:   make(map[string]*jobEntry),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers fn under name on a standard cron spec or a descriptor
// such as "@every 1h". If a job with the same name exists, it is replaced.
func (s *Scheduler) AddJob(name, spec string, fn TaskFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, func() { s.invoke(name, fn) })
	if err != nil {
		return fmt.Errorf("scheduler: job %q: %w", name, err)
	}
	if old, ok := s.jobs[name]; ok {
		s.cron.Remove(old.id)
	}
	s.jobs[name] = &jobEntry{id: id, spec: spec, fn: fn}
	s.logger.Info("scheduler job registered", zap.String("name", name), zap.String("spec", spec))
	return nil
}

// Remove unregisters a job by name.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.jobs[name]; ok {
		s.cron.Remove(entry.id)
		delete(s.jobs, name)
	}
}

// Run executes a registered job immediately on the caller's goroutine.
func (s *Scheduler) Run(ctx context.Context, name string) error {
	s.mu.Lock()
	entry, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.safeCall(ctx, name, entry.fn)
}

// List returns every registered job sorted by name.
func (s *Scheduler) List() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]JobInfo, 0, len(s.jobs))
	for name, entry := range s.jobs {
		e := s.cron.Entry(entry.id)
		out = append(out, JobInfo{Name: name, Spec: entry.spec, Next: e.Next, Prev: e.Prev})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Start begins firing jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for running jobs to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

func (s *Scheduler) invoke(name string, fn TaskFn) {
	start := time.Now()
	if err := s.safeCall(s.ctx, name, fn); err != nil {
		s.logger.Error("scheduler job failed", zap.String("name", name), zap.Error(err))
		return
	}
	s.logger.Debug("scheduler job done", zap.String("name", name), zap.Duration("took", time.Since(start)))
}

func (s *Scheduler) safeCall(ctx context.Context, name string, fn TaskFn) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduler job panicked", zap.String("name", name), zap.Any("recover", r))
			err = fmt.Errorf("scheduler: job %q panicked: %v", name, r)
		}
	}()
	return fn(ctx)
}
