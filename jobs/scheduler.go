// Package jobs runs the bot's scheduled jobs: Twitch notifications, scheduled tasks, and housekeeping.
package jobs

import (
	"context"
	"sync"
	"time"

	"emperror.dev/errors"
	"go.uber.org/zap"
)

// Func is a scheduled job.
type Func func(ctx context.Context) error

// Scheduler runs jobs on fixed intervals until its context is cancelled.
type Scheduler struct {
	ctx context.Context
	log *zap.SugaredLogger
	wg  sync.WaitGroup

	mu   sync.Mutex
	jobs []string
}

// NewScheduler returns a Scheduler. Jobs stop when ctx is cancelled.
func NewScheduler(ctx context.Context, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		ctx: ctx,
		log: log,
	}
}

// Every runs fn every interval, starting one interval from now.
// A job never overlaps with itself; a run that takes longer than interval delays the next one.
func (s *Scheduler) Every(name string, interval time.Duration, fn Func) {
	s.mu.Lock()
	s.jobs = append(s.jobs, name)
	s.mu.Unlock()

	s.log.Debugf("Scheduling job %v every %v", name, interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
			}

			err := s.run(name, fn)
			if err != nil {
				s.log.Errorf("running job %v: %v", name, err)
			}
		}
	}()
}

// run runs a single job, turning panics into errors.
func (s *Scheduler) run(name string, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("job %v panicked: %v", name, r)
		}
	}()

	return fn(s.ctx)
}

// Jobs returns the names of all scheduled jobs.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.jobs...)
}

// Wait blocks until every job has stopped.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
