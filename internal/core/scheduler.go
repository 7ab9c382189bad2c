// ABOUTME: Cron-driven runner for periodic jobs such as library sync
// ABOUTME: Uses gronx to compute the next tick from a cron expression
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"github.com/harper/chambers/internal/logger"
)

// Job is one unit of scheduled work
type Job func(ctx context.Context) error

// Scheduler runs a Job on every tick of a cron expression
type Scheduler struct {
	expr       string
	job        Job
	runOnStart bool
	log        *logger.Logger
	now        func() time.Time
}

// NewScheduler validates expr and returns a Scheduler for job
func NewScheduler(expr string, job Job, runOnStart bool, log *logger.Logger) (*Scheduler, error) {
	if !gronx.New().IsValid(expr) {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, ErrInvalid)
	}
	return &Scheduler{
		expr:       expr,
		job:        job,
		runOnStart: runOnStart,
		log:        logger.OrNop(log).With("component", "scheduler"),
		now:        time.Now,
	}, nil
}

// Next returns the first tick strictly after ref
func (s *Scheduler) Next(ref time.Time) (time.Time, error) {
	return gronx.NextTickAfter(s.expr, ref, false)
}

// Run blocks until ctx is cancelled. Job errors are logged and do not stop
// the schedule.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.runOnStart {
		s.runJob(ctx)
	}

	for {
		next, err := s.Next(s.now())
		if err != nil {
			return fmt.Errorf("failed to compute next tick: %w", err)
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			s.runJob(ctx)
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context) {
	start := s.now()
	if err := s.job(ctx); err != nil {
		s.log.Error("scheduled job failed", "schedule", s.expr, "error", err)
		return
	}
	s.log.Debug("scheduled job finished", "schedule", s.expr, "took", time.Since(start))
}
