// Package scheduler runs the overdue sweep on a cron schedule so
// acknowledgments transition to OVERDUE without waiting for an API call.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Sweeper is the engine operation the scheduler drives.
type Sweeper interface {
	SweepOverdue(ctx context.Context) (int, error)
}

// Scheduler manages the periodic overdue sweep using cron syntax.
type Scheduler struct {
	sweeper  Sweeper
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// New creates a sweep scheduler. An empty schedule disables it.
func New(sweeper Sweeper, schedule string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "ack.scheduler"),
	}
}

// Start begins the scheduled sweep. The scheduler stops itself when ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule overdue sweep: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("overdue sweep scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Scheduler) runSweep(ctx context.Context) {
	count, err := s.sweeper.SweepOverdue(ctx)
	if err != nil {
		s.logger.Error("scheduled overdue sweep failed", "error", err)
		return
	}
	if count > 0 {
		s.logger.Info("scheduled overdue sweep completed", "marked_overdue", count)
	} else {
		s.logger.Debug("scheduled overdue sweep completed, nothing past due")
	}
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("overdue sweep scheduler stopped")
	}
}
