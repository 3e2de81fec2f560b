// Package scheduler runs periodic background jobs. The only job today is the
// due-loan reminder sweep.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
)

// ReminderScheduler triggers the reminder sweep on a cron cadence.
type ReminderScheduler struct {
	cron        *cron.Cron
	reminderSvc portssvc.ReminderSvcFacade
	logger      *slog.Logger
}

// NewReminderScheduler wires the sweep job onto the given cron spec.
// The spec uses standard 5-field cron syntax (minute granularity).
func NewReminderScheduler(reminderSvc portssvc.ReminderSvcFacade, cronSpec string, logger *slog.Logger) (*ReminderScheduler, error) {
	s := &ReminderScheduler{
		cron:        cron.New(),
		reminderSvc: reminderSvc,
		logger:      logger,
	}

	_, err := s.cron.AddFunc(cronSpec, s.runSweep)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the scheduler in its own goroutine.
func (s *ReminderScheduler) Start() {
	s.cron.Start()
	s.logger.Info("Reminder scheduler started")
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *ReminderScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Reminder scheduler stopped")
}

func (s *ReminderScheduler) runSweep() {
	// A sweep walks every organization's loan book; cap it so a wedged
	// database cannot pile up overlapping runs.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	dispatched, err := s.reminderSvc.SweepAll(ctx)
	if err != nil {
		s.logger.Error("Reminder sweep failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Reminder sweep completed",
		slog.Int("events_dispatched", dispatched),
		slog.Duration("took", time.Since(start)),
	)
}
