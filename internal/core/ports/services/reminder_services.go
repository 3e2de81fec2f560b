package services

import (
	"context"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// NotificationDispatcher is the boundary to notification senders. The core
// emits structured events; formatting and delivery (email, calendar invites)
// live outside this codebase.
type NotificationDispatcher interface {
	// Dispatch hands a reminder event to the configured sink.
	Dispatch(ctx context.Context, event domain.ReminderEvent) error
}

// ReminderSvcFacade computes due-loan reminders and emits them as events.
type ReminderSvcFacade interface {
	// SweepOrganization classifies every outstanding loan of an organization
	// and dispatches one event per loan due within the reminder horizon.
	SweepOrganization(ctx context.Context, organizationID string) ([]domain.ReminderEvent, error)

	// SweepAll runs SweepOrganization for every active organization. Invoked
	// by the cron scheduler.
	SweepAll(ctx context.Context) (int, error)
}
