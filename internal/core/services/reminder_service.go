package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/utils"
	"github.com/tamkeenlabs/facility_management_app/internal/utils/finance"
)

// logNotificationDispatcher is the default sink for reminder events: it writes
// the event as a structured log line. Real delivery channels (email, calendar)
// plug in behind the same NotificationDispatcher port.
type logNotificationDispatcher struct{}

// NewLogNotificationDispatcher creates a dispatcher that logs reminder events.
func NewLogNotificationDispatcher() portssvc.NotificationDispatcher {
	return &logNotificationDispatcher{}
}

func (d *logNotificationDispatcher) Dispatch(ctx context.Context, event domain.ReminderEvent) error {
	slog.Default().Info("loan reminder",
		slog.String("event_id", event.EventID),
		slog.String("organization_id", event.OrganizationID),
		slog.String("loan_id", event.LoanID),
		slog.String("reference_number", event.ReferenceNumber),
		slog.String("amount", event.Amount),
		slog.Time("due_date", event.DueDate),
		slog.String("urgency", string(event.Urgency)))
	return nil
}

// posthogNotificationDispatcher logs the reminder and mirrors it to posthog
// as an analytics event. When the posthog client is not configured the
// capture is a no-op and only the log line remains.
type posthogNotificationDispatcher struct {
	logNotificationDispatcher
	client *utils.PosthogClientWrapper
}

// NewPosthogNotificationDispatcher creates a dispatcher that logs reminder
// events and captures them in posthog.
func NewPosthogNotificationDispatcher(client *utils.PosthogClientWrapper) portssvc.NotificationDispatcher {
	return &posthogNotificationDispatcher{client: client}
}

func (d *posthogNotificationDispatcher) Dispatch(ctx context.Context, event domain.ReminderEvent) error {
	if err := d.logNotificationDispatcher.Dispatch(ctx, event); err != nil {
		return err
	}
	if d.client != nil {
		d.client.Enqueue(event.OrganizationID, "loan_reminder", map[string]any{
			"loan_id":          event.LoanID,
			"reference_number": event.ReferenceNumber,
			"amount":           event.Amount,
			"due_date":         event.DueDate,
			"urgency":          string(event.Urgency),
		})
	}
	return nil
}

// reminderService implements the ReminderSvcFacade interface
type reminderService struct {
	BaseService
	loanRepo         portsrepo.LoanRepositoryFacade
	facilityRepo     portsrepo.FacilityReader
	organizationRepo portsrepo.OrganizationReader
	dispatcher       portssvc.NotificationDispatcher
	horizonDays      int
}

// NewReminderService creates a new reminder service. Events are emitted for
// outstanding loans due within horizonDays (or already overdue).
func NewReminderService(
	loanRepo portsrepo.LoanRepositoryFacade,
	facilityRepo portsrepo.FacilityReader,
	organizationRepo portsrepo.OrganizationReader,
	dispatcher portssvc.NotificationDispatcher,
	horizonDays int,
) portssvc.ReminderSvcFacade {
	if horizonDays <= 0 {
		horizonDays = 15
	}
	if dispatcher == nil {
		dispatcher = NewLogNotificationDispatcher()
	}
	return &reminderService{
		loanRepo:         loanRepo,
		facilityRepo:     facilityRepo,
		organizationRepo: organizationRepo,
		dispatcher:       dispatcher,
		horizonDays:      horizonDays,
	}
}

var _ portssvc.ReminderSvcFacade = (*reminderService)(nil)

// SweepOrganization emits one reminder event per outstanding loan due within
// the horizon. Loans already past due are flipped from ACTIVE to OVERDUE as a
// side effect, so the status a reader sees matches the reminder it received.
func (s *reminderService) SweepOrganization(ctx context.Context, organizationID string) ([]domain.ReminderEvent, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, s.horizonDays)

	loans, err := s.loanRepo.ListLoansDueBefore(ctx, organizationID, cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans for reminder sweep", slog.String("organization_id", organizationID))
		return nil, err
	}

	bankByFacility := make(map[string]string)
	events := make([]domain.ReminderEvent, 0, len(loans))
	for _, loan := range loans {
		if !loan.IsOutstanding() {
			continue
		}

		if loan.Status == domain.LoanActive && loan.DueDate.Before(now) {
			loan.Status = domain.LoanOverdue
			loan.LastUpdatedAt = now
			loan.LastUpdatedBy = "system"
			if err := s.loanRepo.UpdateLoan(ctx, loan); err != nil {
				s.LogError(ctx, err, "Failed to mark loan overdue", slog.String("loan_id", loan.LoanID))
				// Still emit the reminder; the status flip retries next sweep
			}
		}

		bankID, ok := bankByFacility[loan.FacilityID]
		if !ok {
			facility, err := s.facilityRepo.FindFacilityByID(ctx, loan.FacilityID)
			if err != nil {
				s.LogError(ctx, err, "Failed to resolve facility for reminder", slog.String("facility_id", loan.FacilityID))
			} else {
				bankID = facility.BankID
			}
			bankByFacility[loan.FacilityID] = bankID
		}

		event := domain.ReminderEvent{
			EventID:         uuid.NewString(),
			OrganizationID:  organizationID,
			LoanID:          loan.LoanID,
			ReferenceNumber: loan.ReferenceNumber,
			BankID:          bankID,
			Amount:          utils.FormatSAR(loan.Amount),
			DueDate:         loan.DueDate,
			Urgency:         finance.ClassifyUrgency(loan.DueDate, now),
			EmittedAt:       now,
		}
		if err := s.dispatcher.Dispatch(ctx, event); err != nil {
			s.LogError(ctx, err, "Failed to dispatch reminder event", slog.String("loan_id", loan.LoanID))
			continue
		}
		events = append(events, event)
	}

	s.LogInfo(ctx, "Reminder sweep completed",
		slog.String("organization_id", organizationID),
		slog.Int("events", len(events)))
	return events, nil
}

// SweepAll runs SweepOrganization for every active organization and returns
// the total number of events emitted. Invoked by the cron scheduler.
func (s *reminderService) SweepAll(ctx context.Context) (int, error) {
	organizations, err := s.organizationRepo.ListActiveOrganizations(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations for reminder sweep")
		return 0, err
	}

	total := 0
	for _, org := range organizations {
		events, err := s.SweepOrganization(ctx, org.OrganizationID)
		if err != nil {
			// One broken organization must not stop the rest of the sweep
			s.LogError(ctx, err, "Reminder sweep failed for organization", slog.String("organization_id", org.OrganizationID))
			continue
		}
		total += len(events)
	}
	return total, nil
}
