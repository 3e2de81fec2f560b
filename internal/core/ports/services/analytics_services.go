package services

import (
	"context"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// AnalyticsSvcFacade exposes derived portfolio views. Every call recomputes
// from current persisted state; results are never cached here, so a settled
// or deleted loan is reflected immediately.
type AnalyticsSvcFacade interface {
	// BankExposures computes per-bank outstanding/limit/utilization, in bank
	// insertion order.
	BankExposures(ctx context.Context, organizationID string, userID string) ([]domain.BankExposure, error)

	// FacilityAvailability computes remaining headroom on each facility.
	FacilityAvailability(ctx context.Context, organizationID string, userID string) ([]domain.FacilityAvailability, error)

	// PortfolioSummary computes org-wide totals, LTV, and coverage.
	PortfolioSummary(ctx context.Context, organizationID string, userID string) (*domain.PortfolioSummary, error)

	// DueLoans lists outstanding loans due within the horizon, with urgency buckets.
	DueLoans(ctx context.Context, organizationID string, horizonDays int, userID string) ([]domain.DueLoan, error)
}
