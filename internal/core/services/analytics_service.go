package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/utils/finance"
)

// analyticsService implements the AnalyticsSvcFacade interface. Every view is
// recomputed from current persisted state on each call; nothing is cached, so
// settled loans and revalued collateral are reflected immediately.
type analyticsService struct {
	BaseService
	bankRepo       portsrepo.BankReader
	facilityRepo   portsrepo.FacilityReader
	loanRepo       portsrepo.LoanReader
	collateralRepo portsrepo.CollateralReader
}

// AnalyticsServiceOption is a functional option for configuring the analytics service
type AnalyticsServiceOption func(*analyticsService)

// WithAnalyticsOrgAuthorizer adds the organization authorizer dependency
func WithAnalyticsOrgAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) AnalyticsServiceOption {
	return func(s *analyticsService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewAnalyticsService creates a new analytics service with the provided options
func NewAnalyticsService(
	bankRepo portsrepo.BankReader,
	facilityRepo portsrepo.FacilityReader,
	loanRepo portsrepo.LoanReader,
	collateralRepo portsrepo.CollateralReader,
	options ...AnalyticsServiceOption,
) portssvc.AnalyticsSvcFacade {
	svc := &analyticsService{
		bankRepo:       bankRepo,
		facilityRepo:   facilityRepo,
		loanRepo:       loanRepo,
		collateralRepo: collateralRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

// loadPortfolio reads the organization's banks, facilities, and loans in one place
// so the derived views all compute from a single consistent snapshot.
func (s *analyticsService) loadPortfolio(ctx context.Context, organizationID string) ([]domain.Bank, []domain.Facility, []domain.Loan, error) {
	banks, err := s.bankRepo.ListBanks(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list banks for analytics", slog.String("organization_id", organizationID))
		return nil, nil, nil, err
	}

	facilities, err := s.facilityRepo.ListFacilities(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list facilities for analytics", slog.String("organization_id", organizationID))
		return nil, nil, nil, err
	}

	var loans []domain.Loan
	nextToken := (*string)(nil)
	for {
		page, token, err := s.loanRepo.ListLoans(ctx, organizationID, nil, 500, nextToken)
		if err != nil {
			s.LogError(ctx, err, "Failed to list loans for analytics", slog.String("organization_id", organizationID))
			return nil, nil, nil, err
		}
		loans = append(loans, page...)
		if token == nil {
			break
		}
		nextToken = token
	}

	return banks, facilities, loans, nil
}

func (s *analyticsService) BankExposures(ctx context.Context, organizationID string, userID string) ([]domain.BankExposure, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	banks, facilities, loans, err := s.loadPortfolio(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return finance.ComputeBankExposures(banks, facilities, loans), nil
}

func (s *analyticsService) FacilityAvailability(ctx context.Context, organizationID string, userID string) ([]domain.FacilityAvailability, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	_, facilities, loans, err := s.loadPortfolio(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	loansByFacility := make(map[string][]domain.Loan, len(facilities))
	for _, loan := range loans {
		loansByFacility[loan.FacilityID] = append(loansByFacility[loan.FacilityID], loan)
	}

	result := make([]domain.FacilityAvailability, len(facilities))
	for i, facility := range facilities {
		result[i] = finance.ComputeFacilityAvailability(facility, loansByFacility[facility.FacilityID])
	}
	return result, nil
}

func (s *analyticsService) PortfolioSummary(ctx context.Context, organizationID string, userID string) (*domain.PortfolioSummary, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	banks, facilities, loans, err := s.loadPortfolio(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	collateral, err := s.collateralRepo.ListAssets(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list collateral for analytics", slog.String("organization_id", organizationID))
		return nil, err
	}

	exposures := finance.ComputeBankExposures(banks, facilities, loans)
	summary := finance.ComputePortfolioSummary(exposures, collateral)
	return &summary, nil
}

func (s *analyticsService) DueLoans(ctx context.Context, organizationID string, horizonDays int, userID string) ([]domain.DueLoan, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if horizonDays <= 0 {
		horizonDays = 30
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, horizonDays)
	loans, err := s.loanRepo.ListLoansDueBefore(ctx, organizationID, cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to list due loans", slog.String("organization_id", organizationID))
		return nil, err
	}

	result := make([]domain.DueLoan, 0, len(loans))
	for _, loan := range loans {
		if !loan.IsOutstanding() {
			continue
		}
		result = append(result, domain.DueLoan{
			Loan:         loan,
			DaysUntilDue: finance.DaysUntilDue(loan.DueDate, now),
			Urgency:      finance.ClassifyUrgency(loan.DueDate, now),
		})
	}
	return result, nil
}
