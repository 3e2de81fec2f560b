package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
)

// facilityService implements the FacilitySvcFacade interface
type facilityService struct {
	BaseService
	facilityRepo portsrepo.FacilityRepositoryFacade
	bankRepo     portsrepo.BankReader
	loanRepo     portsrepo.LoanReader
}

// FacilityServiceOption is a functional option for configuring the facility service
type FacilityServiceOption func(*facilityService)

// WithFacilityOrgAuthorizer adds the organization authorizer dependency
func WithFacilityOrgAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) FacilityServiceOption {
	return func(s *facilityService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithFacilityBankReader adds the bank reader used to validate facility ownership
func WithFacilityBankReader(repo portsrepo.BankReader) FacilityServiceOption {
	return func(s *facilityService) {
		s.bankRepo = repo
	}
}

// WithFacilityLoanReader adds the loan reader used for deactivation guards
func WithFacilityLoanReader(repo portsrepo.LoanReader) FacilityServiceOption {
	return func(s *facilityService) {
		s.loanRepo = repo
	}
}

// NewFacilityService creates a new facility service with the provided options
func NewFacilityService(repo portsrepo.FacilityRepositoryFacade, options ...FacilityServiceOption) portssvc.FacilitySvcFacade {
	svc := &facilityService{
		facilityRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FacilitySvcFacade = (*facilityService)(nil)

func (s *facilityService) CreateFacility(ctx context.Context, organizationID string, req dto.CreateFacilityRequest, userID string) (*domain.Facility, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create facility",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	if !req.CreditLimit.IsPositive() {
		return nil, fmt.Errorf("%w: credit limit must be positive", apperrors.ErrValidation)
	}
	if req.CostOfFunding.IsNegative() {
		return nil, fmt.Errorf("%w: cost of funding cannot be negative", apperrors.ErrValidation)
	}
	if req.ExpiryDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: expiry date cannot precede start date", apperrors.ErrValidation)
	}

	// The granting bank must exist in this organization
	if s.bankRepo != nil {
		bank, err := s.bankRepo.FindBankByID(ctx, req.BankID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find granting bank", slog.String("bank_id", req.BankID))
			return nil, fmt.Errorf("invalid bank: %w", err)
		}
		if bank.OrganizationID != organizationID {
			return nil, fmt.Errorf("%w: bank belongs to a different organization", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	facility := domain.Facility{
		FacilityID:     uuid.NewString(),
		OrganizationID: organizationID,
		BankID:         req.BankID,
		FacilityType:   req.FacilityType,
		CreditLimit:    req.CreditLimit,
		CostOfFunding:  req.CostOfFunding,
		StartDate:      req.StartDate,
		ExpiryDate:     req.ExpiryDate,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.facilityRepo.SaveFacility(ctx, facility); err != nil {
		s.LogError(ctx, err, "Failed to save facility in repository", slog.String("facility_id", facility.FacilityID))
		return nil, err
	}

	s.LogInfo(ctx, "Facility created successfully", slog.String("facility_id", facility.FacilityID), slog.String("bank_id", req.BankID))
	return &facility, nil
}

func (s *facilityService) GetFacilityByID(ctx context.Context, organizationID string, facilityID string, userID string) (*domain.Facility, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	facility, err := s.facilityRepo.FindFacilityByID(ctx, facilityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find facility by ID in repository", slog.String("facility_id", facilityID))
		}
		return nil, err
	}
	if facility.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return facility, nil
}

func (s *facilityService) ListFacilities(ctx context.Context, organizationID string, userID string) ([]domain.Facility, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	facilities, err := s.facilityRepo.ListFacilities(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list facilities from repository", slog.String("organization_id", organizationID))
		return nil, err
	}
	if facilities == nil {
		return []domain.Facility{}, nil
	}
	return facilities, nil
}

func (s *facilityService) UpdateFacility(ctx context.Context, organizationID string, facilityID string, req dto.UpdateFacilityRequest, userID string) (*domain.Facility, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	facility, err := s.GetFacilityByID(ctx, organizationID, facilityID, userID)
	if err != nil {
		return nil, err
	}

	if req.CreditLimit != nil {
		if !req.CreditLimit.IsPositive() {
			return nil, fmt.Errorf("%w: credit limit must be positive", apperrors.ErrValidation)
		}
		facility.CreditLimit = *req.CreditLimit
	}
	if req.CostOfFunding != nil {
		if req.CostOfFunding.IsNegative() {
			return nil, fmt.Errorf("%w: cost of funding cannot be negative", apperrors.ErrValidation)
		}
		facility.CostOfFunding = *req.CostOfFunding
	}
	if req.ExpiryDate != nil {
		if req.ExpiryDate.Before(facility.StartDate) {
			return nil, fmt.Errorf("%w: expiry date cannot precede start date", apperrors.ErrValidation)
		}
		facility.ExpiryDate = *req.ExpiryDate
	}
	facility.LastUpdatedAt = time.Now()
	facility.LastUpdatedBy = userID

	if err := s.facilityRepo.UpdateFacility(ctx, *facility); err != nil {
		s.LogError(ctx, err, "Failed to update facility in repository", slog.String("facility_id", facilityID))
		return nil, err
	}

	s.LogInfo(ctx, "Facility updated successfully", slog.String("facility_id", facilityID))
	return facility, nil
}

func (s *facilityService) DeactivateFacility(ctx context.Context, organizationID string, facilityID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.GetFacilityByID(ctx, organizationID, facilityID, userID); err != nil {
		return err
	}

	// A facility with outstanding loans cannot be deactivated
	if s.loanRepo != nil {
		loans, err := s.loanRepo.ListLoansByFacility(ctx, facilityID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check facility loans before deactivation", slog.String("facility_id", facilityID))
			return fmt.Errorf("failed to check facility loans: %w", err)
		}
		for _, loan := range loans {
			if loan.IsOutstanding() {
				return fmt.Errorf("%w: facility has outstanding loans", apperrors.ErrValidation)
			}
		}
	}

	if err := s.facilityRepo.DeactivateFacility(ctx, facilityID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate facility in repository", slog.String("facility_id", facilityID))
		}
		return err
	}

	s.LogInfo(ctx, "Facility deactivated successfully", slog.String("facility_id", facilityID))
	return nil
}

func (s *facilityService) CreateCreditLine(ctx context.Context, organizationID string, facilityID string, req dto.CreateCreditLineRequest, userID string) (*domain.CreditLine, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	facility, err := s.GetFacilityByID(ctx, organizationID, facilityID, userID)
	if err != nil {
		return nil, err
	}

	if !req.CreditLimit.IsPositive() {
		return nil, fmt.Errorf("%w: credit line limit must be positive", apperrors.ErrValidation)
	}

	// Sibling limits plus the new line must fit inside the facility limit
	siblings, err := s.facilityRepo.ListCreditLines(ctx, facilityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sibling credit lines", slog.String("facility_id", facilityID))
		return nil, fmt.Errorf("failed to list credit lines: %w", err)
	}
	allocated := decimal.Zero
	for _, line := range siblings {
		if line.IsActive {
			allocated = allocated.Add(line.CreditLimit)
		}
	}
	if allocated.Add(req.CreditLimit).GreaterThan(facility.CreditLimit) {
		return nil, fmt.Errorf("%w: credit line limits exceed facility limit", apperrors.ErrValidation)
	}

	now := time.Now()
	line := domain.CreditLine{
		CreditLineID:   uuid.NewString(),
		OrganizationID: organizationID,
		FacilityID:     facilityID,
		Name:           req.Name,
		CreditLimit:    req.CreditLimit,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.facilityRepo.SaveCreditLine(ctx, line); err != nil {
		s.LogError(ctx, err, "Failed to save credit line in repository", slog.String("credit_line_id", line.CreditLineID))
		return nil, err
	}

	s.LogInfo(ctx, "Credit line created successfully", slog.String("credit_line_id", line.CreditLineID), slog.String("facility_id", facilityID))
	return &line, nil
}

func (s *facilityService) ListCreditLines(ctx context.Context, organizationID string, facilityID string, userID string) ([]domain.CreditLine, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if _, err := s.GetFacilityByID(ctx, organizationID, facilityID, userID); err != nil {
		return nil, err
	}

	lines, err := s.facilityRepo.ListCreditLines(ctx, facilityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credit lines from repository", slog.String("facility_id", facilityID))
		return nil, err
	}
	if lines == nil {
		return []domain.CreditLine{}, nil
	}
	return lines, nil
}

func (s *facilityService) DeactivateCreditLine(ctx context.Context, organizationID string, creditLineID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	line, err := s.facilityRepo.FindCreditLineByID(ctx, creditLineID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find credit line by ID", slog.String("credit_line_id", creditLineID))
		}
		return err
	}
	if line.OrganizationID != organizationID {
		return apperrors.ErrNotFound
	}

	if err := s.facilityRepo.DeactivateCreditLine(ctx, creditLineID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate credit line in repository", slog.String("credit_line_id", creditLineID))
		}
		return err
	}

	s.LogInfo(ctx, "Credit line deactivated successfully", slog.String("credit_line_id", creditLineID))
	return nil
}
