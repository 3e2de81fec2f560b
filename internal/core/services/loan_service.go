package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
	"github.com/tamkeenlabs/facility_management_app/internal/utils/finance"
)

// loanService implements the LoanSvcFacade interface
type loanService struct {
	BaseService
	loanRepo     portsrepo.LoanRepositoryFacade
	facilityRepo portsrepo.FacilityReader
}

// LoanServiceOption is a functional option for configuring the loan service
type LoanServiceOption func(*loanService)

// WithLoanOrgAuthorizer adds the organization authorizer dependency
func WithLoanOrgAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) LoanServiceOption {
	return func(s *loanService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithLoanFacilityReader adds the facility reader used to validate drawdown targets
func WithLoanFacilityReader(repo portsrepo.FacilityReader) LoanServiceOption {
	return func(s *loanService) {
		s.facilityRepo = repo
	}
}

// NewLoanService creates a new loan service with the provided options
func NewLoanService(repo portsrepo.LoanRepositoryFacade, options ...LoanServiceOption) portssvc.LoanSvcFacade {
	svc := &loanService{
		loanRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) CreateLoan(ctx context.Context, organizationID string, req dto.CreateLoanRequest, userID string) (*domain.Loan, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create loan",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: loan amount must be positive", apperrors.ErrValidation)
	}
	if req.SiborRate.IsNegative() || req.BankRate.IsNegative() {
		return nil, fmt.Errorf("%w: rates cannot be negative", apperrors.ErrValidation)
	}
	if req.InterestAmount.IsNegative() || req.FeesAmount.IsNegative() {
		return nil, fmt.Errorf("%w: opening interest and fees cannot be negative", apperrors.ErrValidation)
	}
	if req.DueDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: due date cannot precede start date", apperrors.ErrValidation)
	}

	// Drawdown target must be an active facility in this organization
	facility, err := s.facilityRepo.FindFacilityByID(ctx, req.FacilityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find facility for loan", slog.String("facility_id", req.FacilityID))
		return nil, fmt.Errorf("invalid facility: %w", err)
	}
	if facility.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	if !facility.IsActive {
		return nil, fmt.Errorf("%w: facility is inactive", apperrors.ErrValidation)
	}

	creditLineID := ""
	if req.CreditLineID != nil && *req.CreditLineID != "" {
		line, err := s.facilityRepo.FindCreditLineByID(ctx, *req.CreditLineID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find credit line for loan", slog.String("credit_line_id", *req.CreditLineID))
			return nil, fmt.Errorf("invalid credit line: %w", err)
		}
		if line.FacilityID != req.FacilityID {
			return nil, fmt.Errorf("%w: credit line belongs to a different facility", apperrors.ErrValidation)
		}
		if !line.IsActive {
			return nil, fmt.Errorf("%w: credit line is inactive", apperrors.ErrValidation)
		}
		creditLineID = line.CreditLineID
	}

	// Reference numbers are unique per organization
	if _, err := s.loanRepo.FindLoanByReference(ctx, organizationID, req.ReferenceNumber); err == nil {
		return nil, fmt.Errorf("%w: reference number %s already in use", apperrors.ErrDuplicate, req.ReferenceNumber)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check reference number uniqueness", slog.String("reference_number", req.ReferenceNumber))
		return nil, fmt.Errorf("failed to check reference number: %w", err)
	}

	now := time.Now()
	loan := domain.Loan{
		LoanID:          uuid.NewString(),
		OrganizationID:  organizationID,
		FacilityID:      req.FacilityID,
		CreditLineID:    creditLineID,
		ReferenceNumber: req.ReferenceNumber,
		Amount:          req.Amount,
		SiborRate:       req.SiborRate,
		BankRate:        req.BankRate,
		StartDate:       req.StartDate,
		DueDate:         req.DueDate,
		Status:          domain.LoanActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	opening := finance.LoanBalance{
		Principal: req.Amount,
		Interest:  req.InterestAmount,
		Fees:      req.FeesAmount,
	}

	if err := s.loanRepo.SaveLoan(ctx, loan, opening); err != nil {
		s.LogError(ctx, err, "Failed to save loan in repository", slog.String("loan_id", loan.LoanID))
		return nil, err
	}

	s.LogInfo(ctx, "Loan created successfully",
		slog.String("loan_id", loan.LoanID),
		slog.String("facility_id", req.FacilityID),
		slog.String("reference_number", req.ReferenceNumber))
	return &loan, nil
}

func (s *loanService) GetLoanByID(ctx context.Context, organizationID string, loanID string, userID string) (*domain.Loan, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find loan by ID in repository", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	if loan.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	markOverdue(loan)
	return loan, nil
}

// markOverdue flips an active loan past its due date to OVERDUE in the
// returned view. The persisted status catches up on the next reminder sweep.
func markOverdue(loan *domain.Loan) {
	if loan.Status == domain.LoanActive && loan.DueDate.Before(time.Now()) {
		loan.Status = domain.LoanOverdue
	}
}

func (s *loanService) ListLoans(ctx context.Context, organizationID string, params dto.ListLoansParams, userID string) ([]domain.Loan, *string, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	loans, nextToken, err := s.loanRepo.ListLoans(ctx, organizationID, params.Status, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans from repository", slog.String("organization_id", organizationID))
		return nil, nil, err
	}
	if loans == nil {
		loans = []domain.Loan{}
	}
	for i := range loans {
		markOverdue(&loans[i])
	}
	return loans, nextToken, nil
}

// RevolveLoan rolls a loan into a new period. The SIBOR rate resets, the dates
// move, and the reference number and amount carry over unchanged. An overdue
// loan returns to ACTIVE when revolved.
func (s *loanService) RevolveLoan(ctx context.Context, organizationID string, loanID string, req dto.RevolveLoanRequest, userID string) (*domain.Loan, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	loan, err := s.GetLoanByID(ctx, organizationID, loanID, userID)
	if err != nil {
		return nil, err
	}

	if !loan.IsOutstanding() {
		return nil, fmt.Errorf("%w: only active or overdue loans can be revolved", apperrors.ErrValidation)
	}
	if req.SiborRate.IsNegative() {
		return nil, fmt.Errorf("%w: SIBOR rate cannot be negative", apperrors.ErrValidation)
	}
	if req.DueDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: due date cannot precede start date", apperrors.ErrValidation)
	}

	loan.SiborRate = req.SiborRate
	loan.StartDate = req.StartDate
	loan.DueDate = req.DueDate
	loan.Status = domain.LoanActive
	loan.LastUpdatedAt = time.Now()
	loan.LastUpdatedBy = userID

	if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
		s.LogError(ctx, err, "Failed to revolve loan in repository", slog.String("loan_id", loanID))
		return nil, err
	}

	s.LogInfo(ctx, "Loan revolved successfully",
		slog.String("loan_id", loanID),
		slog.Time("new_due_date", req.DueDate))
	return loan, nil
}

func (s *loanService) SettleLoan(ctx context.Context, organizationID string, loanID string, req dto.SettleLoanRequest, userID string) (*domain.Loan, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	loan, err := s.GetLoanByID(ctx, organizationID, loanID, userID)
	if err != nil {
		return nil, err
	}

	if !loan.IsOutstanding() {
		return nil, fmt.Errorf("%w: only active or overdue loans can be settled", apperrors.ErrValidation)
	}
	if req.SettledAmount.IsNegative() {
		return nil, fmt.Errorf("%w: settled amount cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	settledDate := now
	if req.SettledDate != nil {
		settledDate = *req.SettledDate
	}

	if err := s.loanRepo.MarkLoanSettled(ctx, loanID, req.SettledAmount, settledDate, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark loan settled in repository", slog.String("loan_id", loanID))
		return nil, err
	}

	loan.Status = domain.LoanSettled
	loan.SettledAmount = &req.SettledAmount
	loan.SettledDate = &settledDate
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = userID

	s.LogInfo(ctx, "Loan settled successfully", slog.String("loan_id", loanID))
	return loan, nil
}

func (s *loanService) CancelLoan(ctx context.Context, organizationID string, loanID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	loan, err := s.GetLoanByID(ctx, organizationID, loanID, userID)
	if err != nil {
		return err
	}

	if !loan.IsOutstanding() {
		return fmt.Errorf("%w: only active or overdue loans can be cancelled", apperrors.ErrValidation)
	}

	if err := s.loanRepo.MarkLoanCancelled(ctx, loanID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to mark loan cancelled in repository", slog.String("loan_id", loanID))
		return err
	}

	s.LogInfo(ctx, "Loan cancelled successfully", slog.String("loan_id", loanID))
	return nil
}
