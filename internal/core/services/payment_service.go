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

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	loanRepo    portsrepo.LoanRepositoryWithTx
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentOrgAuthorizer adds the organization authorizer dependency
func WithPaymentOrgAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) PaymentServiceOption {
	return func(s *paymentService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewPaymentService creates a new payment service with the provided options
func NewPaymentService(loanRepo portsrepo.LoanRepositoryWithTx, paymentRepo portsrepo.PaymentRepositoryFacade, options ...PaymentServiceOption) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment applies a payment to a loan. The loan's balance buckets are
// row-locked, the allocation is computed against that snapshot, and the new
// balance plus the payment row are written before the lock is released. Two
// concurrent payments against the same loan therefore serialize instead of
// both allocating against the same stale balance.
func (s *paymentService) RecordPayment(ctx context.Context, organizationID string, loanID string, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to record payment",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find loan for payment", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	if loan.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	if !loan.IsOutstanding() {
		return nil, fmt.Errorf("%w: payments can only be applied to active or overdue loans", apperrors.ErrValidation)
	}

	// Parse and validate the custom split before opening the transaction
	var customSplit *finance.PaymentAllocation
	if req.Policy == domain.AllocationCustom {
		if req.CustomSplit == nil {
			return nil, fmt.Errorf("%w: custom split is required for CUSTOM policy", apperrors.ErrValidation)
		}
		fees, err := finance.ParseAmount(req.CustomSplit.Fees)
		if err != nil {
			return nil, fmt.Errorf("invalid fees component: %w", err)
		}
		interest, err := finance.ParseAmount(req.CustomSplit.Interest)
		if err != nil {
			return nil, fmt.Errorf("invalid interest component: %w", err)
		}
		principal, err := finance.ParseAmount(req.CustomSplit.Principal)
		if err != nil {
			return nil, fmt.Errorf("invalid principal component: %w", err)
		}
		customSplit = &finance.PaymentAllocation{
			Fees:      fees,
			Interest:  interest,
			Principal: principal,
		}
	}

	now := time.Now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	tx, err := s.loanRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin payment transaction", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.loanRepo.Rollback(ctx, tx); rbErr != nil {
				s.LogError(ctx, rbErr, "Failed to rollback payment transaction", slog.String("loan_id", loanID))
			}
		}
	}()

	// Lock the balance row so concurrent payments serialize
	balance, err := s.loanRepo.GetLoanBalanceForUpdate(ctx, tx, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to lock loan balance", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to read loan balance: %w", err)
	}

	var allocation finance.PaymentAllocation
	switch req.Policy {
	case domain.AllocationStandard:
		allocation, err = finance.AllocateStandard(req.Amount, balance)
	case domain.AllocationCustom:
		allocation, err = finance.AllocateCustom(req.Amount, *customSplit)
	default:
		err = fmt.Errorf("%w: unknown allocation policy %s", apperrors.ErrValidation, req.Policy)
	}
	if err != nil {
		return nil, err
	}

	// A custom component must not overrun its bucket; buckets never go negative
	if err := allocation.CheckAgainstBalance(balance); err != nil {
		return nil, err
	}

	newBalance := finance.LoanBalance{
		Principal: balance.Principal.Sub(allocation.Principal),
		Interest:  balance.Interest.Sub(allocation.Interest),
		Fees:      balance.Fees.Sub(allocation.Fees),
	}

	if err := s.loanRepo.UpdateLoanBalanceInTx(ctx, tx, loanID, newBalance, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update loan balance in transaction", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to update loan balance: %w", err)
	}

	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		OrganizationID: organizationID,
		LoanID:         loanID,
		Amount:         req.Amount,
		Policy:         req.Policy,
		FeesPaid:       allocation.Fees,
		InterestPaid:   allocation.Interest,
		PrincipalPaid:  allocation.Principal,
		PaymentDate:    paymentDate,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.paymentRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment in transaction", slog.String("payment_id", payment.PaymentID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	if err := s.loanRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit payment transaction", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	s.LogInfo(ctx, "Payment recorded successfully",
		slog.String("payment_id", payment.PaymentID),
		slog.String("loan_id", loanID),
		slog.String("policy", string(req.Policy)),
		slog.String("amount", req.Amount.String()))
	return &payment, nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, organizationID string, paymentID string, userID string) (*domain.Payment, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment by ID in repository", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	if payment.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return payment, nil
}

func (s *paymentService) ListPaymentsByLoan(ctx context.Context, organizationID string, loanID string, userID string) ([]domain.Payment, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}

	payments, err := s.paymentRepo.ListPaymentsByLoan(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments from repository", slog.String("loan_id", loanID))
		return nil, err
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}
