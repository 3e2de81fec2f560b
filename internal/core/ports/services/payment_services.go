package services

import (
	"context"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
)

// PaymentSvcFacade defines operations for recording and reading payments.
type PaymentSvcFacade interface {
	// RecordPayment allocates a payment over the loan's outstanding balance and
	// applies it atomically: the balance snapshot is read, the allocation
	// computed, and the new balance plus the payment row written in a single
	// database transaction.
	RecordPayment(ctx context.Context, organizationID string, loanID string, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error)

	// GetPaymentByID retrieves a specific payment.
	GetPaymentByID(ctx context.Context, organizationID string, paymentID string, userID string) (*domain.Payment, error)

	// ListPaymentsByLoan retrieves all payments recorded against a loan.
	ListPaymentsByLoan(ctx context.Context, organizationID string, loanID string, userID string) ([]domain.Payment, error)
}
