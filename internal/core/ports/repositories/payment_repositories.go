package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByLoan retrieves all payments recorded against a loan.
	ListPaymentsByLoan(ctx context.Context, loanID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePaymentInTx persists a payment row within the transaction that also
	// updates the loan's balance buckets.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
