package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/utils/finance"
)

// LoanReader defines read operations for loan data
type LoanReader interface {
	// FindLoanByID retrieves a specific loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindLoanByReference retrieves a loan by its organization-unique reference number.
	FindLoanByReference(ctx context.Context, organizationID string, referenceNumber string) (*domain.Loan, error)

	// ListLoans retrieves loans for an organization, optionally filtered by status,
	// using keyset pagination ordered by due date.
	ListLoans(ctx context.Context, organizationID string, status *domain.LoanStatus, limit int, nextToken *string) ([]domain.Loan, *string, error)

	// ListLoansByFacility retrieves all loans drawn against a facility.
	ListLoansByFacility(ctx context.Context, facilityID string) ([]domain.Loan, error)

	// ListLoansDueBefore retrieves outstanding loans due on or before the cutoff.
	ListLoansDueBefore(ctx context.Context, organizationID string, cutoff time.Time) ([]domain.Loan, error)

	// GetLoanBalance reads the loan's current outstanding buckets.
	GetLoanBalance(ctx context.Context, loanID string) (finance.LoanBalance, error)
}

// LoanWriter defines write operations for loan data
type LoanWriter interface {
	// SaveLoan persists a new loan with its opening balance buckets.
	SaveLoan(ctx context.Context, loan domain.Loan, opening finance.LoanBalance) error

	// UpdateLoan updates an existing loan's mutable fields (dates, rates, status).
	UpdateLoan(ctx context.Context, loan domain.Loan) error

	// MarkLoanSettled transitions a loan to SETTLED with the settlement figures.
	MarkLoanSettled(ctx context.Context, loanID string, settledAmount decimal.Decimal, settledDate time.Time, userID string, now time.Time) error

	// MarkLoanCancelled transitions a loan to CANCELLED.
	MarkLoanCancelled(ctx context.Context, loanID string, userID string, now time.Time) error
}

// LoanTransactionSupport defines operations used inside a payment transaction.
type LoanTransactionSupport interface {
	// GetLoanBalanceForUpdate reads and row-locks a loan's balance buckets within tx.
	GetLoanBalanceForUpdate(ctx context.Context, tx pgx.Tx, loanID string) (finance.LoanBalance, error)

	// UpdateLoanBalanceInTx writes the post-payment balance buckets within tx.
	UpdateLoanBalanceInTx(ctx context.Context, tx pgx.Tx, loanID string, balance finance.LoanBalance, userID string, now time.Time) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
	LoanTransactionSupport
}

// LoanRepositoryWithTx extends LoanRepositoryFacade with transaction capabilities
type LoanRepositoryWithTx interface {
	LoanRepositoryFacade
	TransactionManager
}
