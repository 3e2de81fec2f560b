package services

import (
	"context"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
)

// LoanReaderSvc defines read operations for loan data
type LoanReaderSvc interface {
	// GetLoanByID retrieves a specific loan within an organization.
	GetLoanByID(ctx context.Context, organizationID string, loanID string, userID string) (*domain.Loan, error)

	// ListLoans retrieves loans with optional status filter and keyset pagination.
	ListLoans(ctx context.Context, organizationID string, params dto.ListLoansParams, userID string) ([]domain.Loan, *string, error)
}

// LoanWriterSvc defines write operations for loan data
type LoanWriterSvc interface {
	// CreateLoan draws a new loan against a facility or credit line.
	CreateLoan(ctx context.Context, organizationID string, req dto.CreateLoanRequest, userID string) (*domain.Loan, error)

	// RevolveLoan rolls a loan into a new period: dates and SIBOR rate change,
	// amount and reference number are preserved.
	RevolveLoan(ctx context.Context, organizationID string, loanID string, req dto.RevolveLoanRequest, userID string) (*domain.Loan, error)

	// SettleLoan terminates a loan as settled.
	SettleLoan(ctx context.Context, organizationID string, loanID string, req dto.SettleLoanRequest, userID string) (*domain.Loan, error)

	// CancelLoan terminates a loan as cancelled.
	CancelLoan(ctx context.Context, organizationID string, loanID string, userID string) error
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}
