package services

import (
	"context"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
)

// BankReaderSvc defines read operations for bank data
type BankReaderSvc interface {
	// GetBankByID retrieves a specific bank within an organization.
	GetBankByID(ctx context.Context, organizationID string, bankID string, userID string) (*domain.Bank, error)

	// ListBanks retrieves all banks for an organization.
	ListBanks(ctx context.Context, organizationID string, userID string) ([]domain.Bank, error)
}

// BankWriterSvc defines write operations for bank data
type BankWriterSvc interface {
	// CreateBank persists a new bank.
	CreateBank(ctx context.Context, organizationID string, req dto.CreateBankRequest, userID string) (*domain.Bank, error)

	// UpdateBank updates an existing bank's details.
	UpdateBank(ctx context.Context, organizationID string, bankID string, req dto.UpdateBankRequest, userID string) (*domain.Bank, error)

	// DeactivateBank marks a bank as inactive.
	DeactivateBank(ctx context.Context, organizationID string, bankID string, userID string) error
}

// BankSvcFacade combines all bank-related service interfaces
type BankSvcFacade interface {
	BankReaderSvc
	BankWriterSvc
}
