package repositories

import (
	"context"
	"time"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// BankReader defines read operations for bank data
type BankReader interface {
	// FindBankByID retrieves a specific bank by its unique identifier.
	FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error)

	// ListBanks retrieves all banks for an organization in insertion order.
	ListBanks(ctx context.Context, organizationID string) ([]domain.Bank, error)
}

// BankWriter defines write operations for bank data
type BankWriter interface {
	// SaveBank persists a new bank.
	SaveBank(ctx context.Context, bank domain.Bank) error

	// UpdateBank updates an existing bank's details.
	UpdateBank(ctx context.Context, bank domain.Bank) error

	// DeactivateBank marks a bank as inactive.
	DeactivateBank(ctx context.Context, bankID string, userID string, now time.Time) error
}

// BankRepositoryFacade combines all bank-related repository interfaces
type BankRepositoryFacade interface {
	BankReader
	BankWriter
}
