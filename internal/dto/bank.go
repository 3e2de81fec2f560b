package dto

import (
	"time"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// CreateBankRequest defines the data needed to create a new bank.
type CreateBankRequest struct {
	Name         string `json:"name" binding:"required"`
	Branch       string `json:"branch"`                                 // Optional
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"` // Optional
}

// UpdateBankRequest defines the data allowed for updating a bank.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBankRequest struct {
	Name         *string `json:"name"`
	Branch       *string `json:"branch"`
	ContactEmail *string `json:"contactEmail" binding:"omitempty,email"`
}

// BankResponse defines the data returned for a bank.
type BankResponse struct {
	BankID         string    `json:"bankID"`
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Branch         string    `json:"branch"`
	ContactEmail   string    `json:"contactEmail"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy  string    `json:"lastUpdatedBy"`
}

// ToBankResponse converts a domain.Bank to BankResponse DTO.
func ToBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{
		BankID:         b.BankID,
		OrganizationID: b.OrganizationID,
		Name:           b.Name,
		Branch:         b.Branch,
		ContactEmail:   b.ContactEmail,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt,
		CreatedBy:      b.CreatedBy,
		LastUpdatedAt:  b.LastUpdatedAt,
		LastUpdatedBy:  b.LastUpdatedBy,
	}
}

// ListBanksResponse wraps the list of banks.
type ListBanksResponse struct {
	Banks []BankResponse `json:"banks"`
}

// ToListBanksResponse converts a slice of domain.Bank to DTO.
func ToListBanksResponse(banks []domain.Bank) ListBanksResponse {
	list := make([]BankResponse, len(banks))
	for i, b := range banks {
		list[i] = ToBankResponse(&b)
	}
	return ListBanksResponse{Banks: list}
}
