package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// CreateFacilityRequest defines the data needed to create a new facility.
type CreateFacilityRequest struct {
	BankID        string              `json:"bankID" binding:"required"`
	FacilityType  domain.FacilityType `json:"facilityType" binding:"required,oneof=REVOLVING TERM BULLET BRIDGE WORKING_CAPITAL NON_CASH_GUARANTEE"`
	CreditLimit   decimal.Decimal     `json:"creditLimit" binding:"required,positivedecimal"`
	CostOfFunding decimal.Decimal     `json:"costOfFunding"`
	StartDate     time.Time           `json:"startDate" binding:"required"`
	ExpiryDate    time.Time           `json:"expiryDate" binding:"required"`
}

// UpdateFacilityRequest defines the data allowed for updating a facility.
type UpdateFacilityRequest struct {
	CreditLimit   *decimal.Decimal `json:"creditLimit"`
	CostOfFunding *decimal.Decimal `json:"costOfFunding"`
	ExpiryDate    *time.Time       `json:"expiryDate"`
}

// FacilityResponse defines the data returned for a facility.
type FacilityResponse struct {
	FacilityID     string              `json:"facilityID"`
	OrganizationID string              `json:"organizationID"`
	BankID         string              `json:"bankID"`
	FacilityType   domain.FacilityType `json:"facilityType"`
	CreditLimit    decimal.Decimal     `json:"creditLimit"`
	CostOfFunding  decimal.Decimal     `json:"costOfFunding"`
	StartDate      time.Time           `json:"startDate"`
	ExpiryDate     time.Time           `json:"expiryDate"`
	IsActive       bool                `json:"isActive"`
	CreatedAt      time.Time           `json:"createdAt"`
	CreatedBy      string              `json:"createdBy"`
	LastUpdatedAt  time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy  string              `json:"lastUpdatedBy"`
}

// ToFacilityResponse converts a domain.Facility to FacilityResponse DTO.
func ToFacilityResponse(f *domain.Facility) FacilityResponse {
	return FacilityResponse{
		FacilityID:     f.FacilityID,
		OrganizationID: f.OrganizationID,
		BankID:         f.BankID,
		FacilityType:   f.FacilityType,
		CreditLimit:    f.CreditLimit,
		CostOfFunding:  f.CostOfFunding,
		StartDate:      f.StartDate,
		ExpiryDate:     f.ExpiryDate,
		IsActive:       f.IsActive,
		CreatedAt:      f.CreatedAt,
		CreatedBy:      f.CreatedBy,
		LastUpdatedAt:  f.LastUpdatedAt,
		LastUpdatedBy:  f.LastUpdatedBy,
	}
}

// ListFacilitiesResponse wraps the list of facilities.
type ListFacilitiesResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

// ToListFacilitiesResponse converts a slice of domain.Facility to DTO.
func ToListFacilitiesResponse(facilities []domain.Facility) ListFacilitiesResponse {
	list := make([]FacilityResponse, len(facilities))
	for i, f := range facilities {
		list[i] = ToFacilityResponse(&f)
	}
	return ListFacilitiesResponse{Facilities: list}
}

// --- Credit line DTOs ---

// CreateCreditLineRequest defines the data needed to carve a credit line out of a facility.
type CreateCreditLineRequest struct {
	Name        string          `json:"name" binding:"required"`
	CreditLimit decimal.Decimal `json:"creditLimit" binding:"required,positivedecimal"`
}

// CreditLineResponse defines the data returned for a credit line.
type CreditLineResponse struct {
	CreditLineID   string          `json:"creditLineID"`
	OrganizationID string          `json:"organizationID"`
	FacilityID     string          `json:"facilityID"`
	Name           string          `json:"name"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToCreditLineResponse converts a domain.CreditLine to CreditLineResponse DTO.
func ToCreditLineResponse(cl *domain.CreditLine) CreditLineResponse {
	return CreditLineResponse{
		CreditLineID:   cl.CreditLineID,
		OrganizationID: cl.OrganizationID,
		FacilityID:     cl.FacilityID,
		Name:           cl.Name,
		CreditLimit:    cl.CreditLimit,
		IsActive:       cl.IsActive,
		CreatedAt:      cl.CreatedAt,
		CreatedBy:      cl.CreatedBy,
	}
}

// ListCreditLinesResponse wraps the credit lines under a facility.
type ListCreditLinesResponse struct {
	CreditLines []CreditLineResponse `json:"creditLines"`
}

// ToListCreditLinesResponse converts a slice of domain.CreditLine to DTO.
func ToListCreditLinesResponse(lines []domain.CreditLine) ListCreditLinesResponse {
	list := make([]CreditLineResponse, len(lines))
	for i, cl := range lines {
		list[i] = ToCreditLineResponse(&cl)
	}
	return ListCreditLinesResponse{CreditLines: list}
}
