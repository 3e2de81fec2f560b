package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollateralType classifies a pledged asset.
type CollateralType string

const (
	CollateralRealEstate   CollateralType = "REAL_ESTATE"
	CollateralLiquidStocks CollateralType = "LIQUID_STOCKS"
	CollateralOther        CollateralType = "OTHER"
)

// AssignmentLevel names the entity a collateral asset is pledged against.
// The three levels are mutually exclusive for a given assignment.
type AssignmentLevel string

const (
	AssignBank       AssignmentLevel = "BANK"
	AssignFacility   AssignmentLevel = "FACILITY"
	AssignCreditLine AssignmentLevel = "CREDIT_LINE"
)

// CollateralAsset is a pledgeable asset owned by an organization.
// It is unassigned until linked by a CollateralAssignment.
type CollateralAsset struct {
	AssetID        string          `json:"assetID"` // Primary Key (e.g., UUID)
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	CollateralType CollateralType  `json:"collateralType"`
	CurrentValue   decimal.Decimal `json:"currentValue"` // Must be > 0
	ValuationDate  time.Time       `json:"valuationDate"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// CollateralAssignment pledges an asset at exactly one level.
type CollateralAssignment struct {
	AssignmentID string          `json:"assignmentID"` // Primary Key (e.g., UUID)
	AssetID      string          `json:"assetID"`
	Level        AssignmentLevel `json:"level"`
	TargetID     string          `json:"targetID"` // Bank, Facility, or CreditLine ID per Level
	AssignedAt   time.Time       `json:"assignedAt"`
	AssignedBy   string          `json:"assignedBy"` // UserID Reference
}
