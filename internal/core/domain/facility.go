package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FacilityType classifies the kind of credit ceiling a bank has granted.
type FacilityType string

const (
	FacilityRevolving        FacilityType = "REVOLVING"
	FacilityTerm             FacilityType = "TERM"
	FacilityBullet           FacilityType = "BULLET"
	FacilityBridge           FacilityType = "BRIDGE"
	FacilityWorkingCapital   FacilityType = "WORKING_CAPITAL"
	FacilityNonCashGuarantee FacilityType = "NON_CASH_GUARANTEE"
)

// Facility is a bank-granted credit ceiling against which loans are drawn.
// It is owned by exactly one Bank and may be subdivided into CreditLines.
type Facility struct {
	FacilityID     string          `json:"facilityID"` // Primary Key (e.g., UUID)
	OrganizationID string          `json:"organizationID"`
	BankID         string          `json:"bankID"`
	FacilityType   FacilityType    `json:"facilityType"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`   // Must be > 0
	CostOfFunding  decimal.Decimal `json:"costOfFunding"` // Annual %, >= 0
	StartDate      time.Time       `json:"startDate"`
	ExpiryDate     time.Time       `json:"expiryDate"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// CreditLine is an optional sub-limit carved out of a Facility's credit limit.
type CreditLine struct {
	CreditLineID   string          `json:"creditLineID"` // Primary Key (e.g., UUID)
	OrganizationID string          `json:"organizationID"`
	FacilityID     string          `json:"facilityID"` // Parent facility
	Name           string          `json:"name"`
	CreditLimit    decimal.Decimal `json:"creditLimit"` // Must be > 0, sum of siblings <= facility limit
	IsActive       bool            `json:"isActive"`
	AuditFields
}
