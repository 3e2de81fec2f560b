package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Facility represents a credit facility row.
type Facility struct {
	FacilityID     string          `db:"facility_id"`
	OrganizationID string          `db:"organization_id"`
	BankID         string          `db:"bank_id"`
	FacilityType   string          `db:"facility_type"`
	CreditLimit    decimal.Decimal `db:"credit_limit"`
	CostOfFunding  decimal.Decimal `db:"cost_of_funding"`
	StartDate      time.Time       `db:"start_date"`
	ExpiryDate     time.Time       `db:"expiry_date"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// CreditLine represents a facility sub-limit row.
type CreditLine struct {
	CreditLineID   string          `db:"credit_line_id"`
	OrganizationID string          `db:"organization_id"`
	FacilityID     string          `db:"facility_id"`
	Name           string          `db:"name"`
	CreditLimit    decimal.Decimal `db:"credit_limit"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
