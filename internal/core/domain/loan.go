package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus indicates where a loan is in its lifecycle.
type LoanStatus string

const (
	LoanActive    LoanStatus = "ACTIVE"
	LoanSettled   LoanStatus = "SETTLED"
	LoanOverdue   LoanStatus = "OVERDUE"
	LoanCancelled LoanStatus = "CANCELLED"
)

// Loan represents a drawdown against a Facility or one of its CreditLines.
// Revolving a loan updates dates and the SIBOR rate while preserving the
// reference number and amount.
type Loan struct {
	LoanID          string           `json:"loanID"` // Primary Key (e.g., UUID)
	OrganizationID  string           `json:"organizationID"`
	FacilityID      string           `json:"facilityID"`
	CreditLineID    string           `json:"creditLineID"`    // Nullable; set when drawn via a credit line
	ReferenceNumber string           `json:"referenceNumber"` // Unique per organization
	Amount          decimal.Decimal  `json:"amount"`          // Must be > 0
	SiborRate       decimal.Decimal  `json:"siborRate"`       // Annual %, >= 0
	BankRate        decimal.Decimal  `json:"bankRate"`        // Margin over SIBOR, >= 0
	StartDate       time.Time        `json:"startDate"`
	DueDate         time.Time        `json:"dueDate"` // Must be >= StartDate
	Status          LoanStatus       `json:"status"`
	SettledAmount   *decimal.Decimal `json:"settledAmount,omitempty"`
	SettledDate     *time.Time       `json:"settledDate,omitempty"`
	AuditFields
}

// EffectiveRate is the loan's all-in annual rate: SIBOR plus the bank margin.
func (l Loan) EffectiveRate() decimal.Decimal {
	return l.SiborRate.Add(l.BankRate)
}

// IsOutstanding reports whether the loan still counts towards exposure.
func (l Loan) IsOutstanding() bool {
	return l.Status == LoanActive || l.Status == LoanOverdue
}
