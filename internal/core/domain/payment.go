package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationPolicy selects how a payment is split across balance buckets.
type AllocationPolicy string

const (
	// AllocationStandard applies the regulatory waterfall: fees, then interest, then principal.
	AllocationStandard AllocationPolicy = "STANDARD"
	// AllocationCustom applies a caller-supplied split that must sum to the payment amount.
	AllocationCustom AllocationPolicy = "CUSTOM"
)

// Payment records a repayment applied to a loan, with the resulting allocation.
type Payment struct {
	PaymentID      string           `json:"paymentID"` // Primary Key (e.g., UUID)
	OrganizationID string           `json:"organizationID"`
	LoanID         string           `json:"loanID"`
	Amount         decimal.Decimal  `json:"amount"` // Must be > 0
	Policy         AllocationPolicy `json:"policy"`
	FeesPaid       decimal.Decimal  `json:"feesPaid"`
	InterestPaid   decimal.Decimal  `json:"interestPaid"`
	PrincipalPaid  decimal.Decimal  `json:"principalPaid"`
	PaymentDate    time.Time        `json:"paymentDate"`
	Notes          string           `json:"notes"`
	AuditFields
}
