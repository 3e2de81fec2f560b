package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a repayment row with its allocation breakdown.
type Payment struct {
	PaymentID      string          `db:"payment_id"`
	OrganizationID string          `db:"organization_id"`
	LoanID         string          `db:"loan_id"`
	Amount         decimal.Decimal `db:"amount"`
	Policy         string          `db:"policy"`
	FeesPaid       decimal.Decimal `db:"fees_paid"`
	InterestPaid   decimal.Decimal `db:"interest_paid"`
	PrincipalPaid  decimal.Decimal `db:"principal_paid"`
	PaymentDate    time.Time       `db:"payment_date"`
	Notes          string          `db:"notes"`
	AuditFields
}
