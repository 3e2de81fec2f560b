package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents a loan row. Balance buckets are persisted alongside the
// loan so a payment can lock and update them in one transaction.
type Loan struct {
	LoanID          string          `db:"loan_id"`
	OrganizationID  string          `db:"organization_id"`
	FacilityID      string          `db:"facility_id"`
	CreditLineID    sql.NullString  `db:"credit_line_id"` // Nullable
	ReferenceNumber string          `db:"reference_number"`
	Amount          decimal.Decimal `db:"amount"`
	SiborRate       decimal.Decimal `db:"sibor_rate"`
	BankRate        decimal.Decimal `db:"bank_rate"`
	StartDate       time.Time       `db:"start_date"`
	DueDate         time.Time       `db:"due_date"`
	Status          string          `db:"status"`

	PrincipalOutstanding decimal.Decimal `db:"principal_outstanding"`
	InterestOutstanding  decimal.Decimal `db:"interest_outstanding"`
	FeesOutstanding      decimal.Decimal `db:"fees_outstanding"`

	SettledAmount decimal.NullDecimal `db:"settled_amount"`
	SettledDate   sql.NullTime        `db:"settled_date"`
	AuditFields
}
