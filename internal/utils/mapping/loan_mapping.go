package mapping

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan.
// Balance buckets are managed by the repository and are not carried here.
func ToModelLoan(d domain.Loan) models.Loan {
	m := models.Loan{
		LoanID:          d.LoanID,
		OrganizationID:  d.OrganizationID,
		FacilityID:      d.FacilityID,
		ReferenceNumber: d.ReferenceNumber,
		Amount:          d.Amount,
		SiborRate:       d.SiborRate,
		BankRate:        d.BankRate,
		StartDate:       d.StartDate,
		DueDate:         d.DueDate,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.CreditLineID != "" {
		m.CreditLineID = sql.NullString{String: d.CreditLineID, Valid: true}
	}
	if d.SettledAmount != nil {
		m.SettledAmount = decimal.NullDecimal{Decimal: *d.SettledAmount, Valid: true}
	}
	if d.SettledDate != nil {
		m.SettledDate = sql.NullTime{Time: *d.SettledDate, Valid: true}
	}
	return m
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	d := domain.Loan{
		LoanID:          m.LoanID,
		OrganizationID:  m.OrganizationID,
		FacilityID:      m.FacilityID,
		ReferenceNumber: m.ReferenceNumber,
		Amount:          m.Amount,
		SiborRate:       m.SiborRate,
		BankRate:        m.BankRate,
		StartDate:       m.StartDate,
		DueDate:         m.DueDate,
		Status:          domain.LoanStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.CreditLineID.Valid {
		d.CreditLineID = m.CreditLineID.String
	}
	if m.SettledAmount.Valid {
		amount := m.SettledAmount.Decimal
		d.SettledAmount = &amount
	}
	if m.SettledDate.Valid {
		settledAt := m.SettledDate.Time
		d.SettledDate = &settledAt
	}
	return d
}

// ToDomainLoanSlice converts a slice of model Loans to a slice of domain Loans
func ToDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}
