package mapping

import (
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:      d.PaymentID,
		OrganizationID: d.OrganizationID,
		LoanID:         d.LoanID,
		Amount:         d.Amount,
		Policy:         string(d.Policy),
		FeesPaid:       d.FeesPaid,
		InterestPaid:   d.InterestPaid,
		PrincipalPaid:  d.PrincipalPaid,
		PaymentDate:    d.PaymentDate,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:      m.PaymentID,
		OrganizationID: m.OrganizationID,
		LoanID:         m.LoanID,
		Amount:         m.Amount,
		Policy:         domain.AllocationPolicy(m.Policy),
		FeesPaid:       m.FeesPaid,
		InterestPaid:   m.InterestPaid,
		PrincipalPaid:  m.PrincipalPaid,
		PaymentDate:    m.PaymentDate,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
