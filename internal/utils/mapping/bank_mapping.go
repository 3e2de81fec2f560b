package mapping

import (
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/models"
)

// ToModelBank converts a domain Bank to a model Bank
func ToModelBank(d domain.Bank) models.Bank {
	return models.Bank{
		BankID:         d.BankID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Branch:         d.Branch,
		ContactEmail:   d.ContactEmail,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBank converts a model Bank to a domain Bank
func ToDomainBank(m models.Bank) domain.Bank {
	return domain.Bank{
		BankID:         m.BankID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Branch:         m.Branch,
		ContactEmail:   m.ContactEmail,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankSlice converts a slice of model Banks to a slice of domain Banks
func ToDomainBankSlice(ms []models.Bank) []domain.Bank {
	ds := make([]domain.Bank, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBank(m)
	}
	return ds
}
