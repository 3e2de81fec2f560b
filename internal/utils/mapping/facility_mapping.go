package mapping

import (
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/models"
)

// ToModelFacility converts a domain Facility to a model Facility
func ToModelFacility(d domain.Facility) models.Facility {
	return models.Facility{
		FacilityID:     d.FacilityID,
		OrganizationID: d.OrganizationID,
		BankID:         d.BankID,
		FacilityType:   string(d.FacilityType),
		CreditLimit:    d.CreditLimit,
		CostOfFunding:  d.CostOfFunding,
		StartDate:      d.StartDate,
		ExpiryDate:     d.ExpiryDate,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFacility converts a model Facility to a domain Facility
func ToDomainFacility(m models.Facility) domain.Facility {
	return domain.Facility{
		FacilityID:     m.FacilityID,
		OrganizationID: m.OrganizationID,
		BankID:         m.BankID,
		FacilityType:   domain.FacilityType(m.FacilityType),
		CreditLimit:    m.CreditLimit,
		CostOfFunding:  m.CostOfFunding,
		StartDate:      m.StartDate,
		ExpiryDate:     m.ExpiryDate,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFacilitySlice converts a slice of model Facilities to a slice of domain Facilities
func ToDomainFacilitySlice(ms []models.Facility) []domain.Facility {
	ds := make([]domain.Facility, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFacility(m)
	}
	return ds
}

// ToModelCreditLine converts a domain CreditLine to a model CreditLine
func ToModelCreditLine(d domain.CreditLine) models.CreditLine {
	return models.CreditLine{
		CreditLineID:   d.CreditLineID,
		OrganizationID: d.OrganizationID,
		FacilityID:     d.FacilityID,
		Name:           d.Name,
		CreditLimit:    d.CreditLimit,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditLine converts a model CreditLine to a domain CreditLine
func ToDomainCreditLine(m models.CreditLine) domain.CreditLine {
	return domain.CreditLine{
		CreditLineID:   m.CreditLineID,
		OrganizationID: m.OrganizationID,
		FacilityID:     m.FacilityID,
		Name:           m.Name,
		CreditLimit:    m.CreditLimit,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCreditLineSlice converts a slice of model CreditLines to a slice of domain CreditLines
func ToDomainCreditLineSlice(ms []models.CreditLine) []domain.CreditLine {
	ds := make([]domain.CreditLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditLine(m)
	}
	return ds
}
