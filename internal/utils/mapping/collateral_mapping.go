package mapping

import (
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/models"
)

// ToModelCollateralAsset converts a domain CollateralAsset to a model CollateralAsset
func ToModelCollateralAsset(d domain.CollateralAsset) models.CollateralAsset {
	return models.CollateralAsset{
		AssetID:        d.AssetID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		CollateralType: string(d.CollateralType),
		CurrentValue:   d.CurrentValue,
		ValuationDate:  d.ValuationDate,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCollateralAsset converts a model CollateralAsset to a domain CollateralAsset
func ToDomainCollateralAsset(m models.CollateralAsset) domain.CollateralAsset {
	return domain.CollateralAsset{
		AssetID:        m.AssetID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		CollateralType: domain.CollateralType(m.CollateralType),
		CurrentValue:   m.CurrentValue,
		ValuationDate:  m.ValuationDate,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCollateralAssetSlice converts a slice of model assets to domain assets
func ToDomainCollateralAssetSlice(ms []models.CollateralAsset) []domain.CollateralAsset {
	ds := make([]domain.CollateralAsset, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCollateralAsset(m)
	}
	return ds
}

// ToModelCollateralAssignment converts a domain CollateralAssignment to its model
func ToModelCollateralAssignment(d domain.CollateralAssignment) models.CollateralAssignment {
	return models.CollateralAssignment{
		AssignmentID: d.AssignmentID,
		AssetID:      d.AssetID,
		Level:        string(d.Level),
		TargetID:     d.TargetID,
		AssignedAt:   d.AssignedAt,
		AssignedBy:   d.AssignedBy,
	}
}

// ToDomainCollateralAssignment converts a model CollateralAssignment to its domain form
func ToDomainCollateralAssignment(m models.CollateralAssignment) domain.CollateralAssignment {
	return domain.CollateralAssignment{
		AssignmentID: m.AssignmentID,
		AssetID:      m.AssetID,
		Level:        domain.AssignmentLevel(m.Level),
		TargetID:     m.TargetID,
		AssignedAt:   m.AssignedAt,
		AssignedBy:   m.AssignedBy,
	}
}
