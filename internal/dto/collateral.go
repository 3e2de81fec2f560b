package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// CreateCollateralAssetRequest defines the data needed to register a collateral asset.
type CreateCollateralAssetRequest struct {
	Name           string                `json:"name" binding:"required"`
	CollateralType domain.CollateralType `json:"collateralType" binding:"required,oneof=REAL_ESTATE LIQUID_STOCKS OTHER"`
	CurrentValue   decimal.Decimal       `json:"currentValue" binding:"required,positivedecimal"`
	ValuationDate  time.Time             `json:"valuationDate" binding:"required"`
}

// RevalueCollateralAssetRequest defines the data for updating an asset's valuation.
type RevalueCollateralAssetRequest struct {
	CurrentValue  decimal.Decimal `json:"currentValue" binding:"required,positivedecimal"`
	ValuationDate time.Time       `json:"valuationDate" binding:"required"`
}

// AssignCollateralRequest pledges an asset to exactly one target level.
type AssignCollateralRequest struct {
	Level    domain.AssignmentLevel `json:"level" binding:"required,oneof=BANK FACILITY CREDIT_LINE"`
	TargetID string                 `json:"targetID" binding:"required"`
}

// CollateralAssetResponse defines the data returned for an asset.
type CollateralAssetResponse struct {
	AssetID        string                `json:"assetID"`
	OrganizationID string                `json:"organizationID"`
	Name           string                `json:"name"`
	CollateralType domain.CollateralType `json:"collateralType"`
	CurrentValue   decimal.Decimal       `json:"currentValue"`
	ValuationDate  time.Time             `json:"valuationDate"`
	IsActive       bool                  `json:"isActive"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy  string                `json:"lastUpdatedBy"`
}

// ToCollateralAssetResponse converts a domain.CollateralAsset to DTO.
func ToCollateralAssetResponse(a *domain.CollateralAsset) CollateralAssetResponse {
	return CollateralAssetResponse{
		AssetID:        a.AssetID,
		OrganizationID: a.OrganizationID,
		Name:           a.Name,
		CollateralType: a.CollateralType,
		CurrentValue:   a.CurrentValue,
		ValuationDate:  a.ValuationDate,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
		LastUpdatedAt:  a.LastUpdatedAt,
		LastUpdatedBy:  a.LastUpdatedBy,
	}
}

// ListCollateralAssetsResponse wraps the assets of an organization.
type ListCollateralAssetsResponse struct {
	Assets []CollateralAssetResponse `json:"assets"`
}

// ToListCollateralAssetsResponse converts a slice of assets to DTO.
func ToListCollateralAssetsResponse(assets []domain.CollateralAsset) ListCollateralAssetsResponse {
	list := make([]CollateralAssetResponse, len(assets))
	for i, a := range assets {
		list[i] = ToCollateralAssetResponse(&a)
	}
	return ListCollateralAssetsResponse{Assets: list}
}

// CollateralAssignmentResponse defines the data returned for an assignment.
type CollateralAssignmentResponse struct {
	AssignmentID string                 `json:"assignmentID"`
	AssetID      string                 `json:"assetID"`
	Level        domain.AssignmentLevel `json:"level"`
	TargetID     string                 `json:"targetID"`
	AssignedAt   time.Time              `json:"assignedAt"`
	AssignedBy   string                 `json:"assignedBy"`
}

// ToCollateralAssignmentResponse converts a domain.CollateralAssignment to DTO.
func ToCollateralAssignmentResponse(a *domain.CollateralAssignment) CollateralAssignmentResponse {
	return CollateralAssignmentResponse{
		AssignmentID: a.AssignmentID,
		AssetID:      a.AssetID,
		Level:        a.Level,
		TargetID:     a.TargetID,
		AssignedAt:   a.AssignedAt,
		AssignedBy:   a.AssignedBy,
	}
}
