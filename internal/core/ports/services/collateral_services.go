package services

import (
	"context"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
)

// CollateralSvcFacade defines operations for collateral assets and assignments.
type CollateralSvcFacade interface {
	// GetAssetByID retrieves a specific collateral asset.
	GetAssetByID(ctx context.Context, organizationID string, assetID string, userID string) (*domain.CollateralAsset, error)

	// ListAssets retrieves all collateral assets for an organization.
	ListAssets(ctx context.Context, organizationID string, userID string) ([]domain.CollateralAsset, error)

	// CreateAsset persists a new collateral asset.
	CreateAsset(ctx context.Context, organizationID string, req dto.CreateCollateralAssetRequest, userID string) (*domain.CollateralAsset, error)

	// RevalueAsset updates an asset's current value and valuation date.
	RevalueAsset(ctx context.Context, organizationID string, assetID string, req dto.RevalueCollateralAssetRequest, userID string) (*domain.CollateralAsset, error)

	// DeactivateAsset marks an asset as inactive.
	DeactivateAsset(ctx context.Context, organizationID string, assetID string, userID string) error

	// AssignAsset pledges an asset to exactly one of bank/facility/credit line.
	// An already-assigned asset must be unassigned first.
	AssignAsset(ctx context.Context, organizationID string, assetID string, req dto.AssignCollateralRequest, userID string) (*domain.CollateralAssignment, error)

	// UnassignAsset removes an asset's current assignment.
	UnassignAsset(ctx context.Context, organizationID string, assetID string, userID string) error
}
