package repositories

import (
	"context"
	"time"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// CollateralReader defines read operations for collateral data
type CollateralReader interface {
	// FindAssetByID retrieves a specific collateral asset.
	FindAssetByID(ctx context.Context, assetID string) (*domain.CollateralAsset, error)

	// ListAssets retrieves all collateral assets for an organization.
	ListAssets(ctx context.Context, organizationID string) ([]domain.CollateralAsset, error)

	// FindAssignmentByAsset retrieves the current assignment of an asset, if any.
	FindAssignmentByAsset(ctx context.Context, assetID string) (*domain.CollateralAssignment, error)

	// ListAssignmentsByTarget retrieves assignments pledged against one entity.
	ListAssignmentsByTarget(ctx context.Context, level domain.AssignmentLevel, targetID string) ([]domain.CollateralAssignment, error)
}

// CollateralWriter defines write operations for collateral data
type CollateralWriter interface {
	// SaveAsset persists a new collateral asset.
	SaveAsset(ctx context.Context, asset domain.CollateralAsset) error

	// UpdateAsset updates an asset's details (e.g., revaluation).
	UpdateAsset(ctx context.Context, asset domain.CollateralAsset) error

	// DeactivateAsset marks an asset as inactive.
	DeactivateAsset(ctx context.Context, assetID string, userID string, now time.Time) error

	// SaveAssignment persists an assignment; fails if the asset is already assigned.
	SaveAssignment(ctx context.Context, assignment domain.CollateralAssignment) error

	// DeleteAssignment removes an asset's assignment.
	DeleteAssignment(ctx context.Context, assetID string) error
}

// CollateralRepositoryFacade combines all collateral-related repository interfaces
type CollateralRepositoryFacade interface {
	CollateralReader
	CollateralWriter
}
