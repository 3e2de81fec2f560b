package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	"github.com/tamkeenlabs/facility_management_app/internal/models"
	"github.com/tamkeenlabs/facility_management_app/internal/utils/mapping"
)

type PgxCollateralRepository struct {
	BaseRepository
}

// newPgxCollateralRepository creates a new repository for collateral data.
func newPgxCollateralRepository(pool *pgxpool.Pool) portsrepo.CollateralRepositoryFacade {
	return &PgxCollateralRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCollateralRepository implements portsrepo.CollateralRepositoryFacade
var _ portsrepo.CollateralRepositoryFacade = (*PgxCollateralRepository)(nil)

var FULL_COLLATERAL_ASSET_SELECT_QUERY = `
SELECT
	ca.asset_id, ca.organization_id, ca.name, ca.collateral_type,
	ca.current_value, ca.valuation_date, ca.is_active,
	ca.created_at, ca.created_by, ca.last_updated_at, ca.last_updated_by
FROM collateral_assets ca
`

func (r *PgxCollateralRepository) getAssets(ctx context.Context, filterQuery string, args ...any) ([]domain.CollateralAsset, error) {
	query := FULL_COLLATERAL_ASSET_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query collateral assets", err)
	}
	defer rows.Close()
	modelAssets, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CollateralAsset])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.CollateralAsset{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect collateral asset rows", err)
	}

	return mapping.ToDomainCollateralAssetSlice(modelAssets), nil
}

func (r *PgxCollateralRepository) SaveAsset(ctx context.Context, asset domain.CollateralAsset) error {
	m := mapping.ToModelCollateralAsset(asset)
	query := `
		INSERT INTO collateral_assets (
			asset_id, organization_id, name, collateral_type,
			current_value, valuation_date, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AssetID,
		m.OrganizationID,
		m.Name,
		m.CollateralType,
		m.CurrentValue,
		m.ValuationDate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewAppError(409, "collateral asset ID "+asset.AssetID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save collateral asset "+asset.AssetID, err)
	}
	return nil
}

func (r *PgxCollateralRepository) UpdateAsset(ctx context.Context, asset domain.CollateralAsset) error {
	m := mapping.ToModelCollateralAsset(asset)
	query := `
		UPDATE collateral_assets
		SET name = $1, current_value = $2, valuation_date = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE asset_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.CurrentValue,
		m.ValuationDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.AssetID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update collateral asset "+asset.AssetID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCollateralRepository) DeactivateAsset(ctx context.Context, assetID string, userID string, now time.Time) error {
	query := `
		UPDATE collateral_assets
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE asset_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, assetID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate collateral asset "+assetID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCollateralRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.CollateralAsset, error) {
	query := `WHERE ca.asset_id = $1`
	assets, err := r.getAssets(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &assets[0], nil
}

func (r *PgxCollateralRepository) ListAssets(ctx context.Context, organizationID string) ([]domain.CollateralAsset, error) {
	query := `WHERE ca.organization_id = $1 ORDER BY ca.created_at;`
	return r.getAssets(ctx, query, organizationID)
}

// SaveAssignment persists an assignment. The unique constraint on asset_id
// guarantees an asset is pledged at most once.
func (r *PgxCollateralRepository) SaveAssignment(ctx context.Context, assignment domain.CollateralAssignment) error {
	m := mapping.ToModelCollateralAssignment(assignment)
	query := `
		INSERT INTO collateral_assignments (
			assignment_id, asset_id, level, target_id, assigned_at, assigned_by
		)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AssignmentID,
		m.AssetID,
		m.Level,
		m.TargetID,
		m.AssignedAt,
		m.AssignedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewAppError(409, "asset "+assignment.AssetID+" is already assigned", apperrors.ErrDuplicate)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewAppError(400, "asset does not exist", apperrors.ErrValidation)
			}
		}
		return apperrors.NewAppError(500, "failed to save assignment for asset "+assignment.AssetID, err)
	}
	return nil
}

func (r *PgxCollateralRepository) DeleteAssignment(ctx context.Context, assetID string) error {
	query := `DELETE FROM collateral_assignments WHERE asset_id = $1;`
	result, err := r.Pool.Exec(ctx, query, assetID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete assignment for asset "+assetID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCollateralRepository) FindAssignmentByAsset(ctx context.Context, assetID string) (*domain.CollateralAssignment, error) {
	query := `
		SELECT assignment_id, asset_id, level, target_id, assigned_at, assigned_by
		FROM collateral_assignments
		WHERE asset_id = $1;
	`
	var m models.CollateralAssignment
	err := r.Pool.QueryRow(ctx, query, assetID).Scan(
		&m.AssignmentID,
		&m.AssetID,
		&m.Level,
		&m.TargetID,
		&m.AssignedAt,
		&m.AssignedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find assignment for asset "+assetID, err)
	}

	assignment := mapping.ToDomainCollateralAssignment(m)
	return &assignment, nil
}

func (r *PgxCollateralRepository) ListAssignmentsByTarget(ctx context.Context, level domain.AssignmentLevel, targetID string) ([]domain.CollateralAssignment, error) {
	query := `
		SELECT assignment_id, asset_id, level, target_id, assigned_at, assigned_by
		FROM collateral_assignments
		WHERE level = $1 AND target_id = $2
		ORDER BY assigned_at;
	`
	rows, err := r.Pool.Query(ctx, query, level, targetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assignments for target "+targetID, err)
	}
	defer rows.Close()

	modelAssignments, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CollateralAssignment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.CollateralAssignment{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect assignment rows", err)
	}

	assignments := make([]domain.CollateralAssignment, len(modelAssignments))
	for i, m := range modelAssignments {
		assignments[i] = mapping.ToDomainCollateralAssignment(m)
	}
	return assignments, nil
}
