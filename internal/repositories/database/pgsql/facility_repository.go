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

type PgxFacilityRepository struct {
	BaseRepository
}

// newPgxFacilityRepository creates a new repository for facility and credit line data.
func newPgxFacilityRepository(pool *pgxpool.Pool) portsrepo.FacilityRepositoryFacade {
	return &PgxFacilityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFacilityRepository implements portsrepo.FacilityRepositoryFacade
var _ portsrepo.FacilityRepositoryFacade = (*PgxFacilityRepository)(nil)

var FULL_FACILITY_SELECT_QUERY = `
SELECT
	f.facility_id, f.organization_id, f.bank_id, f.facility_type,
	f.credit_limit, f.cost_of_funding, f.start_date, f.expiry_date, f.is_active,
	f.created_at, f.created_by, f.last_updated_at, f.last_updated_by
FROM facilities f
`

var FULL_CREDIT_LINE_SELECT_QUERY = `
SELECT
	cl.credit_line_id, cl.organization_id, cl.facility_id, cl.name, cl.credit_limit, cl.is_active,
	cl.created_at, cl.created_by, cl.last_updated_at, cl.last_updated_by
FROM credit_lines cl
`

func (r *PgxFacilityRepository) getFacilities(ctx context.Context, filterQuery string, args ...any) ([]domain.Facility, error) {
	query := FULL_FACILITY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query facilities", err)
	}
	defer rows.Close()
	modelFacilities, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Facility])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Facility{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect facility rows", err)
	}

	return mapping.ToDomainFacilitySlice(modelFacilities), nil
}

func (r *PgxFacilityRepository) getCreditLines(ctx context.Context, filterQuery string, args ...any) ([]domain.CreditLine, error) {
	query := FULL_CREDIT_LINE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query credit lines", err)
	}
	defer rows.Close()
	modelLines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CreditLine])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.CreditLine{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect credit line rows", err)
	}

	return mapping.ToDomainCreditLineSlice(modelLines), nil
}

func (r *PgxFacilityRepository) SaveFacility(ctx context.Context, facility domain.Facility) error {
	m := mapping.ToModelFacility(facility)
	query := `
		INSERT INTO facilities (
			facility_id, organization_id, bank_id, facility_type,
			credit_limit, cost_of_funding, start_date, expiry_date, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FacilityID,
		m.OrganizationID,
		m.BankID,
		m.FacilityType,
		m.CreditLimit,
		m.CostOfFunding,
		m.StartDate,
		m.ExpiryDate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewAppError(409, "facility ID "+facility.FacilityID+" already exists", apperrors.ErrDuplicate)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewAppError(400, "bank does not exist", apperrors.ErrValidation)
			}
		}
		return apperrors.NewAppError(500, "failed to save facility "+facility.FacilityID, err)
	}
	return nil
}

func (r *PgxFacilityRepository) UpdateFacility(ctx context.Context, facility domain.Facility) error {
	m := mapping.ToModelFacility(facility)
	query := `
		UPDATE facilities
		SET facility_type = $1, credit_limit = $2, cost_of_funding = $3,
		    start_date = $4, expiry_date = $5, last_updated_at = $6, last_updated_by = $7
		WHERE facility_id = $8;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.FacilityType,
		m.CreditLimit,
		m.CostOfFunding,
		m.StartDate,
		m.ExpiryDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.FacilityID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update facility "+facility.FacilityID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFacilityRepository) DeactivateFacility(ctx context.Context, facilityID string, userID string, now time.Time) error {
	query := `
		UPDATE facilities
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE facility_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, facilityID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate facility "+facilityID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFacilityRepository) FindFacilityByID(ctx context.Context, facilityID string) (*domain.Facility, error) {
	query := `WHERE f.facility_id = $1`
	facilities, err := r.getFacilities(ctx, query, facilityID)
	if err != nil {
		return nil, err
	}
	if len(facilities) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &facilities[0], nil
}

func (r *PgxFacilityRepository) ListFacilities(ctx context.Context, organizationID string) ([]domain.Facility, error) {
	query := `WHERE f.organization_id = $1 ORDER BY f.created_at;`
	return r.getFacilities(ctx, query, organizationID)
}

func (r *PgxFacilityRepository) ListFacilitiesByBank(ctx context.Context, bankID string) ([]domain.Facility, error) {
	query := `WHERE f.bank_id = $1 ORDER BY f.created_at;`
	return r.getFacilities(ctx, query, bankID)
}

func (r *PgxFacilityRepository) SaveCreditLine(ctx context.Context, line domain.CreditLine) error {
	m := mapping.ToModelCreditLine(line)
	query := `
		INSERT INTO credit_lines (
			credit_line_id, organization_id, facility_id, name, credit_limit, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CreditLineID,
		m.OrganizationID,
		m.FacilityID,
		m.Name,
		m.CreditLimit,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewAppError(409, "credit line ID "+line.CreditLineID+" already exists", apperrors.ErrDuplicate)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewAppError(400, "facility does not exist", apperrors.ErrValidation)
			}
		}
		return apperrors.NewAppError(500, "failed to save credit line "+line.CreditLineID, err)
	}
	return nil
}

func (r *PgxFacilityRepository) DeactivateCreditLine(ctx context.Context, creditLineID string, userID string, now time.Time) error {
	query := `
		UPDATE credit_lines
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE credit_line_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, creditLineID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate credit line "+creditLineID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFacilityRepository) FindCreditLineByID(ctx context.Context, creditLineID string) (*domain.CreditLine, error) {
	query := `WHERE cl.credit_line_id = $1`
	lines, err := r.getCreditLines(ctx, query, creditLineID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &lines[0], nil
}

func (r *PgxFacilityRepository) ListCreditLines(ctx context.Context, facilityID string) ([]domain.CreditLine, error) {
	query := `WHERE cl.facility_id = $1 ORDER BY cl.created_at;`
	return r.getCreditLines(ctx, query, facilityID)
}
