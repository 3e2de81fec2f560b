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

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank data.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBankRepository implements portsrepo.BankRepositoryFacade
var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

var FULL_BANK_SELECT_QUERY = `
SELECT
	b.bank_id, b.organization_id, b.name, b.branch, b.contact_email, b.is_active,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
FROM banks b
`

func (r *PgxBankRepository) getBanks(ctx context.Context, filterQuery string, args ...any) ([]domain.Bank, error) {
	query := FULL_BANK_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query banks", err)
	}
	defer rows.Close()
	modelBanks, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Bank])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Bank{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect bank rows", err)
	}

	return mapping.ToDomainBankSlice(modelBanks), nil
}

func (r *PgxBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	m := mapping.ToModelBank(bank)
	query := `
		INSERT INTO banks (
			bank_id, organization_id, name, branch, contact_email, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankID,
		m.OrganizationID,
		m.Name,
		m.Branch,
		m.ContactEmail,
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
				return apperrors.NewAppError(409, "bank ID "+bank.BankID+" already exists", apperrors.ErrDuplicate)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewAppError(400, "organization does not exist", apperrors.ErrValidation)
			}
		}
		return apperrors.NewAppError(500, "failed to save bank "+bank.BankID, err)
	}
	return nil
}

func (r *PgxBankRepository) UpdateBank(ctx context.Context, bank domain.Bank) error {
	m := mapping.ToModelBank(bank)
	query := `
		UPDATE banks
		SET name = $1, branch = $2, contact_email = $3, last_updated_at = $4, last_updated_by = $5
		WHERE bank_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Branch,
		m.ContactEmail,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.BankID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bank "+bank.BankID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankRepository) DeactivateBank(ctx context.Context, bankID string, userID string, now time.Time) error {
	query := `
		UPDATE banks
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE bank_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, bankID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate bank "+bankID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	query := `WHERE b.bank_id = $1`
	banks, err := r.getBanks(ctx, query, bankID)
	if err != nil {
		return nil, err
	}
	if len(banks) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &banks[0], nil
}

func (r *PgxBankRepository) ListBanks(ctx context.Context, organizationID string) ([]domain.Bank, error) {
	query := `WHERE b.organization_id = $1 ORDER BY b.created_at;`
	return r.getBanks(ctx, query, organizationID)
}
