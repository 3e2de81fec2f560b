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
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryFacade
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

var FULL_ORGANIZATION_SELECT_QUERY = `
SELECT
	o.organization_id, o.name, o.description, o.is_active,
	o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
FROM organizations o
`

// getOrganizations private func to fetch organizations for the given filter clause
func (r *PgxOrganizationRepository) getOrganizations(ctx context.Context, filterQuery string, args ...any) ([]domain.Organization, error) {
	query := FULL_ORGANIZATION_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organizations", err)
	}
	defer rows.Close()
	domainOrgs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Organization])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) { // No rows is not an error for a list.
			return []domain.Organization{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect organization rows", err)
	}

	return domainOrgs, nil
}

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	query := `
		INSERT INTO organizations (
			organization_id, name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		org.OrganizationID,
		org.Name,
		org.Description,
		org.IsActive,
		org.CreatedAt,
		org.CreatedBy,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewAppError(409, "organization ID "+org.OrganizationID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save organization "+org.OrganizationID, err)
	}
	return nil
}

func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	query := `
		UPDATE organizations
		SET name = $1, description = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		org.Name,
		org.Description,
		org.IsActive,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
		org.OrganizationID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update organization "+org.OrganizationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `WHERE o.organization_id = $1`
	orgs, err := r.getOrganizations(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &orgs[0], nil
}

func (r *PgxOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	query := `
		JOIN user_organizations uo ON o.organization_id = uo.organization_id
		WHERE uo.user_id = $1 AND uo.role != $2 AND o.is_active = true
		ORDER BY o.name;
	`
	return r.getOrganizations(ctx, query, userID, domain.RoleRemoved)
}

func (r *PgxOrganizationRepository) ListActiveOrganizations(ctx context.Context) ([]domain.Organization, error) {
	query := `WHERE o.is_active = true ORDER BY o.organization_id;`
	return r.getOrganizations(ctx, query)
}

func (r *PgxOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	query := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, organization_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: Add user or update their role if they already exist
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.OrganizationID,
		membership.Role,
		membership.JoinedAt,
	)

	if err != nil {
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in organization "+membership.OrganizationID, err)
	}
	return nil
}

func (r *PgxOrganizationRepository) FindMembership(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
	query := `
		SELECT user_id, organization_id, role, joined_at
		FROM user_organizations
		WHERE user_id = $1 AND organization_id = $2;
	`
	var uo domain.UserOrganization
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(
		&uo.UserID,
		&uo.OrganizationID,
		&uo.Role,
		&uo.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound // User has no membership in this organization
		}
		return nil, apperrors.NewAppError(500, "failed to find membership for user "+userID+" in organization "+organizationID, err)
	}
	return &uo, nil
}

// ListMembers retrieves all memberships of an organization, excluding users
// whose role has been set to REMOVED.
func (r *PgxOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	query := `
		SELECT uo.user_id, u.name AS user_name, uo.organization_id, uo.role, uo.joined_at
		FROM user_organizations uo
		JOIN users u ON uo.user_id = u.user_id
		WHERE uo.organization_id = $1 AND uo.role != $2
		ORDER BY uo.joined_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members for organization "+organizationID, err)
	}
	defer rows.Close()

	var memberships []domain.UserOrganization
	for rows.Next() {
		var uo domain.UserOrganization
		err := rows.Scan(
			&uo.UserID,
			&uo.UserName,
			&uo.OrganizationID,
			&uo.Role,
			&uo.JoinedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan membership row", err)
		}
		memberships = append(memberships, uo)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating membership rows", err)
	}

	return memberships, nil
}

// UpdateMembershipRole updates a user's role in an organization. Setting the
// role to REMOVED revokes access without deleting the membership row.
func (r *PgxOrganizationRepository) UpdateMembershipRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole, updatedBy string, now time.Time) error {
	query := `
		UPDATE user_organizations
		SET role = $3
		WHERE user_id = $1 AND organization_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query, userID, organizationID, role)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role for user "+userID+" in organization "+organizationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Touch the organization's audit trail so role changes are attributable.
	auditQuery := `
		UPDATE organizations
		SET last_updated_at = $1, last_updated_by = $2
		WHERE organization_id = $3;
	`
	if _, err := r.Pool.Exec(ctx, auditQuery, now, updatedBy, organizationID); err != nil {
		return apperrors.NewAppError(500, "failed to record membership change on organization "+organizationID, err)
	}

	return nil
}
