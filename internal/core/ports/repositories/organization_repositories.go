package repositories

import (
	"context"
	"time"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizationsByUserID retrieves the organizations a user belongs to.
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error)

	// FindMembership retrieves a user's membership in an organization.
	FindMembership(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error)

	// ListMembers retrieves all memberships of an organization.
	ListMembers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error)

	// ListActiveOrganizations retrieves every active organization. Used by the
	// reminder sweep, which runs outside any user context.
	ListActiveOrganizations(ctx context.Context) ([]domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, org domain.Organization) error

	// UpdateOrganization updates an existing organization's details.
	UpdateOrganization(ctx context.Context, org domain.Organization) error

	// AddUserToOrganization persists a membership.
	AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error

	// UpdateMembershipRole changes a member's role (REMOVED revokes access).
	UpdateMembershipRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole, updatedBy string, now time.Time) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
