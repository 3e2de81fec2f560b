package services

import (
	"context"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves organizations a user belongs to.
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)

	// ListOrganizationMembers retrieves all users and their roles for an organization.
	// Only members of the organization can access this data.
	ListOrganizationMembers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization with the creator as admin.
	CreateOrganization(ctx context.Context, name, description, creatorUserID string) (*domain.Organization, error)

	// UpdateOrganization updates an organization's name/description.
	UpdateOrganization(ctx context.Context, organizationID, name, description, requestingUserID string) (*domain.Organization, error)
}

// OrganizationMembershipSvc defines operations for managing membership
type OrganizationMembershipSvc interface {
	// AddUserToOrganization adds a user with a specific role. Admin only.
	AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error

	// RemoveUserFromOrganization marks a member as removed. Admin only.
	RemoveUserFromOrganization(ctx context.Context, requestingUserID, targetUserID, organizationID string) error

	// UpdateUserOrganizationRole updates a member's role. Admin only.
	UpdateUserOrganizationRole(ctx context.Context, requestingUserID, targetUserID, organizationID string, newRole domain.UserOrganizationRole) error
}

// OrganizationAuthorizerSvc defines operations for organization authorization
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for an organization.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
	OrganizationMembershipSvc
	OrganizationAuthorizerSvc
}
