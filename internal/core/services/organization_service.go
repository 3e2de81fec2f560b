package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
	portsrepo "github.com/tamkeenlabs/facility_management_app/internal/core/ports/repositories"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/middleware"
)

// roleRank orders membership roles for authorization checks.
// REMOVED is intentionally absent: a removed member never passes.
var roleRank = map[domain.UserOrganizationRole]int{
	domain.RoleReadOnly: 1,
	domain.RoleMember:   2,
	domain.RoleAdmin:    3,
}

// OrganizationService handles business logic related to organizations and memberships.
type OrganizationService struct {
	organizationRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(or portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &OrganizationService{
		organizationRepo: or,
	}
}

var _ portssvc.OrganizationSvcFacade = (*OrganizationService)(nil)

// CreateOrganization creates a new organization and makes the creator the initial admin.
func (s *OrganizationService) CreateOrganization(ctx context.Context, name, description, creatorUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: organization name is required", apperrors.ErrValidation)
	}

	now := time.Now()
	newOrganizationID := uuid.NewString()

	organization := domain.Organization{
		OrganizationID: newOrganizationID,
		Name:           name,
		Description:    description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.organizationRepo.SaveOrganization(ctx, organization); err != nil {
		logger.Error("Failed to save organization in repository", slog.String("error", err.Error()), slog.String("organization_name", name))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	// Add the creator as the initial admin
	membership := domain.UserOrganization{
		UserID:         creatorUserID,
		OrganizationID: newOrganizationID,
		Role:           domain.RoleAdmin,
		JoinedAt:       now,
	}
	if err := s.organizationRepo.AddUserToOrganization(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new organization", slog.String("error", err.Error()), slog.String("organization_id", newOrganizationID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	logger.Info("Organization created successfully", slog.String("organization_id", newOrganizationID), slog.String("creator_user_id", creatorUserID))
	return &organization, nil
}

// UpdateOrganization updates an organization's name/description. Admin only.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, organizationID, name, description, requestingUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	organization, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		organization.Name = name
	}
	if description != "" {
		organization.Description = description
	}
	organization.LastUpdatedAt = time.Now()
	organization.LastUpdatedBy = requestingUserID

	if err := s.organizationRepo.UpdateOrganization(ctx, *organization); err != nil {
		logger.Error("Failed to update organization in repository", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to update organization %s: %w", organizationID, err)
	}

	return organization, nil
}

// AddUserToOrganization adds a user to an organization with a specific role.
func (s *OrganizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	if role == domain.RoleRemoved {
		return fmt.Errorf("%w: cannot add a user with role REMOVED", apperrors.ErrValidation)
	}

	now := time.Now()
	membership := domain.UserOrganization{
		UserID:         targetUserID,
		OrganizationID: organizationID,
		Role:           role,
		JoinedAt:       now,
	}

	if err := s.organizationRepo.AddUserToOrganization(ctx, membership); err != nil {
		logger.Error("Failed to add user to organization in repository", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to add user %s to organization %s: %w", targetUserID, organizationID, err)
	}

	logger.Info("User added to organization successfully", slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID), slog.String("role", string(role)), slog.String("added_by_user_id", addingUserID))
	return nil
}

// RemoveUserFromOrganization marks a member as removed. Admin only.
// Removal is a role change, not a row delete, so historical audit references stay intact.
func (s *OrganizationService) RemoveUserFromOrganization(ctx context.Context, requestingUserID, targetUserID, organizationID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: admins cannot remove themselves", apperrors.ErrValidation)
	}

	if err := s.organizationRepo.UpdateMembershipRole(ctx, targetUserID, organizationID, domain.RoleRemoved, requestingUserID, time.Now()); err != nil {
		logger.Error("Failed to mark user as removed from organization", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to remove user %s from organization %s: %w", targetUserID, organizationID, err)
	}

	logger.Info("User removed from organization", slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID), slog.String("removed_by_user_id", requestingUserID))
	return nil
}

// UpdateUserOrganizationRole updates a member's role. Admin only.
func (s *OrganizationService) UpdateUserOrganizationRole(ctx context.Context, requestingUserID, targetUserID, organizationID string, newRole domain.UserOrganizationRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, ok := roleRank[newRole]; !ok {
		return fmt.Errorf("%w: invalid role %s", apperrors.ErrValidation, newRole)
	}

	if err := s.organizationRepo.UpdateMembershipRole(ctx, targetUserID, organizationID, newRole, requestingUserID, time.Now()); err != nil {
		logger.Error("Failed to update membership role", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to update role for user %s in organization %s: %w", targetUserID, organizationID, err)
	}

	logger.Info("Membership role updated", slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID), slog.String("new_role", string(newRole)))
	return nil
}

// ListUserOrganizations retrieves the list of organizations a given user belongs to.
func (s *OrganizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	organizations, err := s.organizationRepo.ListOrganizationsByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to list organizations for user from repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list organizations for user %s: %w", userID, err)
	}

	if organizations == nil {
		return []domain.Organization{}, nil // Return empty slice, not nil
	}

	logger.Debug("Organizations listed successfully for user", slog.String("user_id", userID), slog.Int("count", len(organizations)))
	return organizations, nil
}

// ListOrganizationMembers retrieves all memberships for an organization.
func (s *OrganizationService) ListOrganizationMembers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	members, err := s.organizationRepo.ListMembers(ctx, organizationID)
	if err != nil {
		logger.Error("Failed to list organization members from repository", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list members of organization %s: %w", organizationID, err)
	}

	return members, nil
}

// FindOrganizationByID retrieves an organization by its ID.
func (s *OrganizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	organization, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find organization by ID in repository", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	logger.Debug("Organization found by ID", slog.String("organization_id", organizationID))
	return organization, nil
}

// AuthorizeUserAction checks if a user has the required role (or higher) within an organization.
// Returns apperrors.ErrNotFound if the user is not a member at all, so membership
// existence is not revealed to outsiders. Returns apperrors.ErrForbidden when the
// member's role ranks below the required one.
func (s *OrganizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.organizationRepo.FindMembership(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user or organization not found, or user not a member", slog.String("user_id", userID), slog.String("organization_id", organizationID))
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user organization role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	userRank, ok := roleRank[membership.Role]
	if !ok {
		// REMOVED or unknown role
		logger.Warn("Authorization failed: membership is not active", slog.String("user_id", userID), slog.String("organization_id", organizationID), slog.String("user_role", string(membership.Role)))
		return apperrors.ErrForbidden
	}

	requiredRank, ok := roleRank[requiredRole]
	if !ok || userRank < requiredRank {
		logger.Warn("Authorization failed: user lacks required role", slog.String("user_id", userID), slog.String("organization_id", organizationID), slog.String("user_role", string(membership.Role)), slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}
