package dto

import (
	"time"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// --- Organization DTOs ---

// CreateOrganizationRequest defines data for creating a new organization.
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateOrganizationRequest defines data for updating an organization.
type UpdateOrganizationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// OrganizationResponse defines data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"` // UserID
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy  string    `json:"lastUpdatedBy"` // UserID
}

// ToOrganizationResponse converts domain.Organization to DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Description:    o.Description,
		CreatedAt:      o.CreatedAt,
		CreatedBy:      o.CreatedBy,
		LastUpdatedAt:  o.LastUpdatedAt,
		LastUpdatedBy:  o.LastUpdatedBy,
	}
}

// ListOrganizationsResponse wraps a list of organizations.
type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

// ToListOrganizationsResponse converts a slice of domain.Organization to DTO.
func ToListOrganizationsResponse(orgs []domain.Organization) ListOrganizationsResponse {
	list := make([]OrganizationResponse, len(orgs))
	for i, o := range orgs {
		list[i] = ToOrganizationResponse(&o)
	}
	return ListOrganizationsResponse{Organizations: list}
}

// --- Membership DTOs ---

// AddUserToOrganizationRequest defines data for adding a user to an organization.
type AddUserToOrganizationRequest struct {
	UserID string                      `json:"userID" binding:"required"`
	Role   domain.UserOrganizationRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UpdateMemberRoleRequest defines data for changing a member's role.
type UpdateMemberRoleRequest struct {
	Role domain.UserOrganizationRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UserOrganizationResponse defines data returned about a user's membership.
type UserOrganizationResponse struct {
	UserID         string                      `json:"userID"`
	UserName       string                      `json:"userName"`
	OrganizationID string                      `json:"organizationID"`
	Role           domain.UserOrganizationRole `json:"role"`
	JoinedAt       time.Time                   `json:"joinedAt"`
}

// ToUserOrganizationResponse converts domain.UserOrganization to DTO.
func ToUserOrganizationResponse(uo *domain.UserOrganization) UserOrganizationResponse {
	return UserOrganizationResponse{
		UserID:         uo.UserID,
		UserName:       uo.UserName,
		OrganizationID: uo.OrganizationID,
		Role:           uo.Role,
		JoinedAt:       uo.JoinedAt,
	}
}

// ListOrganizationMembersResponse wraps the members of an organization.
type ListOrganizationMembersResponse struct {
	Members []UserOrganizationResponse `json:"members"`
}

// ToListOrganizationMembersResponse converts memberships to DTO.
func ToListOrganizationMembersResponse(members []domain.UserOrganization) ListOrganizationMembersResponse {
	list := make([]UserOrganizationResponse, len(members))
	for i, m := range members {
		list[i] = ToUserOrganizationResponse(&m)
	}
	return ListOrganizationMembersResponse{Members: list}
}
