package domain

import "time"

// Organization represents an isolated tenant containing banks, facilities, loans, etc.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (e.g., UUID)
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// UserOrganizationRole defines the possible roles a user can have within an organization.
type UserOrganizationRole string

const (
	RoleAdmin    UserOrganizationRole = "ADMIN"
	RoleMember   UserOrganizationRole = "MEMBER"
	RoleReadOnly UserOrganizationRole = "READONLY" // Users with read-only access to organization data
	RoleRemoved  UserOrganizationRole = "REMOVED"  // For users who have been removed from the organization
)

// UserOrganization represents the membership of a User in an Organization.
type UserOrganization struct {
	UserID         string               `json:"userID"`
	UserName       string               `json:"userName"`
	OrganizationID string               `json:"organizationID"`
	Role           UserOrganizationRole `json:"role"`
	JoinedAt       time.Time            `json:"joinedAt"`
}
