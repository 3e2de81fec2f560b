package domain

// Bank represents a lending institution granting credit facilities to an organization.
type Bank struct {
	BankID         string `json:"bankID"` // Primary Key (e.g., UUID)
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Branch         string `json:"branch"`       // Nullable branch name
	ContactEmail   string `json:"contactEmail"` // Nullable relationship-manager contact
	IsActive       bool   `json:"isActive"`
	AuditFields
}
