package models

// Bank represents a lending institution row.
type Bank struct {
	BankID         string `db:"bank_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	Branch         string `db:"branch"`        // Nullable
	ContactEmail   string `db:"contact_email"` // Nullable
	IsActive       bool   `db:"is_active"`
	AuditFields
}
