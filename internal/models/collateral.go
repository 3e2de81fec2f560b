package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollateralAsset represents a pledgeable asset row.
type CollateralAsset struct {
	AssetID        string          `db:"asset_id"`
	OrganizationID string          `db:"organization_id"`
	Name           string          `db:"name"`
	CollateralType string          `db:"collateral_type"`
	CurrentValue   decimal.Decimal `db:"current_value"`
	ValuationDate  time.Time       `db:"valuation_date"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// CollateralAssignment links an asset to exactly one of bank/facility/credit line.
type CollateralAssignment struct {
	AssignmentID string    `db:"assignment_id"`
	AssetID      string    `db:"asset_id"`
	Level        string    `db:"level"`
	TargetID     string    `db:"target_id"`
	AssignedAt   time.Time `db:"assigned_at"`
	AssignedBy   string    `db:"assigned_by"`
}
