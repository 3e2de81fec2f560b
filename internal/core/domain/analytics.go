package domain

import "github.com/shopspring/decimal"

// BankExposure is a derived, never-persisted rollup of a bank's position.
// It is recomputed from current Bank/Facility/Loan state on every read.
type BankExposure struct {
	BankID      string          `json:"bankID"`
	BankName    string          `json:"bankName"`
	Outstanding decimal.Decimal `json:"outstanding"` // Sum of outstanding loan amounts
	CreditLimit decimal.Decimal `json:"creditLimit"` // Sum of facility limits
	Utilization decimal.Decimal `json:"utilization"` // Outstanding / CreditLimit * 100, 0 when limit is 0
	OverLimit   bool            `json:"overLimit"`   // Soft business signal; never rejected
}

// FacilityAvailability is the derived headroom on a single facility.
type FacilityAvailability struct {
	FacilityID   string          `json:"facilityID"`
	BankID       string          `json:"bankID"`
	FacilityType FacilityType    `json:"facilityType"`
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Available    decimal.Decimal `json:"available"` // Limit - outstanding; may be negative
	Utilization  decimal.Decimal `json:"utilization"`
}

// PortfolioSummary rolls all bank exposures and collateral into org-wide figures.
// Ratio fields are nil when their denominator is zero ("no data" is a normal state).
type PortfolioSummary struct {
	TotalOutstanding     decimal.Decimal  `json:"totalOutstanding"`
	TotalCreditLimit     decimal.Decimal  `json:"totalCreditLimit"`
	TotalAvailable       decimal.Decimal  `json:"totalAvailable"` // May be negative when over-utilized
	TotalCollateralValue decimal.Decimal  `json:"totalCollateralValue"`
	PortfolioLTV         *decimal.Decimal `json:"portfolioLtv,omitempty"`  // Outstanding / collateral * 100
	CoverageRatio        *decimal.Decimal `json:"coverageRatio,omitempty"` // Collateral / outstanding * 100
}
