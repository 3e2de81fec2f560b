package finance

import (
	"github.com/shopspring/decimal"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeBankExposures rolls loans and facility limits up to per-bank figures.
// Banks are emitted in the order supplied; callers needing a ranked view sort
// downstream. Loans only count while outstanding (active or overdue), and a
// bank with a zero credit limit reports zero utilization rather than dividing.
func ComputeBankExposures(banks []domain.Bank, facilities []domain.Facility, loans []domain.Loan) []domain.BankExposure {
	bankByFacility := make(map[string]string, len(facilities))
	for _, f := range facilities {
		bankByFacility[f.FacilityID] = f.BankID
	}

	outstanding := make(map[string]decimal.Decimal, len(banks))
	limits := make(map[string]decimal.Decimal, len(banks))
	for _, f := range facilities {
		limits[f.BankID] = limits[f.BankID].Add(f.CreditLimit)
	}
	for _, l := range loans {
		if !l.IsOutstanding() {
			continue
		}
		bankID, ok := bankByFacility[l.FacilityID]
		if !ok {
			continue // Loan references a facility outside the supplied set
		}
		outstanding[bankID] = outstanding[bankID].Add(l.Amount)
	}

	exposures := make([]domain.BankExposure, 0, len(banks))
	for _, b := range banks {
		exp := domain.BankExposure{
			BankID:      b.BankID,
			BankName:    b.Name,
			Outstanding: outstanding[b.BankID],
			CreditLimit: limits[b.BankID],
		}
		exp.Utilization = utilization(exp.Outstanding, exp.CreditLimit)
		exp.OverLimit = exp.Outstanding.GreaterThan(exp.CreditLimit)
		exposures = append(exposures, exp)
	}
	return exposures
}

// ComputeFacilityAvailability derives the headroom left on one facility.
// Available is limit minus outstanding and is deliberately not clamped at
// zero; negative availability signals over-utilization.
func ComputeFacilityAvailability(facility domain.Facility, loans []domain.Loan) domain.FacilityAvailability {
	out := decimal.Zero
	for _, l := range loans {
		if l.FacilityID == facility.FacilityID && l.IsOutstanding() {
			out = out.Add(l.Amount)
		}
	}
	return domain.FacilityAvailability{
		FacilityID:   facility.FacilityID,
		BankID:       facility.BankID,
		FacilityType: facility.FacilityType,
		CreditLimit:  facility.CreditLimit,
		Outstanding:  out,
		Available:    facility.CreditLimit.Sub(out),
		Utilization:  utilization(out, facility.CreditLimit),
	}
}

// ComputePortfolioSummary totals bank exposures and active collateral into
// portfolio-wide figures. LTV and coverage are nil when their denominators
// are zero; an empty portfolio is a normal business state, not an error.
func ComputePortfolioSummary(exposures []domain.BankExposure, collateral []domain.CollateralAsset) domain.PortfolioSummary {
	summary := domain.PortfolioSummary{
		TotalOutstanding:     decimal.Zero,
		TotalCreditLimit:     decimal.Zero,
		TotalCollateralValue: decimal.Zero,
	}
	for _, e := range exposures {
		summary.TotalOutstanding = summary.TotalOutstanding.Add(e.Outstanding)
		summary.TotalCreditLimit = summary.TotalCreditLimit.Add(e.CreditLimit)
	}
	for _, c := range collateral {
		if c.IsActive {
			summary.TotalCollateralValue = summary.TotalCollateralValue.Add(c.CurrentValue)
		}
	}
	summary.TotalAvailable = summary.TotalCreditLimit.Sub(summary.TotalOutstanding)

	if summary.TotalCollateralValue.IsPositive() {
		ltv := summary.TotalOutstanding.Div(summary.TotalCollateralValue).Mul(oneHundred)
		summary.PortfolioLTV = &ltv
	}
	if summary.TotalOutstanding.IsPositive() {
		coverage := summary.TotalCollateralValue.Div(summary.TotalOutstanding).Mul(oneHundred)
		summary.CoverageRatio = &coverage
	}
	return summary
}

func utilization(outstanding, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return outstanding.Div(limit).Mul(oneHundred)
}
