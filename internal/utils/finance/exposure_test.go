package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

func TestComputeBankExposures_RollsUpByBank(t *testing.T) {
	banks := []domain.Bank{{BankID: "bank-x", Name: "Bank X"}}
	facilities := []domain.Facility{
		{FacilityID: "fac-1", BankID: "bank-x", CreditLimit: dec("5000000")},
		{FacilityID: "fac-2", BankID: "bank-x", CreditLimit: dec("3000000")},
	}
	loans := []domain.Loan{
		{LoanID: "loan-1", FacilityID: "fac-1", Amount: dec("2000000"), Status: domain.LoanActive},
	}

	exposures := ComputeBankExposures(banks, facilities, loans)
	require.Len(t, exposures, 1)

	exp := exposures[0]
	assert.Equal(t, "bank-x", exp.BankID)
	assert.True(t, exp.Outstanding.Equal(dec("2000000")), "outstanding %s", exp.Outstanding)
	assert.True(t, exp.CreditLimit.Equal(dec("8000000")), "credit limit %s", exp.CreditLimit)
	assert.True(t, exp.Utilization.Equal(dec("25")), "utilization %s", exp.Utilization)
	assert.False(t, exp.OverLimit)
}

func TestComputeBankExposures_ExcludesSettledAndCancelled(t *testing.T) {
	banks := []domain.Bank{{BankID: "b1", Name: "B1"}}
	facilities := []domain.Facility{{FacilityID: "f1", BankID: "b1", CreditLimit: dec("1000")}}
	loans := []domain.Loan{
		{FacilityID: "f1", Amount: dec("100"), Status: domain.LoanActive},
		{FacilityID: "f1", Amount: dec("200"), Status: domain.LoanOverdue},
		{FacilityID: "f1", Amount: dec("400"), Status: domain.LoanSettled},
		{FacilityID: "f1", Amount: dec("800"), Status: domain.LoanCancelled},
	}

	exposures := ComputeBankExposures(banks, facilities, loans)
	require.Len(t, exposures, 1)
	// Active and overdue count; settled and cancelled are out immediately.
	assert.True(t, exposures[0].Outstanding.Equal(dec("300")), "outstanding %s", exposures[0].Outstanding)
}

func TestComputeBankExposures_ZeroLimitGuard(t *testing.T) {
	banks := []domain.Bank{{BankID: "b1", Name: "No Facilities Yet"}}

	exposures := ComputeBankExposures(banks, nil, nil)
	require.Len(t, exposures, 1)
	assert.True(t, exposures[0].Utilization.IsZero())
	assert.True(t, exposures[0].Outstanding.IsZero())
	assert.True(t, exposures[0].CreditLimit.IsZero())
}

func TestComputeBankExposures_PreservesInputOrder(t *testing.T) {
	banks := []domain.Bank{
		{BankID: "b3", Name: "Third"},
		{BankID: "b1", Name: "First"},
		{BankID: "b2", Name: "Second"},
	}

	exposures := ComputeBankExposures(banks, nil, nil)
	require.Len(t, exposures, 3)
	assert.Equal(t, "b3", exposures[0].BankID)
	assert.Equal(t, "b1", exposures[1].BankID)
	assert.Equal(t, "b2", exposures[2].BankID)
}

func TestComputeBankExposures_OverLimitFlagged(t *testing.T) {
	banks := []domain.Bank{{BankID: "b1", Name: "B1"}}
	facilities := []domain.Facility{{FacilityID: "f1", BankID: "b1", CreditLimit: dec("1000")}}
	loans := []domain.Loan{{FacilityID: "f1", Amount: dec("1500"), Status: domain.LoanActive}}

	exposures := ComputeBankExposures(banks, facilities, loans)
	require.Len(t, exposures, 1)
	assert.True(t, exposures[0].OverLimit)
	assert.True(t, exposures[0].Utilization.Equal(dec("150")))
}

func TestComputeFacilityAvailability_NegativeNotClamped(t *testing.T) {
	facility := domain.Facility{FacilityID: "f1", BankID: "b1", CreditLimit: dec("1000")}
	loans := []domain.Loan{
		{FacilityID: "f1", Amount: dec("800"), Status: domain.LoanActive},
		{FacilityID: "f1", Amount: dec("500"), Status: domain.LoanOverdue},
		{FacilityID: "other", Amount: dec("999"), Status: domain.LoanActive},
	}

	avail := ComputeFacilityAvailability(facility, loans)
	assert.True(t, avail.Outstanding.Equal(dec("1300")))
	assert.True(t, avail.Available.Equal(dec("-300")), "available %s", avail.Available)
}

func TestComputePortfolioSummary(t *testing.T) {
	exposures := []domain.BankExposure{
		{BankID: "b1", Outstanding: dec("2000000"), CreditLimit: dec("8000000")},
		{BankID: "b2", Outstanding: dec("1000000"), CreditLimit: dec("2000000")},
	}
	collateral := []domain.CollateralAsset{
		{CurrentValue: dec("4000000"), IsActive: true},
		{CurrentValue: dec("2000000"), IsActive: true},
		{CurrentValue: dec("9999999"), IsActive: false}, // deactivated assets don't cover anything
	}

	summary := ComputePortfolioSummary(exposures, collateral)
	assert.True(t, summary.TotalOutstanding.Equal(dec("3000000")))
	assert.True(t, summary.TotalCreditLimit.Equal(dec("10000000")))
	assert.True(t, summary.TotalAvailable.Equal(dec("7000000")))
	assert.True(t, summary.TotalCollateralValue.Equal(dec("6000000")))

	require.NotNil(t, summary.PortfolioLTV)
	assert.True(t, summary.PortfolioLTV.Equal(dec("50")), "ltv %s", summary.PortfolioLTV)
	require.NotNil(t, summary.CoverageRatio)
	assert.True(t, summary.CoverageRatio.Equal(dec("200")), "coverage %s", summary.CoverageRatio)
}

func TestComputePortfolioSummary_ZeroDenominators(t *testing.T) {
	// No collateral: LTV undefined. No outstanding: coverage undefined.
	summary := ComputePortfolioSummary([]domain.BankExposure{
		{Outstanding: dec("100"), CreditLimit: dec("500")},
	}, nil)
	assert.Nil(t, summary.PortfolioLTV)
	require.NotNil(t, summary.CoverageRatio)
	assert.True(t, summary.CoverageRatio.IsZero())

	summary = ComputePortfolioSummary(nil, []domain.CollateralAsset{
		{CurrentValue: dec("100"), IsActive: true},
	})
	assert.Nil(t, summary.CoverageRatio)
	require.NotNil(t, summary.PortfolioLTV)
	assert.True(t, summary.PortfolioLTV.IsZero())
}
