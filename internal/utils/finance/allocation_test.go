package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAllocateStandard_Waterfall(t *testing.T) {
	balance := LoanBalance{
		Principal: dec("900000"),
		Interest:  dec("50000"),
		Fees:      dec("10000"),
	}

	alloc, err := AllocateStandard(dec("100000"), balance)
	require.NoError(t, err)

	assert.True(t, alloc.Fees.Equal(dec("10000")), "fees bucket drained first, got %s", alloc.Fees)
	assert.True(t, alloc.Interest.Equal(dec("50000")), "interest drained second, got %s", alloc.Interest)
	assert.True(t, alloc.Principal.Equal(dec("40000")), "remainder to principal, got %s", alloc.Principal)
	assert.True(t, alloc.Sum().Equal(dec("100000")))
}

func TestAllocateStandard_FeesPriority(t *testing.T) {
	// Fees are paid first regardless of interest/principal magnitudes.
	cases := []struct {
		name     string
		amount   string
		balance  LoanBalance
		wantFees string
	}{
		{"payment smaller than fees", "50", LoanBalance{Principal: dec("1000000"), Interest: dec("99999"), Fees: dec("100")}, "50"},
		{"payment covers fees exactly", "100", LoanBalance{Principal: dec("5"), Interest: dec("5"), Fees: dec("100")}, "100"},
		{"tiny fees huge principal", "1000", LoanBalance{Principal: dec("1000000"), Interest: dec("0"), Fees: dec("0.25")}, "0.25"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alloc, err := AllocateStandard(dec(tc.amount), tc.balance)
			require.NoError(t, err)
			assert.True(t, alloc.Fees.Equal(dec(tc.wantFees)),
				"expected fees %s, got %s", tc.wantFees, alloc.Fees)
			assert.True(t, alloc.Sum().Equal(dec(tc.amount)))
		})
	}
}

func TestAllocateStandard_BucketCaps(t *testing.T) {
	balance := LoanBalance{Principal: dec("300"), Interest: dec("200"), Fees: dec("100")}

	alloc, err := AllocateStandard(dec("600"), balance)
	require.NoError(t, err)

	assert.True(t, alloc.Fees.LessThanOrEqual(balance.Fees))
	assert.True(t, alloc.Interest.LessThanOrEqual(balance.Interest))
	assert.True(t, alloc.Principal.LessThanOrEqual(balance.Principal))
	assert.True(t, alloc.Sum().Equal(dec("600")))
}

func TestAllocateStandard_RejectsOverpayment(t *testing.T) {
	balance := LoanBalance{Principal: dec("100"), Interest: dec("10"), Fees: dec("5")}

	_, err := AllocateStandard(dec("115.01"), balance)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrOverpayment)

	// Exactly the total outstanding is not an overpayment.
	alloc, err := AllocateStandard(dec("115"), balance)
	require.NoError(t, err)
	assert.True(t, alloc.Sum().Equal(dec("115")))
}

func TestAllocateStandard_RejectsNonPositiveAmount(t *testing.T) {
	balance := LoanBalance{Principal: dec("100")}

	for _, amount := range []string{"0", "-1"} {
		_, err := AllocateStandard(dec(amount), balance)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "amount %s", amount)
	}
}

func TestAllocateStandard_RejectsNegativeBalanceBucket(t *testing.T) {
	_, err := AllocateStandard(dec("10"), LoanBalance{Principal: dec("100"), Interest: dec("-1")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAllocateCustom_SumLaw(t *testing.T) {
	amount := dec("1000.00")

	alloc, err := AllocateCustom(amount, PaymentAllocation{
		Fees: dec("100"), Interest: dec("400"), Principal: dec("500"),
	})
	require.NoError(t, err)
	assert.True(t, alloc.Sum().Equal(amount))

	_, err = AllocateCustom(amount, PaymentAllocation{
		Fees: dec("100"), Interest: dec("400"), Principal: dec("499"),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAllocation)
}

func TestAllocateCustom_EpsilonTolerance(t *testing.T) {
	amount := dec("1000.00")

	// Within epsilon (0.01 exclusive) the split is accepted.
	_, err := AllocateCustom(amount, PaymentAllocation{
		Fees: dec("100"), Interest: dec("400"), Principal: dec("499.995"),
	})
	assert.NoError(t, err)

	// Off by exactly epsilon is rejected.
	_, err = AllocateCustom(amount, PaymentAllocation{
		Fees: dec("100"), Interest: dec("400"), Principal: dec("499.99"),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAllocation)
}

func TestAllocateCustom_RejectsNegativeComponents(t *testing.T) {
	_, err := AllocateCustom(dec("100"), PaymentAllocation{
		Fees: dec("-10"), Interest: dec("60"), Principal: dec("50"),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCheckAgainstBalance_ComponentExceedsBucket(t *testing.T) {
	balance := LoanBalance{Principal: dec("1000"), Interest: dec("0"), Fees: dec("0")}

	// Sums correctly, but the fees bucket has nothing outstanding.
	alloc, err := AllocateCustom(dec("500"), PaymentAllocation{
		Fees:      dec("500"),
		Interest:  dec("0"),
		Principal: dec("0"),
	})
	require.NoError(t, err)

	err = alloc.CheckAgainstBalance(balance)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAllocation)
}

func TestCheckAgainstBalance_WithinBuckets(t *testing.T) {
	balance := LoanBalance{Principal: dec("900000"), Interest: dec("50000"), Fees: dec("10000")}
	alloc := PaymentAllocation{Fees: dec("10000"), Interest: dec("50000"), Principal: dec("900000")}

	assert.NoError(t, alloc.CheckAgainstBalance(balance))
}

func TestAllocationEndToEnd(t *testing.T) {
	// Recording a 100,000 payment against a 960,000 balance leaves only principal outstanding.
	balance := LoanBalance{Principal: dec("900000"), Interest: dec("50000"), Fees: dec("10000")}

	alloc, err := AllocateStandard(dec("100000"), balance)
	require.NoError(t, err)

	newBalance := LoanBalance{
		Principal: balance.Principal.Sub(alloc.Principal),
		Interest:  balance.Interest.Sub(alloc.Interest),
		Fees:      balance.Fees.Sub(alloc.Fees),
	}
	assert.True(t, newBalance.Principal.Equal(dec("860000")))
	assert.True(t, newBalance.Interest.IsZero())
	assert.True(t, newBalance.Fees.IsZero())
}
