package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
)

// allocationEpsilon tolerates rounding when checking that a custom split sums
// to the payment amount.
var allocationEpsilon = decimal.RequireFromString("0.01")

// LoanBalance is a snapshot of a loan's outstanding buckets, derived from its
// history of draws and repayments. Read-only input to the allocator; the
// caller must read it inside the same transaction that applies the result.
type LoanBalance struct {
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Fees      decimal.Decimal
}

// Total is the full outstanding balance across all buckets.
func (b LoanBalance) Total() decimal.Decimal {
	return b.Principal.Add(b.Interest).Add(b.Fees)
}

// PaymentAllocation is the split of a payment across balance buckets.
type PaymentAllocation struct {
	Fees      decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
}

// Sum is the total amount covered by the allocation.
func (a PaymentAllocation) Sum() decimal.Decimal {
	return a.Fees.Add(a.Interest).Add(a.Principal)
}

// AllocateStandard distributes a payment over a balance in the regulatory
// waterfall order: fees first, then interest, then principal. Each bucket is
// capped at its outstanding amount. A payment exceeding the total outstanding
// balance is rejected with ErrOverpayment rather than silently truncated; the
// caller decides whether to resubmit a smaller amount.
func AllocateStandard(amount decimal.Decimal, balance LoanBalance) (PaymentAllocation, error) {
	if err := validateAllocationInputs(amount, balance); err != nil {
		return PaymentAllocation{}, err
	}
	if amount.GreaterThan(balance.Total()) {
		return PaymentAllocation{}, fmt.Errorf("%w: payment %s exceeds outstanding %s",
			apperrors.ErrOverpayment, amount.String(), balance.Total().String())
	}

	remaining := amount

	fees := decimal.Min(remaining, balance.Fees)
	remaining = remaining.Sub(fees)

	interest := decimal.Min(remaining, balance.Interest)
	remaining = remaining.Sub(interest)

	principal := decimal.Min(remaining, balance.Principal)

	return PaymentAllocation{Fees: fees, Interest: interest, Principal: principal}, nil
}

// AllocateCustom accepts an explicit split supplied by the caller. The split
// must be non-negative and sum to the payment amount within allocationEpsilon;
// otherwise the request is rejected before any state mutation. Handlers
// re-run this validation server-side regardless of any client-side check.
// Bucket limits are checked separately with CheckAgainstBalance once the
// live balance is locked.
func AllocateCustom(amount decimal.Decimal, split PaymentAllocation) (PaymentAllocation, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return PaymentAllocation{}, fmt.Errorf("%w: payment amount must be positive, got %s",
			apperrors.ErrValidation, amount.String())
	}
	if split.Fees.IsNegative() || split.Interest.IsNegative() || split.Principal.IsNegative() {
		return PaymentAllocation{}, fmt.Errorf("%w: allocation components must not be negative",
			apperrors.ErrValidation)
	}
	if split.Sum().Sub(amount).Abs().GreaterThanOrEqual(allocationEpsilon) {
		return PaymentAllocation{}, fmt.Errorf("%w: split sums to %s, payment amount is %s",
			apperrors.ErrInvalidAllocation, split.Sum().String(), amount.String())
	}
	return split, nil
}

// CheckAgainstBalance verifies that no allocation component exceeds its
// outstanding bucket. Applying an allocation that passes this check can never
// drive a balance bucket negative. Callers run it against the locked balance
// before persisting a custom split.
func (a PaymentAllocation) CheckAgainstBalance(balance LoanBalance) error {
	switch {
	case a.Fees.GreaterThan(balance.Fees):
		return fmt.Errorf("%w: fees component %s exceeds outstanding fees %s",
			apperrors.ErrInvalidAllocation, a.Fees.String(), balance.Fees.String())
	case a.Interest.GreaterThan(balance.Interest):
		return fmt.Errorf("%w: interest component %s exceeds outstanding interest %s",
			apperrors.ErrInvalidAllocation, a.Interest.String(), balance.Interest.String())
	case a.Principal.GreaterThan(balance.Principal):
		return fmt.Errorf("%w: principal component %s exceeds outstanding principal %s",
			apperrors.ErrInvalidAllocation, a.Principal.String(), balance.Principal.String())
	}
	return nil
}

func validateAllocationInputs(amount decimal.Decimal, balance LoanBalance) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: payment amount must be positive, got %s",
			apperrors.ErrValidation, amount.String())
	}
	if balance.Principal.IsNegative() || balance.Interest.IsNegative() || balance.Fees.IsNegative() {
		return fmt.Errorf("%w: balance buckets must not be negative", apperrors.ErrValidation)
	}
	return nil
}
