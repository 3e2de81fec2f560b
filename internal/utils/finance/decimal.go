package finance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
)

// ParseAmount parses a decimal string submitted by a client or read from an
// external source. Malformed input fails with a validation error instead of
// being coerced to zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: amount must not be empty", apperrors.ErrValidation)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a valid decimal amount", apperrors.ErrValidation, s)
	}
	return d, nil
}
