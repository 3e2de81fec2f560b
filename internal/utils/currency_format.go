package utils

import (
	"github.com/shopspring/decimal"
)

// sarPrecision is the halala precision of the Saudi riyal.
const sarPrecision = 2

// FormatSAR renders an amount in Saudi riyals.
// Example: amount 1500000.5 returns "SAR 1500000.50"
func FormatSAR(amount decimal.Decimal) string {
	return "SAR " + amount.StringFixed(sarPrecision)
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function for non-riyal precisions
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
