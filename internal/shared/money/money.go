// Package money holds the fixed-point helpers shared by catalog prices, cart quotes and order totals.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits used when amounts are presented.
const Scale = 2

// DefaultTaxRate is applied to cart subtotals when no rate is configured.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Format renders an amount with exactly two decimals, e.g. "22.68".
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(Scale)
}

// Round rounds half away from zero to two decimals.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Scale)
}

// Parse reads a decimal amount, rejecting blank input.
func Parse(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	return decimal.NewFromString(raw)
}

// ParseRate reads a tax rate expressed as a fraction in [0, 1).
func ParseRate(raw string) (decimal.Decimal, error) {
	rate, err := Parse(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("rate %s must be between 0 and 1", rate.String())
	}
	return rate, nil
}
