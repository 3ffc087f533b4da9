package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// moneyPlaces is the fixed precision for all hour and currency quantities.
const moneyPlaces = 2

// ParseAmount parses a currency-like string into a 2-digit decimal.
// Currency symbols, thousands separators, and surrounding whitespace are
// stripped before parsing ("$1,234.5" → 1234.50). Rounding is half-up:
// ties go away from zero, the conventional invoice rounding.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, pipelineErrorf(ErrInvalidAmount, -1, "not a valid decimal: %q", raw)
	}
	// decimal.Round rounds ties away from zero.
	return d.Round(moneyPlaces), nil
}

// MultiplyMoney returns a*b rounded half-up to 2 fractional digits.
func MultiplyMoney(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Round(moneyPlaces)
}

// AddMoney returns a+b. Addition of 2-digit operands is exact; no further
// rounding is applied.
func AddMoney(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// FormatAmount renders a decimal with exactly 2 fractional digits for
// display and JSON serialization.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(moneyPlaces)
}
