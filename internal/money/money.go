// Package money holds the two-decimal arithmetic shared by the split,
// balance and settlement code. Amounts are shopspring decimals so that
// repeated additions never drift the way float64 cents do.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tolerance is the largest difference still treated as "equal" (one cent).
var Tolerance = decimal.New(1, -2)

// Hundred is used for percentage math.
var Hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Add returns round2(a + b).
func Add(a, b decimal.Decimal) decimal.Decimal {
	return Round2(a.Add(b))
}

// Sum adds all values, rounding after each addition.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = Add(total, v)
	}
	return total
}

// NearZero reports whether |d| <= Tolerance.
func NearZero(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Tolerance)
}

// Within reports whether a and b differ by at most Tolerance.
func Within(a, b decimal.Decimal) bool {
	return NearZero(a.Sub(b))
}

// FromFloat converts a JSON number into a decimal rounded to cents.
func FromFloat(f float64) decimal.Decimal {
	return Round2(decimal.NewFromFloat(f))
}

// Float converts a decimal back to float64 for JSON responses.
func Float(d decimal.Decimal) float64 {
	f, _ := Round2(d).Float64()
	return f
}

// Format renders d with exactly two decimals, e.g. "300.00".
func Format(d decimal.Decimal) string {
	return Round2(d).StringFixed(2)
}

// Parse reads a decimal amount from text.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
