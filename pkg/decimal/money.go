package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a finite float64.
// Callers holding simulation output should go through FormatAmount, which
// tolerates NaN and infinities.
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// Round rounds the money amount to cents using banker's rounding
func (m Money) Round() Money {
	return Money{m.Decimal.RoundBank(2)}
}

// Whole rounds to whole currency units, half to even.
func (m Money) Whole() Money {
	return Money{m.Decimal.RoundBank(0)}
}

// String returns the string representation with proper formatting
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// IsFinite reports whether v can be represented as Money.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RoundWhole rounds a capital value to whole units, half to even. Non-finite
// values are returned unchanged.
func RoundWhole(v float64) float64 {
	if !IsFinite(v) {
		return v
	}
	return NewMoney(v).Whole().InexactFloat64()
}

// FormatAmount renders v with a fixed number of decimal places. NaN and
// infinities render as "NaN", "+Inf" and "-Inf".
func FormatAmount(v float64, places int32) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return NewMoney(v).Decimal.RoundBank(places).StringFixed(places)
}
