package output

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/rpgo/savings-simulator/pkg/decimal"
)

// FormatWhole rounds to whole units (half to even) and groups thousands.
// Non-finite values render as NaN, +Inf or -Inf.
func FormatWhole(v float64) string {
	if !decimal.IsFinite(v) {
		return decimal.FormatAmount(v, 0)
	}
	r := decimal.RoundWhole(v)
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return humanize.Commaf(r)
}

// FormatCurrency is FormatWhole with a dollar sign.
func FormatCurrency(v float64) string {
	if !decimal.IsFinite(v) {
		return FormatWhole(v)
	}
	if decimal.RoundWhole(v) < 0 {
		return "-$" + FormatWhole(math.Abs(v))
	}
	return "$" + FormatWhole(v)
}

// FormatPercentage renders a fraction (0.04) as a percentage ("4.00%").
func FormatPercentage(fraction float64) string {
	return decimal.FormatAmount(fraction*100, 2) + "%"
}

// formatCents renders v to the cent without grouping, for machine-readable
// exports.
func formatCents(v float64) string {
	if !decimal.IsFinite(v) {
		return decimal.FormatAmount(v, 2)
	}
	return decimal.NewMoney(v).Round().String()
}

func intToString(i int) string { return strconv.Itoa(i) }
