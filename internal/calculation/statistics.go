package calculation

import (
	"math"
	"sort"

	"github.com/rpgo/savings-simulator/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Percentile bands reported for every distribution.
const (
	LowerPercentile = 5.0
	UpperPercentile = 95.0
)

// TerminalStats summarizes every path's final value.
func TerminalStats(ensemble *domain.Ensemble) domain.TerminalStatistic {
	mean, p5, p95 := summarize(ensemble.TerminalValues())
	return domain.TerminalStatistic{Mean: mean, P5: p5, P95: p95}
}

// YearlyStats summarizes each year's column of values, in year order.
func YearlyStats(ensemble *domain.Ensemble) []domain.YearlyStatistic {
	horizon := ensemble.Params.HorizonYears()
	stats := make([]domain.YearlyStatistic, horizon)
	for year := 1; year <= horizon; year++ {
		mean, p5, p95 := summarize(ensemble.Column(year))
		stats[year-1] = domain.YearlyStatistic{Year: year, Mean: mean, P5: p5, P95: p95}
	}
	return stats
}

func summarize(values []float64) (mean, p5, p95 float64) {
	sorted := sortedCopy(values)
	return Mean(values), percentileSorted(sorted, LowerPercentile), percentileSorted(sorted, UpperPercentile)
}

// Mean is the arithmetic mean. Non-finite inputs propagate.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// Percentile returns the p-th percentile (0..100) of values using linear
// interpolation between closest ranks: rank = p/100*(n-1). values is not
// modified. Any NaN input yields NaN.
func Percentile(values []float64, p float64) float64 {
	return percentileSorted(sortedCopy(values), p)
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(p) {
		return math.NaN()
	}
	// sort.Float64s orders NaN first.
	if math.IsNaN(sorted[0]) {
		return math.NaN()
	}
	p = math.Max(0, math.Min(100, p))

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi || sorted[lo] == sorted[hi] {
		return sorted[lo]
	}
	// Interpolate from the nearer neighbour, matching numpy's "linear" method
	// bit for bit.
	frac := rank - float64(lo)
	diff := sorted[hi] - sorted[lo]
	if frac >= 0.5 {
		return sorted[hi] - diff*(1-frac)
	}
	return sorted[lo] + diff*frac
}
