package calculation

import (
	"math"
	"sort"

	"github.com/rpgo/savings-simulator/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultHistogramBins matches the terminal-value histogram of the reports.
const DefaultHistogramBins = 50

// BuildChartData derives every visualization series from a run's statistics
// and terminal values. The contribution baseline involves no randomness:
// initial capital plus one contribution per elapsed year.
func BuildChartData(params domain.ParameterSet, yearly []domain.YearlyStatistic, terminalValues []float64, bins int) domain.ChartData {
	horizon := len(yearly)
	data := domain.ChartData{
		TerminalValues:       terminalValues,
		MeanByYear:           make([]float64, horizon),
		ContributionBaseline: make([]float64, horizon),
		ReturnComponent:      make([]float64, horizon),
		CumulativeMean:       make([]float64, horizon),
	}

	for i, ys := range yearly {
		baseline := params.ContributedCapital(ys.Year)
		data.MeanByYear[i] = ys.Mean
		data.ContributionBaseline[i] = baseline
		data.ReturnComponent[i] = ys.Mean - baseline
	}
	// The mean of per-path running sums equals the running sum of means.
	floats.CumSum(data.CumulativeMean, data.MeanByYear)

	data.Histogram, data.NonFiniteTerminals = Histogram(terminalValues, bins)
	return data
}

// Histogram splits the finite values into equal-width bins spanning
// [min, max]. The count of dropped non-finite values is returned alongside.
func Histogram(values []float64, bins int) ([]domain.HistogramBin, int) {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	dropped := len(values) - len(finite)
	if len(finite) == 0 || bins < 1 {
		return nil, dropped
	}

	sort.Float64s(finite)
	lo, hi := finite[0], finite[len(finite)-1]
	if lo == hi {
		bins = 1
	}

	dividers := make([]float64, bins+1)
	if math.IsInf(hi-lo, 0) {
		// The width overflows; step from scaled endpoints instead.
		step := hi/float64(bins) - lo/float64(bins)
		for i := range dividers {
			dividers[i] = lo + step*float64(i)
		}
	} else {
		floats.Span(dividers, lo, hi)
	}
	// stat.Histogram bins are half-open; nudge the top edge to keep max.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, finite, nil)

	hist := make([]domain.HistogramBin, bins)
	for i := range hist {
		hist[i] = domain.HistogramBin{Lower: dividers[i], Upper: dividers[i+1], Count: int(counts[i])}
	}
	return hist, dropped
}

// LocateInHistogram finds the bin holding v and how far into the bin it lies,
// as a fraction of the bin width. The top edge of the last bin counts as
// inside it. ok is false for non-finite v or values outside the bins.
func LocateInHistogram(bins []domain.HistogramBin, v float64) (index int, offset float64, ok bool) {
	if len(bins) == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, 0, false
	}
	last := len(bins) - 1
	if v < bins[0].Lower || v > bins[last].Upper {
		return 0, 0, false
	}
	index = sort.Search(len(bins), func(i int) bool { return v < bins[i].Upper })
	if index > last {
		index = last
	}
	b := bins[index]
	// Halve both ends so the width cannot overflow.
	if width := b.Upper/2 - b.Lower/2; width > 0 {
		offset = math.Min(1, (v/2-b.Lower/2)/width)
	}
	return index, offset, true
}
