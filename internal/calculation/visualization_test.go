package calculation

import (
	"math"
	"testing"

	"github.com/rpgo/savings-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}
	hist, dropped := Histogram(values, 5)

	require.Len(t, hist, 5)
	assert.Zero(t, dropped)
	assert.Equal(t, 0.0, hist[0].Lower)
	assert.Equal(t, 2.0, hist[0].Upper)
	assert.Equal(t, []int{2, 2, 2, 2, 2}, binCounts(hist))
}

func TestHistogram_EdgeCases(t *testing.T) {
	t.Run("all equal", func(t *testing.T) {
		hist, _ := Histogram([]float64{20000, 20000, 20000}, 50)
		require.Len(t, hist, 1)
		assert.Equal(t, 3, hist[0].Count)
	})

	t.Run("non-finite dropped", func(t *testing.T) {
		hist, dropped := Histogram([]float64{1, math.NaN(), 2, math.Inf(1), 3}, 2)
		assert.Equal(t, 2, dropped)
		assert.Equal(t, 3, sum(binCounts(hist)))
	})

	t.Run("span wider than float range", func(t *testing.T) {
		hist, dropped := Histogram([]float64{-1e308, 0, 1e308}, 50)
		require.Len(t, hist, 50)
		assert.Zero(t, dropped)
		assert.Equal(t, -1e308, hist[0].Lower)
		assert.Equal(t, 3, sum(binCounts(hist)))
		assert.Equal(t, 1, hist[0].Count)
		assert.Equal(t, 1, hist[49].Count)
		for i, b := range hist {
			assert.False(t, math.IsNaN(b.Lower) || math.IsInf(b.Lower, 0), "bin %d lower edge %v", i, b.Lower)
			assert.Less(t, b.Lower, b.Upper)
		}
	})

	t.Run("nothing finite", func(t *testing.T) {
		hist, dropped := Histogram([]float64{math.NaN()}, 10)
		assert.Nil(t, hist)
		assert.Equal(t, 1, dropped)
	})
}

func TestLocateInHistogram(t *testing.T) {
	hist, _ := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}, 5)

	index, offset, ok := LocateInHistogram(hist, 5)
	require.True(t, ok)
	assert.Equal(t, 2, index)
	assert.InDelta(t, 0.5, offset, 1e-12)

	index, offset, ok = LocateInHistogram(hist, 10)
	require.True(t, ok, "max value sits in the last bin")
	assert.Equal(t, 4, index)
	assert.InDelta(t, 1.0, offset, 1e-9)

	index, _, ok = LocateInHistogram(hist, 0)
	require.True(t, ok)
	assert.Zero(t, index)

	_, _, ok = LocateInHistogram(hist, 11)
	assert.False(t, ok)
	_, _, ok = LocateInHistogram(hist, math.NaN())
	assert.False(t, ok)
	_, _, ok = LocateInHistogram(nil, 1)
	assert.False(t, ok)

	wide, _ := Histogram([]float64{-1e308, 0, 1e308}, 50)
	index, offset, ok = LocateInHistogram(wide, 0)
	require.True(t, ok)
	assert.LessOrEqual(t, wide[index].Lower, 0.0)
	assert.Greater(t, wide[index].Upper, 0.0)
	assert.False(t, math.IsNaN(offset))
}

func TestBuildChartData(t *testing.T) {
	params := mustParams(t, 1000, 20000, 3, 0.04, 0.10, 2)
	yearly := []domain.YearlyStatistic{
		{Year: 1, Mean: 22000},
		{Year: 2, Mean: 45000},
		{Year: 3, Mean: 70000},
	}

	data := BuildChartData(params, yearly, []float64{65000, 75000}, 4)

	assert.Equal(t, []float64{22000, 45000, 70000}, data.MeanByYear)
	assert.Equal(t, []float64{21000, 41000, 61000}, data.ContributionBaseline)
	assert.Equal(t, []float64{1000, 4000, 9000}, data.ReturnComponent)
	assert.Equal(t, []float64{22000, 67000, 137000}, data.CumulativeMean)
	assert.Len(t, data.Histogram, 4)
	assert.Equal(t, 2, sum(binCounts(data.Histogram)))
}

func binCounts(hist []domain.HistogramBin) []int {
	counts := make([]int, len(hist))
	for i, b := range hist {
		counts[i] = b.Count
	}
	return counts
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
