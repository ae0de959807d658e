package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParameterSet(t *testing.T) {
	ps, err := NewParameterSet(1000, 20000, 17, 0.04, 0.10, 1000)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, ps.InitialCapital())
	assert.Equal(t, 20000.0, ps.AnnualContribution())
	assert.Equal(t, 17, ps.HorizonYears())
	assert.Equal(t, 0.04, ps.MeanReturn())
	assert.Equal(t, 0.10, ps.StdevReturn())
	assert.Equal(t, 1000, ps.NumTrials())
	assert.False(t, ps.HasStartDate())
}

func TestNewParameterSet_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		horizon int
		trials  int
		stdev   float64
		mean    float64
		field   string
	}{
		{"zero horizon", 0, 10, 0.1, 0.04, "horizon_years"},
		{"negative horizon", -1, 10, 0.1, 0.04, "horizon_years"},
		{"zero trials", 5, 0, 0.1, 0.04, "num_trials"},
		{"negative stdev", 5, 10, -0.01, 0.04, "stdev_return"},
		{"NaN mean", 5, 10, 0.1, math.NaN(), "mean_return"},
		{"infinite stdev", 5, 10, math.Inf(1), 0.04, "stdev_return"},
		{"horizon checked first", 0, 0, -1, 0.04, "horizon_years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParameterSet(0, 20000, tt.horizon, tt.mean, tt.stdev, tt.trials)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))

			var invalid *InvalidParameterError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDefaultParameterSet(t *testing.T) {
	ps := DefaultParameterSet()
	assert.Equal(t, DefaultInitialCapital, ps.InitialCapital())
	assert.Equal(t, DefaultAnnualContribution, ps.AnnualContribution())
	assert.Equal(t, DefaultHorizonYears, ps.HorizonYears())
	assert.Equal(t, DefaultMeanReturn, ps.MeanReturn())
	assert.Equal(t, DefaultStdevReturn, ps.StdevReturn())
	assert.Equal(t, DefaultNumTrials, ps.NumTrials())
}

func TestWithStartDate_Copies(t *testing.T) {
	base := DefaultParameterSet()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	dated := base.WithStartDate(start)
	assert.True(t, dated.HasStartDate())
	assert.False(t, base.HasStartDate(), "original must not change")
	assert.Equal(t, start, dated.StartDate())
}

func TestContributedCapital(t *testing.T) {
	ps, err := NewParameterSet(5000, 1000, 3, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, ps.ContributedCapital(0))
	assert.Equal(t, 8000.0, ps.ContributedCapital(3))
}

func TestSnapshot(t *testing.T) {
	ps := DefaultParameterSet()
	snap := ps.Snapshot()
	assert.Nil(t, snap.StartDate)
	assert.Equal(t, 17, snap.HorizonYears)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	snap = ps.WithStartDate(start).Snapshot()
	require.NotNil(t, snap.StartDate)
	assert.Equal(t, start, *snap.StartDate)
}
