package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpgo/savings-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	path := writeFile(t, "plan.yaml", "plan:\n"+
		"  initial_capital: 5000\n"+
		"  annual_contribution: 12000\n"+
		"  horizon_years: 10\n"+
		"  num_trials: 250\n"+
		"simulation:\n"+
		"  seed: 42\n"+
		"  workers: 2\n")

	plan, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5000.0, plan.Plan.InitialCapital)
	assert.Equal(t, 12000.0, plan.Plan.AnnualContribution)
	assert.Equal(t, 10.0, plan.Plan.HorizonYears)
	assert.Equal(t, 250.0, plan.Plan.NumTrials)
	assert.Equal(t, domain.DefaultMeanReturn, plan.Plan.MeanReturn, "missing fields keep defaults")
	assert.Equal(t, domain.DefaultStdevReturn, plan.Plan.StdevReturn)
	assert.Equal(t, uint64(42), plan.Simulation.Seed)
	assert.Equal(t, 2, plan.Simulation.Workers)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	plan, err := NewInputParser().LoadFromFile("nonexistent_file.yaml")
	assert.Error(t, err)
	assert.Nil(t, plan)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "plan: [unclosed\n")
	_, err := NewInputParser().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_DefersValidation(t *testing.T) {
	path := writeFile(t, "partial.yaml", "plan:\n  horizon_years: 0\n")
	parser := NewInputParser()

	plan, err := parser.LoadFromFile(path)
	require.NoError(t, err, "a later override may still fix the horizon")
	assert.Equal(t, 0.0, plan.Plan.HorizonYears)

	err = parser.ValidatePlan(plan)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	plan.Plan.HorizonYears = 3
	assert.NoError(t, parser.ValidatePlan(plan))
}

func TestValidate_Order(t *testing.T) {
	tests := []struct {
		name  string
		raw   func(r *RawParameters)
		field string
	}{
		{name: "zero horizon", raw: func(r *RawParameters) { r.HorizonYears = 0 }, field: "horizon_years"},
		{name: "fractional horizon", raw: func(r *RawParameters) { r.HorizonYears = 2.5 }, field: "horizon_years"},
		{name: "NaN horizon", raw: func(r *RawParameters) { r.HorizonYears = math.NaN() }, field: "horizon_years"},
		{name: "zero trials", raw: func(r *RawParameters) { r.NumTrials = 0 }, field: "num_trials"},
		{name: "negative trials", raw: func(r *RawParameters) { r.NumTrials = -3 }, field: "num_trials"},
		{name: "negative stdev", raw: func(r *RawParameters) { r.StdevReturn = -0.1 }, field: "stdev_return"},
		{name: "infinite mean", raw: func(r *RawParameters) { r.MeanReturn = math.Inf(1) }, field: "mean_return"},
		{name: "NaN contribution", raw: func(r *RawParameters) { r.AnnualContribution = math.NaN() }, field: "annual_contribution"},
		{
			name: "horizon reported before trials and stdev",
			raw: func(r *RawParameters) {
				r.HorizonYears = 0
				r.NumTrials = 0
				r.StdevReturn = -1
			},
			field: "horizon_years",
		},
		{
			name: "trials reported before stdev",
			raw: func(r *RawParameters) {
				r.NumTrials = 0
				r.StdevReturn = -1
			},
			field: "num_trials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := DefaultRawParameters()
			tt.raw(&raw)

			_, err := Validate(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidParameter))

			var invalid *domain.InvalidParameterError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	params, err := Validate(DefaultRawParameters())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultParameterSet(), params)
	assert.Equal(t, 17, params.HorizonYears())
	assert.Equal(t, 1000, params.NumTrials())
}

func TestValidate_ZeroStdevAllowed(t *testing.T) {
	raw := DefaultRawParameters()
	raw.StdevReturn = 0
	_, err := Validate(raw)
	assert.NoError(t, err)
}

func TestResolveHorizon(t *testing.T) {
	t.Run("target date sets horizon", func(t *testing.T) {
		raw := DefaultRawParameters()
		raw.StartDate = "2026-02-25"
		raw.TargetDate = "2043-02-24"

		params, err := Build(raw)
		require.NoError(t, err)
		assert.Equal(t, 16, params.HorizonYears())
		assert.Equal(t, time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), params.StartDate())
	})

	t.Run("start date alone keeps horizon", func(t *testing.T) {
		raw := DefaultRawParameters()
		raw.StartDate = "2026-01-01"

		params, err := Build(raw)
		require.NoError(t, err)
		assert.Equal(t, 17, params.HorizonYears())
		assert.True(t, params.HasStartDate())
	})

	t.Run("target without start", func(t *testing.T) {
		raw := DefaultRawParameters()
		raw.TargetDate = "2040-01-01"

		_, err := Build(raw)
		var invalid *domain.InvalidParameterError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "target_date", invalid.Field)
	})

	t.Run("target too close", func(t *testing.T) {
		raw := DefaultRawParameters()
		raw.StartDate = "2026-01-01"
		raw.TargetDate = "2026-06-30"

		_, err := Build(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	})

	t.Run("malformed date", func(t *testing.T) {
		raw := DefaultRawParameters()
		raw.StartDate = "01/01/2026"

		_, err := Build(raw)
		var invalid *domain.InvalidParameterError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "start_date", invalid.Field)
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SAVESIM_ANNUAL_CONTRIBUTION", "15000")
	t.Setenv("SAVESIM_NUM_TRIALS", "500")
	t.Setenv("SAVESIM_SEED", "99")
	t.Setenv("SAVESIM_STREAMING", "true")

	plan := DefaultPlan()
	plan.Plan.InitialCapital = 2500

	require.NoError(t, NewInputParser().ApplyEnv(plan))

	assert.Equal(t, 15000.0, plan.Plan.AnnualContribution)
	assert.Equal(t, 500.0, plan.Plan.NumTrials)
	assert.Equal(t, 2500.0, plan.Plan.InitialCapital, "unset variables leave values alone")
	assert.Equal(t, domain.DefaultMeanReturn, plan.Plan.MeanReturn)
	assert.Equal(t, uint64(99), plan.Simulation.Seed)
	assert.True(t, plan.Simulation.Streaming)
}

func TestApplyEnv_Malformed(t *testing.T) {
	t.Setenv("SAVESIM_HORIZON_YEARS", "seventeen")
	err := NewInputParser().ApplyEnv(DefaultPlan())
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	parser := NewInputParser()

	t.Run("explicit file", func(t *testing.T) {
		path := writeFile(t, "test.env", "SAVESIM_MEAN_RETURN=0.07\n")
		t.Setenv("SAVESIM_MEAN_RETURN", "")
		os.Unsetenv("SAVESIM_MEAN_RETURN")

		require.NoError(t, parser.LoadDotEnv(path))

		plan := DefaultPlan()
		require.NoError(t, parser.ApplyEnv(plan))
		assert.Equal(t, 0.07, plan.Plan.MeanReturn)
	})

	t.Run("explicit file missing", func(t *testing.T) {
		err := parser.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})

	t.Run("default file optional", func(t *testing.T) {
		t.Chdir(t.TempDir())
		assert.NoError(t, parser.LoadDotEnv(""))
	})
}

func TestValidatePlan_Settings(t *testing.T) {
	plan := DefaultPlan()
	plan.Simulation.Workers = -1
	err := NewInputParser().ValidatePlan(plan)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestExamplePlanRoundTrip(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "example.yaml")

	require.NoError(t, parser.SavePlan(parser.CreateExamplePlan(), path))

	plan, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, parser.CreateExamplePlan(), plan)
}
