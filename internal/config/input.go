package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rpgo/savings-simulator/internal/domain"
	"github.com/rpgo/savings-simulator/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "SAVESIM_"

// DefaultEnvFile is read when no --env-file is given; a missing file is fine.
const DefaultEnvFile = ".env"

// RawParameters is a plan as written by a user, before validation. Counts are
// floats so that non-integer input can be reported rather than truncated.
type RawParameters struct {
	InitialCapital     float64 `yaml:"initial_capital" env:"INITIAL_CAPITAL"`
	AnnualContribution float64 `yaml:"annual_contribution" env:"ANNUAL_CONTRIBUTION"`
	HorizonYears       float64 `yaml:"horizon_years" env:"HORIZON_YEARS"`
	MeanReturn         float64 `yaml:"mean_return" env:"MEAN_RETURN"`
	StdevReturn        float64 `yaml:"stdev_return" env:"STDEV_RETURN"`
	NumTrials          float64 `yaml:"num_trials" env:"NUM_TRIALS"`
	StartDate          string  `yaml:"start_date,omitempty" env:"START_DATE"`
	TargetDate         string  `yaml:"target_date,omitempty" env:"TARGET_DATE"`
}

// SimulationSettings tune how a plan is run without changing its meaning
// (apart from Seed, which selects the random draws).
type SimulationSettings struct {
	Seed          uint64 `yaml:"seed,omitempty" env:"SEED"`
	Workers       int    `yaml:"workers,omitempty" env:"WORKERS"`
	Strict        bool   `yaml:"strict,omitempty" env:"STRICT"`
	Streaming     bool   `yaml:"streaming,omitempty" env:"STREAMING"`
	HistogramBins int    `yaml:"histogram_bins,omitempty" env:"HISTOGRAM_BINS"`
}

// PlanFile is the on-disk layout of a savings plan.
type PlanFile struct {
	Plan       RawParameters      `yaml:"plan"`
	Simulation SimulationSettings `yaml:"simulation,omitempty"`
}

// DefaultRawParameters returns the plan used when no source sets a field.
func DefaultRawParameters() RawParameters {
	return RawParameters{
		InitialCapital:     domain.DefaultInitialCapital,
		AnnualContribution: domain.DefaultAnnualContribution,
		HorizonYears:       domain.DefaultHorizonYears,
		MeanReturn:         domain.DefaultMeanReturn,
		StdevReturn:        domain.DefaultStdevReturn,
		NumTrials:          domain.DefaultNumTrials,
	}
}

// DefaultPlan wraps DefaultRawParameters with default simulation settings.
func DefaultPlan() *PlanFile {
	return &PlanFile{Plan: DefaultRawParameters()}
}

// InputParser handles parsing of plan files and environment overrides
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile reads a YAML plan on top of the defaults. Fields missing from
// the file keep their default values. The plan is not validated here since
// environment and flag overrides may still replace any field; call
// ValidatePlan on the merged plan.
func (ip *InputParser) LoadFromFile(filename string) (*PlanFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan := DefaultPlan()
	if err := yaml.Unmarshal(data, plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return plan, nil
}

// LoadDotEnv loads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. Only an explicitly named file
// is required to exist.
func (ip *InputParser) LoadDotEnv(filename string) error {
	required := filename != ""
	if !required {
		filename = DefaultEnvFile
	}
	if err := godotenv.Load(filename); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", filename, err)
	}
	return nil
}

// ApplyEnv overwrites plan fields with any SAVESIM_* variables that are set.
func (ip *InputParser) ApplyEnv(plan *PlanFile) error {
	if err := env.ParseWithOptions(&plan.Plan, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := env.ParseWithOptions(&plan.Simulation, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// ValidatePlan checks that a plan resolves to a valid ParameterSet.
func (ip *InputParser) ValidatePlan(plan *PlanFile) error {
	if plan.Simulation.Workers < 0 {
		return &domain.InvalidParameterError{Field: "workers", Value: plan.Simulation.Workers, Reason: "cannot be negative"}
	}
	if plan.Simulation.HistogramBins < 0 {
		return &domain.InvalidParameterError{Field: "histogram_bins", Value: plan.Simulation.HistogramBins, Reason: "cannot be negative"}
	}
	_, err := Build(plan.Plan)
	return err
}

// Build resolves calendar dates and validates raw into a ParameterSet.
func Build(raw RawParameters) (domain.ParameterSet, error) {
	resolved, start, err := ResolveHorizon(raw)
	if err != nil {
		return domain.ParameterSet{}, err
	}
	params, err := Validate(resolved)
	if err != nil {
		return domain.ParameterSet{}, err
	}
	if !start.IsZero() {
		params = params.WithStartDate(start)
	}
	return params, nil
}

// ResolveHorizon replaces horizon_years with the number of full years from
// start_date to target_date when a target date is given. The parsed start
// date is returned so output rows can carry calendar dates.
func ResolveHorizon(raw RawParameters) (RawParameters, time.Time, error) {
	var start time.Time
	if strings.TrimSpace(raw.StartDate) != "" {
		t, err := dateutil.ParseDate(raw.StartDate)
		if err != nil {
			return raw, time.Time{}, &domain.InvalidParameterError{Field: "start_date", Value: raw.StartDate, Reason: err.Error()}
		}
		start = t
	}

	if strings.TrimSpace(raw.TargetDate) == "" {
		return raw, start, nil
	}
	if start.IsZero() {
		return raw, time.Time{}, &domain.InvalidParameterError{Field: "target_date", Value: raw.TargetDate, Reason: "requires start_date"}
	}
	target, err := dateutil.ParseDate(raw.TargetDate)
	if err != nil {
		return raw, time.Time{}, &domain.InvalidParameterError{Field: "target_date", Value: raw.TargetDate, Reason: err.Error()}
	}

	years := dateutil.FullYearsBetween(start, target)
	if years < 1 {
		return raw, time.Time{}, &domain.InvalidParameterError{Field: "target_date", Value: raw.TargetDate, Reason: "must be at least one full year after start_date"}
	}
	raw.HorizonYears = float64(years)
	return raw, start, nil
}

// Validate turns raw input into a ParameterSet. Checks run in a fixed order
// (horizon, trials, volatility, then finiteness) and the first failure is
// returned as *domain.InvalidParameterError.
func Validate(raw RawParameters) (domain.ParameterSet, error) {
	if !isPositiveInteger(raw.HorizonYears) {
		return domain.ParameterSet{}, &domain.InvalidParameterError{Field: "horizon_years", Value: raw.HorizonYears, Reason: "must be a positive integer"}
	}
	if !isPositiveInteger(raw.NumTrials) {
		return domain.ParameterSet{}, &domain.InvalidParameterError{Field: "num_trials", Value: raw.NumTrials, Reason: "must be a positive integer"}
	}
	return domain.NewParameterSet(raw.InitialCapital, raw.AnnualContribution, int(raw.HorizonYears),
		raw.MeanReturn, raw.StdevReturn, int(raw.NumTrials))
}

func isPositiveInteger(v float64) bool {
	return v >= 1 && v <= math.MaxInt32 && v == math.Trunc(v)
}

// CreateExamplePlan returns the sample plan written by `savesim example`.
func (ip *InputParser) CreateExamplePlan() *PlanFile {
	plan := DefaultPlan()
	plan.Plan.InitialCapital = 10000
	plan.Plan.StartDate = "2026-01-01"
	plan.Simulation = SimulationSettings{
		Seed:          20260101,
		HistogramBins: 50,
	}
	return plan
}

// SavePlan writes plan as YAML.
func (ip *InputParser) SavePlan(plan *PlanFile, filename string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
