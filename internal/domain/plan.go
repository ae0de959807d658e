package domain

import (
	"math"
	"time"
)

// Default plan values used when a field is not supplied by any configuration source.
const (
	DefaultInitialCapital     = 0.0
	DefaultAnnualContribution = 20000.0
	DefaultHorizonYears       = 17
	DefaultMeanReturn         = 0.04
	DefaultStdevReturn        = 0.10
	DefaultNumTrials          = 1000
)

// ParameterSet is the validated configuration of one simulation request.
// Fields are unexported so a ParameterSet cannot change after construction;
// build one with NewParameterSet (or config.Validate for raw input).
type ParameterSet struct {
	initialCapital     float64
	annualContribution float64
	horizonYears       int
	meanReturn         float64
	stdevReturn        float64
	numTrials          int
	startDate          time.Time
}

// NewParameterSet checks the plan invariants in order (horizon, trials,
// volatility) and returns the first violation as an *InvalidParameterError.
func NewParameterSet(initialCapital, annualContribution float64, horizonYears int, meanReturn, stdevReturn float64, numTrials int) (ParameterSet, error) {
	if horizonYears < 1 {
		return ParameterSet{}, &InvalidParameterError{Field: "horizon_years", Value: horizonYears, Reason: "must be a positive integer"}
	}
	if numTrials < 1 {
		return ParameterSet{}, &InvalidParameterError{Field: "num_trials", Value: numTrials, Reason: "must be a positive integer"}
	}
	if stdevReturn < 0 {
		return ParameterSet{}, &InvalidParameterError{Field: "stdev_return", Value: stdevReturn, Reason: "cannot be negative"}
	}

	finite := []struct {
		field string
		value float64
	}{
		{"initial_capital", initialCapital},
		{"annual_contribution", annualContribution},
		{"mean_return", meanReturn},
		{"stdev_return", stdevReturn},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return ParameterSet{}, &InvalidParameterError{Field: f.field, Value: f.value, Reason: "must be a finite number"}
		}
	}

	return ParameterSet{
		initialCapital:     initialCapital,
		annualContribution: annualContribution,
		horizonYears:       horizonYears,
		meanReturn:         meanReturn,
		stdevReturn:        stdevReturn,
		numTrials:          numTrials,
	}, nil
}

// DefaultParameterSet returns the plan used when nothing is configured.
func DefaultParameterSet() ParameterSet {
	ps, _ := NewParameterSet(DefaultInitialCapital, DefaultAnnualContribution, DefaultHorizonYears, DefaultMeanReturn, DefaultStdevReturn, DefaultNumTrials)
	return ps
}

// WithStartDate returns a copy anchored to a calendar start date. The date only
// labels output rows; it never affects the simulation.
func (p ParameterSet) WithStartDate(start time.Time) ParameterSet {
	p.startDate = start
	return p
}

func (p ParameterSet) InitialCapital() float64     { return p.initialCapital }
func (p ParameterSet) AnnualContribution() float64 { return p.annualContribution }
func (p ParameterSet) HorizonYears() int           { return p.horizonYears }
func (p ParameterSet) MeanReturn() float64         { return p.meanReturn }
func (p ParameterSet) StdevReturn() float64        { return p.stdevReturn }
func (p ParameterSet) NumTrials() int              { return p.numTrials }
func (p ParameterSet) StartDate() time.Time        { return p.startDate }

// HasStartDate reports whether output rows can carry calendar dates.
func (p ParameterSet) HasStartDate() bool { return !p.startDate.IsZero() }

// ContributedCapital is the capital put into the plan by the end of year
// (1-based) with no investment return at all.
func (p ParameterSet) ContributedCapital(year int) float64 {
	return p.initialCapital + p.annualContribution*float64(year)
}

// ParameterSnapshot is the exported, serializable view of a ParameterSet.
type ParameterSnapshot struct {
	InitialCapital     float64    `json:"initial_capital" yaml:"initial_capital"`
	AnnualContribution float64    `json:"annual_contribution" yaml:"annual_contribution"`
	HorizonYears       int        `json:"horizon_years" yaml:"horizon_years"`
	MeanReturn         float64    `json:"mean_return" yaml:"mean_return"`
	StdevReturn        float64    `json:"stdev_return" yaml:"stdev_return"`
	NumTrials          int        `json:"num_trials" yaml:"num_trials"`
	StartDate          *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
}

// Snapshot copies the parameters into a ParameterSnapshot.
func (p ParameterSet) Snapshot() ParameterSnapshot {
	s := ParameterSnapshot{
		InitialCapital:     p.initialCapital,
		AnnualContribution: p.annualContribution,
		HorizonYears:       p.horizonYears,
		MeanReturn:         p.meanReturn,
		StdevReturn:        p.stdevReturn,
		NumTrials:          p.numTrials,
	}
	if p.HasStartDate() {
		start := p.startDate
		s.StartDate = &start
	}
	return s
}
