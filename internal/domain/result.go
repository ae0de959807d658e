package domain

import (
	"time"

	"github.com/rpgo/savings-simulator/pkg/dateutil"
)

// TerminalStatistic summarizes the distribution of final-year values.
type TerminalStatistic struct {
	Mean float64 `json:"mean"`
	P5   float64 `json:"p5"`
	P95  float64 `json:"p95"`
}

// YearlyStatistic summarizes the distribution of values held at one year.
type YearlyStatistic struct {
	Year int     `json:"year"`
	Mean float64 `json:"mean"`
	P5   float64 `json:"p5"`
	P95  float64 `json:"p95"`
}

// HistogramBin counts terminal values in [Lower, Upper).
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// ChartData holds every series handed to the visualization layer.
type ChartData struct {
	TerminalValues       []float64      `json:"terminal_values"`
	Histogram            []HistogramBin `json:"histogram"`
	NonFiniteTerminals   int            `json:"non_finite_terminals"`
	MeanByYear           []float64      `json:"mean_by_year"`
	ContributionBaseline []float64      `json:"contribution_baseline"`
	ReturnComponent      []float64      `json:"return_component"`
	CumulativeMean       []float64      `json:"cumulative_mean"`
}

// Result is everything one simulate request produces. Presentation code
// receives a Result explicitly; it never reads state left by an earlier run.
type Result struct {
	RunID       string            `json:"run_id"`
	Seed        uint64            `json:"seed"`
	GeneratedAt time.Time         `json:"generated_at"`
	Params      ParameterSet      `json:"-"`
	Ensemble    *Ensemble         `json:"-"` // nil for streaming runs
	Terminal    TerminalStatistic `json:"terminal"`
	Yearly      []YearlyStatistic `json:"yearly"`
	Charts      ChartData         `json:"charts"`
	// Approximate is set when percentiles come from streaming sketches.
	Approximate bool `json:"approximate"`
}

// YearEnd returns the calendar date that closes the given 1-based year, or the
// zero time when the plan has no start date.
func (r *Result) YearEnd(year int) time.Time {
	if !r.Params.HasStartDate() {
		return time.Time{}
	}
	return dateutil.PeriodEnd(r.Params.StartDate(), year)
}
