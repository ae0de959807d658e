package calculation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpgo/savings-simulator/internal/domain"
)

// Simulate runs the engine and aggregates the ensemble into a Result that
// carries everything presentation needs.
func (mce *MonteCarloEngine) Simulate(ctx context.Context, params domain.ParameterSet) (*domain.Result, error) {
	ensemble, err := mce.Run(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("monte carlo run failed: %w", err)
	}

	terminalValues := ensemble.TerminalValues()
	yearly := YearlyStats(ensemble)

	return &domain.Result{
		RunID:       uuid.NewString(),
		Seed:        mce.Seed,
		GeneratedAt: nowFunc(),
		Params:      params,
		Ensemble:    ensemble,
		Terminal:    TerminalStats(ensemble),
		Yearly:      yearly,
		Charts:      BuildChartData(params, yearly, terminalValues, mce.HistogramBins),
	}, nil
}

// SimulateStreaming is Simulate for runs too large to materialize. The
// Result has no Ensemble and its yearly percentiles are approximate.
func (mce *MonteCarloEngine) SimulateStreaming(ctx context.Context, params domain.ParameterSet) (*domain.Result, error) {
	summary, err := mce.RunStreaming(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("streaming monte carlo run failed: %w", err)
	}

	return &domain.Result{
		RunID:       uuid.NewString(),
		Seed:        mce.Seed,
		GeneratedAt: nowFunc(),
		Params:      params,
		Terminal:    summary.Terminal,
		Yearly:      summary.Yearly,
		Charts:      BuildChartData(params, summary.Yearly, summary.TerminalValues, mce.HistogramBins),
		Approximate: true,
	}, nil
}
