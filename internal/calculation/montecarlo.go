package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/rpgo/savings-simulator/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxEnsembleValues caps trials*years held in memory by Run.
const DefaultMaxEnsembleValues = 50_000_000

var tracer = otel.Tracer("github.com/rpgo/savings-simulator/internal/calculation")

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	Seed              uint64 // 0 draws a fresh seed; the seed used is reported on the engine
	Workers           int    // 0 uses GOMAXPROCS
	MaxEnsembleValues int    // 0 uses DefaultMaxEnsembleValues, negative disables the cap
	RejectNonFinite   bool
	HistogramBins     int
}

// MonteCarloEngine runs independent path simulations and collects them.
type MonteCarloEngine struct {
	Seed              uint64
	Workers           int
	MaxEnsembleValues int
	RejectNonFinite   bool
	HistogramBins     int
	Streams           StreamFactory
	Logger            Logger
}

// NewMonteCarloEngine creates a new Monte Carlo engine
func NewMonteCarloEngine(config MonteCarloConfig) *MonteCarloEngine {
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxEnsembleValues == 0 {
		config.MaxEnsembleValues = DefaultMaxEnsembleValues
	}
	if config.HistogramBins <= 0 {
		config.HistogramBins = DefaultHistogramBins
	}

	return &MonteCarloEngine{
		Seed:              config.Seed,
		Workers:           config.Workers,
		MaxEnsembleValues: config.MaxEnsembleValues,
		RejectNonFinite:   config.RejectNonFinite,
		HistogramBins:     config.HistogramBins,
		Streams:           NewSeededStreams(config.Seed),
		Logger:            NopLogger{},
	}
}

// SetLogger sets the engine logger. If nil is provided, a no-op logger is used.
func (mce *MonteCarloEngine) SetLogger(l Logger) {
	if l == nil {
		mce.Logger = NopLogger{}
		return
	}
	mce.Logger = l
}

// Run simulates params.NumTrials() paths and returns them as an Ensemble.
// Trials run on at most Workers goroutines, each with its own stream. Any
// failure, including ctx cancellation, discards the whole run.
func (mce *MonteCarloEngine) Run(ctx context.Context, params domain.ParameterSet) (*domain.Ensemble, error) {
	ctx, span := tracer.Start(ctx, "montecarlo.run", trace.WithAttributes(mce.spanAttributes(params)...))
	defer span.End()

	ensemble, err := mce.run(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return ensemble, nil
}

func (mce *MonteCarloEngine) run(ctx context.Context, params domain.ParameterSet) (*domain.Ensemble, error) {
	values := params.NumTrials() * params.HorizonYears()
	if mce.MaxEnsembleValues > 0 && values > mce.MaxEnsembleValues {
		return nil, fmt.Errorf("%w: %d trials x %d years = %d values exceeds limit %d; use streaming mode",
			domain.ErrEnsembleTooLarge, params.NumTrials(), params.HorizonYears(), values, mce.MaxEnsembleValues)
	}

	start := nowFunc()
	mce.Logger.Debugf("running %d trials over %d years (seed=%d, workers=%d)", params.NumTrials(), params.HorizonYears(), mce.Seed, mce.workers())

	paths := make([]domain.Path, params.NumTrials())
	err := mce.forEachTrial(ctx, 0, params.NumTrials(), func(trial int) error {
		path := SimulatePath(params, mce.Streams.Stream(trial))
		if err := mce.checkFinite(trial, path); err != nil {
			return err
		}
		paths[trial] = path
		return nil
	})
	if err != nil {
		return nil, err
	}

	mce.Logger.Infof("completed %d trials in %s", params.NumTrials(), nowFunc().Sub(start))
	return domain.NewEnsemble(params, paths)
}

// forEachTrial maps fn over trial indices [from, to) on a bounded worker
// pool. Context errors come back wrapped in ErrSimulationAborted.
func (mce *MonteCarloEngine) forEachTrial(ctx context.Context, from, to int, fn func(trial int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mce.workers())

	for trial := from; trial < to; trial++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(trial)
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		mce.Logger.Warnf("simulation aborted: %v", err)
		return fmt.Errorf("%w: %w", domain.ErrSimulationAborted, err)
	}
	mce.Logger.Errorf("simulation failed: %v", err)
	return err
}

func (mce *MonteCarloEngine) checkFinite(trial int, path domain.Path) error {
	if !mce.RejectNonFinite {
		return nil
	}
	for i, v := range path {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &domain.NumericOverflowError{Trial: trial, Year: i + 1, Value: v}
		}
	}
	return nil
}

func (mce *MonteCarloEngine) workers() int {
	if mce.Workers <= 0 {
		return 1
	}
	return mce.Workers
}

func (mce *MonteCarloEngine) spanAttributes(params domain.ParameterSet) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("savesim.trials", params.NumTrials()),
		attribute.Int("savesim.horizon_years", params.HorizonYears()),
		attribute.Int("savesim.workers", mce.workers()),
		attribute.Int64("savesim.seed", int64(mce.Seed)),
	}
}
