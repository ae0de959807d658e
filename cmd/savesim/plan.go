package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rpgo/savings-simulator/internal/calculation"
	"github.com/rpgo/savings-simulator/internal/config"
	"github.com/rpgo/savings-simulator/internal/domain"
	"github.com/rpgo/savings-simulator/internal/logging"
	"github.com/spf13/cobra"
	"github.com/xhit/go-str2duration/v2"
)

// addPlanFlags registers the flags shared by every command that simulates.
func addPlanFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("config", "", "YAML plan file")
	f.Float64("initial-capital", domain.DefaultInitialCapital, "Capital at the start of year 1")
	f.Float64("annual-contribution", domain.DefaultAnnualContribution, "Amount added at the end of every year")
	f.Int("horizon-years", domain.DefaultHorizonYears, "Number of years to simulate")
	f.Float64("mean-return", domain.DefaultMeanReturn, "Mean annual return (0.04 = 4%)")
	f.Float64("stdev-return", domain.DefaultStdevReturn, "Standard deviation of the annual return")
	f.Int("num-trials", domain.DefaultNumTrials, "Number of independent trials")
	f.String("start-date", "", "Calendar start date (YYYY-MM-DD) used to label years")
	f.String("target-date", "", "Target date; sets the horizon to the full years after start-date")
	f.Uint64("seed", 0, "Random seed (0 picks one and reports it)")
	f.Int("workers", 0, "Parallel workers (0 uses all CPUs)")
	f.Bool("strict", false, "Fail when a trial produces a non-finite value")
	f.Bool("streaming", false, "Aggregate without keeping every path (approximate yearly percentiles)")
	f.Int("bins", 0, "Histogram bins in reports (0 uses the default)")
	f.String("timeout", "", "Abort the simulation after this long (e.g. 90s, 5m, 1h)")
}

// resolvePlan merges plan sources: defaults, then the --config file, then
// SAVESIM_* variables, then flags that were set explicitly.
func resolvePlan(cmd *cobra.Command) (*config.PlanFile, domain.ParameterSet, error) {
	parser := config.NewInputParser()
	f := cmd.Flags()

	plan := config.DefaultPlan()
	if path, _ := f.GetString("config"); path != "" {
		loaded, err := parser.LoadFromFile(path)
		if err != nil {
			return nil, domain.ParameterSet{}, err
		}
		plan = loaded
	}
	if err := parser.ApplyEnv(plan); err != nil {
		return nil, domain.ParameterSet{}, err
	}

	floatFlags := map[string]*float64{
		"initial-capital":     &plan.Plan.InitialCapital,
		"annual-contribution": &plan.Plan.AnnualContribution,
		"mean-return":         &plan.Plan.MeanReturn,
		"stdev-return":        &plan.Plan.StdevReturn,
	}
	for name, dst := range floatFlags {
		if f.Changed(name) {
			*dst, _ = f.GetFloat64(name)
		}
	}
	countFlags := map[string]*float64{
		"horizon-years": &plan.Plan.HorizonYears,
		"num-trials":    &plan.Plan.NumTrials,
	}
	for name, dst := range countFlags {
		if f.Changed(name) {
			v, _ := f.GetInt(name)
			*dst = float64(v)
		}
	}
	if f.Changed("start-date") {
		plan.Plan.StartDate, _ = f.GetString("start-date")
	}
	if f.Changed("target-date") {
		plan.Plan.TargetDate, _ = f.GetString("target-date")
	}
	if f.Changed("seed") {
		plan.Simulation.Seed, _ = f.GetUint64("seed")
	}
	if f.Changed("workers") {
		plan.Simulation.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("strict") {
		plan.Simulation.Strict, _ = f.GetBool("strict")
	}
	if f.Changed("streaming") {
		plan.Simulation.Streaming, _ = f.GetBool("streaming")
	}
	if f.Changed("bins") {
		plan.Simulation.HistogramBins, _ = f.GetInt("bins")
	}

	if err := parser.ValidatePlan(plan); err != nil {
		return nil, domain.ParameterSet{}, err
	}
	params, err := config.Build(plan.Plan)
	if err != nil {
		return nil, domain.ParameterSet{}, err
	}
	return plan, params, nil
}

// simulate resolves the plan and runs it, honoring --timeout and the
// command's context.
func simulate(cmd *cobra.Command) (*domain.Result, error) {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := logging.NewLogger(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	plan, params, err := resolvePlan(cmd)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if raw, _ := cmd.Flags().GetString("timeout"); raw != "" {
		timeout, err := str2duration.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --timeout %q: %w", raw, err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	engine := calculation.NewMonteCarloEngine(calculation.MonteCarloConfig{
		Seed:            plan.Simulation.Seed,
		Workers:         plan.Simulation.Workers,
		RejectNonFinite: plan.Simulation.Strict,
		HistogramBins:   plan.Simulation.HistogramBins,
	})
	engine.SetLogger(logger)

	start := time.Now()
	var result *domain.Result
	if plan.Simulation.Streaming {
		result, err = engine.SimulateStreaming(ctx, params)
	} else {
		result, err = engine.Simulate(ctx, params)
	}
	if err != nil {
		return nil, err
	}
	logger.WithField("run", result.RunID).Infof("simulated %d trials x %d years in %s (seed %d)",
		params.NumTrials(), params.HorizonYears(), time.Since(start).Round(time.Millisecond), result.Seed)
	return result, nil
}
