package output

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rpgo/savings-simulator/internal/calculation"
	"github.com/rpgo/savings-simulator/internal/config"
)

// TestEngineSnapshot runs the example plan end to end twice and checks that
// everything but the run ID is reproducible.
func TestEngineSnapshot(t *testing.T) {
	calculation.SetNowFunc(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { calculation.SetNowFunc(time.Now) })

	parser := config.NewInputParser()
	plan, err := parser.LoadFromFile("../../testdata/example_plan.yaml")
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	params, err := config.Build(plan.Plan)
	if err != nil {
		t.Fatalf("build params: %v", err)
	}

	render := func() map[string]any {
		eng := calculation.NewMonteCarloEngine(calculation.MonteCarloConfig{Seed: plan.Simulation.Seed})
		res, err := eng.Simulate(context.Background(), params)
		if err != nil {
			t.Fatalf("simulate: %v", err)
		}
		out, err := JSONFormatter{}.Format(res)
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		var snap map[string]any
		if err := json.Unmarshal(out, &snap); err != nil {
			t.Fatalf("decode: %v", err)
		}
		delete(snap, "run_id")
		return snap
	}

	a, b := render(), render()
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Fatalf("snapshot not reproducible for seed %d", plan.Simulation.Seed)
	}
	if a["generated_at"] != "2026-01-01T00:00:00Z" {
		t.Fatalf("generated_at not taken from the injected clock: %v", a["generated_at"])
	}
}
