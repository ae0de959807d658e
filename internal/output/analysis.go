package output

import (
	"math"

	"github.com/rpgo/savings-simulator/internal/domain"
)

// PlanAnalysis relates the terminal distribution to what was paid in.
type PlanAnalysis struct {
	TotalContributed float64 // initial capital plus every contribution
	MeanGain         float64 // terminal mean minus TotalContributed
	MeanMultiple     float64 // terminal mean / TotalContributed, NaN when nothing was contributed
	BandWidth        float64 // p95 - p5 of terminal values
	// ShareAboveContributed is the fraction of terminal values that exceed
	// TotalContributed. NaN values are left out.
	ShareAboveContributed float64
}

// AnalyzePlan summarizes a result against its contribution baseline.
func AnalyzePlan(result *domain.Result) PlanAnalysis {
	contributed := result.Params.ContributedCapital(result.Params.HorizonYears())
	a := PlanAnalysis{
		TotalContributed:      contributed,
		MeanGain:              result.Terminal.Mean - contributed,
		MeanMultiple:          math.NaN(),
		BandWidth:             result.Terminal.P95 - result.Terminal.P5,
		ShareAboveContributed: math.NaN(),
	}
	if contributed != 0 {
		a.MeanMultiple = result.Terminal.Mean / contributed
	}

	var finite, above int
	for _, v := range result.Charts.TerminalValues {
		if math.IsNaN(v) {
			continue
		}
		finite++
		if v > contributed {
			above++
		}
	}
	if finite > 0 {
		a.ShareAboveContributed = float64(above) / float64(finite)
	}
	return a
}
