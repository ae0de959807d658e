package output

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/rpgo/savings-simulator/internal/domain"
)

// JSONFormatter serializes the result as pretty-printed JSON. Non-finite
// numbers are written as the strings "NaN", "+Inf" and "-Inf".
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.Result) ([]byte, error) {
	return json.MarshalIndent(newJSONReport(result), "", "  ")
}

// jsonFloat is a float64 that survives encoding/json when NaN or infinite.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'g'
	}
	return strconv.AppendFloat(nil, v, format, -1, 64), nil
}

func jsonFloats(values []float64) []jsonFloat {
	out := make([]jsonFloat, len(values))
	for i, v := range values {
		out[i] = jsonFloat(v)
	}
	return out
}

type jsonStatistic struct {
	Year *int      `json:"year,omitempty"`
	Mean jsonFloat `json:"mean"`
	P5   jsonFloat `json:"p5"`
	P95  jsonFloat `json:"p95"`
}

type jsonBin struct {
	Lower jsonFloat `json:"lower"`
	Upper jsonFloat `json:"upper"`
	Count int       `json:"count"`
}

type jsonCharts struct {
	Histogram            []jsonBin   `json:"histogram"`
	NonFiniteTerminals   int         `json:"non_finite_terminals"`
	MeanByYear           []jsonFloat `json:"mean_by_year"`
	ContributionBaseline []jsonFloat `json:"contribution_baseline"`
	ReturnComponent      []jsonFloat `json:"return_component"`
	CumulativeMean       []jsonFloat `json:"cumulative_mean"`
}

type jsonReport struct {
	RunID       string                   `json:"run_id"`
	Seed        uint64                   `json:"seed"`
	GeneratedAt time.Time                `json:"generated_at"`
	Approximate bool                     `json:"approximate"`
	Parameters  domain.ParameterSnapshot `json:"parameters"`
	Terminal    jsonStatistic            `json:"terminal"`
	Yearly      []jsonStatistic          `json:"yearly"`
	Charts      jsonCharts               `json:"charts"`
}

func newJSONReport(result *domain.Result) jsonReport {
	report := jsonReport{
		RunID:       result.RunID,
		Seed:        result.Seed,
		GeneratedAt: result.GeneratedAt,
		Approximate: result.Approximate,
		Parameters:  result.Params.Snapshot(),
		Terminal: jsonStatistic{
			Mean: jsonFloat(result.Terminal.Mean),
			P5:   jsonFloat(result.Terminal.P5),
			P95:  jsonFloat(result.Terminal.P95),
		},
		Yearly: make([]jsonStatistic, len(result.Yearly)),
		Charts: jsonCharts{
			Histogram:            make([]jsonBin, len(result.Charts.Histogram)),
			NonFiniteTerminals:   result.Charts.NonFiniteTerminals,
			MeanByYear:           jsonFloats(result.Charts.MeanByYear),
			ContributionBaseline: jsonFloats(result.Charts.ContributionBaseline),
			ReturnComponent:      jsonFloats(result.Charts.ReturnComponent),
			CumulativeMean:       jsonFloats(result.Charts.CumulativeMean),
		},
	}
	for i, ys := range result.Yearly {
		year := ys.Year
		report.Yearly[i] = jsonStatistic{Year: &year, Mean: jsonFloat(ys.Mean), P5: jsonFloat(ys.P5), P95: jsonFloat(ys.P95)}
	}
	for i, b := range result.Charts.Histogram {
		report.Charts.Histogram[i] = jsonBin{Lower: jsonFloat(b.Lower), Upper: jsonFloat(b.Upper), Count: b.Count}
	}
	return report
}
