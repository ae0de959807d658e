package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/savings-simulator/internal/calculation"
	"github.com/rpgo/savings-simulator/internal/domain"
	"github.com/rpgo/savings-simulator/pkg/dateutil"
)

// HTMLFormatter produces a self-contained HTML report with Chart.js charts:
// the terminal-value histogram, the mean path, contributions against returns
// and the yearly statistics table.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"whole": FormatWhole,
	"pct":   FormatPercentage,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
	"floats": jsonFloats,
}).Parse(htmlTemplateSource))

type htmlYearRow struct {
	domain.YearlyStatistic
	YearEnd     string
	Contributed float64
}

// histogramMarker is a vertical line drawn over the histogram. Position is in
// category-axis units, where bar i spans [i-0.5, i+0.5].
type histogramMarker struct {
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// histogramMarkers places the terminal p5, mean and p95 on the histogram.
// Statistics that fall outside the bins, or are not finite, get no marker.
func histogramMarkers(result *domain.Result) []histogramMarker {
	stats := []struct {
		label, color string
		value        float64
	}{
		{"5th percentile", "#e67e22", result.Terminal.P5},
		{"Mean", "#c0392b", result.Terminal.Mean},
		{"95th percentile", "#8e44ad", result.Terminal.P95},
	}
	markers := make([]histogramMarker, 0, len(stats))
	for _, s := range stats {
		index, offset, ok := calculation.LocateInHistogram(result.Charts.Histogram, s.value)
		if !ok {
			continue
		}
		markers = append(markers, histogramMarker{
			Label:    s.label + ": " + FormatCurrency(s.value),
			Color:    s.color,
			Position: float64(index) - 0.5 + offset,
		})
	}
	return markers
}

func (h HTMLFormatter) Format(result *domain.Result) ([]byte, error) {
	var buf bytes.Buffer

	rows := make([]htmlYearRow, len(result.Yearly))
	labels := make([]int, len(result.Yearly))
	for i, ys := range result.Yearly {
		row := htmlYearRow{YearlyStatistic: ys, Contributed: result.Params.ContributedCapital(ys.Year)}
		if result.Params.HasStartDate() {
			row.YearEnd = result.YearEnd(ys.Year).Format(dateutil.DateLayout)
		}
		rows[i] = row
		labels[i] = ys.Year
	}

	binLabels := make([]string, len(result.Charts.Histogram))
	binCounts := make([]int, len(result.Charts.Histogram))
	for i, b := range result.Charts.Histogram {
		binLabels[i] = FormatWhole(b.Lower) + " - " + FormatWhole(b.Upper)
		binCounts[i] = b.Count
	}

	data := struct {
		*domain.Result
		Analysis    PlanAnalysis
		Assumptions []string
		Rows        []htmlYearRow
		WithDates   bool
		YearLabels  []int
		BinLabels   []string
		BinCounts   []int
		Markers     []histogramMarker
	}{
		Result:      result,
		Analysis:    AnalyzePlan(result),
		Assumptions: GenerateAssumptions(result.Params),
		Rows:        rows,
		WithDates:   result.Params.HasStartDate(),
		YearLabels:  labels,
		BinLabels:   binLabels,
		BinCounts:   binCounts,
		Markers:     histogramMarkers(result),
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
