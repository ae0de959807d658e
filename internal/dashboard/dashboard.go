// Package dashboard renders a simulation Result as terminal charts.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/rpgo/savings-simulator/internal/calculation"
	"github.com/rpgo/savings-simulator/internal/domain"
	"github.com/rpgo/savings-simulator/internal/output"
)

// HistogramBins is coarser than the report histogram to fit a terminal.
const HistogramBins = 12

// ErrNoResult is output.ErrNoResult, so callers can check either.
var ErrNoResult = output.ErrNoResult

// Dashboard holds the widgets built from one Result.
type Dashboard struct {
	Summary    *widgets.Paragraph
	Histogram  *widgets.BarChart
	MeanPlot   *widgets.Plot
	Components *widgets.StackedBarChart
	Table      *widgets.Table

	grid *termui.Grid
}

// New builds every widget from result. Nothing is drawn until Run.
func New(result *domain.Result) (*Dashboard, error) {
	if result == nil {
		return nil, ErrNoResult
	}
	if len(result.Yearly) == 0 {
		return nil, errors.New("result has no yearly statistics")
	}

	d := &Dashboard{
		Summary:    newSummary(result),
		Histogram:  newHistogram(result),
		MeanPlot:   newMeanPlot(result),
		Components: newComponents(result),
		Table:      newTable(result),
	}

	d.grid = termui.NewGrid()
	d.grid.Set(
		termui.NewRow(1.0/2,
			termui.NewCol(1.0/3, d.Summary),
			termui.NewCol(2.0/3, d.Histogram),
		),
		termui.NewRow(1.0/2,
			termui.NewCol(1.0/3, d.Table),
			termui.NewCol(1.0/3, d.MeanPlot),
			termui.NewCol(1.0/3, d.Components),
		),
	)
	return d, nil
}

// Run draws the dashboard and blocks until the user presses q or Ctrl-C, or
// ctx is done.
func (d *Dashboard) Run(ctx context.Context) error {
	if err := termui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	defer termui.Close()

	d.Resize(termui.TerminalDimensions())
	termui.Render(d.grid)

	uiEvents := termui.PollEvents()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-uiEvents:
			switch e.ID {
			case "q", "<C-c>":
				return nil
			case "<Resize>":
				payload := e.Payload.(termui.Resize)
				d.Resize(payload.Width, payload.Height)
				termui.Clear()
				termui.Render(d.grid)
			}
		}
	}
}

// Resize lays the grid out for a terminal of the given size.
func (d *Dashboard) Resize(width, height int) {
	d.grid.SetRect(0, 0, width, height)
}

func newSummary(result *domain.Result) *widgets.Paragraph {
	p := widgets.NewParagraph()
	p.Title = "Plan"
	p.BorderStyle.Fg = termui.ColorYellow
	p.TitleStyle.Fg = termui.ColorYellow
	params := result.Params
	p.Text = fmt.Sprintf("Initial: %s\n", output.FormatCurrency(params.InitialCapital()))
	p.Text += fmt.Sprintf("Contribution: %s / year\n", output.FormatCurrency(params.AnnualContribution()))
	p.Text += fmt.Sprintf("Return: %s ± %s\n", output.FormatPercentage(params.MeanReturn()), output.FormatPercentage(params.StdevReturn()))
	p.Text += fmt.Sprintf("Trials: %d  Years: %d\n\n", params.NumTrials(), params.HorizonYears())
	p.Text += fmt.Sprintf("[Mean: %s](fg:green)\n", output.FormatCurrency(result.Terminal.Mean))
	p.Text += fmt.Sprintf("5th pct: %s\n", output.FormatCurrency(result.Terminal.P5))
	p.Text += fmt.Sprintf("95th pct: %s\n", output.FormatCurrency(result.Terminal.P95))
	p.Text += fmt.Sprintf("Seed: %d\n", result.Seed)
	if result.Approximate {
		p.Text += "[Yearly bands are estimates](fg:red)\n"
	}
	p.Text += "\nPress q to quit"
	return p
}

func newHistogram(result *domain.Result) *widgets.BarChart {
	bc := widgets.NewBarChart()
	bc.Title = "Final value distribution (p5 yellow, mean red, p95 magenta)"
	bins, _ := calculation.Histogram(result.Charts.TerminalValues, HistogramBins)
	bc.Data = make([]float64, len(bins))
	bc.Labels = make([]string, len(bins))
	bc.BarColors = make([]termui.Color, len(bins))
	for i, b := range bins {
		bc.Data[i] = float64(b.Count)
		bc.Labels[i] = shortAmount(b.Lower/2 + b.Upper/2)
		bc.BarColors[i] = termui.ColorBlue
	}
	// Mean is marked last so it wins a bin shared with a percentile.
	markers := []struct {
		value float64
		color termui.Color
	}{
		{result.Terminal.P5, termui.ColorYellow},
		{result.Terminal.P95, termui.ColorMagenta},
		{result.Terminal.Mean, termui.ColorRed},
	}
	for _, m := range markers {
		if i, _, ok := calculation.LocateInHistogram(bins, m.value); ok {
			bc.BarColors[i] = m.color
		}
	}
	if len(bc.BarColors) == 0 {
		bc.BarColors = []termui.Color{termui.ColorBlue}
	}
	bc.BarWidth = 6
	bc.NumFormatter = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	return bc
}

func newMeanPlot(result *domain.Result) *widgets.Plot {
	plot := widgets.NewPlot()
	plot.Title = "Mean capital by year"
	means := finiteOrZero(result.Charts.MeanByYear)
	if len(means) == 1 {
		// a line needs two points
		means = []float64{0, means[0]}
	}
	plot.Data = [][]float64{means}
	plot.LineColors = []termui.Color{termui.ColorGreen}
	plot.AxesColor = termui.ColorWhite
	plot.Marker = widgets.MarkerBraille
	return plot
}

func newComponents(result *domain.Result) *widgets.StackedBarChart {
	sbc := widgets.NewStackedBarChart()
	sbc.Title = "Contributions (grey) vs returns (green)"
	baseline := finiteOrZero(result.Charts.ContributionBaseline)
	returns := finiteOrZero(result.Charts.ReturnComponent)
	sbc.Data = make([][]float64, len(baseline))
	sbc.Labels = make([]string, len(baseline))
	for i := range baseline {
		// stacked bars cannot go below zero
		sbc.Data[i] = []float64{math.Max(baseline[i], 0), math.Max(returns[i], 0)}
		sbc.Labels[i] = fmt.Sprint(i + 1)
	}
	sbc.BarWidth = 3
	sbc.BarColors = []termui.Color{termui.ColorWhite, termui.ColorGreen}
	sbc.NumStyles = []termui.Style{termui.NewStyle(termui.ColorBlack)}
	sbc.NumFormatter = func(float64) string { return "" }
	return sbc
}

func newTable(result *domain.Result) *widgets.Table {
	t := widgets.NewTable()
	t.Title = "Yearly statistics"
	t.Rows = [][]string{{"Year", "Mean", "P5", "P95"}}
	for _, ys := range result.Yearly {
		t.Rows = append(t.Rows, []string{
			fmt.Sprint(ys.Year),
			output.FormatWhole(ys.Mean),
			output.FormatWhole(ys.P5),
			output.FormatWhole(ys.P95),
		})
	}
	t.TextStyle = termui.NewStyle(termui.ColorWhite)
	t.RowStyles[0] = termui.NewStyle(termui.ColorYellow, termui.ColorClear, termui.ModifierBold)
	t.RowSeparator = false
	return t
}

func finiteOrZero(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[i] = v
		}
	}
	return out
}

// shortAmount renders bar labels such as 412k or 1.2M.
func shortAmount(v float64) string {
	switch abs := math.Abs(v); {
	case abs >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.0fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
