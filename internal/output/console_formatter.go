package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rpgo/savings-simulator/internal/domain"
	"github.com/rpgo/savings-simulator/pkg/dateutil"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	numberStyle = lipgloss.NewStyle().Align(lipgloss.Right).PaddingLeft(1).PaddingRight(1)
	labelStyle  = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
)

// ConsoleFormatter prints the run summary and a year-by-year table of the
// mean and percentile band, rounded to whole units.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.Result) ([]byte, error) {
	var buf bytes.Buffer
	params := result.Params
	analysis := AnalyzePlan(result)

	fmt.Fprintln(&buf, "SAVINGS PLAN MONTE CARLO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Run: %s  Seed: %d\n", result.RunID, result.Seed)
	fmt.Fprintf(&buf, "Initial capital: %s  Annual contribution: %s\n",
		FormatCurrency(params.InitialCapital()), FormatCurrency(params.AnnualContribution()))
	fmt.Fprintf(&buf, "Horizon: %d years  Trials: %d  Return: %s ± %s\n",
		params.HorizonYears(), params.NumTrials(), FormatPercentage(params.MeanReturn()), FormatPercentage(params.StdevReturn()))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "Final value after %d years\n", params.HorizonYears())
	fmt.Fprintf(&buf, "  Mean: %s\n", FormatCurrency(result.Terminal.Mean))
	fmt.Fprintf(&buf, "  5th percentile: %s\n", FormatCurrency(result.Terminal.P5))
	fmt.Fprintf(&buf, "  95th percentile: %s\n", FormatCurrency(result.Terminal.P95))
	fmt.Fprintf(&buf, "  Contributed: %s  Mean gain: %s\n", FormatCurrency(analysis.TotalContributed), FormatCurrency(analysis.MeanGain))
	if result.Charts.NonFiniteTerminals > 0 {
		fmt.Fprintf(&buf, "  Warning: %d trials ended with a non-finite value\n", result.Charts.NonFiniteTerminals)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, yearTable(result))
	if result.Approximate {
		fmt.Fprintln(&buf, "Yearly percentiles are streaming estimates; final-year values are exact.")
	}
	return buf.Bytes(), nil
}

func yearTable(result *domain.Result) string {
	withDates := result.Params.HasStartDate()
	headers := []string{"Year"}
	if withDates {
		headers = append(headers, "Year End")
	}
	headers = append(headers, "Mean", "5th Pct", "95th Pct")

	rows := make([][]string, 0, len(result.Yearly))
	for _, ys := range result.Yearly {
		row := []string{intToString(ys.Year)}
		if withDates {
			row = append(row, result.YearEnd(ys.Year).Format(dateutil.DateLayout))
		}
		row = append(row, FormatWhole(ys.Mean), FormatWhole(ys.P5), FormatWhole(ys.P95))
		rows = append(rows, row)
	}

	labelCols := 1
	if withDates {
		labelCols = 2
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < labelCols:
				return labelStyle
			default:
				return numberStyle
			}
		})
	return t.Render()
}

func formatSummaryLine(result *domain.Result) ([]byte, error) {
	line := fmt.Sprintf("years=%d trials=%d mean=%s p5=%s p95=%s seed=%d\n",
		result.Params.HorizonYears(), result.Params.NumTrials(),
		FormatWhole(result.Terminal.Mean), FormatWhole(result.Terminal.P5), FormatWhole(result.Terminal.P95),
		result.Seed)
	return []byte(line), nil
}
