package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-simulator/internal/domain"
	"github.com/rpgo/savings-simulator/pkg/dateutil"
	"github.com/rpgo/savings-simulator/pkg/decimal"
)

// CSVSummarizer writes the yearly statistics table, one row per year.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "YearEnd", "Mean", "P5", "P95", "ContributedCapital"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, ys := range result.Yearly {
		yearEnd := ""
		if result.Params.HasStartDate() {
			yearEnd = result.YearEnd(ys.Year).Format(dateutil.DateLayout)
		}
		row := []string{
			intToString(ys.Year),
			yearEnd,
			decimal.FormatAmount(ys.Mean, 0),
			decimal.FormatAmount(ys.P5, 0),
			decimal.FormatAmount(ys.P95, 0),
			decimal.FormatAmount(result.Params.ContributedCapital(ys.Year), 0),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
