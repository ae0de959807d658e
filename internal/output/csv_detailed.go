package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-simulator/internal/domain"
)

// CSVDetailedExporter writes every simulated path, one row per trial and
// year, with capital to the cent. Streaming results have no paths.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(result *domain.Result) ([]byte, error) {
	if result.Ensemble == nil {
		return nil, ErrNoEnsemble
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Trial", "Year", "Capital", "ContributedCapital"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for trial, path := range result.Ensemble.Paths {
		for i, capital := range path {
			year := i + 1
			row := []string{
				intToString(trial + 1),
				intToString(year),
				formatCents(capital),
				formatCents(result.Params.ContributedCapital(year)),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
