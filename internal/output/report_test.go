package output_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/savings-simulator/internal/domain"
	"github.com/rpgo/savings-simulator/internal/output"
)

func sampleResult(t *testing.T) *domain.Result {
	t.Helper()
	params, err := domain.NewParameterSet(1000, 500, 1, 0, 0, 1)
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	ensemble, err := domain.NewEnsemble(params, []domain.Path{{1500}})
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	return &domain.Result{
		RunID:       "r",
		GeneratedAt: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		Params:      params,
		Ensemble:    ensemble,
		Terminal:    domain.TerminalStatistic{Mean: 1500, P5: 1500, P95: 1500},
		Yearly:      []domain.YearlyStatistic{{Year: 1, Mean: 1500, P5: 1500, P95: 1500}},
	}
}

func TestRenderWithoutResult(t *testing.T) {
	_, err := output.Render(nil, "html")
	if !errors.Is(err, output.ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := output.Render(sampleResult(t), "definitely-not-a-format")
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "unsupported report format") || !strings.Contains(msg, "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", msg)
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	path, err := output.WriteReport(sampleResult(t), "csv", dir)
	if err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}
	if want := filepath.Join(dir, "savings_report_20260304_050607.csv"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "1,,1500,1500,1500,1500") {
		t.Fatalf("unexpected csv:\n%s", data)
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "report.json")
	if err := output.WriteFile(path, []byte("{}")); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestFormatters(t *testing.T) {
	if got := output.FormatCurrency(123.45); got != "$123" {
		t.Fatalf("FormatCurrency = %q", got)
	}
	if got := output.FormatPercentage(0.1234); got != "12.34%" {
		t.Fatalf("FormatPercentage = %q", got)
	}
}
