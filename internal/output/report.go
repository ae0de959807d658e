package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/savings-simulator/internal/domain"
)

// Render formats result with the named formatter. Visualization always works
// from the Result handed in; a nil result fails with ErrNoResult.
func Render(result *domain.Result, format string) ([]byte, error) {
	if result == nil {
		return nil, ErrNoResult
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(result)
	if err != nil {
		return nil, fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	return data, nil
}

// WriteReport renders result and writes it to dir under a timestamped name
// derived from the run time. It returns the path written.
func WriteReport(result *domain.Result, format, dir string) (string, error) {
	data, err := Render(result, format)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("savings_report_%s.%s", result.GeneratedAt.Format("20060102_150405"), Extension(format))
	path := filepath.Join(dir, filename)
	if err := WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile writes rendered output, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
