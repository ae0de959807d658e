package output

import "errors"

var (
	// ErrUnsupportedFormat is returned for a format name with no formatter.
	ErrUnsupportedFormat = errors.New("unsupported report format")
	// ErrNoResult is returned when output is requested before any simulation ran.
	ErrNoResult = errors.New("no simulation result available")
	// ErrNoEnsemble is returned by formatters that need every path when the
	// result came from a streaming run.
	ErrNoEnsemble = errors.New("result has no ensemble (streaming run)")
)
