package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is matched by every *InvalidParameterError.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNumericOverflow is returned in strict mode when a path leaves the finite range.
	ErrNumericOverflow = errors.New("numeric overflow")
	// ErrSimulationAborted is returned when a run is cancelled before every trial finished.
	ErrSimulationAborted = errors.New("simulation aborted")
	// ErrEnsembleTooLarge is returned when a run would materialize more values than allowed.
	ErrEnsembleTooLarge = errors.New("ensemble too large")
)

// InvalidParameterError names the first plan field that violated its invariant.
type InvalidParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// NumericOverflowError locates the first non-finite capital value of a run.
type NumericOverflowError struct {
	Trial int
	Year  int
	Value float64
}

func (e *NumericOverflowError) Error() string {
	return fmt.Sprintf("numeric overflow: trial %d year %d produced %v", e.Trial, e.Year, e.Value)
}

func (e *NumericOverflowError) Is(target error) bool { return target == ErrNumericOverflow }
