package domain

import "fmt"

// Path is one simulated trajectory: the capital at the end of each year.
type Path []float64

// Final returns the terminal value of the path.
func (p Path) Final() float64 { return p[len(p)-1] }

// Ensemble is the ordered set of paths produced by one engine run. Paths are
// indexed by trial number.
type Ensemble struct {
	Params ParameterSet
	Paths  []Path
}

// NewEnsemble checks the shape invariants: exactly NumTrials paths of exactly
// HorizonYears values each.
func NewEnsemble(params ParameterSet, paths []Path) (*Ensemble, error) {
	if len(paths) != params.NumTrials() {
		return nil, fmt.Errorf("ensemble has %d paths, expected %d", len(paths), params.NumTrials())
	}
	for i, p := range paths {
		if len(p) != params.HorizonYears() {
			return nil, fmt.Errorf("path %d has %d years, expected %d", i, len(p), params.HorizonYears())
		}
	}
	return &Ensemble{Params: params, Paths: paths}, nil
}

// TerminalValues returns each path's final value in trial order.
func (e *Ensemble) TerminalValues() []float64 {
	values := make([]float64, len(e.Paths))
	for i, p := range e.Paths {
		values[i] = p.Final()
	}
	return values
}

// Column returns the value every path holds at the given 1-based year.
func (e *Ensemble) Column(year int) []float64 {
	values := make([]float64, len(e.Paths))
	for i, p := range e.Paths {
		values[i] = p[year-1]
	}
	return values
}
