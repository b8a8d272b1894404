package analysis

import (
	"github.com/edp1096/toy-sq/pkg/cell"
)

// Analysis is one evaluation pass over a cell model.
type Analysis interface {
	Setup(c *cell.Cell) error
	Execute() error
	GetResults() map[string][]float64
}

// Convergence parameters for the max-power-point search.
type Convergence struct {
	MaxIter int
	AbsTol  float64
	RelTol  float64
}

// DefaultConvergence returns the optimizer defaults documented for the
// reference run.
func DefaultConvergence() Convergence {
	return Convergence{
		MaxIter: 200,
		AbsTol:  1e-12,
		RelTol:  1e-6,
	}
}

type BaseAnalysis struct {
	Cell        *cell.Cell
	results     map[string][]float64 // key: metric name, value: series in sweep order
	convergence Convergence
}

func NewBaseAnalysis() *BaseAnalysis {
	return &BaseAnalysis{
		results:     make(map[string][]float64),
		convergence: DefaultConvergence(),
	}
}

// SetConvergence overrides the optimizer defaults.
func (a *BaseAnalysis) SetConvergence(conv Convergence) {
	if conv.MaxIter > 0 {
		a.convergence.MaxIter = conv.MaxIter
	}
	if conv.AbsTol > 0 {
		a.convergence.AbsTol = conv.AbsTol
	}
	if conv.RelTol > 0 {
		a.convergence.RelTol = conv.RelTol
	}
}

func (a *BaseAnalysis) StoreResult(metrics map[string]float64) {
	for name, value := range metrics {
		if _, exists := a.results[name]; !exists {
			a.results[name] = make([]float64, 0)
		}
		a.results[name] = append(a.results[name], value)
	}
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}
