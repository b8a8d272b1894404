package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/edp1096/toy-sq/internal/consts"
	"github.com/edp1096/toy-sq/pkg/cell"
)

// GapMetrics are the derived device figures for one bandgap. Egap is in J,
// VOC/VMPP in V, JSC/JMPP in A/m², PMAX in W/m², FF and Efficiency are
// fractions.
type GapMetrics struct {
	Egap       float64
	JSC        float64
	VOC        float64
	VMPP       float64
	JMPP       float64
	PMAX       float64
	FF         float64
	Efficiency float64
}

// Metrics evaluates the full device figure set at one bandgap (J). The
// max-power-point voltage is found by scalar minimization of the negated
// power, starting from 0 V; non-convergence is an explicit error.
func Metrics(c *cell.Cell, egap float64, conv Convergence) (GapMetrics, error) {
	m := GapMetrics{Egap: egap}

	var err error
	if m.JSC, err = c.JSC(egap); err != nil {
		return m, fmt.Errorf("JSC at Egap=%g eV: %v", egap/consts.EV, err)
	}
	if m.VOC, err = c.VOC(egap); err != nil {
		return m, err
	}

	if m.VMPP, err = maxPowerVoltage(c, egap, conv); err != nil {
		return m, err
	}
	if m.JMPP, err = c.CurrentDensity(m.VMPP, egap); err != nil {
		return m, fmt.Errorf("JMPP at Egap=%g eV: %v", egap/consts.EV, err)
	}

	m.PMAX = m.VMPP * m.JMPP
	m.Efficiency = m.PMAX / c.SolarConstant()
	m.FF = m.PMAX / (m.JSC * m.VOC)

	return m, nil
}

// maxPowerVoltage locates the voltage maximizing V*J(V, Egap) with
// Nelder-Mead on the negated power.
func maxPowerVoltage(c *cell.Cell, egap float64, conv Convergence) (float64, error) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			j, err := c.CurrentDensity(x[0], egap)
			if err != nil {
				return math.NaN()
			}
			return -x[0] * j
		},
	}

	settings := &optimize.Settings{
		MajorIterations: conv.MaxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   conv.AbsTol,
			Relative:   conv.RelTol,
			Iterations: 20,
		},
	}

	result, err := optimize.Minimize(problem, []float64{0}, settings, &optimize.NelderMead{})
	if err != nil {
		return 0, fmt.Errorf("max power point search failed at Egap=%g eV: %v", egap/consts.EV, err)
	}
	if err := result.Status.Err(); err != nil {
		return 0, fmt.Errorf("max power point search did not converge at Egap=%g eV: %v", egap/consts.EV, err)
	}

	return result.X[0], nil
}
