// Package cell implements the detailed-balance (Shockley-Queisser) model of
// an ideal single-junction absorber: step-function absorptance above the
// bandgap, radiative recombination at the black-body floor, ideal diode I-V.
package cell

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/edp1096/toy-sq/internal/consts"
	"github.com/edp1096/toy-sq/pkg/spectrum"
)

// Params configure a cell model. Zero values fall back to the reference
// configuration.
type Params struct {
	Temperature float64 // cell temperature (K), default 300
	QuadPoints  int     // Gauss-Legendre nodes per integral, default 512
}

// Cell evaluates detailed-balance quantities against a fixed spectrum and
// temperature. All methods are pure; nothing is cached between calls except
// the solar constant, which is fixed by the spectrum at construction.
type Cell struct {
	spec *spectrum.Spectrum
	temp float64 // K

	emin, emax float64 // photon energy window (J), from the spectrum domain
	quadPoints int

	solarConst float64 // total incident power density (W/m²)
}

// New builds a cell model over the full domain of the given spectrum.
func New(spec *spectrum.Spectrum, p Params) (*Cell, error) {
	if p.Temperature == 0 {
		p.Temperature = consts.DefaultCellTemp
	}
	if p.Temperature < 0 {
		return nil, fmt.Errorf("invalid cell temperature %g K", p.Temperature)
	}
	if p.QuadPoints == 0 {
		p.QuadPoints = 512
	}
	if p.QuadPoints < 16 {
		return nil, fmt.Errorf("need at least 16 quadrature points, got %d", p.QuadPoints)
	}

	hc := consts.PLANCK * consts.LIGHTSPEED
	c := &Cell{
		spec:       spec,
		temp:       p.Temperature,
		emin:       hc / spec.LambdaMax(),
		emax:       hc / spec.LambdaMin(),
		quadPoints: p.QuadPoints,
	}

	// Total incident power density, the efficiency denominator.
	c.solarConst = quad.Fixed(func(e float64) float64 {
		return e * c.photonFlux(e)
	}, c.emin, c.emax, c.quadPoints, nil, 0)

	return c, nil
}

// PhotonFluxDensity returns the solar photon flux per unit photon energy
// (m⁻²·s⁻¹·J⁻¹) at photon energy e (J). The hc/E² Jacobian maps the
// per-wavelength irradiance onto the energy axis; dividing by E counts
// photons instead of power.
func (c *Cell) PhotonFluxDensity(e float64) (float64, error) {
	lambda := consts.PLANCK * consts.LIGHTSPEED / e
	irr, err := c.spec.Irradiance(lambda)
	if err != nil {
		return 0, err
	}
	hc := consts.PLANCK * consts.LIGHTSPEED
	return irr * hc / (e * e * e), nil
}

// photonFlux is the quadrature integrand. Quadrature nodes lie strictly
// inside the spectrum window, so a domain error would be a bug; NaN makes
// it surface in the integral instead of being swallowed.
func (c *Cell) photonFlux(e float64) float64 {
	flux, err := c.PhotonFluxDensity(e)
	if err != nil {
		return math.NaN()
	}
	return flux
}

// PhotonsAboveGap integrates the photon flux from the bandgap to the top of
// the spectrum window (m⁻²·s⁻¹): the photogeneration rate of an absorber
// with unity absorptance above the gap.
func (c *Cell) PhotonsAboveGap(egap float64) (float64, error) {
	if egap <= 0 {
		return 0, fmt.Errorf("invalid bandgap %g eV", egap/consts.EV)
	}
	if egap >= c.emax {
		return 0, nil
	}
	lo := math.Max(egap, c.emin)
	return quad.Fixed(c.photonFlux, lo, c.emax, c.quadPoints, nil, 0), nil
}

// RR0 returns the equilibrium radiative recombination rate (m⁻²·s⁻¹): the
// black-body photon flux above the gap at the cell temperature, with the
// 2π/(c²h³) detailed-balance prefactor.
func (c *Cell) RR0(egap float64) float64 {
	kT := consts.BOLTZMANN * c.temp

	// The integrand decays like exp(-E/kT); beyond ~40 kT above the gap the
	// contribution is below double precision.
	hi := math.Min(c.emax, egap+40.0*kT)
	if hi <= egap {
		return 0
	}

	integral := quad.Fixed(func(e float64) float64 {
		return e * e / (math.Exp(e/kT) - 1.0)
	}, egap, hi, c.quadPoints, nil, 0)

	h := consts.PLANCK
	c0 := consts.LIGHTSPEED
	return 2.0 * math.Pi / (c0 * c0 * h * h * h) * integral
}

// CurrentDensity returns the diode current density (A/m²) at applied
// voltage v (V) for the given bandgap (J): photogeneration minus
// voltage-enhanced radiative recombination.
func (c *Cell) CurrentDensity(v, egap float64) (float64, error) {
	gen, err := c.PhotonsAboveGap(egap)
	if err != nil {
		return 0, err
	}
	rr := c.RR0(egap) * math.Exp(v/c.ThermalVoltage())
	return consts.CHARGE * (gen - rr), nil
}

// JSC returns the short-circuit current density (A/m²).
func (c *Cell) JSC(egap float64) (float64, error) {
	return c.CurrentDensity(0, egap)
}

// VOC returns the open-circuit voltage (V), the closed-form zero crossing
// of the diode equation. It is undefined once the photon supply falls below
// the thermal emission floor.
func (c *Cell) VOC(egap float64) (float64, error) {
	gen, err := c.PhotonsAboveGap(egap)
	if err != nil {
		return 0, err
	}
	rr := c.RR0(egap)
	if gen <= rr || rr == 0 {
		return 0, fmt.Errorf("VOC undefined at Egap=%g eV: photon flux %g below thermal floor %g", egap/consts.EV, gen, rr)
	}
	return c.ThermalVoltage() * math.Log(gen/rr), nil
}

// SolarConstant returns the total incident power density (W/m²).
func (c *Cell) SolarConstant() float64 { return c.solarConst }

// Temperature returns the cell temperature (K).
func (c *Cell) Temperature() float64 { return c.temp }

// ThermalVoltage returns kT/q (V) at the cell temperature.
func (c *Cell) ThermalVoltage() float64 {
	return consts.BOLTZMANN * c.temp / consts.CHARGE
}

// EnergyWindow returns the photon energy bounds (J) implied by the
// spectrum wavelength domain.
func (c *Cell) EnergyWindow() (emin, emax float64) { return c.emin, c.emax }
