package consts

// Physical constants, SI units. Every package computes in SI and converts
// only at the input/output boundaries.
const (
	CHARGE     = 1.6021918e-19  // Elementary charge (C)
	BOLTZMANN  = 1.3806226e-23  // Boltzmann constant (J/K)
	PLANCK     = 6.62607015e-34 // Planck constant (J*s)
	LIGHTSPEED = 2.99792458e8   // Speed of light (m/s)
	KELVIN     = 273.15         // Kelvin temperature (K)
)

// Unit conversion factors.
const (
	EV = CHARGE // 1 eV in J
	NM = 1e-9   // 1 nm in m

	// 1 mA/cm² = 10 A/m². Divide an A/m² value by this to report mA/cm².
	MilliampPerCm2 = 10.0
)

// Reference run defaults (AM1.5G, standard test conditions).
const (
	DefaultCellTemp  = 300.0  // Cell temperature (K)
	DefaultLambdaMin = 280.0  // Spectrum window lower bound (nm)
	DefaultLambdaMax = 4000.0 // Spectrum window upper bound (nm)
	DefaultGapStart  = 0.4    // Bandgap sweep start (eV)
	DefaultGapStop   = 3.0    // Bandgap sweep stop (eV)
	DefaultGapPoints = 100    // Bandgap sweep points
)
