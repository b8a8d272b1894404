// Package costmodel computes the minimum sustainable price (MSP) of a
// thin-film module: the per-area and per-watt price recovering material,
// operational, and financial costs for a given production throughput.
package costmodel

import (
	"math"
)

// Cost classification of an operational cost line. Variable costs scale
// inversely with throughput; fixed costs do not.
const (
	Fixed    = "fixed"
	Variable = "variable"
)

// Operational cost line names, the keys of Params.CostType.
const (
	Maintenance  = "maintenance"
	Utilities    = "utilities"
	Labor        = "labor"
	Depreciation = "depreciation"
)

// baselineThroughput is the throughput (m²/min) the base operational costs
// are quoted at.
const baselineThroughput = 3.0

// Params are the cost-model inputs. Monetary values are ¥/m².
type Params struct {
	MaterialCosts map[string]float64

	PCE        float64 // power conversion efficiency, fraction
	ModuleArea float64 // m²
	Throughput float64 // m²/min

	BaseMaintenance  float64
	BaseUtilities    float64
	BaseLabor        float64
	BaseDepreciation float64

	SGAPercent  float64 // SG&A, fraction of MSP
	TaxRate     float64 // fraction of MSP
	WACCPercent float64 // weighted average cost of capital, fraction of MSP

	CostType map[string]string // per cost line: Fixed or Variable
}

// DefaultParams returns the literature-baseline parameter set.
func DefaultParams() Params {
	return Params{
		PCE:              0.10,
		ModuleArea:       0.72,
		Throughput:       3.0,
		BaseMaintenance:  2.77,
		BaseUtilities:    22.67,
		BaseLabor:        15.36,
		BaseDepreciation: 13.85,
		SGAPercent:       0.15,
		TaxRate:          0.27,
		WACCPercent:      0.144,
		CostType: map[string]string{
			Maintenance:  Fixed,
			Utilities:    Variable,
			Labor:        Variable,
			Depreciation: Variable,
		},
	}
}

// CalculateMSP evaluates the cost model and returns the labeled result
// fields, each rounded to 2 decimals. A financial overhead share at or above
// 100% makes cost recovery impossible; the MSP fields are then +Inf rather
// than an error.
func CalculateMSP(p Params) map[string]float64 {
	throughputFactor := baselineThroughput / p.Throughput

	adjust := func(base float64, line string) float64 {
		if p.CostType[line] == Fixed {
			return base
		}
		return base * throughputFactor
	}

	maintenance := adjust(p.BaseMaintenance, Maintenance)
	utilities := adjust(p.BaseUtilities, Utilities)
	labor := adjust(p.BaseLabor, Labor)
	depreciation := adjust(p.BaseDepreciation, Depreciation)

	totalMaterial := 0.0
	for _, cost := range p.MaterialCosts {
		totalMaterial += cost
	}

	directCost := totalMaterial + maintenance + utilities + labor + depreciation

	denominator := 1.0 - p.SGAPercent - p.TaxRate - p.WACCPercent
	mspPerM2 := math.Inf(1)
	if denominator > 0 {
		mspPerM2 = directCost / denominator
	}
	mspPerWatt := mspPerM2 / (1000.0 * p.PCE)

	return map[string]float64{
		"MSP (¥/m²)":                       round2(mspPerM2),
		"MSP (¥/Wp)":                       round2(mspPerWatt),
		"Total Material Cost (¥/m²)":       round2(totalMaterial),
		"Direct Manufacturing Cost (¥/m²)": round2(directCost),
		"Throughput Factor":                round2(throughputFactor),
		"Adjusted Maintenance (¥/m²)":      round2(maintenance),
		"Adjusted Utilities (¥/m²)":        round2(utilities),
		"Adjusted Labor (¥/m²)":            round2(labor),
		"Adjusted Depreciation (¥/m²)":     round2(depreciation),
	}
}

func round2(v float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100.0) / 100.0
}
