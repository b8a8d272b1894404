package analysis

import (
	"math"
	"testing"

	"github.com/edp1096/toy-sq/internal/consts"
	"github.com/edp1096/toy-sq/pkg/cell"
	"github.com/edp1096/toy-sq/pkg/spectrum"
)

func blackBodySpectrum(t *testing.T) *spectrum.Spectrum {
	t.Helper()

	const (
		tsun  = 5772.0
		scale = 2.1646e-5 // (sun radius / 1 AU)²
	)

	var lambda, irrad []float64
	for wl := 280.0; wl <= 4000.0; wl += 10.0 {
		l := wl * consts.NM
		hc := consts.PLANCK * consts.LIGHTSPEED
		b := 2.0 * hc * consts.LIGHTSPEED / (l * l * l * l * l) /
			(math.Exp(hc/(l*consts.BOLTZMANN*tsun)) - 1.0)
		lambda = append(lambda, l)
		irrad = append(irrad, math.Pi*scale*b)
	}

	sp, err := spectrum.New(lambda, irrad)
	if err != nil {
		t.Fatalf("Failed to build test spectrum: %v", err)
	}
	return sp
}

func newTestCell(t *testing.T) *cell.Cell {
	t.Helper()

	c, err := cell.New(blackBodySpectrum(t), cell.Params{})
	if err != nil {
		t.Fatalf("Failed to build cell: %v", err)
	}
	return c
}

func runSweep(t *testing.T, workers int) map[string][]float64 {
	t.Helper()

	sweep := NewBandgapSweep(0.5*consts.EV, 2.5*consts.EV, 30, workers)
	if err := sweep.Setup(newTestCell(t)); err != nil {
		t.Fatalf("Sweep setup: %v", err)
	}
	if err := sweep.Execute(); err != nil {
		t.Fatalf("Sweep execution: %v", err)
	}
	return sweep.GetResults()
}

func TestSweepProperties(t *testing.T) {
	results := runSweep(t, 1)

	series := []string{"EGAP", "JSC", "VOC", "VMPP", "JMPP", "PMAX", "FF", "EFF"}
	for _, name := range series {
		if len(results[name]) != 30 {
			t.Fatalf("Series %s: expected 30 points, got %d", name, len(results[name]))
		}
	}

	for i := 1; i < 30; i++ {
		if results["EGAP"][i] <= results["EGAP"][i-1] {
			t.Errorf("EGAP series not ascending at point %d", i)
		}
	}

	for i := 0; i < 30; i++ {
		eg := results["EGAP"][i] / consts.EV

		if ff := results["FF"][i]; ff <= 0 || ff >= 1 {
			t.Errorf("Fill factor out of (0,1) at %g eV: %g", eg, ff)
		}
		if eff := results["EFF"][i]; eff <= 0 || eff > 1 {
			t.Errorf("Efficiency out of (0,1] at %g eV: %g", eg, eff)
		}
		if p := results["PMAX"][i]; p <= 0 {
			t.Errorf("Max power not positive at %g eV: %g", eg, p)
		}
		if v := results["VMPP"][i]; v <= 0 || v >= results["VOC"][i] {
			t.Errorf("VMPP at %g eV outside (0, VOC): %g vs VOC %g", eg, v, results["VOC"][i])
		}
	}
}

// The detailed-balance optimum for a solar-temperature black body sits in
// the 1-1.6 eV range.
func TestSweepPeakLocation(t *testing.T) {
	results := runSweep(t, 1)

	best := 0
	for i, eff := range results["EFF"] {
		if eff > results["EFF"][best] {
			best = i
		}
	}

	peak := results["EGAP"][best] / consts.EV
	if peak < 0.9 || peak > 1.7 {
		t.Errorf("Peak efficiency at %g eV, expected near 1.1-1.4 eV", peak)
	}
	if eff := results["EFF"][best]; eff < 0.25 || eff > 0.45 {
		t.Errorf("Peak efficiency %g outside the expected 25-45%% band", eff)
	}
}

// Worker-pool execution must produce the same series in the same order as
// the serial run.
func TestSweepParallelMatchesSerial(t *testing.T) {
	serial := runSweep(t, 1)
	parallel := runSweep(t, 4)

	for name, want := range serial {
		got := parallel[name]
		if len(got) != len(want) {
			t.Fatalf("Series %s: length %d vs %d", name, len(got), len(want))
		}
		for i := range want {
			diff := math.Abs(got[i] - want[i])
			if diff > 1e-12*math.Abs(want[i]) {
				t.Errorf("Series %s point %d: %g vs %g", name, i, got[i], want[i])
			}
		}
	}
}

func TestMetricsSinglePoint(t *testing.T) {
	c := newTestCell(t)

	m, err := Metrics(c, 1.1*consts.EV, DefaultConvergence())
	if err != nil {
		t.Fatalf("Metrics at 1.1 eV: %v", err)
	}

	if m.JSC <= 0 {
		t.Errorf("JSC not positive: %g", m.JSC)
	}
	if m.VOC <= 0 || m.VOC >= 1.1 {
		t.Errorf("VOC out of (0, Egap): %g", m.VOC)
	}
	if m.FF <= 0 || m.FF >= 1 {
		t.Errorf("Fill factor out of (0,1): %g", m.FF)
	}
	if math.Abs(m.PMAX-m.VMPP*m.JMPP) > 1e-9*m.PMAX {
		t.Errorf("PMAX inconsistent with VMPP*JMPP: %g vs %g", m.PMAX, m.VMPP*m.JMPP)
	}
	if math.Abs(m.Efficiency-m.PMAX/c.SolarConstant()) > 1e-12 {
		t.Errorf("Efficiency inconsistent with PMAX/solar constant")
	}
}

// Cutting the optimizer off after one iteration must surface an explicit
// non-convergence error, not a silently accepted iterate.
func TestMPPNonConvergence(t *testing.T) {
	c := newTestCell(t)

	_, err := Metrics(c, 1.1*consts.EV, Convergence{MaxIter: 1, AbsTol: 1e-12, RelTol: 1e-6})
	if err == nil {
		t.Fatal("Expected non-convergence error, got nil")
	}
}

func TestSweepRequiresSetup(t *testing.T) {
	sweep := NewBandgapSweep(0.5*consts.EV, 2.5*consts.EV, 10, 1)
	if err := sweep.Execute(); err == nil {
		t.Error("Expected error executing sweep without a cell")
	}
}
