package report

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func readSeries(t *testing.T, path string) []float64 {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}

	var values []float64
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			t.Fatalf("Bad line %q in %s: %v", line, path, err)
		}
		values = append(values, v)
	}
	return values
}

func TestWriteSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.txt")

	want := []float64{0.1, 0.25, 0.333333, 1.0}
	if err := WriteSeries(path, want); err != nil {
		t.Fatalf("WriteSeries: %v", err)
	}

	got := readSeries(t, path)
	if len(got) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 { // %f keeps 6 decimals
			t.Errorf("Value %d: expected %g, got %g", i, want[i], got[i])
		}
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()

	results := map[string][]float64{
		"EFF": {0.2, 0.3, 0.25},
		"VOC": {0.8, 0.9, 1.0},
		"JSC": {400.0, 350.0, 300.0}, // A/m²
		"FF":  {0.85, 0.87, 0.88},
	}

	if err := WriteAll(dir, results); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	for _, name := range []string{EfficiencyFile, VOCFile, JSCFile, FillFactorFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Missing artifact %s: %v", name, err)
		}
	}

	// JSC must be converted to mA/cm² on the way out.
	jsc := readSeries(t, filepath.Join(dir, JSCFile))
	want := []float64{40.0, 35.0, 30.0}
	for i := range want {
		if math.Abs(jsc[i]-want[i]) > 1e-6 {
			t.Errorf("JSC value %d: expected %g mA/cm², got %g", i, want[i], jsc[i])
		}
	}

	// Efficiency is written as a bare fraction.
	eff := readSeries(t, filepath.Join(dir, EfficiencyFile))
	if math.Abs(eff[1]-0.3) > 1e-6 {
		t.Errorf("Efficiency value 1: expected 0.3, got %g", eff[1])
	}
}

func TestWriteAllMissingSeries(t *testing.T) {
	err := WriteAll(t.TempDir(), map[string][]float64{
		"EFF": {0.2},
		"VOC": {0.8},
	})
	if err == nil {
		t.Error("Expected error for missing series")
	}
}
