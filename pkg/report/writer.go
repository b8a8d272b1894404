// Package report writes the sweep output artifacts: one newline-delimited
// decimal series per device metric, in sweep order, plus optional curve
// plots. Unit conversion out of SI happens here and nowhere else.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edp1096/toy-sq/internal/consts"
)

// Artifact file names, one per metric series.
const (
	EfficiencyFile = "efficiency.txt"  // fraction
	VOCFile        = "voc.txt"         // V
	JSCFile        = "jsc.txt"         // mA/cm²
	FillFactorFile = "fill_factor.txt" // fraction
)

// WriteSeries writes values as newline-delimited decimals.
func WriteSeries(path string, values []float64) error {
	var sb strings.Builder
	for _, v := range values {
		fmt.Fprintf(&sb, "%f\n", v)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %v", path, err)
	}
	return nil
}

// WriteAll writes the four metric artifacts from a sweep result map into
// dir, converting JSC from A/m² to mA/cm².
func WriteAll(dir string, results map[string][]float64) error {
	for _, key := range []string{"EFF", "VOC", "JSC", "FF"} {
		if _, ok := results[key]; !ok {
			return fmt.Errorf("sweep results missing %s series", key)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %v", err)
	}

	jsc := make([]float64, len(results["JSC"]))
	for i, v := range results["JSC"] {
		jsc[i] = v / consts.MilliampPerCm2
	}

	files := []struct {
		name   string
		values []float64
	}{
		{EfficiencyFile, results["EFF"]},
		{VOCFile, results["VOC"]},
		{JSCFile, jsc},
		{FillFactorFile, results["FF"]},
	}

	for _, f := range files {
		if err := WriteSeries(filepath.Join(dir, f.name), f.values); err != nil {
			return err
		}
	}
	return nil
}
