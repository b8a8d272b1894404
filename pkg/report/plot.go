package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/edp1096/toy-sq/internal/consts"
)

// PlotSeries renders one metric-vs-bandgap curve to a PNG file. x is in eV.
func PlotSeries(path, title, yLabel string, x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("series length mismatch: %d x, %d y", len(x), len(y))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Bandgap (eV)"
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}

	if err := plotutil.AddLines(p, title, pts); err != nil {
		return fmt.Errorf("adding curve: %v", err)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot %s: %v", path, err)
	}
	return nil
}

// PlotAll renders the four metric curves into dir.
func PlotAll(dir string, results map[string][]float64) error {
	egap := results["EGAP"]
	if egap == nil {
		return fmt.Errorf("sweep results missing EGAP series")
	}

	x := make([]float64, len(egap))
	for i, e := range egap {
		x[i] = e / consts.EV
	}

	jsc := make([]float64, len(results["JSC"]))
	for i, v := range results["JSC"] {
		jsc[i] = v / consts.MilliampPerCm2
	}

	plots := []struct {
		file   string
		title  string
		yLabel string
		y      []float64
	}{
		{"efficiency.png", "Max efficiency", "Efficiency (fraction)", results["EFF"]},
		{"voc.png", "Open-circuit voltage", "VOC (V)", results["VOC"]},
		{"jsc.png", "Short-circuit current", "JSC (mA/cm²)", jsc},
		{"fill_factor.png", "Fill factor", "FF (fraction)", results["FF"]},
	}

	for _, pl := range plots {
		if pl.y == nil {
			return fmt.Errorf("sweep results missing series for %s", pl.file)
		}
		if err := PlotSeries(filepath.Join(dir, pl.file), pl.title, pl.yLabel, x, pl.y); err != nil {
			return err
		}
	}
	return nil
}
