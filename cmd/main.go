package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/edp1096/toy-sq/internal/config"
	"github.com/edp1096/toy-sq/internal/consts"
	"github.com/edp1096/toy-sq/pkg/analysis"
	"github.com/edp1096/toy-sq/pkg/cell"
	"github.com/edp1096/toy-sq/pkg/report"
	"github.com/edp1096/toy-sq/pkg/spectrum"
	"github.com/edp1096/toy-sq/pkg/util"
)

func printSummary(results map[string][]float64) {
	fmt.Println("\nSweep Results:")
	fmt.Println("==============")

	egaps := results["EGAP"]
	effs := results["EFF"]
	fmt.Printf("%d bandgap points, %g to %g eV\n",
		len(egaps), egaps[0]/consts.EV, egaps[len(egaps)-1]/consts.EV)

	best := 0
	for i, eff := range effs {
		if eff > effs[best] {
			best = i
		}
	}

	fmt.Printf("\nPeak efficiency: %s at Egap=%.3f eV\n",
		util.FormatPercent(effs[best]), egaps[best]/consts.EV)
	fmt.Printf("  VOC  = %s\n", util.FormatValueFactor(results["VOC"][best], "V"))
	fmt.Printf("  JSC  = %.3f mA/cm²\n", results["JSC"][best]/consts.MilliampPerCm2)
	fmt.Printf("  FF   = %.4f\n", results["FF"][best])
	fmt.Printf("  VMPP = %s\n", util.FormatValueFactor(results["VMPP"][best], "V"))
	fmt.Printf("  PMAX = %.2f W/m²\n", results["PMAX"][best])
}

func run(cfg *config.Config) error {
	spec, err := spectrum.Load(cfg.Spectrum.File, spectrum.Options{
		WavelengthColumn: cfg.Spectrum.WavelengthColumn,
		IrradianceColumn: cfg.Spectrum.IrradianceColumn,
		SkipRows:         cfg.Spectrum.SkipRows,
		LambdaMinNM:      cfg.Spectrum.LambdaMinNM,
		LambdaMaxNM:      cfg.Spectrum.LambdaMaxNM,
	})
	if err != nil {
		return fmt.Errorf("loading spectrum: %v", err)
	}
	fmt.Printf("Loaded spectrum: %d samples, %.0f to %.0f nm\n",
		spec.Samples(), spec.LambdaMin()/consts.NM, spec.LambdaMax()/consts.NM)

	c, err := cell.New(spec, cell.Params{
		Temperature: cfg.Cell.TemperatureK,
		QuadPoints:  cfg.Solver.QuadPoints,
	})
	if err != nil {
		return fmt.Errorf("building cell model: %v", err)
	}
	fmt.Printf("Cell temperature: %g K, solar constant: %.1f W/m²\n",
		c.Temperature(), c.SolarConstant())

	sweep := analysis.NewBandgapSweep(
		cfg.Sweep.StartEV*consts.EV,
		cfg.Sweep.StopEV*consts.EV,
		cfg.Sweep.Points,
		cfg.Sweep.Workers,
	)
	sweep.SetConvergence(analysis.Convergence{
		MaxIter: cfg.Solver.MaxIterations,
		AbsTol:  cfg.Solver.AbsTol,
		RelTol:  cfg.Solver.RelTol,
	})

	if err := sweep.Setup(c); err != nil {
		return fmt.Errorf("sweep setup: %v", err)
	}
	if err := sweep.Execute(); err != nil {
		return fmt.Errorf("sweep execution: %v", err)
	}

	results := sweep.GetResults()
	printSummary(results)

	if err := report.WriteAll(cfg.Output.Directory, results); err != nil {
		return err
	}
	fmt.Printf("\nWrote metric series to %s\n", cfg.Output.Directory)

	if cfg.Output.Plot {
		if err := report.PlotAll(cfg.Output.Directory, results); err != nil {
			return err
		}
		fmt.Printf("Wrote metric plots to %s\n", cfg.Output.Directory)
	}

	return nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("Usage: toy-sq <config_file>")
	}

	cfg, err := config.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
