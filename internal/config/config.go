// Package config holds the YAML run configuration. Values are given in
// display units (nm, eV, K); the pipeline converts to SI when it is built.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edp1096/toy-sq/internal/consts"
)

// Config is the main run configuration.
type Config struct {
	Spectrum SpectrumConfig `yaml:"spectrum"`
	Cell     CellConfig     `yaml:"cell"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Solver   SolverConfig   `yaml:"solver"`
	Output   OutputConfig   `yaml:"output"`
}

// SpectrumConfig describes the reference spectrum file layout.
type SpectrumConfig struct {
	File             string  `yaml:"file"`
	SkipRows         int     `yaml:"skipRows"`
	WavelengthColumn int     `yaml:"wavelengthColumn"`
	IrradianceColumn int     `yaml:"irradianceColumn"`
	LambdaMinNM      float64 `yaml:"lambdaMinNm"`
	LambdaMaxNM      float64 `yaml:"lambdaMaxNm"`
}

// CellConfig holds the device operating conditions.
type CellConfig struct {
	TemperatureK float64 `yaml:"temperatureK"`
}

// SweepConfig describes the bandgap sweep grid.
type SweepConfig struct {
	StartEV float64 `yaml:"startEv"`
	StopEV  float64 `yaml:"stopEv"`
	Points  int     `yaml:"points"`
	Workers int     `yaml:"workers"`
}

// SolverConfig holds quadrature and optimizer parameters.
type SolverConfig struct {
	QuadPoints    int     `yaml:"quadPoints"`
	MaxIterations int     `yaml:"maxIterations"`
	AbsTol        float64 `yaml:"absTol"`
	RelTol        float64 `yaml:"relTol"`
}

// OutputConfig controls where and what gets written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Plot      bool   `yaml:"plot"`
}

// Default returns the reference run configuration minus the spectrum file,
// which has no default.
func Default() *Config {
	return &Config{
		Spectrum: SpectrumConfig{
			SkipRows:         3,
			WavelengthColumn: 0,
			IrradianceColumn: 1,
			LambdaMinNM:      consts.DefaultLambdaMin,
			LambdaMaxNM:      consts.DefaultLambdaMax,
		},
		Cell: CellConfig{
			TemperatureK: consts.DefaultCellTemp,
		},
		Sweep: SweepConfig{
			StartEV: consts.DefaultGapStart,
			StopEV:  consts.DefaultGapStop,
			Points:  consts.DefaultGapPoints,
			Workers: 1,
		},
		Solver: SolverConfig{
			QuadPoints:    512,
			MaxIterations: 200,
			AbsTol:        1e-12,
			RelTol:        1e-6,
		},
		Output: OutputConfig{
			Directory: ".",
		},
	}
}

// Load reads a YAML configuration file, filling unset fields with the
// reference defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %v", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run.
func (c *Config) Validate() error {
	if c.Spectrum.File == "" {
		return fmt.Errorf("spectrum.file is required")
	}
	if c.Spectrum.SkipRows < 0 {
		return fmt.Errorf("spectrum.skipRows must be >= 0, got %d", c.Spectrum.SkipRows)
	}
	if c.Spectrum.WavelengthColumn < 0 || c.Spectrum.IrradianceColumn < 0 {
		return fmt.Errorf("spectrum column indices must be >= 0")
	}
	if c.Spectrum.WavelengthColumn == c.Spectrum.IrradianceColumn {
		return fmt.Errorf("spectrum wavelength and irradiance columns are both %d", c.Spectrum.WavelengthColumn)
	}
	if c.Spectrum.LambdaMinNM < 0 || c.Spectrum.LambdaMaxNM < 0 {
		return fmt.Errorf("spectrum wavelength bounds must be >= 0")
	}
	if c.Spectrum.LambdaMaxNM > 0 && c.Spectrum.LambdaMinNM >= c.Spectrum.LambdaMaxNM {
		return fmt.Errorf("spectrum wavelength window [%g, %g] nm is empty", c.Spectrum.LambdaMinNM, c.Spectrum.LambdaMaxNM)
	}
	if c.Cell.TemperatureK <= 0 {
		return fmt.Errorf("cell.temperatureK must be > 0, got %g", c.Cell.TemperatureK)
	}
	if c.Sweep.Points < 2 {
		return fmt.Errorf("sweep.points must be >= 2, got %d", c.Sweep.Points)
	}
	if c.Sweep.StartEV <= 0 || c.Sweep.StopEV <= c.Sweep.StartEV {
		return fmt.Errorf("invalid sweep range [%g, %g] eV", c.Sweep.StartEV, c.Sweep.StopEV)
	}
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("sweep.workers must be >= 0, got %d", c.Sweep.Workers)
	}
	if c.Solver.QuadPoints < 16 {
		return fmt.Errorf("solver.quadPoints must be >= 16, got %d", c.Solver.QuadPoints)
	}
	if c.Solver.MaxIterations < 1 {
		return fmt.Errorf("solver.maxIterations must be >= 1, got %d", c.Solver.MaxIterations)
	}
	if c.Output.Directory == "" {
		return fmt.Errorf("output.directory is required")
	}
	return nil
}
