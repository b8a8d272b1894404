package spectrum

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/kniren/gota/dataframe"

	"github.com/edp1096/toy-sq/internal/consts"
)

// ErrOutOfDomain is returned when the spectrum is queried outside the
// wavelength range it was loaded with. Extrapolation is never performed.
var ErrOutOfDomain = errors.New("wavelength outside spectrum domain")

// Spectrum is an immutable reference irradiance spectrum, interpolable at
// any wavelength inside its domain. Wavelengths are stored in m, spectral
// irradiance in W/m² per m of wavelength.
type Spectrum struct {
	lambda []float64
	irrad  []float64
	spline *spline
}

// Options control how a tabular spectrum file is read. Zero values mean
// the reference layout: wavelength in column 0, irradiance in column 1,
// three header rows skipped, no window trimming.
type Options struct {
	WavelengthColumn int
	IrradianceColumn int
	SkipRows         int
	LambdaMinNM      float64 // trim samples below this wavelength, 0 = keep all
	LambdaMaxNM      float64 // trim samples above this wavelength, 0 = keep all
}

// New builds a spectrum from SI samples: wavelength in m, strictly
// increasing, and spectral irradiance in W/m³.
func New(lambda, irradiance []float64) (*Spectrum, error) {
	if len(lambda) != len(irradiance) {
		return nil, fmt.Errorf("sample length mismatch: %d wavelengths, %d irradiances", len(lambda), len(irradiance))
	}
	if len(lambda) < 4 {
		return nil, fmt.Errorf("need at least 4 samples, got %d", len(lambda))
	}
	for i := 1; i < len(lambda); i++ {
		if lambda[i] <= lambda[i-1] {
			return nil, fmt.Errorf("wavelengths not strictly increasing at sample %d: %g after %g", i, lambda[i], lambda[i-1])
		}
	}

	sp := &Spectrum{
		lambda: append([]float64(nil), lambda...),
		irrad:  append([]float64(nil), irradiance...),
	}

	var err error
	sp.spline, err = newSpline(sp.lambda, sp.irrad)
	if err != nil {
		return nil, fmt.Errorf("building interpolant: %v", err)
	}

	return sp, nil
}

// Load reads a CSV spectrum file with wavelength in nm and spectral
// irradiance in W/m²/nm, normalizing both to SI. The header/metadata rows
// are stripped before parsing.
func Load(path string, opt Options) (*Spectrum, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening spectrum file: %v", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	if len(lines) <= opt.SkipRows {
		return nil, fmt.Errorf("spectrum file has %d rows, cannot skip %d", len(lines), opt.SkipRows)
	}
	body := strings.Join(lines[opt.SkipRows:], "\n")

	df := dataframe.ReadCSV(strings.NewReader(body),
		dataframe.WithDelimiter(','),
		dataframe.HasHeader(false))
	if df.Err != nil {
		return nil, fmt.Errorf("reading spectrum file: %v", df.Err)
	}

	maxCol := max(opt.WavelengthColumn, opt.IrradianceColumn)
	if df.Ncol() <= maxCol {
		return nil, fmt.Errorf("spectrum file has %d columns, need at least %d", df.Ncol(), maxCol+1)
	}

	// Unnamed gota columns are X0, X1, ...
	wls := df.Col(fmt.Sprintf("X%d", opt.WavelengthColumn)).Float()
	irs := df.Col(fmt.Sprintf("X%d", opt.IrradianceColumn)).Float()

	var lambda, irrad []float64
	for i := range wls {
		if math.IsNaN(wls[i]) || math.IsNaN(irs[i]) {
			return nil, fmt.Errorf("row %d: non-numeric sample", i+opt.SkipRows+1)
		}

		if opt.LambdaMinNM > 0 && wls[i] < opt.LambdaMinNM {
			continue
		}
		if opt.LambdaMaxNM > 0 && wls[i] > opt.LambdaMaxNM {
			continue
		}

		lambda = append(lambda, wls[i]*consts.NM)
		irrad = append(irrad, irs[i]/consts.NM) // W/m²/nm -> W/m³
	}

	return New(lambda, irrad)
}

// Irradiance interpolates the spectral irradiance (W/m³) at wavelength
// lambda (m). Querying outside the loaded domain is an error.
func (s *Spectrum) Irradiance(lambda float64) (float64, error) {
	if lambda < s.lambda[0] || lambda > s.lambda[len(s.lambda)-1] {
		return 0, fmt.Errorf("%w: %g nm not in [%g, %g] nm",
			ErrOutOfDomain, lambda/consts.NM, s.lambda[0]/consts.NM, s.lambda[len(s.lambda)-1]/consts.NM)
	}
	return s.spline.at(lambda), nil
}

// LambdaMin returns the lower bound of the spectrum domain (m).
func (s *Spectrum) LambdaMin() float64 { return s.lambda[0] }

// LambdaMax returns the upper bound of the spectrum domain (m).
func (s *Spectrum) LambdaMax() float64 { return s.lambda[len(s.lambda)-1] }

// Samples returns the number of loaded sample points.
func (s *Spectrum) Samples() int { return len(s.lambda) }
