package spectrum

import (
	"fmt"
	"sort"

	"github.com/edp1096/sparse"
)

// spline is a natural cubic spline. The second-derivative coefficients are
// obtained by LU-solving the tridiagonal knot system once at construction.
type spline struct {
	x  []float64
	y  []float64
	m2 []float64 // second derivatives at the knots
}

func newSpline(x, y []float64) (*spline, error) {
	n := len(x)

	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(n), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}
	defer mat.Destroy()

	rhs := make([]float64, n+1) // 1-based indexing

	// Natural boundary: zero curvature at both ends.
	mat.GetElement(1, 1).Real += 1.0
	mat.GetElement(int64(n), int64(n)).Real += 1.0

	for i := 1; i < n-1; i++ {
		hl := x[i] - x[i-1]
		hr := x[i+1] - x[i]
		row := int64(i + 1)

		mat.GetElement(row, row-1).Real += hl / 6.0
		mat.GetElement(row, row).Real += (hl + hr) / 3.0
		mat.GetElement(row, row+1).Real += hr / 6.0
		rhs[i+1] = (y[i+1]-y[i])/hr - (y[i]-y[i-1])/hl
	}

	if err := mat.Factor(); err != nil {
		return nil, fmt.Errorf("factoring spline system: %v", err)
	}
	sol, err := mat.Solve(rhs)
	if err != nil {
		return nil, fmt.Errorf("solving spline system: %v", err)
	}

	m2 := make([]float64, n)
	copy(m2, sol[1:n+1])

	return &spline{x: x, y: y, m2: m2}, nil
}

// at evaluates the spline. The caller guarantees t is inside [x[0], x[n-1]].
func (s *spline) at(t float64) float64 {
	j := sort.SearchFloat64s(s.x, t)
	if j > 0 {
		j--
	}
	if j >= len(s.x)-1 {
		j = len(s.x) - 2
	}

	h := s.x[j+1] - s.x[j]
	a := (s.x[j+1] - t) / h
	b := (t - s.x[j]) / h

	return a*s.y[j] + b*s.y[j+1] + ((a*a*a-a)*s.m2[j]+(b*b*b-b)*s.m2[j+1])*h*h/6.0
}
