// Package numeric provides stateless polynomial least-squares fitting and
// evaluation helpers used by the spectral preprocessing pipeline. No fit state
// survives between calls.
package numeric

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrLengthMismatch   = errors.New("numeric: x and y lengths differ")
	ErrInsufficientData = errors.New("numeric: not enough points for requested degree")
	ErrInvalidDegree    = errors.New("numeric: polynomial degree must be non-negative")
	ErrInvalidWindow    = errors.New("numeric: smoothing window must be odd and larger than degree")
	ErrSingularSystem   = errors.New("numeric: least squares system is singular")
)

// Polynomial is a least-squares polynomial fit. The abscissa is shifted and
// scaled internally before fitting; a degree-13 Vandermonde system built on
// raw frequencies around 1420 MHz is numerically singular without it.
// Coefficients are stored in ascending powers of the scaled variable.
type Polynomial struct {
	coeffs []float64
	shift  float64
	scale  float64
}

// FitPolynomial fits a polynomial of the given degree to (xs, ys) in the
// least-squares sense, solving the Vandermonde system by QR decomposition.
func FitPolynomial(xs, ys []float64, degree int) (*Polynomial, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if degree < 0 {
		return nil, ErrInvalidDegree
	}
	if len(xs) < degree+1 {
		return nil, fmt.Errorf("%w: degree %d needs at least %d points, have %d",
			ErrInsufficientData, degree, degree+1, len(xs))
	}

	shift, scale := normalization(xs)

	n := len(xs)
	cols := degree + 1
	a := mat.NewDense(n, cols, nil)
	for i, x := range xs {
		t := (x - shift) / scale
		v := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, v)
			v *= t
		}
	}

	var qr mat.QR
	qr.Factorize(a)

	var c mat.VecDense
	if err := qr.SolveVecTo(&c, false, mat.NewVecDense(n, ys)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	coeffs := make([]float64, cols)
	for j := 0; j < cols; j++ {
		coeffs[j] = c.AtVec(j)
	}
	return &Polynomial{coeffs: coeffs, shift: shift, scale: scale}, nil
}

// Degree returns the degree of the fitted polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// Eval evaluates the polynomial at x using Horner's scheme.
func (p *Polynomial) Eval(x float64) float64 {
	t := (x - p.shift) / p.scale
	v := 0.0
	for j := len(p.coeffs) - 1; j >= 0; j-- {
		v = v*t + p.coeffs[j]
	}
	return v
}

// EvalAll evaluates the polynomial at every point of xs.
func (p *Polynomial) EvalAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = p.Eval(x)
	}
	return out
}

// normalization maps the abscissa range onto [-1, 1]. A degenerate range
// (single point, or all points equal) falls back to unit scale.
func normalization(xs []float64) (shift, scale float64) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	shift = (lo + hi) / 2
	scale = (hi - lo) / 2
	if scale == 0 {
		scale = 1
	}
	return shift, scale
}

// SavitzkyGolay smooths values by fitting a polynomial of the given degree to
// a sliding window and evaluating it at the window centre. Edge points are
// taken from polynomials fitted to the first and last full windows. The input
// is not modified.
func SavitzkyGolay(values []float64, window, degree int) ([]float64, error) {
	if window%2 == 0 || window <= degree {
		return nil, fmt.Errorf("%w: window %d, degree %d", ErrInvalidWindow, window, degree)
	}
	if len(values) < window {
		return nil, fmt.Errorf("%w: window %d over %d points", ErrInsufficientData, window, len(values))
	}

	half := window / 2
	idx := make([]float64, window)

	out := make([]float64, len(values))
	for i := half; i < len(values)-half; i++ {
		for k := 0; k < window; k++ {
			idx[k] = float64(i - half + k)
		}
		p, err := FitPolynomial(idx, values[i-half:i+half+1], degree)
		if err != nil {
			return nil, err
		}
		out[i] = p.Eval(float64(i))
	}

	// Leading edge: evaluate the first full window's fit.
	for k := 0; k < window; k++ {
		idx[k] = float64(k)
	}
	head, err := FitPolynomial(idx, values[:window], degree)
	if err != nil {
		return nil, err
	}
	for i := 0; i < half; i++ {
		out[i] = head.Eval(float64(i))
	}

	// Trailing edge: evaluate the last full window's fit.
	base := len(values) - window
	for k := 0; k < window; k++ {
		idx[k] = float64(base + k)
	}
	tail, err := FitPolynomial(idx, values[base:], degree)
	if err != nil {
		return nil, err
	}
	for i := len(values) - half; i < len(values); i++ {
		out[i] = tail.Eval(float64(i))
	}

	return out, nil
}
