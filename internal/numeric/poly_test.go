package numeric

import (
	"errors"
	"math"
	"testing"
)

func TestFitPolynomialExact(t *testing.T) {
	// y = 2 - 3x + 0.5x^2 sampled without noise must be recovered exactly.
	f := func(x float64) float64 { return 2 - 3*x + 0.5*x*x }

	xs := make([]float64, 20)
	ys := make([]float64, 20)
	for i := range xs {
		xs[i] = float64(i) * 0.5
		ys[i] = f(xs[i])
	}

	p, err := FitPolynomial(xs, ys, 2)
	if err != nil {
		t.Fatalf("FitPolynomial: %v", err)
	}

	for _, x := range []float64{-1, 0, 0.25, 3.7, 12} {
		if got, want := p.Eval(x), f(x); math.Abs(got-want) > 1e-9 {
			t.Errorf("Eval(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestFitPolynomialHighDegreeNarrowRange(t *testing.T) {
	// Degree 13 over a few MHz around 1420 MHz is the production fit. A
	// constant input must come back as a constant despite the conditioning.
	xs := make([]float64, 120)
	ys := make([]float64, 120)
	for i := range xs {
		xs[i] = 1416.0 + float64(i)*0.08
		ys[i] = 1.0
	}

	p, err := FitPolynomial(xs, ys, 13)
	if err != nil {
		t.Fatalf("FitPolynomial: %v", err)
	}
	for _, x := range xs {
		if got := p.Eval(x); math.Abs(got-1.0) > 1e-6 {
			t.Fatalf("Eval(%v) = %v, want 1.0", x, got)
		}
	}
}

func TestFitPolynomialValidation(t *testing.T) {
	tests := []struct {
		name    string
		xs, ys  []float64
		degree  int
		wantErr error
	}{
		{"length mismatch", []float64{1, 2}, []float64{1}, 1, ErrLengthMismatch},
		{"negative degree", []float64{1, 2}, []float64{1, 2}, -1, ErrInvalidDegree},
		{"too few points", []float64{1, 2}, []float64{1, 2}, 2, ErrInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitPolynomial(tt.xs, tt.ys, tt.degree)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FitPolynomial() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSavitzkyGolayPreservesPolynomial(t *testing.T) {
	// A cubic signal passes through a (9, 3) filter unchanged.
	values := make([]float64, 40)
	for i := range values {
		x := float64(i)
		values[i] = 0.01*x*x*x - 0.3*x*x + x - 5
	}

	smoothed, err := SavitzkyGolay(values, 9, 3)
	if err != nil {
		t.Fatalf("SavitzkyGolay: %v", err)
	}
	if len(smoothed) != len(values) {
		t.Fatalf("length = %d, want %d", len(smoothed), len(values))
	}
	for i := range values {
		if math.Abs(smoothed[i]-values[i]) > 1e-6 {
			t.Errorf("smoothed[%d] = %v, want %v", i, smoothed[i], values[i])
		}
	}
}

func TestSavitzkyGolayValidation(t *testing.T) {
	values := make([]float64, 5)

	if _, err := SavitzkyGolay(values, 4, 3); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("even window: error = %v, want %v", err, ErrInvalidWindow)
	}
	if _, err := SavitzkyGolay(values, 3, 3); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("window <= degree: error = %v, want %v", err, ErrInvalidWindow)
	}
	if _, err := SavitzkyGolay(values, 9, 3); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("short input: error = %v, want %v", err, ErrInsufficientData)
	}
}
