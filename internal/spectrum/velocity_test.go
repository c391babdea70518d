package spectrum

import (
	"errors"
	"math"
	"testing"
)

func TestRadialVelocityRestFrame(t *testing.T) {
	if v := RadialVelocity(RestFrequency21cm); v != 0 {
		t.Errorf("RadialVelocity(rest frame) = %v, want exactly 0", v)
	}
}

func TestRadialVelocitySign(t *testing.T) {
	// Frequencies below the rest frame are redshifted: receding, positive
	// radial velocity.
	if v := RadialVelocity(1419.0); v <= 0 {
		t.Errorf("RadialVelocity(1419.0) = %v, want > 0", v)
	}
	if v := RadialVelocity(1422.0); v >= 0 {
		t.Errorf("RadialVelocity(1422.0) = %v, want < 0", v)
	}
}

func TestRadialVelocities(t *testing.T) {
	freqs := []float64{1419.0, RestFrequency21cm, 1422.0}
	got := RadialVelocities(freqs)
	if len(got) != len(freqs) {
		t.Fatalf("length = %d, want %d", len(got), len(freqs))
	}
	for i, f := range freqs {
		if got[i] != RadialVelocity(f) {
			t.Errorf("RadialVelocities[%d] = %v, want %v", i, got[i], RadialVelocity(f))
		}
	}
}

func TestTangentialVelocity(t *testing.T) {
	tests := []struct {
		name  string
		vr, l float64
		wantR float64
		wantV float64
	}{
		{"tangent at 90 degrees", 0, 90, 8, 220},
		{"with radial component", 50, 90, 8, 270},
		{"at 30 degrees", 0, 30, 4, 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, v := TangentialVelocity(tt.vr, tt.l)
			if math.Abs(r-tt.wantR) > 1e-12 {
				t.Errorf("ring radius = %v, want %v", r, tt.wantR)
			}
			if math.Abs(v-tt.wantV) > 1e-12 {
				t.Errorf("velocity = %v, want %v", v, tt.wantV)
			}
		})
	}
}

func TestPeakRadialVelocity(t *testing.T) {
	rec := &Record{Rows: []Row{
		{Frequency: 1419.0},
		{Frequency: 1419.5},
		{Frequency: 1421.0},
	}}
	detrended := []float64{0.01, 0.08, 0.02}

	got, err := PeakRadialVelocity(rec, detrended)
	if err != nil {
		t.Fatalf("PeakRadialVelocity: %v", err)
	}
	want := RadialVelocity(1419.5) * 1e-3
	if got != want {
		t.Errorf("peak velocity = %v, want %v", got, want)
	}
}

func TestPeakRadialVelocityErrors(t *testing.T) {
	if _, err := PeakRadialVelocity(&Record{}, nil); !errors.Is(err, ErrEmptyRecord) {
		t.Errorf("empty record: error = %v, want %v", err, ErrEmptyRecord)
	}

	rec := &Record{Rows: []Row{{Frequency: 1419.0}}}
	if _, err := PeakRadialVelocity(rec, []float64{1, 2}); err == nil {
		t.Error("expected error for misaligned detrended signal")
	}
}
