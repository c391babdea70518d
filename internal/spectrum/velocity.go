package spectrum

import (
	"errors"
	"math"
)

const (
	speedOfLight = 2.99792e8 // m/s

	// SunGalacticRadius is the galactocentric distance of the Sun in kpc.
	SunGalacticRadius = 8.0

	// SunOrbitalVelocity is the Sun's orbital velocity in km/s.
	SunOrbitalVelocity = 220.0
)

// ErrEmptyRecord indicates a peak search over a record with no rows.
var ErrEmptyRecord = errors.New("spectrum: record has no rows")

// RadialVelocity converts a frequency in MHz to the line-of-sight velocity
// implied by its Doppler shift from the 21-cm line: c·(f21cm − f)/f. The
// rest-frame frequency maps to exactly zero. The scale follows from the
// 2.99792e8 constant and is kept as-is for compatibility with the recorded
// survey; multiply by 1e-3 for km/s.
func RadialVelocity(f float64) float64 {
	return speedOfLight * (RestFrequency21cm - f) / f
}

// RadialVelocities converts a frequency axis elementwise, see RadialVelocity.
func RadialVelocities(freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = RadialVelocity(f)
	}
	return out
}

// TangentialVelocity converts a radial velocity in km/s observed at the given
// galactic longitude into a rotation-curve point: the tangent-point ring
// radius in kpc and the orbital velocity in km/s at that radius.
func TangentialVelocity(radialVelocity, longitudeDegrees float64) (ringRadius, tangential float64) {
	l := longitudeDegrees * math.Pi / 180
	ringRadius = SunGalacticRadius * math.Sin(l)
	tangential = radialVelocity + SunOrbitalVelocity*math.Sin(l)
	return ringRadius, tangential
}

// PeakRadialVelocity returns the radial velocity in km/s at the row where the
// detrended signal is strongest. detrended must be index-aligned with the
// record's rows.
func PeakRadialVelocity(rec *Record, detrended []float64) (float64, error) {
	if rec.Len() == 0 {
		return 0, ErrEmptyRecord
	}
	if len(detrended) != rec.Len() {
		return 0, errors.New("spectrum: detrended signal not aligned with record rows")
	}

	peak := 0
	for i := 1; i < len(detrended); i++ {
		if detrended[i] > detrended[peak] {
			peak = i
		}
	}
	return RadialVelocity(rec.Rows[peak].Frequency) * 1e-3, nil
}
