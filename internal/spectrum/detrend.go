package spectrum

import (
	"fmt"
	"math"

	"github.com/knickoriuk/Galactic-Rotation/internal/numeric"
)

const (
	// RestFrequency21cm is the rest-frame hydrogen emission frequency in
	// MHz, the velocity-zero reference for the whole pipeline.
	RestFrequency21cm = 1420.405

	// DefaultExcludeHalfWidth is the half width in MHz of the region around
	// the 21-cm line withheld from the baseline fit, so the hydrogen
	// feature itself does not pull the trend.
	DefaultExcludeHalfWidth = 0.5

	// DefaultPolyDegree is the baseline polynomial degree.
	DefaultPolyDegree = 13
)

// DetrendOptions tunes the baseline fit. The zero value selects the
// production defaults.
type DetrendOptions struct {
	ExcludeHalfWidth float64 // MHz around the 21-cm line excluded from the fit
	PolyDegree       int
}

// Detrend computes the on/off power ratio of a record, fits a smooth
// polynomial baseline to the rows away from the 21-cm line, and returns the
// elementwise residual ratio − baseline, same length and order as the rows.
// Zero off powers propagate as IEEE infinities, see Record.Ratio.
func Detrend(rec *Record, opts DetrendOptions) ([]float64, error) {
	if opts.ExcludeHalfWidth == 0 {
		opts.ExcludeHalfWidth = DefaultExcludeHalfWidth
	}
	if opts.PolyDegree == 0 {
		opts.PolyDegree = DefaultPolyDegree
	}

	ratio := rec.Ratio()

	fitFreqs := make([]float64, 0, len(rec.Rows))
	fitRatio := make([]float64, 0, len(rec.Rows))
	for i, row := range rec.Rows {
		if math.Abs(row.Frequency-RestFrequency21cm) < opts.ExcludeHalfWidth {
			continue
		}
		fitFreqs = append(fitFreqs, row.Frequency)
		fitRatio = append(fitRatio, ratio[i])
	}

	baseline, err := numeric.FitPolynomial(fitFreqs, fitRatio, opts.PolyDegree)
	if err != nil {
		return nil, fmt.Errorf("fitting baseline: %w", err)
	}

	out := make([]float64, len(rec.Rows))
	for i, row := range rec.Rows {
		out[i] = ratio[i] - baseline.Eval(row.Frequency)
	}
	return out, nil
}
