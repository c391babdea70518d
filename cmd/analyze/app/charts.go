package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knickoriuk/Galactic-Rotation/internal/render"
	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
	"github.com/knickoriuk/Galactic-Rotation/internal/survey"
)

// rotationLongitudeCount is the number of leading longitudes feeding the
// rotation curve. Tangent-point geometry only holds inside the solar circle,
// which the first 16 longitudes (10 through 85 degrees) cover.
const rotationLongitudeCount = 16

// chartWriter renders the diagnostic chart set for a survey run into a
// single output directory.
type chartWriter struct {
	style      render.Style
	latitude   float64
	comparison bool
	outDir     string
	logger     *slog.Logger

	// First raw-spectrum render failure, surfaced after LoadAll since the
	// loader's pair observer cannot return an error.
	err error
}

func newChartWriter(config *Config, logger *slog.Logger) (*chartWriter, error) {
	if err := os.MkdirAll(config.Charts.OutputDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("creating charts directory: %w", err)
	}

	return &chartWriter{
		style:      config.Charts.Style.Style(),
		latitude:   config.Dataset.OffPlaneLatitude,
		comparison: config.Charts.Comparison,
		outDir:     config.Charts.OutputDirectory,
		logger:     logger,
	}, nil
}

func (w *chartWriter) Err() error {
	return w.err
}

func (w *chartWriter) path(name string, longitude int) string {
	return filepath.Join(w.outDir, fmt.Sprintf("%s_l%03d.html", name, longitude))
}

// RawSpectra charts the untrimmed on-plane and off-plane captures of one
// longitude. Used as the loader's pair observer.
func (w *chartWriter) RawSpectra(longitude int, on, off *spectrum.Measurement) {
	if w.err != nil {
		return
	}

	if err := render.WriteChart(
		render.RawSpectrum(on, longitude, 0, w.style),
		w.path("raw_on", longitude)); err != nil {
		w.err = err
		return
	}
	if err := render.WriteChart(
		render.RawSpectrum(off, longitude, w.latitude, w.style),
		w.path("raw_off", longitude)); err != nil {
		w.err = err
	}
}

// LongitudeCharts renders the per-longitude diagnostic set: on/off power
// comparison, baseline fit, detrended spectrum and velocity profile.
func (w *chartWriter) LongitudeCharts(longitude int, rec *spectrum.Record, detrended []float64) error {
	// The fitted baseline is the part of the ratio the detrend removed
	ratio := rec.Ratio()
	fitted := make([]float64, len(ratio))
	for i := range ratio {
		fitted[i] = ratio[i] - detrended[i]
	}

	charts := []struct {
		name  string
		chart render.Renderable
	}{
		{"comparison", render.OnOffComparison(rec, longitude, w.latitude, w.style)},
		{"baseline", render.BaselineFit(rec, fitted, spectrum.DefaultExcludeHalfWidth, longitude, w.style)},
		{"detrended", render.DetrendedSpectrum(rec, detrended, longitude, w.style)},
		{"velocity", render.VelocityProfile(rec, detrended, longitude, w.style)},
	}

	for _, c := range charts {
		path := w.path(c.name, longitude)
		if err := render.WriteChart(c.chart, path); err != nil {
			return fmt.Errorf("writing %s chart for longitude %d: %w", c.name, longitude, err)
		}
		w.logger.Debug("chart written", slog.String("path", path))
	}
	return nil
}

// RotationCharts renders the Milky Way rotation curve from the inner-galaxy
// longitudes, plus the Keplerian solar-system reference curve.
func (w *chartWriter) RotationCharts(dataset map[int]*spectrum.Record) error {
	var points []render.RotationPoint
	for _, longitude := range survey.Longitudes[:rotationLongitudeCount] {
		rec, ok := dataset[longitude]
		if !ok {
			continue
		}

		detrended, err := spectrum.Detrend(rec, spectrum.DetrendOptions{})
		if err != nil {
			return fmt.Errorf("detrending longitude %d: %w", longitude, err)
		}
		peak, err := spectrum.PeakRadialVelocity(rec, detrended)
		if err != nil {
			return fmt.Errorf("finding peak velocity for longitude %d: %w", longitude, err)
		}

		radius, velocity := spectrum.TangentialVelocity(peak, float64(longitude))
		points = append(points, render.RotationPoint{Radius: radius, Velocity: velocity})
	}

	curve, err := render.RotationCurve(points, w.comparison, w.style)
	if err != nil {
		return fmt.Errorf("building rotation curve: %w", err)
	}

	path := filepath.Join(w.outDir, "rotation_curve.html")
	if err = render.WriteChart(curve, path); err != nil {
		return fmt.Errorf("writing rotation curve: %w", err)
	}
	w.logger.Info("rotation curve written",
		slog.String("path", path),
		slog.Int("points", len(points)))

	path = filepath.Join(w.outDir, "solar_system.html")
	if err = render.WriteChart(render.KeplerianCurve(w.style), path); err != nil {
		return fmt.Errorf("writing solar system curve: %w", err)
	}
	return nil
}
