package app

import (
	"errors"
	"fmt"
	"math"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
)

// ErrColumnMismatch indicates a longitude column whose row count differs
// from the shared velocity axis established by the first column.
var ErrColumnMismatch = errors.New("columns have different row counts")

// HeatmapData accumulates detrended spectra as columns of a heat map.
// Each column is one galactic longitude; rows share the radial velocity
// axis of the first column added.
type HeatmapData struct {
	Longitudes []int       // One entry per column, in insertion order
	Velocities []float64   // Shared row axis, km/s
	Columns    [][]float64 // Detrended amplitudes, row-aligned

	FrequencyMin, FrequencyMax float64 // MHz, across all columns

	Histogram *AmplitudeHistogram
}

func NewHeatmapData() *HeatmapData {
	return &HeatmapData{
		FrequencyMin: math.MaxFloat64,
		Histogram:    NewAmplitudeHistogram(),
	}
}

// AddColumn appends one longitude's detrended spectrum. The first column
// fixes the velocity axis; later columns must carry the same number of
// rows. detrended must be index-aligned with the record's rows.
func (d *HeatmapData) AddColumn(longitude int, rec *spectrum.Record, detrended []float64) error {
	if rec.Len() != len(detrended) {
		return fmt.Errorf("longitude %d: %w: record has %d rows, signal has %d",
			longitude, ErrColumnMismatch, rec.Len(), len(detrended))
	}

	freqs := rec.Frequencies()
	if d.Velocities == nil {
		velocities := spectrum.RadialVelocities(freqs)
		for i, v := range velocities {
			velocities[i] = v * 1e-3 // km/s
		}
		d.Velocities = velocities
	} else if len(detrended) != len(d.Velocities) {
		return fmt.Errorf("longitude %d: %w: expected %d rows, got %d",
			longitude, ErrColumnMismatch, len(d.Velocities), len(detrended))
	}

	for _, f := range freqs {
		d.FrequencyMin = min(d.FrequencyMin, f)
		d.FrequencyMax = max(d.FrequencyMax, f)
	}
	for _, v := range detrended {
		d.Histogram.Update(v)
	}

	d.Longitudes = append(d.Longitudes, longitude)
	d.Columns = append(d.Columns, detrended)
	return nil
}

// Rows returns the number of rows in the map, zero before any column is
// added.
func (d *HeatmapData) Rows() int {
	return len(d.Velocities)
}
