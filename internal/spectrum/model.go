// Package spectrum implements the spectral preprocessing pipeline: combining
// on/off-plane measurement pairs into cleaned spectrum records, removing
// instrumental artifact bands, detrending the signal ratio against a smooth
// polynomial baseline, and converting frequency shifts to radial velocity.
package spectrum

import "errors"

// ErrFrequencyMismatch indicates on and off measurements whose frequency
// axes cannot be zipped together.
var ErrFrequencyMismatch = errors.New("spectrum: on/off frequency axes differ")

// Measurement is a decoded raw capture: power readings over a fixed frequency
// axis, one row per scan. Immutable once loaded.
type Measurement struct {
	Frequencies []float64   // Frequency axis in MHz, ordered
	Samples     [][]float64 // Power readings, [scan][frequency bin]
	Timestamps  []float64   // Per-scan capture times, Unix seconds
}

// ScanMean reduces the samples across the scan axis by arithmetic mean,
// producing one power value per frequency bin.
func (m *Measurement) ScanMean() []float64 {
	mean := make([]float64, len(m.Frequencies))
	if len(m.Samples) == 0 {
		return mean
	}
	for _, scan := range m.Samples {
		for i, v := range scan {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(m.Samples))
	}
	return mean
}

// Row is a single cleaned spectrum sample at one frequency bin.
type Row struct {
	Frequency float64 // MHz
	OnPower   float64 // Scan-mean power at galactic latitude 0
	OffPower  float64 // Scan-mean power at the reference latitude
}

// Record is the cleaned spectrum for one galactic longitude: rows ordered by
// the original frequency axis, aggregated across scans, with artifact bands
// removed. Artifact removal only deletes rows, never reorders them.
type Record struct {
	Rows []Row
}

// Len returns the number of surviving rows.
func (r *Record) Len() int {
	return len(r.Rows)
}

// Frequencies returns the frequency column.
func (r *Record) Frequencies() []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.Frequency
	}
	return out
}

// Ratio returns the elementwise on/off power ratio. A zero off power follows
// IEEE 754 division semantics and produces an infinity (or NaN for 0/0); the
// pipeline deliberately passes these through instead of failing, matching the
// behaviour of the recorded instrument data.
func (r *Record) Ratio() []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.OnPower / row.OffPower
	}
	return out
}

// Band is a fixed artifact exclusion band around a known interference
// frequency.
type Band struct {
	Center    float64 // MHz
	HalfWidth float64 // MHz
}

// Contains reports whether f falls inside the band.
func (b Band) Contains(f float64) bool {
	d := f - b.Center
	if d < 0 {
		d = -d
	}
	return d < b.HalfWidth
}

// ExclusionBands lists the instrumental artifact bands removed from every
// record at construction time: the internally generated emission line at
// 1420 MHz and two known RFI bands. The bands are disjoint, so removal order
// does not affect the final row set.
var ExclusionBands = []Band{
	{Center: 1420.0, HalfWidth: 0.01},
	{Center: 1419.2, HalfWidth: 0.05},
	{Center: 1423.5, HalfWidth: 0.05},
}
