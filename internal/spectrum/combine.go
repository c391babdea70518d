package spectrum

import "fmt"

// Combine reduces an on-plane and an off-plane measurement to their scan
// means, zips them with the on-plane frequency axis, and removes the fixed
// artifact bands. The operands are not interchangeable: on is the latitude-0
// capture and off the reference-latitude baseline, and swapping them swaps
// every row's OnPower and OffPower.
//
// The two frequency axes are assumed identical; Combine fails with
// ErrFrequencyMismatch when their lengths differ.
func Combine(on, off *Measurement) (*Record, error) {
	if len(on.Frequencies) != len(off.Frequencies) {
		return nil, fmt.Errorf("%w: on has %d bins, off has %d",
			ErrFrequencyMismatch, len(on.Frequencies), len(off.Frequencies))
	}
	for name, m := range map[string]*Measurement{"on": on, "off": off} {
		for i, scan := range m.Samples {
			if len(scan) != len(m.Frequencies) {
				return nil, fmt.Errorf("%w: %s scan %d has %d readings for %d bins",
					ErrFrequencyMismatch, name, i, len(scan), len(m.Frequencies))
			}
		}
	}

	onMean := on.ScanMean()
	offMean := off.ScanMean()

	rows := make([]Row, 0, len(on.Frequencies))
	for i, f := range on.Frequencies {
		if inExclusionBand(f) {
			continue
		}
		rows = append(rows, Row{
			Frequency: f,
			OnPower:   onMean[i],
			OffPower:  offMean[i],
		})
	}

	return &Record{Rows: rows}, nil
}

func inExclusionBand(f float64) bool {
	for _, band := range ExclusionBands {
		if band.Contains(f) {
			return true
		}
	}
	return false
}
