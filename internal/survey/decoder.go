// Package survey loads paired 21-cm radio telescope recordings from a dataset
// directory and hands them to the spectral preprocessor. Files pair up
// lexicographically as (off-plane, on-plane) captures, one pair per galactic
// longitude.
package survey

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
)

var (
	// ErrMalformedDataset indicates the qualifying files do not form
	// complete (off-plane, on-plane) pairs.
	ErrMalformedDataset = errors.New("survey: dataset files do not form complete on/off pairs")

	// ErrUnknownLongitude indicates more capture pairs than known longitudes.
	ErrUnknownLongitude = errors.New("survey: more capture pairs than known longitudes")

	// ErrCorruptCapture indicates an unreadable or malformed capture file.
	ErrCorruptCapture = errors.New("survey: corrupt capture file")
)

// Decoder turns one serialized capture into a Measurement. The on-disk
// encoding is a collaborator's concern; implementations are pluggable.
type Decoder interface {
	Decode(r io.Reader) (*spectrum.Measurement, error)
}

// JSONDecoder reads captures serialized as a JSON object with "freqs",
// "data" and "time" keys.
type JSONDecoder struct{}

type captureFile struct {
	Freqs []float64   `json:"freqs"`
	Data  [][]float64 `json:"data"`
	Time  []float64   `json:"time"`
}

func (JSONDecoder) Decode(r io.Reader) (*spectrum.Measurement, error) {
	var c captureFile
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCapture, err)
	}

	if len(c.Freqs) == 0 {
		return nil, fmt.Errorf("%w: empty frequency axis", ErrCorruptCapture)
	}
	if len(c.Data) == 0 {
		return nil, fmt.Errorf("%w: no scans", ErrCorruptCapture)
	}
	for i, scan := range c.Data {
		if len(scan) != len(c.Freqs) {
			return nil, fmt.Errorf("%w: scan %d has %d readings for %d frequency bins",
				ErrCorruptCapture, i, len(scan), len(c.Freqs))
		}
	}

	return &spectrum.Measurement{
		Frequencies: c.Freqs,
		Samples:     c.Data,
		Timestamps:  c.Time,
	}, nil
}
