package survey

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
)

// Longitudes maps capture pair position to galactic longitude in degrees.
// The order is positional and deliberately ends with 120 after 190: the last
// file pair on disk belongs to longitude 120, and downstream consumers index
// this list by position. Do not sort.
var Longitudes = []int{
	10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60,
	65, 70, 75, 80, 85, 90, 95, 100, 110, 130,
	140, 150, 160, 170, 180, 190, 120,
}

// defaultTrailingEntries is the number of non-data entries (documentation,
// metadata) that sort to the end of the dataset directory listing.
const defaultTrailingEntries = 2

// Loader reads a dataset directory and builds one spectrum record per
// galactic longitude.
type Loader struct {
	decoder         Decoder
	trailingEntries int
	logger          *slog.Logger
	observer        func(longitude int, on, off *spectrum.Measurement)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger attaches a logger for per-pair progress reporting.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithTrailingEntries overrides the number of trailing non-data directory
// entries ignored after the lexicographic sort.
func WithTrailingEntries(n int) LoaderOption {
	return func(l *Loader) {
		l.trailingEntries = n
	}
}

// WithPairObserver registers a callback invoked with the raw on-plane and
// off-plane measurements of every decoded pair, before combining.
func WithPairObserver(fn func(longitude int, on, off *spectrum.Measurement)) LoaderOption {
	return func(l *Loader) {
		l.observer = fn
	}
}

// NewLoader creates a Loader that decodes captures with the given decoder.
func NewLoader(decoder Decoder, opts ...LoaderOption) *Loader {
	l := &Loader{
		decoder:         decoder,
		trailingEntries: defaultTrailingEntries,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadAll reads every capture pair in dir and returns a mapping from galactic
// longitude to its combined spectrum record. Files are sorted
// lexicographically; the trailing non-data entries are discarded; the rest
// must interleave as (off-plane, on-plane) pairs in longitude order. Any
// malformed input aborts the load with no partial result.
func (l *Loader) LoadAll(dir string) (map[int]*spectrum.Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing dataset directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if len(names) < l.trailingEntries {
		return nil, fmt.Errorf("%w: %d entries in %s", ErrMalformedDataset, len(names), dir)
	}
	names = names[:len(names)-l.trailingEntries]

	if len(names)%2 != 0 {
		return nil, fmt.Errorf("%w: %d qualifying files in %s", ErrMalformedDataset, len(names), dir)
	}
	if len(names)/2 > len(Longitudes) {
		return nil, fmt.Errorf("%w: %d pairs, %d known longitudes",
			ErrUnknownLongitude, len(names)/2, len(Longitudes))
	}

	dataset := make(map[int]*spectrum.Record, len(names)/2)
	for i := 0; i < len(names)/2; i++ {
		longitude := Longitudes[i]
		offName, onName := names[2*i], names[2*i+1]

		off, err := l.decode(filepath.Join(dir, offName))
		if err != nil {
			return nil, err
		}
		on, err := l.decode(filepath.Join(dir, onName))
		if err != nil {
			return nil, err
		}

		if l.observer != nil {
			l.observer(longitude, on, off)
		}

		rec, err := spectrum.Combine(on, off)
		if err != nil {
			return nil, fmt.Errorf("combining pair (%s, %s): %w", offName, onName, err)
		}

		if l.logger != nil {
			l.logger.Debug("loaded capture pair",
				slog.Int("longitude", longitude),
				slog.String("on", onName),
				slog.String("off", offName),
				slog.Int("rows", rec.Len()))
		}
		dataset[longitude] = rec
	}

	return dataset, nil
}

func (l *Loader) decode(path string) (*spectrum.Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capture %s: %w", path, err)
	}
	defer f.Close()

	m, err := l.decoder.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding capture %s: %w", path, err)
	}
	return m, nil
}
