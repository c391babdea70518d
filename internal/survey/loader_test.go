package survey

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
)

const captureJSON = `{
	"freqs": [1418.0, 1419.0, 1421.0, 1422.0],
	"data": [[1, 2, 3, 4], [3, 4, 5, 6]],
	"time": [1579646400, 1579646460]
}`

func writeCapture(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAllPairsFilesInOrder(t *testing.T) {
	dir := t.TempDir()

	// Two longitude pairs, (off, on) interleaved lexicographically, plus
	// the two trailing metadata entries every dataset directory carries.
	writeCapture(t, dir, "l010_norm.json", captureJSON)
	writeCapture(t, dir, "l010_signal.json", captureJSON)
	writeCapture(t, dir, "l015_norm.json", captureJSON)
	writeCapture(t, dir, "l015_signal.json", captureJSON)
	writeCapture(t, dir, "z_data_info.txt", "notes")
	writeCapture(t, dir, "z_extra", "")

	loader := NewLoader(JSONDecoder{})
	dataset, err := loader.LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if len(dataset) != 2 {
		t.Fatalf("dataset size = %d, want 2", len(dataset))
	}
	for _, l := range []int{10, 15} {
		rec, ok := dataset[l]
		if !ok {
			t.Fatalf("longitude %d missing from dataset", l)
		}
		if rec.Len() != 4 {
			t.Errorf("longitude %d rows = %d, want 4", l, rec.Len())
		}
		// First bin: on mean (1+3)/2, off mean identical file.
		if rec.Rows[0].OnPower != 2 || rec.Rows[0].OffPower != 2 {
			t.Errorf("longitude %d row 0 = %+v, want powers 2/2", l, rec.Rows[0])
		}
	}
}

func TestLoadAllOddFileCount(t *testing.T) {
	dir := t.TempDir()
	writeCapture(t, dir, "l010_norm.json", captureJSON)
	writeCapture(t, dir, "l010_signal.json", captureJSON)
	writeCapture(t, dir, "l015_norm.json", captureJSON)

	loader := NewLoader(JSONDecoder{}, WithTrailingEntries(0))
	dataset, err := loader.LoadAll(dir)
	if !errors.Is(err, ErrMalformedDataset) {
		t.Errorf("LoadAll() error = %v, want %v", err, ErrMalformedDataset)
	}
	if dataset != nil {
		t.Error("expected no partial dataset on malformed input")
	}
}

func TestLoadAllTooManyPairs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i <= len(Longitudes); i++ {
		writeCapture(t, dir, fmt.Sprintf("p%03d_norm.json", i), captureJSON)
		writeCapture(t, dir, fmt.Sprintf("p%03d_signal.json", i), captureJSON)
	}

	loader := NewLoader(JSONDecoder{}, WithTrailingEntries(0))
	if _, err := loader.LoadAll(dir); !errors.Is(err, ErrUnknownLongitude) {
		t.Errorf("LoadAll() error = %v, want %v", err, ErrUnknownLongitude)
	}
}

func TestLoadAllCorruptCapture(t *testing.T) {
	dir := t.TempDir()
	writeCapture(t, dir, "l010_norm.json", "not json at all")
	writeCapture(t, dir, "l010_signal.json", captureJSON)

	loader := NewLoader(JSONDecoder{}, WithTrailingEntries(0))
	_, err := loader.LoadAll(dir)
	if !errors.Is(err, ErrCorruptCapture) {
		t.Fatalf("LoadAll() error = %v, want %v", err, ErrCorruptCapture)
	}
	if !strings.Contains(err.Error(), "l010_norm.json") {
		t.Errorf("error %q does not name the corrupt file", err)
	}
}

func TestLoadAllMissingDirectory(t *testing.T) {
	loader := NewLoader(JSONDecoder{})
	if _, err := loader.LoadAll(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLongitudeOrdering(t *testing.T) {
	if len(Longitudes) != 28 {
		t.Fatalf("len(Longitudes) = %d, want 28", len(Longitudes))
	}
	// The final pair belongs to longitude 120, out of numeric order after
	// 190. Downstream consumers index positionally; this must not change.
	if Longitudes[len(Longitudes)-1] != 120 {
		t.Errorf("last longitude = %d, want 120", Longitudes[len(Longitudes)-1])
	}
	if Longitudes[len(Longitudes)-2] != 190 {
		t.Errorf("second to last longitude = %d, want 190", Longitudes[len(Longitudes)-2])
	}
}

func TestLoadAllPairObserver(t *testing.T) {
	dir := t.TempDir()
	writeCapture(t, dir, "l010_norm.json", captureJSON)
	writeCapture(t, dir, "l010_signal.json", captureJSON)
	writeCapture(t, dir, "l015_norm.json", captureJSON)
	writeCapture(t, dir, "l015_signal.json", captureJSON)

	var seen []int
	loader := NewLoader(JSONDecoder{},
		WithTrailingEntries(0),
		WithPairObserver(func(longitude int, on, off *spectrum.Measurement) {
			if on == nil || off == nil {
				t.Errorf("observer for longitude %d received nil measurement", longitude)
			}
			seen = append(seen, longitude)
		}))

	if _, err := loader.LoadAll(dir); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(seen) != 2 || seen[0] != 10 || seen[1] != 15 {
		t.Errorf("observer saw longitudes %v, want [10 15]", seen)
	}
}
