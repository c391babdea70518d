// Package storage persists survey runs and their per-longitude spectrum
// records in SQLite, and reads them back for rendering tools.
package storage

import (
	"context"
	"time"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
)

// SurveyRun represents one analysis run over a dataset directory.
type SurveyRun struct {
	ID        int64
	CreatedAt time.Time
	SourceDir string  // Dataset directory the run was loaded from
	Config    *string // Optional run configuration in JSON format
}

// Store provides access to survey analysis results. All write operations are
// atomic; a stored spectrum is either complete or absent.
type Store interface {
	// CreateSurvey registers a new survey run and returns its unique
	// identifier. config can be a string, []byte, or any JSON-serializable
	// value; nil stores no configuration.
	CreateSurvey(ctx context.Context, sourceDir string, config any) (surveyID int64, err error)

	// Survey retrieves a survey run by its ID.
	Survey(ctx context.Context, id int64) (*SurveyRun, error)

	// Surveys returns all stored survey runs in creation order.
	Surveys(ctx context.Context) ([]*SurveyRun, error)

	// StoreSpectrum saves one longitude's spectrum record in a single
	// transaction, preserving row order.
	StoreSpectrum(ctx context.Context, surveyID int64, longitude int, rec *spectrum.Record) error

	// Longitudes returns the longitudes stored for a survey in insertion
	// order. Insertion order is positional dataset order, which ends with
	// longitude 120; callers must not sort it.
	Longitudes(ctx context.Context, surveyID int64) ([]int, error)

	// ReadSpectrum reads one longitude's spectrum record back, rows in
	// stored order, optionally filtered (WithMinFreq, WithMaxFreq,
	// WithFreqRange).
	ReadSpectrum(ctx context.Context, surveyID int64, longitude int, opts ...ReadOption) (*spectrum.Record, error)

	// Close releases all database connections. It is safe to call Close
	// multiple times.
	Close() error
}
