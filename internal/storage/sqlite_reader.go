package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
)

// ErrNoData indicates that no spectrum rows exist for the given parameters.
var ErrNoData = fmt.Errorf("storage: no spectrum data available")

// ReadOption configures a spectrum read with filtering criteria.
type ReadOption func(*readQuery)

type readQuery struct {
	minFreq *float64
	maxFreq *float64
}

// WithMinFreq excludes rows below the given frequency in MHz.
func WithMinFreq(f float64) ReadOption {
	return func(q *readQuery) {
		q.minFreq = &f
	}
}

// WithMaxFreq excludes rows above the given frequency in MHz.
func WithMaxFreq(f float64) ReadOption {
	return func(q *readQuery) {
		q.maxFreq = &f
	}
}

// WithFreqRange excludes rows outside [minFreq, maxFreq]. Equivalent to
// applying both WithMinFreq and WithMaxFreq.
func WithFreqRange(minFreq, maxFreq float64) ReadOption {
	return func(q *readQuery) {
		q.minFreq = &minFreq
		q.maxFreq = &maxFreq
	}
}

func (s *SqliteStore) ReadSpectrum(ctx context.Context, surveyID int64, longitude int, opts ...ReadOption) (rec *spectrum.Record, err error) {
	var q readQuery
	for _, opt := range opts {
		opt(&q)
	}

	db, err := s.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`
SELECT frequency, on_power, off_power
FROM spectra
WHERE survey_id = ? AND longitude = ?`)

	args := []any{surveyID, longitude}
	if q.minFreq != nil {
		sb.WriteString(" AND frequency >= ?")
		args = append(args, *q.minFreq)
	}
	if q.maxFreq != nil {
		sb.WriteString(" AND frequency <= ?")
		args = append(args, *q.maxFreq)
	}
	sb.WriteString(" ORDER BY id")

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying spectrum: %w", err)
	}
	defer closeWithError(rows, &err)

	rec = &spectrum.Record{}
	for rows.Next() {
		var row spectrum.Row
		if err = rows.Scan(&row.Frequency, &row.OnPower, &row.OffPower); err != nil {
			return nil, fmt.Errorf("scanning spectrum row: %w", err)
		}
		rec.Rows = append(rec.Rows, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spectrum rows: %w", err)
	}
	if rec.Len() == 0 {
		return nil, fmt.Errorf("%w: survey %d, longitude %d", ErrNoData, surveyID, longitude)
	}
	return rec, nil
}
