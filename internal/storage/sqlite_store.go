package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
)

// SqliteStore implements Store on an SQLite database file.
type SqliteStore struct {
	dbPath string

	writeDB     *sql.DB
	writeDBOnce sync.Once
	writeDBErr  error

	readDB     *sql.DB
	readDBOnce sync.Once
	readDBErr  error

	closeOnce sync.Once
	closeErr  error
}

// NewSqliteStore creates a store backed by the SQLite database at dbPath.
// Connections are opened lazily; the schema is initialized on first write.
func NewSqliteStore(dbPath string) *SqliteStore {
	return &SqliteStore{dbPath: dbPath}
}

func runSQLCommand(db *sql.DB, sql string) error {
	_, err := db.Exec(sql)
	return err
}

func (s *SqliteStore) getWriteDB() (*sql.DB, error) {
	s.writeDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "_journal_mode=WAL&_synchronous=NORMAL"))
		if err != nil {
			s.writeDBErr = fmt.Errorf("opening write connection: %w", err)
			return
		}

		if err = runSQLCommand(db, initSchemaSQL); err != nil {
			_ = db.Close()
			s.writeDBErr = fmt.Errorf("initializing schema: %w", err)
			return
		}

		s.writeDB = db
	})

	return s.writeDB, s.writeDBErr
}

func (s *SqliteStore) getReadDB() (*sql.DB, error) {
	s.readDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "mode=ro"))
		if err != nil {
			s.readDBErr = fmt.Errorf("opening read connection: %w", err)
			return
		}
		s.readDB = db
	})

	return s.readDB, s.readDBErr
}

func (s *SqliteStore) CreateSurvey(ctx context.Context, sourceDir string, config any) (surveyID int64, err error) {
	var configData sql.NullString

	if config != nil {
		switch v := config.(type) {
		case string:
			configData.Valid = true
			configData.String = v

		case []byte:
			configData.Valid = true
			configData.String = string(v)

		default:
			var p []byte
			if p, err = json.Marshal(config); err != nil {
				err = fmt.Errorf("marshaling config: %w", err)
				return
			}

			configData.Valid = true
			configData.String = string(p)
		}
	}

	db, err := s.getWriteDB()
	if err != nil {
		err = fmt.Errorf("getting write connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, insertSurveySQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	result, err := stmt.ExecContext(ctx, sourceDir, configData)
	if err != nil {
		err = fmt.Errorf("inserting survey: %w", err)
		return
	}

	surveyID, err = result.LastInsertId()
	if err != nil {
		err = fmt.Errorf("getting survey ID: %w", err)
	}
	return
}

func (s *SqliteStore) Survey(ctx context.Context, id int64) (survey *SurveyRun, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, selectSurveySQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	var run SurveyRun
	var config sql.NullString
	if err = stmt.QueryRowContext(ctx, id).Scan(&run.ID, &run.CreatedAt, &run.SourceDir, &config); err != nil {
		err = fmt.Errorf("scanning survey: %w", err)
		return
	}
	if config.Valid {
		run.Config = &config.String
	}

	return &run, nil
}

func (s *SqliteStore) Surveys(ctx context.Context) (surveys []*SurveyRun, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	rows, err := db.QueryContext(ctx, selectSurveysSQL)
	if err != nil {
		err = fmt.Errorf("querying surveys: %w", err)
		return
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var run SurveyRun
		var config sql.NullString
		if err = rows.Scan(&run.ID, &run.CreatedAt, &run.SourceDir, &config); err != nil {
			err = fmt.Errorf("scanning survey: %w", err)
			return
		}
		if config.Valid {
			run.Config = &config.String
		}
		surveys = append(surveys, &run)
	}
	return surveys, rows.Err()
}

const insertSpectrumSQL = `
    INSERT INTO spectra (
        survey_id,
        longitude,
        frequency,
        on_power,
        off_power
    )
    VALUES `

func (s *SqliteStore) StoreSpectrum(ctx context.Context, surveyID int64, longitude int, rec *spectrum.Record) (err error) {
	if rec == nil || rec.Len() == 0 {
		return
	}

	db, err := s.getWriteDB()
	if err != nil {
		return fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	values := make([]interface{}, 0, rec.Len()*5)
	valuesPlaceholder := "(?, ?, ?, ?, ?)"

	var sb strings.Builder
	sb.WriteString(insertSpectrumSQL)

	for i, row := range rec.Rows {
		values = append(values, surveyID, longitude, row.Frequency, row.OnPower, row.OffPower)

		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(valuesPlaceholder)
	}

	if _, err = tx.ExecContext(ctx, sb.String(), values...); err != nil {
		return fmt.Errorf("batch inserting spectrum rows: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *SqliteStore) Longitudes(ctx context.Context, surveyID int64) (longitudes []int, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	rows, err := db.QueryContext(ctx, selectLongitudesSQL, surveyID)
	if err != nil {
		err = fmt.Errorf("querying longitudes: %w", err)
		return
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var l int
		if err = rows.Scan(&l); err != nil {
			err = fmt.Errorf("scanning longitude: %w", err)
			return
		}
		longitudes = append(longitudes, l)
	}
	return longitudes, rows.Err()
}

func (s *SqliteStore) Close() error {
	s.closeOnce.Do(func() {
		var writeErr, readErr error

		if s.writeDB != nil {
			_ = runSQLCommand(s.writeDB, initIndexesSQL)

			writeErr = s.writeDB.Close()
			s.writeDB = nil
		}

		if s.readDB != nil {
			readErr = s.readDB.Close()
			s.readDB = nil
		}

		switch {
		case writeErr != nil && readErr != nil:
			s.closeErr = errors.Join(writeErr, readErr)
		case writeErr != nil:
			s.closeErr = writeErr
		case readErr != nil:
			s.closeErr = readErr
		}
	})

	return s.closeErr
}
