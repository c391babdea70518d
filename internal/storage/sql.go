package storage

const initSchemaSQL = `
CREATE TABLE IF NOT EXISTS surveys (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    source_dir TEXT NOT NULL,
    config     TEXT
);

CREATE TABLE IF NOT EXISTS spectra (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    survey_id INTEGER NOT NULL REFERENCES surveys (id),
    longitude INTEGER NOT NULL,
    frequency REAL NOT NULL,
    on_power  REAL NOT NULL,
    off_power REAL NOT NULL
);`

const initIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_spectra_survey_longitude
    ON spectra (survey_id, longitude, frequency);`

const (
	insertSurveySQL = `
INSERT INTO surveys (created_at, source_dir, config)
VALUES (CURRENT_TIMESTAMP, ?, ?)`

	selectSurveySQL = `
SELECT
    id,
    created_at,
    source_dir,
    config
FROM surveys
WHERE
    id = ?`

	selectSurveysSQL = `
SELECT
    id,
    created_at,
    source_dir,
    config
FROM surveys
ORDER BY id`

	selectLongitudesSQL = `
SELECT longitude
FROM spectra
WHERE survey_id = ?
GROUP BY longitude
ORDER BY MIN(id)`
)
