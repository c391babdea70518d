package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
	"github.com/knickoriuk/Galactic-Rotation/internal/storage"
	"github.com/knickoriuk/Galactic-Rotation/internal/survey"
)

const (
	storageDir = "data"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	store, err := createStorage(&config.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}
	defer store.Close()

	var charts *chartWriter
	if config.Charts.Enabled {
		if charts, err = newChartWriter(config, logger); err != nil {
			return fmt.Errorf("failed to create chart writer: %w", err)
		}
	}

	loaderOpts := []survey.LoaderOption{survey.WithLogger(logger)}
	if config.Dataset.TrailingEntries != nil {
		loaderOpts = append(loaderOpts, survey.WithTrailingEntries(*config.Dataset.TrailingEntries))
	}
	if charts != nil {
		loaderOpts = append(loaderOpts, survey.WithPairObserver(charts.RawSpectra))
	}

	logger.Info("loading dataset", slog.String("directory", config.Dataset.Directory))

	loader := survey.NewLoader(survey.JSONDecoder{}, loaderOpts...)
	dataset, err := loader.LoadAll(config.Dataset.Directory)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	if charts != nil && charts.Err() != nil {
		return fmt.Errorf("rendering raw spectra: %w", charts.Err())
	}

	logger.Info("dataset loaded", slog.Int("longitudes", len(dataset)))

	surveyID, err := store.CreateSurvey(ctx, config.Dataset.Directory, config)
	if err != nil {
		return fmt.Errorf("creating survey run: %w", err)
	}

	// Persist and chart in positional longitude order
	for _, longitude := range survey.Longitudes {
		rec, ok := dataset[longitude]
		if !ok {
			continue
		}

		if err = store.StoreSpectrum(ctx, surveyID, longitude, rec); err != nil {
			return fmt.Errorf("storing spectrum for longitude %d: %w", longitude, err)
		}

		detrended, err := spectrum.Detrend(rec, spectrum.DetrendOptions{})
		if err != nil {
			return fmt.Errorf("detrending longitude %d: %w", longitude, err)
		}

		if charts != nil {
			if err = charts.LongitudeCharts(longitude, rec, detrended); err != nil {
				return err
			}
		}

		logger.Debug("longitude processed",
			slog.Int("longitude", longitude),
			slog.Int("rows", rec.Len()))
	}

	if charts != nil {
		if err = charts.RotationCharts(dataset); err != nil {
			return err
		}
	}

	logger.Info("survey complete", slog.Int64("survey", surveyID))
	return nil
}

func createStorage(config *StorageConfig) (*storage.SqliteStore, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	var dbPath string
	if config.DataDirectory != "" {
		dbPath = filepath.Join(wd, config.DataDirectory)
	} else {
		dbPath = filepath.Join(wd, storageDir)
	}

	stat, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage directory '%s' does not exist: %w", dbPath, err)
		}
		return nil, fmt.Errorf("checking storage directory '%s': %w", dbPath, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("invalid storage directory '%s'", dbPath)
	}

	dbPath = filepath.Join(dbPath, fmt.Sprintf("survey_%s.sqlite", time.Now().UTC().Format("20060102_150405")))
	return storage.NewSqliteStore(dbPath), nil
}
