package app

import (
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
	"github.com/knickoriuk/Galactic-Rotation/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if _, err := os.Stat(config.DBPath); err != nil && os.IsNotExist(err) {
		return fmt.Errorf("database file '%s' does not exist: %w", config.DBPath, err)
	}

	store := storage.NewSqliteStore(config.DBPath)
	defer store.Close()

	return renderHeatmap(ctx, store, config, logger)
}

func renderHeatmap(ctx context.Context, store *storage.SqliteStore, config *Config, logger *slog.Logger) error {
	longitudes, err := store.Longitudes(ctx, config.SurveyID)
	if err != nil {
		return err
	}
	if len(longitudes) == 0 {
		return fmt.Errorf("survey %d has no stored spectra", config.SurveyID)
	}

	logger.Info("reading stored spectra",
		slog.Int64("survey", config.SurveyID),
		slog.Int("longitudes", len(longitudes)))

	data := NewHeatmapData()
	for _, l := range longitudes {
		rec, err := store.ReadSpectrum(ctx, config.SurveyID, l)
		if err != nil {
			if errors.Is(err, storage.ErrNoData) {
				logger.Warn("no data for longitude, skipping", slog.Int("longitude", l))
				continue
			}
			return fmt.Errorf("reading spectrum for longitude %d: %w", l, err)
		}

		detrended, err := spectrum.Detrend(rec, spectrum.DetrendOptions{})
		if err != nil {
			return fmt.Errorf("detrending longitude %d: %w", l, err)
		}

		if err = data.AddColumn(l, rec, detrended); err != nil {
			return err
		}

		logger.Debug("column ready", slog.Int("longitude", l), slog.Int("rows", rec.Len()))
	}

	bounds := data.Histogram.GetPercentileBounds()
	logger.Info("finished reading spectra",
		slog.Group("stats",
			slog.String("minFreq", formatFrequency(data.FrequencyMin)),
			slog.String("maxFreq", formatFrequency(data.FrequencyMax)),
			slog.String("minAmplitude", fmt.Sprintf("%.4f", bounds.Min)),
			slog.String("maxAmplitude", fmt.Sprintf("%.4f", bounds.Max)),
		))

	renderer, err := NewHeatmapRenderer(RenderConfig{
		FontPath:     config.FontPath,
		ColumnWidth:  config.ColumnWidth,
		ColorTheme:   config.Theme,
		MinAmplitude: config.MinAmplitude,
		MaxAmplitude: config.MaxAmplitude,
	})
	if err != nil {
		return fmt.Errorf("creating heatmap renderer: %w", err)
	}

	logger.Info("rendering heatmap",
		slog.Group("image",
			slog.String("destination", config.OutputFile),
			slog.String("format", string(config.Format)),
			slog.String("theme", string(config.Theme)),
			slog.Int("width", len(data.Columns)*config.ColumnWidth),
			slog.Int("height", data.Rows()),
		))

	img, err := renderer.Render(data)
	if err != nil {
		return fmt.Errorf("rendering heatmap: %w", err)
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	switch config.Format {
	case ImagePNG:
		err = png.Encode(out, img)

	case ImageJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{
			Quality: 98,
		})
	}
	return err
}
