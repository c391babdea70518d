package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/knickoriuk/Galactic-Rotation/internal/render"
)

// Config represents the main application configuration
type Config struct {
	Settings Settings      `yaml:"settings"`
	Dataset  DatasetConfig `yaml:"dataset"`
	Storage  StorageConfig `yaml:"storage"`
	Charts   ChartsConfig  `yaml:"charts"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// Level parses the configured log level, defaulting to info.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatasetConfig locates the survey recordings
type DatasetConfig struct {
	Directory        string  `yaml:"directory"`
	TrailingEntries  *int    `yaml:"trailingEntries"`
	OffPlaneLatitude float64 `yaml:"offPlaneLatitude"`
}

// StorageConfig represents storage settings
type StorageConfig struct {
	DataDirectory string `yaml:"dataDirectory"`
}

// ChartsConfig controls diagnostic chart output
type ChartsConfig struct {
	Enabled         bool        `yaml:"enabled"`
	OutputDirectory string      `yaml:"outputDirectory"`
	Comparison      bool        `yaml:"comparison"`
	Style           StyleConfig `yaml:"style"`
}

// StyleConfig overrides the default chart style, empty fields keep defaults
type StyleConfig struct {
	Width         string `yaml:"width"`
	Height        string `yaml:"height"`
	PageTitle     string `yaml:"pageTitle"`
	SignalColor   string `yaml:"signalColor"`
	BaselineColor string `yaml:"baselineColor"`
	FitColor      string `yaml:"fitColor"`
	AccentColor   string `yaml:"accentColor"`
}

func (c StyleConfig) Style() render.Style {
	return render.Style{
		Width:         c.Width,
		Height:        c.Height,
		PageTitle:     c.PageTitle,
		SignalColor:   c.SignalColor,
		BaselineColor: c.BaselineColor,
		FitColor:      c.FitColor,
		AccentColor:   c.AccentColor,
	}
}

const defaultOffPlaneLatitude = 20.0

// LoadConfig reads and validates a YAML configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file: %w", err)
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing configuration file: %w", err)
	}

	if config.Dataset.Directory == "" {
		return nil, fmt.Errorf("dataset directory is required")
	}
	if config.Dataset.TrailingEntries != nil && *config.Dataset.TrailingEntries < 0 {
		return nil, fmt.Errorf("trailing entries must not be negative")
	}
	if config.Dataset.OffPlaneLatitude == 0 {
		config.Dataset.OffPlaneLatitude = defaultOffPlaneLatitude
	}
	if config.Charts.Enabled && config.Charts.OutputDirectory == "" {
		return nil, fmt.Errorf("charts output directory is required when charts are enabled")
	}

	return &config, nil
}
