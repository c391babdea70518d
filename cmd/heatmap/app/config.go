package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

const (
	ImagePNG  = "png"
	ImageJPEG = "jpeg"
)

type ImageFormat string

type Config struct {
	DBPath       string
	SurveyID     int64
	OutputFile   string
	Format       ImageFormat
	Theme        ColorTheme
	FontPath     string
	ColumnWidth  int
	MinAmplitude *float64
	MaxAmplitude *float64
	Verbose      bool
}

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

var validThemes = map[ColorTheme]struct{}{
	ClassicTheme:   {},
	GrayscaleTheme: {},
	JungleTheme:    {},
	ThermalTheme:   {},
	MarineTheme:    {},
}

func NewConfig() *Config {
	return &Config{
		Format: ImagePNG,
		Theme:  ThermalTheme,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var imageFormat, theme string
	var minAmp, maxAmp float64
	flag.StringVar(&c.DBPath, "db", "", "Path to the database file")
	flag.Int64Var(&c.SurveyID, "survey", 1, "Survey ID")
	flag.StringVar(&c.OutputFile, "o", "", "Path to the output file")
	flag.StringVar(&imageFormat, "f", string(ImagePNG), "Output image format. [png, jpeg]")
	flag.StringVar(&theme, "theme", string(ThermalTheme), "Color theme. [classic, grayscale, jungle, thermal, marine]")
	flag.StringVar(&c.FontPath, "font", "", "Path to a TrueType font for annotations (empty disables annotations)")
	flag.IntVar(&c.ColumnWidth, "column-width", defaultColumnWidth, "Width of one longitude column in pixels")
	flag.Float64Var(&minAmp, "min-amp", 0, "Define a manual minimum amplitude (format n.nnn)")
	flag.Float64Var(&maxAmp, "max-amp", 0, "Define a manual maximum amplitude (format n.nnn)")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")
	flag.Parse()

	imageFormat = strings.ToLower(imageFormat)
	theme = strings.ToLower(theme)

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "min-amp" {
			c.MinAmplitude = &minAmp
		}
		if f.Name == "max-amp" {
			c.MaxAmplitude = &maxAmp
		}
	})

	var err error
	if c.DBPath == "" {
		err = errors.New("db path is required")
	} else if c.SurveyID <= 0 {
		err = errors.New("survey id is required")
	} else if c.OutputFile == "" {
		err = errors.New("output file is required")
	} else if c.ColumnWidth <= 0 {
		err = errors.New("column width must be positive")
	} else if _, ok := validImageFormats[ImageFormat(imageFormat)]; !ok {
		err = fmt.Errorf("invalid image format: %s", imageFormat)
	} else if _, ok := validThemes[ColorTheme(theme)]; !ok {
		err = fmt.Errorf("invalid color theme: %s", theme)
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}

	c.Format = ImageFormat(imageFormat)
	c.Theme = ColorTheme(theme)
	c.OutputFile = fmt.Sprintf("%s.%s", c.OutputFile, c.Format)
	return c, nil
}
