// Package render builds the diagnostic charts for a survey run: per-longitude
// spectra, baseline-fit diagnostics, detrended and velocity-converted
// profiles, and the Milky Way rotation curve. Charts are rendered to
// standalone HTML files.
package render

import (
	"fmt"
	"io"
	"os"
)

// Style is the explicit chart configuration passed to every builder. There is
// no process-global styling state; callers that want a different look pass a
// different Style.
type Style struct {
	Width     string // CSS width of the chart canvas, e.g. "1200px"
	Height    string // CSS height of the chart canvas, e.g. "500px"
	PageTitle string

	SignalColor   string // On-plane (latitude 0) series
	BaselineColor string // Off-plane reference series
	FitColor      string // Fitted baseline curve
	AccentColor   string // Highlighted points and overlays
}

// DefaultStyle returns the style used by the analysis pipeline.
func DefaultStyle() Style {
	return Style{
		Width:         "1200px",
		Height:        "500px",
		PageTitle:     "Galactic Rotation",
		SignalColor:   "red",
		BaselineColor: "black",
		FitColor:      "black",
		AccentColor:   "blue",
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Width == "" {
		s.Width = d.Width
	}
	if s.Height == "" {
		s.Height = d.Height
	}
	if s.PageTitle == "" {
		s.PageTitle = d.PageTitle
	}
	if s.SignalColor == "" {
		s.SignalColor = d.SignalColor
	}
	if s.BaselineColor == "" {
		s.BaselineColor = d.BaselineColor
	}
	if s.FitColor == "" {
		s.FitColor = d.FitColor
	}
	if s.AccentColor == "" {
		s.AccentColor = d.AccentColor
	}
	return s
}

// Renderable is any chart that can render itself to a writer.
type Renderable interface {
	Render(w io.Writer) error
}

// WriteChart renders a chart to the given path.
func WriteChart(c Renderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := c.Render(f); err != nil {
		return fmt.Errorf("rendering chart to %s: %w", path, err)
	}
	return nil
}
