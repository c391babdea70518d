package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	dpi            = 120.0
	defaultFont    = 12.0
	tickMarkWidth  = 5
	pixelsPerLabel = 60.0

	// Width of one longitude column in pixels
	defaultColumnWidth = 24

	defaultColorMapSize = 1024

	// Default border sizes in pixels
	defaultTopBorder    = 40
	defaultLeftBorder   = 80
	defaultBottomBorder = 40
	defaultRightBorder  = 40
)

// BorderConfig defines the sizes of white space around the heat map
type BorderConfig struct {
	Top    int // Space for information bar
	Left   int // Space for radial velocity scale
	Bottom int // Space for longitude labels
	Right  int // Right padding
}

// RenderConfig holds all configuration options for heat map visualization
type RenderConfig struct {
	// Visual configuration
	FontPath     string     // TrueType font for annotations, empty disables them
	FontSize     float64    // Font size in points
	ColumnWidth  int        // Pixels per longitude column
	ColorTheme   ColorTheme // Color scheme for amplitude values
	ColorMapSize int        // Number of colors in gradient (0 for default)

	// Manual amplitude bound overrides, nil uses percentile bounds
	MinAmplitude *float64
	MaxAmplitude *float64

	// Border configuration
	BorderConfig BorderConfig
}

// HeatmapRenderer draws the per-longitude detrended spectra as an image
type HeatmapRenderer struct {
	colorMap *ColorMapper
	config   RenderConfig
}

// NewHeatmapRenderer creates a new heat map renderer with the given
// configuration
func NewHeatmapRenderer(config RenderConfig) (*HeatmapRenderer, error) {
	// Set defaults for zero values
	if config.FontSize == 0 {
		config.FontSize = defaultFont
	}
	if config.ColumnWidth == 0 {
		config.ColumnWidth = defaultColumnWidth
	}
	if config.ColorMapSize == 0 {
		config.ColorMapSize = defaultColorMapSize
	}
	if config.BorderConfig.Top == 0 {
		config.BorderConfig.Top = defaultTopBorder
	}
	if config.BorderConfig.Left == 0 {
		config.BorderConfig.Left = defaultLeftBorder
	}
	if config.BorderConfig.Bottom == 0 {
		config.BorderConfig.Bottom = defaultBottomBorder
	}
	if config.BorderConfig.Right == 0 {
		config.BorderConfig.Right = defaultRightBorder
	}

	return &HeatmapRenderer{config: config}, nil
}

// Render creates an image of the heat map with annotations
func (r *HeatmapRenderer) Render(data *HeatmapData) (*image.RGBA, error) {
	mapWidth := len(data.Columns) * r.config.ColumnWidth
	mapHeight := data.Rows()

	fullWidth := mapWidth + r.config.BorderConfig.Left + r.config.BorderConfig.Right
	fullHeight := mapHeight + r.config.BorderConfig.Top + r.config.BorderConfig.Bottom
	img := image.NewRGBA(image.Rect(0, 0, fullWidth, fullHeight))

	// Fill with white background
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	mapArea := image.Rect(
		r.config.BorderConfig.Left,
		r.config.BorderConfig.Top,
		r.config.BorderConfig.Left+mapWidth,
		r.config.BorderConfig.Top+mapHeight,
	)

	bounds := data.Histogram.GetPercentileBounds()
	if r.config.MinAmplitude != nil {
		bounds.Min = *r.config.MinAmplitude
	}
	if r.config.MaxAmplitude != nil {
		bounds.Max = *r.config.MaxAmplitude
	}

	if r.colorMap == nil {
		r.colorMap = NewColorMapper(r.config.ColorMapSize, r.config.ColorTheme, bounds)
	} else {
		r.colorMap.UpdateBounds(bounds)
	}

	if r.config.FontPath != "" {
		ann, err := newAnnotator(annotatorConfig{
			FontPath:    r.config.FontPath,
			FontSize:    r.config.FontSize,
			ColumnWidth: r.config.ColumnWidth,
			Borders:     r.config.BorderConfig,
		})
		if err != nil {
			return nil, fmt.Errorf("creating annotator: %w", err)
		}
		defer ann.Close()

		// First draw annotations
		if err = ann.annotate(img, data); err != nil {
			return nil, fmt.Errorf("drawing annotations: %w", err)
		}
	}

	// Then render map data (overwriting any overlapping annotations)
	r.renderColumns(img, mapArea, data)

	return img, nil
}

// renderColumns draws the actual heat map using the color map
func (r *HeatmapRenderer) renderColumns(img *image.RGBA, area image.Rectangle, data *HeatmapData) {
	for c, column := range data.Columns {
		x0 := area.Min.X + c*r.config.ColumnWidth
		for y, amplitude := range column {
			imgY := area.Min.Y + y
			col := r.colorMap.GetColor(amplitude)
			for x := x0; x < x0+r.config.ColumnWidth; x++ {
				img.Set(x, imgY, col)
			}
		}
	}
}

// Internal annotator implementation
type annotatorConfig struct {
	FontPath    string
	FontSize    float64
	ColumnWidth int
	Borders     BorderConfig
}

type annotator struct {
	context  *freetype.Context
	config   annotatorConfig
	fontFace font.Face
}

func newAnnotator(config annotatorConfig) (*annotator, error) {
	fontBytes, err := os.ReadFile(config.FontPath)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}

	parsedFont, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetFontSize(config.FontSize)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	return &annotator{
		context: ctx,
		config:  config,
		fontFace: truetype.NewFace(parsedFont, &truetype.Options{
			Size:    config.FontSize,
			DPI:     dpi,
			Hinting: font.HintingNone,
		}),
	}, nil
}

func (a *annotator) Close() error {
	if a.fontFace != nil {
		return a.fontFace.Close()
	}
	return nil
}

func (a *annotator) annotate(img *image.RGBA, data *HeatmapData) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	if err := a.drawVelocityScale(img, data); err != nil {
		return fmt.Errorf("drawing velocity scale: %w", err)
	}
	if err := a.drawLongitudeScale(img, data); err != nil {
		return fmt.Errorf("drawing longitude scale: %w", err)
	}
	if err := a.drawInfoBar(img, data); err != nil {
		return fmt.Errorf("drawing info bar: %w", err)
	}

	return nil
}

func (a *annotator) drawVelocityScale(img *image.RGBA, data *HeatmapData) error {
	rows := data.Rows()
	if rows < 2 {
		return nil
	}

	// Get font metrics once
	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()

	// One label per pixelsPerLabel rows, each row is one pixel tall
	rowStep := int(math.Min(pixelsPerLabel, float64(rows-1)))

	for y := 0; y < rows; y += rowStep {
		imgY := y + a.config.Borders.Top

		// Draw tick mark
		for x := a.config.Borders.Left - tickMarkWidth; x < a.config.Borders.Left; x++ {
			img.Set(x, imgY, color.Black)
		}

		// Center text vertically relative to the tick mark position
		textY := imgY + fontHeight/2 - metrics.Descent.Round()

		label := fmt.Sprintf("%.0f km/s", data.Velocities[y])
		pt := freetype.Pt(10, textY)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing velocity label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawLongitudeScale(img *image.RGBA, data *HeatmapData) error {
	mapBottom := img.Bounds().Max.Y - a.config.Borders.Bottom

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()
	textY := mapBottom + tickMarkWidth + fontHeight

	for c, longitude := range data.Longitudes {
		// Center of the column
		x := a.config.Borders.Left + c*a.config.ColumnWidth + a.config.ColumnWidth/2

		// Draw tick mark
		for y := mapBottom; y < mapBottom+tickMarkWidth; y++ {
			img.Set(x, y, color.Black)
		}

		label := strconv.Itoa(longitude)
		width := font.MeasureString(a.fontFace, label)
		pt := freetype.Pt(x-(width.Round()/2), textY)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing longitude label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawInfoBar(img *image.RGBA, data *HeatmapData) error {
	var sb strings.Builder

	sb.WriteString(formatFrequencyRange(data.FrequencyMin, data.FrequencyMax))
	sb.WriteString("; ")
	sb.WriteString(fmt.Sprintf("Longitudes: %d", len(data.Longitudes)))

	if rows := data.Rows(); rows > 0 {
		sb.WriteString("; ")
		sb.WriteString(fmt.Sprintf("Velocity: %.0f - %.0f km/s",
			data.Velocities[rows-1], data.Velocities[0]))
	}

	// Calculate text position in top border
	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()

	// Center text vertically in top border
	textY := a.config.Borders.Top - (a.config.Borders.Top-fontHeight)/2 - metrics.Descent.Round()

	// Draw info
	pt := freetype.Pt(a.config.Borders.Left, textY)
	if _, err := a.context.DrawString(sb.String(), pt); err != nil {
		return fmt.Errorf("drawing info text: %w", err)
	}

	return nil
}

// Helper functions

func formatFrequency(freqMHz float64) string {
	value, prefix := humanize.ComputeSI(freqMHz * 1e6)
	return fmt.Sprintf("%.3f %sHz", value, prefix)
}

func formatFrequencyRange(min, max float64) string {
	return fmt.Sprintf("Freq: %s - %s", formatFrequency(min), formatFrequency(max))
}
