package app

import (
	"image/color"
	"math"
)

const (
	ClassicTheme   ColorTheme = "classic"
	GrayscaleTheme ColorTheme = "grayscale"
	JungleTheme    ColorTheme = "jungle"
	ThermalTheme   ColorTheme = "thermal"
	MarineTheme    ColorTheme = "marine"
)

type ColorTheme string

// InvalidAmplitudeColor marks NaN and infinite detrended values.
var InvalidAmplitudeColor = color.Black

// ColorMapper maps detrended amplitudes onto a pre-computed color gradient.
type ColorMapper struct {
	colorMap    []color.Color // Pre-computed colors
	bounds      AmplitudeBounds
	theme       func(float64) color.Color
	size        int     // Cache size
	ampPerIndex float64 // Amplitude range per index step
}

func NewColorMapper(size int, theme ColorTheme, bounds AmplitudeBounds) *ColorMapper {
	cm := &ColorMapper{
		colorMap: make([]color.Color, size),
		theme:    GetColorTheme(theme),
		size:     size,
	}

	cm.UpdateBounds(bounds)
	return cm
}

func (cm *ColorMapper) UpdateBounds(bounds AmplitudeBounds) {
	cm.bounds = bounds
	cm.ampPerIndex = (cm.bounds.Max - cm.bounds.Min) / float64(cm.size-1)

	// Rebuild color map
	for i := 0; i < cm.size; i++ {
		normalized := float64(i) / float64(cm.size-1)
		cm.colorMap[i] = cm.theme(normalized)
	}
}

// GetColor maps one amplitude value to its display color.
func (cm *ColorMapper) GetColor(v float64) color.Color {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return InvalidAmplitudeColor
	}

	v = math.Max(cm.bounds.Min, math.Min(v, cm.bounds.Max))

	index := int((v - cm.bounds.Min) / cm.ampPerIndex)
	if index < 0 {
		index = 0
	} else if index >= cm.size {
		index = cm.size - 1
	}

	return cm.colorMap[index]
}

// HSV represents a color in HSV color space
type HSV struct {
	H float64 // Hue [0-360]
	S float64 // Saturation [0-1]
	V float64 // Value [0-1]
}

// RGB converts HSV color space to RGB
// H: [0-360], S: [0-1], V: [0-1]
func (hsv HSV) RGB() color.Color {
	h := hsv.H
	s := hsv.S
	v := hsv.V

	if s <= 0.0 {
		rgb := uint8(v * 255)
		return color.RGBA{R: rgb, G: rgb, B: rgb, A: 0xff}
	}

	// Normalize hue to [0-6]
	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i

	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64

	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 0xff}
}

// GetColorTheme returns predefined color themes
func GetColorTheme(theme ColorTheme) func(float64) color.Color {
	switch theme {
	case ClassicTheme: // Blue -> Red
		return func(v float64) color.Color {
			hsv := HSV{
				H: 240 - (v * 240),
				S: 0.9 + (v * 0.1),
				V: math.Pow(v, 0.7),
			}
			return hsv.RGB()
		}

	case GrayscaleTheme: // Black -> White
		return func(v float64) color.Color {
			g := math.Pow(v, 0.7) * 255
			return color.RGBA{R: uint8(g), G: uint8(g), B: uint8(g), A: 0xff}
		}

	case JungleTheme: // Dark Green -> Yellow
		return func(v float64) color.Color {
			hsv := HSV{
				H: 120 - (v * 60),
				S: 1.0,
				V: 0.3 + (math.Pow(v, 0.6) * 0.7),
			}
			return hsv.RGB()
		}

	case MarineTheme: // Deep Blue -> Cyan -> White
		return func(v float64) color.Color {
			hsv := HSV{
				H: 240 - (v * 60),
				S: 1.0 - (v * 0.8),
				V: 0.3 + (math.Pow(v, 0.6) * 0.7),
			}
			return hsv.RGB()
		}

	default: // ThermalTheme: Black -> Red -> Yellow -> White
		return func(v float64) color.Color {
			if v < 0.33 {
				p := v * 3
				return color.RGBA{R: uint8(p * 255), A: 0xff}
			} else if v < 0.66 {
				p := (v - 0.33) * 3
				return color.RGBA{R: 255, G: uint8(p * 255), A: 0xff}
			}
			p := (v - 0.66) * 3
			w := uint8(p * 255)
			return color.RGBA{R: 255, G: 255, B: w, A: 0xff}
		}
	}
}
