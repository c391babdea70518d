package render

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/knickoriuk/Galactic-Rotation/internal/numeric"
)

// RotationPoint is one measured point of the galactic rotation curve.
type RotationPoint struct {
	Radius   float64 // Ring radius in kpc
	Velocity float64 // Tangential velocity in km/s
}

// Comparison model parameters for the rotation curve overlay.
const (
	smoothWindow = 9
	smoothDegree = 3

	keplerianScale = 410.0 // km/s at 1 kpc, v = 410·R^-1/2
	flatVelocity   = 185.0 // km/s
)

// RotationCurve charts the Milky Way rotation curve. With comparison set, the
// measured points are overlaid with a smoothed trend and the three reference
// rotation models: solid body (v ∝ R), Keplerian (v ∝ R^-1/2) and
// differential (v constant).
func RotationCurve(points []RotationPoint, comparison bool, style Style) (*charts.Line, error) {
	style = style.withDefaults()
	line := newLine(style,
		"Milky Way Rotation Curve",
		"", "Distance to Galactic Core (kpc)", "Velocity (km/s)")

	radii := make([]float64, len(points))
	velocities := make([]float64, len(points))
	for i, p := range points {
		radii[i] = p.Radius
		velocities[i] = p.Velocity
	}

	if !comparison {
		line.AddSeries("Milky Way Data", lineData(radii, velocities),
			charts.WithLineStyleOpts(opts.LineStyle{Color: style.SignalColor}))
		return line, nil
	}

	scatter := charts.NewScatter()
	scatter.AddSeries("Milky Way Data", scatterData(radii, velocities),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: style.SignalColor}))
	line.Overlap(scatter)

	if len(velocities) >= smoothWindow {
		smoothed, err := numeric.SavitzkyGolay(velocities, smoothWindow, smoothDegree)
		if err != nil {
			return nil, err
		}
		line.AddSeries("Smoothed Trend", lineData(radii, smoothed),
			charts.WithLineStyleOpts(opts.LineStyle{Color: style.SignalColor, Opacity: 0.25}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: false}))
	}

	line.AddSeries("Solid Body Rotation (v ∝ R)",
		lineData([]float64{1.75, 5.25}, []float64{0, 200}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#ac26ff", Type: "dashed"}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: false}))

	keplerX := linspace(4, 8.25, 20)
	keplerY := make([]float64, len(keplerX))
	for i, r := range keplerX {
		keplerY[i] = keplerianScale * math.Pow(r, -0.5)
	}
	line.AddSeries("Keplerian Rotation (v ∝ R^-1/2)", lineData(keplerX, keplerY),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#0091ff", Type: "dashed"}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: false}))

	line.AddSeries("Differential Rotation (v = constant)",
		lineData([]float64{3.25, 8}, []float64{flatVelocity, flatVelocity}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#00b324", Type: "dashed"}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: false}))

	return line, nil
}

// KeplerianCurve charts the solar system's v ∝ R^-1/2 rotation as a sanity
// reference: the eight planets against the relationship their orbits follow.
func KeplerianCurve(style Style) *charts.Line {
	style = style.withDefaults()
	line := newLine(style,
		"Keplerian Rotation Curve",
		"", "Semimajor Axis (AU)", "Velocity (km/s)")

	// v = sqrt(GM_sun / R), R in AU, result in km/s.
	radii := linspace(0.2, 31, 40)
	velocities := make([]float64, len(radii))
	for i, r := range radii {
		velocities[i] = math.Sqrt(1.326663e20/(r*1.496e11)) / 1000
	}
	line.AddSeries("v ∝ R^-1/2", lineData(radii, velocities),
		charts.WithLineStyleOpts(opts.LineStyle{Color: style.FitColor, Type: "dashed", Opacity: 0.75}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: false}))

	planetRadii := []float64{0.3787, 0.72298, 1, 1.51740, 5.19820, 9.5673, 19.2184, 30.11}
	planetVelocities := []float64{47.9, 35, 29.8, 24.1, 13.1, 9.7, 6.8, 5.4}

	scatter := charts.NewScatter()
	scatter.AddSeries("Planets", scatterData(planetRadii, planetVelocities),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: style.SignalColor}))
	line.Overlap(scatter)

	return line
}

func linspace(from, to float64, n int) []float64 {
	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}
