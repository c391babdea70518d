package render

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
)

func newLine(style Style, title, subtitle, xName, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:     style.Width,
			Height:    style.Height,
			PageTitle: style.PageTitle,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "value", Scale: true}),
	)
	return line
}

func lineData(xs, ys []float64) []opts.LineData {
	data := make([]opts.LineData, len(xs))
	for i := range xs {
		data[i] = opts.LineData{Value: []interface{}{xs[i], ys[i]}}
	}
	return data
}

func scatterData(xs, ys []float64) []opts.ScatterData {
	data := make([]opts.ScatterData, len(xs))
	for i := range xs {
		data[i] = opts.ScatterData{Value: []interface{}{xs[i], ys[i]}}
	}
	return data
}

// RawSpectrum charts the untrimmed scan-mean power of a single capture.
func RawSpectrum(m *spectrum.Measurement, longitude int, latitude float64, style Style) *charts.Line {
	style = style.withDefaults()
	line := newLine(style,
		fmt.Sprintf("Galactic Frequency Readings (l=%d, b=%g)", longitude, latitude),
		"", "Frequency (MHz)", "Signal Measurement")

	line.AddSeries("raw", lineData(m.Frequencies, m.ScanMean()),
		charts.WithLineStyleOpts(opts.LineStyle{Color: style.SignalColor}))
	return line
}

// OnOffComparison charts a record's on-plane and off-plane power in dB.
func OnOffComparison(rec *spectrum.Record, longitude int, latitude float64, style Style) *charts.Line {
	style = style.withDefaults()
	line := newLine(style,
		fmt.Sprintf("Galactic Frequency Readings (l=%d)", longitude),
		"", "Frequency (MHz)", "Power (dB, arbitrary)")

	freqs := rec.Frequencies()
	onDB := make([]float64, rec.Len())
	offDB := make([]float64, rec.Len())
	for i, row := range rec.Rows {
		onDB[i] = 10 * math.Log10(row.OnPower)
		offDB[i] = 10 * math.Log10(row.OffPower)
	}

	line.AddSeries("b=0", lineData(freqs, onDB),
		charts.WithLineStyleOpts(opts.LineStyle{Color: style.SignalColor}))
	line.AddSeries(fmt.Sprintf("b=%g", latitude), lineData(freqs, offDB),
		charts.WithLineStyleOpts(opts.LineStyle{Color: style.BaselineColor, Type: "dashed"}))
	return line
}

// BaselineFit charts the on/off ratio together with the fitted polynomial
// baseline, highlighting the points near the 21-cm line that are withheld
// from the fit. fitted must be index-aligned with the record's rows.
func BaselineFit(rec *spectrum.Record, fitted []float64, excludeHalfWidth float64, longitude int, style Style) *charts.Line {
	style = style.withDefaults()
	line := newLine(style,
		fmt.Sprintf("Ratio of On-Plane Signal to Off-Plane Signal (l=%d)", longitude),
		"", "Frequency (MHz)", "Normalized Ratio of Signals")

	ratio := rec.Ratio()
	var fitX, fitY, nearX, nearY []float64
	for i, row := range rec.Rows {
		if math.Abs(row.Frequency-spectrum.RestFrequency21cm) < excludeHalfWidth {
			nearX = append(nearX, row.Frequency)
			nearY = append(nearY, ratio[i])
			continue
		}
		fitX = append(fitX, row.Frequency)
		fitY = append(fitY, ratio[i])
	}

	line.AddSeries("baseline fit", lineData(rec.Frequencies(), fitted),
		charts.WithLineStyleOpts(opts.LineStyle{Color: style.FitColor}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: false}))

	scatter := charts.NewScatter()
	scatter.AddSeries("fit points", scatterData(fitX, fitY),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: style.SignalColor}))
	scatter.AddSeries("within 0.5 MHz of the 21-cm line", scatterData(nearX, nearY),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: style.AccentColor}))
	line.Overlap(scatter)

	return line
}

// DetrendedSpectrum charts the baseline-subtracted signal ratio over
// frequency. detrended must be index-aligned with the record's rows.
func DetrendedSpectrum(rec *spectrum.Record, detrended []float64, longitude int, style Style) *charts.Line {
	style = style.withDefaults()
	line := newLine(style,
		fmt.Sprintf("Radio Signal Increase Within Galactic Plane (l=%d)", longitude),
		"", "Frequency (MHz)", "Fractional Power Difference (%)")

	line.AddSeries("detrended", lineData(rec.Frequencies(), detrended),
		charts.WithLineStyleOpts(opts.LineStyle{Color: style.SignalColor}))
	return line
}

// VelocityProfile charts the detrended signal against radial velocity in
// km/s. The velocity axis decreases with frequency, so the series runs right
// to left over the original row order.
func VelocityProfile(rec *spectrum.Record, detrended []float64, longitude int, style Style) *charts.Line {
	style = style.withDefaults()
	line := newLine(style,
		fmt.Sprintf("Radial Velocity of Galactic Arms Based on Shifting of 21-cm Line (l=%d)", longitude),
		"", "Radial Velocity (km/s)", "Fractional Power Difference (%)")

	velocities := spectrum.RadialVelocities(rec.Frequencies())
	for i := range velocities {
		velocities[i] *= 1e-3
	}

	line.AddSeries("signal", lineData(velocities, detrended),
		charts.WithLineStyleOpts(opts.LineStyle{Color: style.SignalColor}))
	return line
}
