package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/knickoriuk/Galactic-Rotation/internal/spectrum"
)

func testRecord() *spectrum.Record {
	return &spectrum.Record{Rows: []spectrum.Row{
		{Frequency: 1418.0, OnPower: 2.0, OffPower: 1.5},
		{Frequency: 1419.0, OnPower: 2.5, OffPower: 1.6},
		{Frequency: 1421.0, OnPower: 3.0, OffPower: 1.7},
		{Frequency: 1422.0, OnPower: 2.8, OffPower: 1.6},
	}}
}

func renderToString(t *testing.T, c Renderable) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestOnOffComparison(t *testing.T) {
	html := renderToString(t, OnOffComparison(testRecord(), 90, 20, Style{}))
	if !strings.Contains(html, "Galactic Frequency Readings") {
		t.Error("rendered chart does not contain its title")
	}
}

func TestBaselineFit(t *testing.T) {
	rec := testRecord()
	fitted := []float64{1.3, 1.5, 1.7, 1.75}
	html := renderToString(t, BaselineFit(rec, fitted, spectrum.DefaultExcludeHalfWidth, 45, Style{}))
	if !strings.Contains(html, "On-Plane Signal") {
		t.Error("rendered chart does not contain its title")
	}
}

func TestVelocityProfile(t *testing.T) {
	rec := testRecord()
	detrended := []float64{0, 0.01, 0.05, 0.01}
	html := renderToString(t, VelocityProfile(rec, detrended, 30, Style{}))
	if !strings.Contains(html, "Radial Velocity") {
		t.Error("rendered chart does not contain its title")
	}
}

func TestRotationCurve(t *testing.T) {
	points := make([]RotationPoint, 16)
	for i := range points {
		points[i] = RotationPoint{Radius: 1 + float64(i)*0.4, Velocity: 150 + float64(i)}
	}

	for _, comparison := range []bool{false, true} {
		line, err := RotationCurve(points, comparison, Style{})
		if err != nil {
			t.Fatalf("RotationCurve(comparison=%v): %v", comparison, err)
		}
		html := renderToString(t, line)
		if !strings.Contains(html, "Milky Way Rotation Curve") {
			t.Errorf("comparison=%v: rendered chart does not contain its title", comparison)
		}
	}
}

func TestKeplerianCurve(t *testing.T) {
	html := renderToString(t, KeplerianCurve(Style{}))
	if !strings.Contains(html, "Keplerian Rotation Curve") {
		t.Error("rendered chart does not contain its title")
	}
}

func TestStyleDefaults(t *testing.T) {
	s := Style{SignalColor: "#ff0000"}.withDefaults()
	if s.SignalColor != "#ff0000" {
		t.Errorf("SignalColor = %q, want explicit value preserved", s.SignalColor)
	}
	if s.Width == "" || s.Height == "" || s.BaselineColor == "" {
		t.Errorf("unset fields not defaulted: %+v", s)
	}
}
