package app

import (
	"image/color"
	"testing"
)

func TestRenderWithoutAnnotations(t *testing.T) {
	data := NewHeatmapData()
	rec := gridRecord(1419.0, 1420.0, 1421.0)
	for _, l := range []int{30, 50, 70} {
		if err := data.AddColumn(l, rec, []float64{0.01, 0.05, 0.02}); err != nil {
			t.Fatalf("AddColumn() error = %v", err)
		}
	}

	r, err := NewHeatmapRenderer(RenderConfig{ColumnWidth: 10})
	if err != nil {
		t.Fatalf("NewHeatmapRenderer() error = %v", err)
	}

	img, err := r.Render(data)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	wantWidth := 3*10 + defaultLeftBorder + defaultRightBorder
	wantHeight := 3 + defaultTopBorder + defaultBottomBorder
	bounds := img.Bounds()
	if bounds.Dx() != wantWidth || bounds.Dy() != wantHeight {
		t.Errorf("image size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), wantWidth, wantHeight)
	}

	// Map pixels must be painted over the white background
	x := defaultLeftBorder + 5
	y := defaultTopBorder + 1
	if img.RGBAAt(x, y) == (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Error("map pixel left as background")
	}
}

func TestRendererDefaults(t *testing.T) {
	r, err := NewHeatmapRenderer(RenderConfig{})
	if err != nil {
		t.Fatalf("NewHeatmapRenderer() error = %v", err)
	}
	if r.config.ColumnWidth != defaultColumnWidth {
		t.Errorf("ColumnWidth = %d, want %d", r.config.ColumnWidth, defaultColumnWidth)
	}
	if r.config.FontSize != defaultFont {
		t.Errorf("FontSize = %f, want %f", r.config.FontSize, defaultFont)
	}
	if r.config.BorderConfig.Left != defaultLeftBorder {
		t.Errorf("left border = %d, want %d", r.config.BorderConfig.Left, defaultLeftBorder)
	}
}
