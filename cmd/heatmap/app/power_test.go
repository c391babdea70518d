package app

import (
	"math"
	"testing"
)

func TestHistogramDefaultsBelowMinimumSamples(t *testing.T) {
	h := NewAmplitudeHistogram()
	for i := 0; i < minimumSampleCount-1; i++ {
		h.Update(0.02)
	}

	got := h.GetPercentileBounds()
	want := defaultAmplitudeBounds()
	if got != want {
		t.Errorf("GetPercentileBounds() = %+v, want defaults %+v", got, want)
	}
}

func TestHistogramIgnoresNonFinite(t *testing.T) {
	h := NewAmplitudeHistogram()
	h.Update(math.NaN())
	h.Update(math.Inf(1))
	h.Update(math.Inf(-1))

	if h.totalCount != 0 {
		t.Errorf("totalCount = %d after non-finite updates, want 0", h.totalCount)
	}
}

func TestHistogramPercentileBounds(t *testing.T) {
	h := NewAmplitudeHistogram()

	// 100 samples spread evenly over [0, 0.1)
	for i := 0; i < 100; i++ {
		h.Update(float64(i) * 0.001)
	}

	bounds := h.GetPercentileBounds()
	if bounds.Min >= bounds.Max {
		t.Fatalf("bounds.Min = %f, not below Max = %f", bounds.Min, bounds.Max)
	}

	// The 5th and 95th percentiles trim the tails, plus a 10% margin
	if bounds.Min > 0.01 {
		t.Errorf("bounds.Min = %f, want near lower tail", bounds.Min)
	}
	if bounds.Max < 0.09 || bounds.Max > 0.12 {
		t.Errorf("bounds.Max = %f, want near upper tail", bounds.Max)
	}
	if bounds.Mean < 0.04 || bounds.Mean > 0.06 {
		t.Errorf("bounds.Mean = %f, want near 0.05", bounds.Mean)
	}
}

func TestHistogramMinimumRange(t *testing.T) {
	h := NewAmplitudeHistogram()
	for i := 0; i < 50; i++ {
		h.Update(0.02) // All samples in one bin
	}

	bounds := h.GetPercentileBounds()
	if bounds.Max-bounds.Min < minimumAmplitudeRange {
		t.Errorf("range = %f, want at least %f", bounds.Max-bounds.Min, minimumAmplitudeRange)
	}
}

func TestHistogramClear(t *testing.T) {
	h := NewAmplitudeHistogram()
	for i := 0; i < 100; i++ {
		h.Update(0.05)
	}
	h.Clear()

	if h.totalCount != 0 || len(h.bins) != 0 {
		t.Errorf("Clear() left totalCount = %d, bins = %d", h.totalCount, len(h.bins))
	}
	if got, want := h.GetPercentileBounds(), defaultAmplitudeBounds(); got != want {
		t.Errorf("GetPercentileBounds() after Clear = %+v, want defaults %+v", got, want)
	}
}
