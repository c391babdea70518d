package app

import "math"

const (
	// Default display bounds for detrended fractional power amplitudes.
	defaultMinAmplitude = 0.0
	defaultMaxAmplitude = 0.0575

	// Histogram bin width in fractional power units.
	amplitudeBinWidth = 0.0005

	// For 20 samples:
	// - 5% percentile  = 1 sample
	// - 95% percentile = 19th sample
	minimumSampleCount = 20

	// Smallest allowed display range.
	minimumAmplitudeRange = 0.01
)

// AmplitudeBounds represents the calculated amplitude display boundaries
type AmplitudeBounds struct {
	Min  float64 // 5th percentile amplitude
	Max  float64 // 95th percentile amplitude
	Mean float64 // Mean amplitude
}

func defaultAmplitudeBounds() AmplitudeBounds {
	return AmplitudeBounds{
		Min:  defaultMinAmplitude,
		Max:  defaultMaxAmplitude,
		Mean: (defaultMinAmplitude + defaultMaxAmplitude) / 2,
	}
}

// AmplitudeHistogram maintains a histogram of detrended amplitudes with
// fixed-width bins
type AmplitudeHistogram struct {
	bins       map[int]uint32 // Map of bin index to count
	totalCount uint64         // Total number of samples
	minBin     int            // Cache for min bin
	maxBin     int            // Cache for max bin
}

// NewAmplitudeHistogram creates a new histogram
func NewAmplitudeHistogram() *AmplitudeHistogram {
	return &AmplitudeHistogram{
		bins:   make(map[int]uint32),
		minBin: math.MaxInt32,
		maxBin: math.MinInt32,
	}
}

// getBinIndex converts an amplitude value to bin index
func getBinIndex(v float64) int {
	return int(math.Floor(v / amplitudeBinWidth))
}

// Update adds a new amplitude reading to the histogram. Non-finite values
// (IEEE infinities from zero off powers, NaN) are not counted.
func (h *AmplitudeHistogram) Update(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}

	bin := getBinIndex(v)

	h.bins[bin]++
	h.totalCount++

	if bin < h.minBin {
		h.minBin = bin
	}
	if bin > h.maxBin {
		h.maxBin = bin
	}
}

// Clear resets the histogram
func (h *AmplitudeHistogram) Clear() {
	h.bins = make(map[int]uint32)
	h.totalCount = 0
	h.minBin = math.MaxInt32
	h.maxBin = math.MinInt32
}

// GetPercentileBounds returns amplitude bounds based on percentiles
func (h *AmplitudeHistogram) GetPercentileBounds() AmplitudeBounds {
	if h.totalCount < minimumSampleCount { // Require minimum samples
		return defaultAmplitudeBounds()
	}

	target5th := h.totalCount * 5 / 100

	var count uint64
	var min5th, max95th int

	// Find 5th percentile
	for bin := h.minBin; bin <= h.maxBin; bin++ {
		count += uint64(h.bins[bin])
		if count >= target5th {
			min5th = bin
			break
		}
	}

	// Find 95th percentile
	count = 0
	for bin := h.maxBin; bin >= h.minBin; bin-- {
		count += uint64(h.bins[bin])
		if count >= target5th {
			max95th = bin
			break
		}
	}

	// Calculate mean (weighted average of bin centers)
	var sumProduct float64
	for bin := h.minBin; bin <= h.maxBin; bin++ {
		sumProduct += (float64(bin) + 0.5) * amplitudeBinWidth * float64(h.bins[bin])
	}
	mean := sumProduct / float64(h.totalCount)

	minAmp := float64(min5th) * amplitudeBinWidth
	maxAmp := float64(max95th+1) * amplitudeBinWidth

	// Ensure minimum display range
	if maxAmp-minAmp < minimumAmplitudeRange {
		center := (maxAmp + minAmp) / 2
		minAmp = center - minimumAmplitudeRange/2
		maxAmp = center + minimumAmplitudeRange/2
	}

	// Add small margin
	margin := (maxAmp - minAmp) / 10 // 10% margin
	return AmplitudeBounds{
		Min:  minAmp - margin,
		Max:  maxAmp + margin,
		Mean: mean,
	}
}
