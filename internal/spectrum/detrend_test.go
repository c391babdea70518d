package spectrum

import (
	"math"
	"testing"
)

func flatRecord(n int) *Record {
	rec := &Record{Rows: make([]Row, n)}
	for i := range rec.Rows {
		f := 1416.0 + float64(i)*(9.5/float64(n-1))
		rec.Rows[i] = Row{Frequency: f, OnPower: 3.5, OffPower: 3.5}
	}
	return rec
}

func TestDetrendConstantRatioIsZero(t *testing.T) {
	// on == off everywhere: the ratio is all 1.0 and the fitted baseline
	// absorbs it completely.
	rec := flatRecord(200)

	got, err := Detrend(rec, DetrendOptions{})
	if err != nil {
		t.Fatalf("Detrend: %v", err)
	}
	if len(got) != rec.Len() {
		t.Fatalf("length = %d, want %d", len(got), rec.Len())
	}
	for i, v := range got {
		if math.Abs(v) > 1e-6 {
			t.Errorf("detrended[%d] = %v, want ~0", i, v)
		}
	}
}

func TestDetrendRemovesSmoothTrend(t *testing.T) {
	// A gentle quadratic trend in the ratio with a narrow bump on the
	// 21-cm line: the trend must vanish while the bump survives.
	rec := flatRecord(300)
	peak := -1
	for i := range rec.Rows {
		f := rec.Rows[i].Frequency
		trend := 1.0 + 0.001*(f-1420)*(f-1420)
		bump := 0.05 * math.Exp(-(f-RestFrequency21cm)*(f-RestFrequency21cm)/(2*0.01))
		rec.Rows[i].OffPower = 2.0
		rec.Rows[i].OnPower = 2.0 * (trend + bump)
		if peak < 0 || math.Abs(f-RestFrequency21cm) < math.Abs(rec.Rows[peak].Frequency-RestFrequency21cm) {
			peak = i
		}
	}

	got, err := Detrend(rec, DetrendOptions{})
	if err != nil {
		t.Fatalf("Detrend: %v", err)
	}

	// Far from the line the residual is tiny.
	for i, row := range rec.Rows {
		if math.Abs(row.Frequency-RestFrequency21cm) > 2.0 {
			if math.Abs(got[i]) > 1e-3 {
				t.Errorf("residual at %.3f MHz = %v, want ~0", row.Frequency, got[i])
			}
		}
	}

	// The hydrogen bump remains near its injected amplitude.
	if got[peak] < 0.03 {
		t.Errorf("bump amplitude = %v, want > 0.03", got[peak])
	}
}

func TestDetrendZeroOffPowerPropagatesInf(t *testing.T) {
	rec := flatRecord(100)
	rec.Rows[50].OffPower = 0 // inside the exclusion window? keep it away from the fit subset
	rec.Rows[50].Frequency = RestFrequency21cm

	got, err := Detrend(rec, DetrendOptions{})
	if err != nil {
		t.Fatalf("Detrend: %v", err)
	}
	if !math.IsInf(got[50], 1) {
		t.Errorf("detrended[50] = %v, want +Inf", got[50])
	}
}

func TestDetrendTooFewFitRows(t *testing.T) {
	rec := flatRecord(10)
	if _, err := Detrend(rec, DetrendOptions{}); err == nil {
		t.Error("expected error for degree-13 fit over too few rows")
	}
}
