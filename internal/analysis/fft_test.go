package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumFlat(t *testing.T) {
	ps := PowerSpectrum([]float64{3, 3, 3, 3, 3, 3, 3, 3})
	if len(ps) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(ps))
	}
	for i, v := range ps {
		if v > 1e-9 {
			t.Errorf("bin %d = %f, want 0", i, v)
		}
	}
	if _, ok := DominantFrequency([]float64{1, 1, 1, 1}, 60); ok {
		t.Error("flat series should have no dominant frequency")
	}
}

func TestDominantFrequency(t *testing.T) {
	const n = 256
	const cycles = 8
	data := make([]float64, n)
	for i := range data {
		data[i] = 100 + 50*math.Sin(2*math.Pi*cycles*float64(i)/n)
	}

	peak, ok := DominantFrequency(data, 60)
	if !ok {
		t.Fatal("expected a peak")
	}
	if peak.Bin != cycles {
		t.Errorf("bin = %d, want %d", peak.Bin, cycles)
	}
	want := cycles * 60.0 / n
	if math.Abs(peak.Frequency-want) > 1e-9 {
		t.Errorf("frequency = %f, want %f", peak.Frequency, want)
	}
	if math.Abs(peak.Period-1/want) > 1e-9 {
		t.Errorf("period = %f, want %f", peak.Period, 1/want)
	}
}

func TestPadPow2(t *testing.T) {
	tests := []struct{ in, want int }{{1, 1}, {3, 4}, {8, 8}, {600, 1024}}
	for _, tt := range tests {
		if got := len(PadPow2(make([]float64, tt.in))); got != tt.want {
			t.Errorf("PadPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Min != 2 || s.Max != 9 || s.Mean != 5 || s.StdDev != 2 {
		t.Errorf("unexpected summary %+v", s)
	}
	if Summarize(nil) != (Summary{}) {
		t.Error("empty series should summarize to zero")
	}
}
