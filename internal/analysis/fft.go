package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the real FFT of
// data after removing its mean. A constant series yields all zeros.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	centered := make([]float64, len(data))
	m := mean(data)
	for i, v := range data {
		centered[i] = v - m
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// PadPow2 zero-pads data up to the next power of two.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n <<= 1
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}

type Peak struct {
	Bin       int
	Frequency float64 // Hz
	Period    float64 // seconds
	Power     float64
}

// DominantFrequency finds the strongest non-DC bin of the spectrum of data
// sampled at fps frames per second. ok is false when the series is flat.
func DominantFrequency(data []float64, fps float64) (Peak, bool) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return Peak{}, false
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if ps[best] < 1e-9 {
		return Peak{}, false
	}

	freq := float64(best) * fps / float64(len(data))
	period := math.Inf(1)
	if freq > 0 {
		period = 1 / freq
	}
	return Peak{Bin: best, Frequency: freq, Period: period, Power: ps[best]}, true
}

type Summary struct {
	Min, Max, Mean, StdDev float64
}

func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{Min: data[0], Max: data[0], Mean: mean(data)}
	var ss float64
	for _, v := range data {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		d := v - s.Mean
		ss += d * d
	}
	s.StdDev = math.Sqrt(ss / float64(len(data)))
	return s
}

func mean(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}
