package audio

import (
	"math"
	"sync"
	"testing"
)

func render(s *Synth, blocks int) (l, r []float32) {
	l = make([]float32, BufferSize)
	r = make([]float32, BufferSize)
	for i := 0; i < blocks; i++ {
		s.Render(l, r)
	}
	return l, r
}

func rms(xs []float32) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum / float64(len(xs)))
}

func TestSynthSilentWhenEmpty(t *testing.T) {
	s := NewSynth(SampleRate, 1)
	s.SetTarget(0, 0)
	l, r := render(s, 4)
	if rms(l) != 0 || rms(r) != 0 {
		t.Errorf("empty canvas should be silent, got %f %f", rms(l), rms(r))
	}
}

func TestSynthFollowsCount(t *testing.T) {
	quiet := NewSynth(SampleRate, 1)
	quiet.SetTarget(30, 1)
	loud := NewSynth(SampleRate, 1)
	loud.SetTarget(300, 1)

	ql, _ := render(quiet, 20)
	ll, _ := render(loud, 20)
	if rms(ll) <= rms(ql) {
		t.Errorf("300 drops (%f) should be louder than 30 (%f)", rms(ll), rms(ql))
	}
	if loud.Density() <= quiet.Density() {
		t.Error("density should track count")
	}
}

func TestSynthOutputBounded(t *testing.T) {
	s := NewSynth(SampleRate, 7)
	s.SetTarget(5000, 100)
	l, r := render(s, 10)
	for i := range l {
		if math.Abs(float64(l[i])) > 1 || math.Abs(float64(r[i])) > 1 {
			t.Fatalf("sample %d out of range: %f %f", i, l[i], r[i])
		}
	}
	b := s.Bands()
	if b[0]+b[1]+b[2] == 0 {
		t.Error("expected non-zero band energy")
	}
}

func TestSynthReusesAnalysisBuffer(t *testing.T) {
	s := NewSynth(SampleRate, 3)
	s.SetTarget(300, 2)
	render(s, 1)
	first := &s.fftBuf[0]
	render(s, 5)
	if &s.fftBuf[0] != first {
		t.Error("analysis buffer should be allocated once")
	}
}

func TestSynthDensityWhileRendering(t *testing.T) {
	s := NewSynth(SampleRate, 5)
	s.SetTarget(300, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		render(s, 30)
	}()
	for i := 0; i < 1000; i++ {
		if d := s.Density(); d < 0 || d > 1 {
			t.Fatalf("density out of range: %f", d)
		}
	}
	wg.Wait()

	if s.Density() <= 0 {
		t.Error("density should rise toward the target")
	}
}
