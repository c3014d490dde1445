package audio

import (
	"math"
	"math/cmplx"
	"math/rand"
	"sync"

	"github.com/mjibson/go-dsp/fft"
)

const (
	maxDropRate = 400.0 // drops per second at full density
	fullCount   = 300
	decaySec    = 0.04
)

type voice struct {
	phase, freq, amp, pan float64
}

// Synth is a stereo rain generator: low-passed noise for the hiss and short
// decaying sine plinks for individual drops.
type Synth struct {
	rate float64
	rng  *rand.Rand

	mu          sync.Mutex
	targetDense float64
	targetSpeed float64

	density, speed float64
	lp             [2]float64
	voices         []voice

	fftBuf []float64

	levelMu sync.Mutex
	level   float64
	bands   [3]float64
}

func NewSynth(rate float64, seed int64) *Synth {
	return &Synth{rate: rate, rng: rand.New(rand.NewSource(seed))}
}

// SetTarget sets the particle count and mean speed the sound glides toward.
func (s *Synth) SetTarget(count int, meanSpeed float64) {
	s.mu.Lock()
	s.targetDense = math.Min(float64(count)/fullCount, 1)
	s.targetSpeed = math.Max(meanSpeed, 0)
	s.mu.Unlock()
}

// Density returns the drop density reached by the last rendered block.
func (s *Synth) Density() float64 {
	s.levelMu.Lock()
	defer s.levelMu.Unlock()
	return s.level
}

func (s *Synth) Render(left, right []float32) {
	s.mu.Lock()
	td, ts := s.targetDense, s.targetSpeed
	s.mu.Unlock()

	dt := 1 / s.rate
	decay := math.Exp(-dt / decaySec)

	for i := range left {
		s.density += (td - s.density) * 0.0005
		s.speed += (ts - s.speed) * 0.0005

		if s.rng.Float64() < s.density*maxDropRate*dt {
			s.voices = append(s.voices, voice{
				freq: 1800 + s.rng.Float64()*2400,
				amp:  0.15 + 0.15*s.rng.Float64(),
				pan:  s.rng.Float64(),
			})
		}

		// hiss cutoff opens with speed
		cutoff := 400 + math.Min(s.speed*300, 5000)
		alpha := dt / (1/(2*math.Pi*cutoff) + dt)
		noise := (s.rng.Float64()*2 - 1) * 0.25 * s.density
		s.lp[0] += alpha * (noise - s.lp[0])
		noise = (s.rng.Float64()*2 - 1) * 0.25 * s.density
		s.lp[1] += alpha * (noise - s.lp[1])

		l, r := s.lp[0], s.lp[1]
		live := s.voices[:0]
		for _, v := range s.voices {
			x := math.Sin(2*math.Pi*v.phase) * v.amp
			l += x * (1 - v.pan)
			r += x * v.pan
			v.phase += v.freq * dt
			v.amp *= decay
			if v.amp > 1e-4 {
				live = append(live, v)
			}
		}
		s.voices = live

		left[i] = float32(math.Tanh(l))
		if right != nil {
			right[i] = float32(math.Tanh(r))
		}
	}

	s.analyze(left)

	s.levelMu.Lock()
	s.level = s.density
	s.levelMu.Unlock()
}

// analyze stores the low, mid and high band energy of the last block. It
// runs on the audio callback and reuses one window buffer across blocks.
func (s *Synth) analyze(block []float32) {
	n := len(block)
	if n < 8 {
		return
	}
	if cap(s.fftBuf) < n {
		s.fftBuf = make([]float64, n)
	}
	buf := s.fftBuf[:n]
	for i, v := range block {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = float64(v) * w
	}
	spectrum := fft.FFTReal(buf)

	var bands [3]float64
	half := n / 2
	for i := 1; i < half; i++ {
		hz := float64(i) * s.rate / float64(n)
		mag := cmplx.Abs(spectrum[i]) / float64(half)
		switch {
		case hz < 500:
			bands[0] += mag
		case hz < 4000:
			bands[1] += mag
		default:
			bands[2] += mag
		}
	}

	s.levelMu.Lock()
	s.bands = bands
	s.levelMu.Unlock()
}

// Bands returns the low, mid and high energy of the last rendered block.
func (s *Synth) Bands() [3]float64 {
	s.levelMu.Lock()
	defer s.levelMu.Unlock()
	return s.bands
}
