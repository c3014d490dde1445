package control

import (
	"github.com/iand/perlin"

	"github.com/san-kum/raindrops/internal/dynamo"
)

// Drift wanders the gravity vector along two perlin noise tracks. It never
// fires triggers on its own; wrap it in a Periodic for an unattended demo.
type Drift struct {
	triggers
	Seed      int64
	Speed     float64
	Amplitude float64

	frame int
}

func NewDrift(seed int64) *Drift {
	return &Drift{Seed: seed, Speed: 0.01, Amplitude: 1}
}

func (d *Drift) BeginFrame(frame int) { d.frame = frame }

func (d *Drift) Gravity() dynamo.Vec {
	t := float64(d.frame) * d.Speed
	return dynamo.Vec{
		perlin.Noise2D(t, 0.5, d.Seed, 2, 2, 3) * d.Amplitude,
		perlin.Noise2D(t, 10.5, d.Seed, 2, 2, 3) * d.Amplitude,
	}
}

func (d *Drift) TiltEnabled() bool { return true }
