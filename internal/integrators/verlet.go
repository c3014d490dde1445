package integrators

import (
	"math/rand"

	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/physics"
)

// Verlet is a damped position Verlet step with one frame as the time unit.
// Velocity lives implicitly in Pos - Prev, so nothing else needs updating.
type Verlet struct {
	Damping   float64
	Jitter    float64
	ExitAccel float64
	rng       *rand.Rand
}

func NewVerlet(p dynamo.Params, rng *rand.Rand) *Verlet {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Verlet{
		Damping:   p.Damping,
		Jitter:    p.Jitter,
		ExitAccel: p.ExitAccel,
		rng:       rng,
	}
}

// Acceleration is gravity plus per-axis jitter for idle particles. Exiting
// particles ignore gravity and accelerate straight out of their edge.
func (v *Verlet) Acceleration(p *physics.Particle, gravity dynamo.Vec) dynamo.Vec {
	if e, ok := p.Exit(); ok {
		return e.Direction().Mul(v.ExitAccel)
	}
	return gravity.Add(dynamo.Vec{v.jitter(), v.jitter()})
}

func (v *Verlet) Step(p *physics.Particle, gravity dynamo.Vec) {
	temp := p.Pos
	a := v.Acceleration(p, gravity)
	p.Pos = p.Pos.Add(p.Pos.Sub(p.Prev).Mul(v.Damping)).Add(a)
	p.Prev = temp
}

func (v *Verlet) StepAll(ps []physics.Particle, gravity dynamo.Vec) {
	for i := range ps {
		v.Step(&ps[i], gravity)
	}
}

func (v *Verlet) jitter() float64 {
	if v.Jitter == 0 {
		return 0
	}
	return (v.rng.Float64()*2 - 1) * v.Jitter
}
