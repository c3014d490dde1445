package physics

import (
	"math"

	"github.com/san-kum/raindrops/internal/dynamo"
)

// Phase is the lifecycle state of a particle: Idle or Exiting.
type Phase interface {
	isPhase()
}

// Idle particles float freely and are clamped to the canvas.
type Idle struct{}

// Exiting particles are pushed through one edge and never clamped again.
type Exiting struct {
	Edge dynamo.Edge
}

func (Idle) isPhase()    {}
func (Exiting) isPhase() {}

// Direction is the outward unit vector of the exit edge.
func (e Exiting) Direction() dynamo.Vec { return e.Edge.Direction() }

// Particle stores its velocity implicitly as Pos - Prev.
type Particle struct {
	Pos   dynamo.Vec
	Prev  dynamo.Vec
	Phase Phase
}

func NewParticle(pos dynamo.Vec) Particle {
	return Particle{Pos: pos, Prev: pos, Phase: Idle{}}
}

// Exit reports the exit state of p. A nil Phase counts as Idle.
func (p *Particle) Exit() (Exiting, bool) {
	e, ok := p.Phase.(Exiting)
	return e, ok
}

func (p *Particle) IsExiting() bool {
	_, ok := p.Phase.(Exiting)
	return ok
}

// BeginExit commits p to leave through edge. It is a no-op on a particle
// that is already exiting.
func (p *Particle) BeginExit(edge dynamo.Edge) {
	if p.IsExiting() {
		return
	}
	p.Phase = Exiting{Edge: edge}
}

func (p *Particle) Velocity() dynamo.Vec { return p.Pos.Sub(p.Prev) }

const (
	minHeadingSpeed   = 0.01
	minHeadingGravity = 0.001
)

// Heading is the render angle of p. Slow particles point along gravity, and
// along +x when gravity is negligible too.
func (p *Particle) Heading(gravity dynamo.Vec) float64 {
	v := p.Velocity()
	if v.Len() >= minHeadingSpeed {
		return math.Atan2(v.Y(), v.X())
	}
	if gravity.Len() > minHeadingGravity {
		return math.Atan2(gravity.Y(), gravity.X())
	}
	return 0
}

func (p *Particle) Valid() bool {
	for _, c := range [...]float64{p.Pos[0], p.Pos[1], p.Prev[0], p.Prev[1]} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
