package physics

import (
	"math/rand"

	"github.com/san-kum/raindrops/internal/dynamo"
)

// Set owns every live particle. Order carries no meaning.
type Set struct {
	Particles []Particle
}

func (s *Set) Len() int    { return len(s.Particles) }
func (s *Set) Empty() bool { return len(s.Particles) == 0 }

// AnyIdle reports whether at least one particle has not started exiting.
func (s *Set) AnyIdle() bool {
	for i := range s.Particles {
		if !s.Particles[i].IsExiting() {
			return true
		}
	}
	return false
}

// SpawnFromEdge discards every particle and lines count fresh ones up on
// edge: half a radius inside the canvas, spread uniformly along the edge
// between radius and dim-radius.
func (s *Set) SpawnFromEdge(edge dynamo.Edge, count int, radius float64, canvas dynamo.Size, rng *rand.Rand) {
	if cap(s.Particles) < count {
		s.Particles = make([]Particle, 0, count)
	}
	s.Particles = s.Particles[:0]

	along := func(dim float64) float64 {
		return radius + rng.Float64()*(dim-2*radius)
	}

	for i := 0; i < count; i++ {
		var pos dynamo.Vec
		switch edge {
		case dynamo.EdgeLeft:
			pos = dynamo.Vec{radius / 2, along(canvas.H)}
		case dynamo.EdgeRight:
			pos = dynamo.Vec{canvas.W - radius/2, along(canvas.H)}
		case dynamo.EdgeTop:
			pos = dynamo.Vec{along(canvas.W), radius / 2}
		case dynamo.EdgeBottom:
			pos = dynamo.Vec{along(canvas.W), canvas.H - radius/2}
		default:
			pos = dynamo.Vec{canvas.W / 2, canvas.H / 2}
		}
		s.Particles = append(s.Particles, NewParticle(pos))
	}
}

// ConvertAllToExiting sends every idle particle out through its own nearest
// edge and returns the plurality edge of the new exits. Particles already
// exiting keep their direction and are not counted. Trigger dispatch only
// converts sets that are entirely idle, so there the tally covers every
// particle.
func (s *Set) ConvertAllToExiting(canvas dynamo.Size) dynamo.Edge {
	var tally EdgeTally
	for i := range s.Particles {
		p := &s.Particles[i]
		if p.IsExiting() {
			continue
		}
		edge := NearestEdge(p.Pos, canvas)
		tally[edge]++
		p.BeginExit(edge)
	}
	return tally.Majority()
}

func (s *Set) Clear() { s.Particles = s.Particles[:0] }
