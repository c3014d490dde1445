package physics

import (
	"fmt"

	"github.com/san-kum/raindrops/internal/dynamo"
)

// Relaxer enforces the minimum separation between particles.
type Relaxer interface {
	Relax(ps []Particle, rest float64, iterations int)
}

// BruteForce checks every unordered pair each iteration. O(n²) per
// iteration, which is fine at a few hundred particles.
type BruteForce struct{}

func (BruteForce) Relax(ps []Particle, rest float64, iterations int) {
	Relax(ps, rest, iterations)
}

// Relax pushes apart every pair closer than rest, half the overlap each,
// updating positions in place. Coincident pairs are skipped since they have
// no separation axis.
func Relax(ps []Particle, rest float64, iterations int) {
	for iter := 0; iter < iterations; iter++ {
		for i := 0; i < len(ps); i++ {
			for j := i + 1; j < len(ps); j++ {
				separate(&ps[i], &ps[j], rest)
			}
		}
	}
}

func separate(a, b *Particle, rest float64) {
	delta := a.Pos.Sub(b.Pos)
	d := delta.Len()
	if d <= 0 || d >= rest {
		return
	}
	push := delta.Mul((rest - d) / 2 / d)
	a.Pos = a.Pos.Add(push)
	b.Pos = b.Pos.Sub(push)
}

const (
	BroadphaseBrute = "brute"
	BroadphaseGrid  = "grid"
)

// NewRelaxer returns the relaxation strategy registered under name. An empty
// name selects brute force.
func NewRelaxer(name string) (Relaxer, error) {
	switch name {
	case "", BroadphaseBrute:
		return BruteForce{}, nil
	case BroadphaseGrid:
		return NewGrid(), nil
	default:
		return nil, fmt.Errorf("%w: unknown broadphase %q", dynamo.ErrParameterBounds, name)
	}
}
