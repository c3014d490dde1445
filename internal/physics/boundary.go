package physics

import "github.com/san-kum/raindrops/internal/dynamo"

// ApplyBoundary clamps idle particles into [r/2, dim-r/2] on each axis and
// drops exiting particles that are more than one radius past their exit
// edge. The survivors keep their relative order; the number removed is
// returned alongside the shortened slice.
func ApplyBoundary(ps []Particle, radius float64, canvas dynamo.Size) ([]Particle, int) {
	half := radius / 2
	kept := ps[:0]
	for i := range ps {
		p := ps[i]
		if e, ok := p.Exit(); ok {
			if exited(p.Pos, e.Direction(), radius, canvas) {
				continue
			}
		} else {
			p.Pos = dynamo.Vec{
				clamp(p.Pos.X(), half, canvas.W-half),
				clamp(p.Pos.Y(), half, canvas.H-half),
			}
		}
		kept = append(kept, p)
	}
	removed := len(ps) - len(kept)
	// zero the tail so dropped particles do not linger in the backing array
	for i := len(kept); i < len(ps); i++ {
		ps[i] = Particle{}
	}
	return kept, removed
}

func exited(pos, dir dynamo.Vec, radius float64, canvas dynamo.Size) bool {
	return (dir.X() < 0 && pos.X() < -radius) ||
		(dir.X() > 0 && pos.X() > canvas.W+radius) ||
		(dir.Y() < 0 && pos.Y() < -radius) ||
		(dir.Y() > 0 && pos.Y() > canvas.H+radius)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
