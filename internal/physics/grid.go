package physics

import (
	"math"
	"slices"
)

type cell struct{ x, y int }

// Grid is a uniform hash broad-phase for the relaxation pass. Cells are one
// rest distance wide and rebuilt at the start of every iteration. Each
// particle is tested against the particles indexed in its own and the eight
// surrounding cells at rebuild time, in ascending index order, so the
// per-pair correction and visiting order match BruteForce for every pair it
// tests. A pair whose members were more than one cell apart at the rebuild
// and were pushed together later in the same iteration is not tested until
// the next iteration, which is where the two can diverge.
type Grid struct {
	cells map[cell][]int
	home  []cell
	near  []int
}

func NewGrid() *Grid {
	return &Grid{cells: make(map[cell][]int)}
}

func (g *Grid) Relax(ps []Particle, rest float64, iterations int) {
	if rest <= 0 {
		return
	}
	for iter := 0; iter < iterations; iter++ {
		g.rebuild(ps, rest)
		for i := range ps {
			c := g.home[i]
			g.near = g.near[:0]
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					for _, j := range g.cells[cell{c.x + dx, c.y + dy}] {
						if j > i {
							g.near = append(g.near, j)
						}
					}
				}
			}
			slices.Sort(g.near)
			for _, j := range g.near {
				separate(&ps[i], &ps[j], rest)
			}
		}
	}
}

func (g *Grid) rebuild(ps []Particle, size float64) {
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
	g.home = slices.Grow(g.home[:0], len(ps))[:len(ps)]
	for i := range ps {
		c := cellOf(ps[i].Pos[0], ps[i].Pos[1], size)
		g.home[i] = c
		g.cells[c] = append(g.cells[c], i)
	}
}

func cellOf(x, y, size float64) cell {
	return cell{int(math.Floor(x / size)), int(math.Floor(y / size))}
}
