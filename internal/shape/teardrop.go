// Package shape holds the renderer-independent drawing geometry: the
// teardrop outline of a particle and the glowing edge highlight.
package shape

import (
	"math"

	"github.com/san-kum/raindrops/internal/dynamo"
)

// Bezier is a cubic curve from P0 to P3.
type Bezier struct {
	P0, P1, P2, P3 dynamo.Vec
}

func (b Bezier) At(t float64) dynamo.Vec {
	u := 1 - t
	return b.P0.Mul(u * u * u).
		Add(b.P1.Mul(3 * u * u * t)).
		Add(b.P2.Mul(3 * u * t * t)).
		Add(b.P3.Mul(t * t * t))
}

// Teardrop is a drop whose tip points along its heading. Width is the bulb
// width, Height the tip-to-tail length.
type Teardrop struct {
	Width, Height float64
}

func NewTeardrop(size float64) Teardrop {
	return Teardrop{Width: size, Height: size * 1.6}
}

// Curves returns the right and left halves of the outline centred on c and
// rotated so the tip points at angle.
func (d Teardrop) Curves(c dynamo.Vec, angle float64) [2]Bezier {
	w, h := d.Width, d.Height
	rot := angle + math.Pi/2
	sin, cos := math.Sincos(rot)
	at := func(x, y float64) dynamo.Vec {
		return dynamo.Vec{c.X() + x*cos - y*sin, c.Y() + x*sin + y*cos}
	}

	tip := at(0, -h/2)
	tail := at(0, h/2)
	return [2]Bezier{
		{P0: tip, P1: at(w/2, -h/2+h*0.25), P2: at(w/2, h*0.20), P3: tail},
		{P0: tail, P1: at(-w/2, h*0.20), P2: at(-w/2, -h/2+h*0.25), P3: tip},
	}
}

// Outline flattens the drop into a closed polygon of 2*segments points,
// starting at the tip. segments below 2 is raised to 2.
func (d Teardrop) Outline(c dynamo.Vec, angle float64, segments int) []dynamo.Vec {
	if segments < 2 {
		segments = 2
	}
	curves := d.Curves(c, angle)
	pts := make([]dynamo.Vec, 0, 2*segments)
	for _, b := range curves {
		for i := 0; i < segments; i++ {
			pts = append(pts, b.At(float64(i)/float64(segments)))
		}
	}
	return pts
}

// Fan returns the outline as a triangle fan: the centre first, then the
// outline counter-clockwise as seen on a y-down screen, closed on its first
// point.
func (d Teardrop) Fan(c dynamo.Vec, angle float64, segments int) []dynamo.Vec {
	outline := d.Outline(c, angle, segments)
	fan := make([]dynamo.Vec, 0, len(outline)+2)
	fan = append(fan, c)
	for i := len(outline) - 1; i >= 0; i-- {
		fan = append(fan, outline[i])
	}
	return append(fan, outline[len(outline)-1])
}
