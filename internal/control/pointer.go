package control

import "github.com/san-kum/raindrops/internal/dynamo"

// Pointer is the desktop fallback: the pointer position over the canvas is
// mapped linearly onto [-1,1] on each axis. Tilt is reported as disabled, so
// spawn edges are random.
type Pointer struct {
	triggers
	g dynamo.Vec
}

func NewPointer() *Pointer { return &Pointer{} }

// Move records a pointer position in canvas pixels.
func (p *Pointer) Move(x, y float64, canvas dynamo.Size) {
	p.g = dynamo.Vec{
		remap(x, 0, canvas.W, -1, 1),
		remap(y, 0, canvas.H, -1, 1),
	}
}

func (p *Pointer) Gravity() dynamo.Vec { return p.g }
func (p *Pointer) TiltEnabled() bool   { return false }

func remap(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)*(outHi-outLo)/(inHi-inLo)
}
