package control

import "github.com/san-kum/raindrops/internal/dynamo"

// Static reports a constant gravity vector.
type Static struct {
	triggers
	G    dynamo.Vec
	Tilt bool
}

func NewStatic(g dynamo.Vec, tilt bool) *Static {
	return &Static{G: g, Tilt: tilt}
}

func (s *Static) Gravity() dynamo.Vec { return s.G }
func (s *Static) TiltEnabled() bool   { return s.Tilt }
