package control

import "github.com/san-kum/raindrops/internal/dynamo"

// Manual is nudged by keyboard input from the interactive front ends.
type Manual struct {
	triggers
	Step float64
	Max  float64

	g dynamo.Vec
}

func NewManual() *Manual {
	return &Manual{Step: 0.1, Max: 1, g: dynamo.Vec{0, 0.6}}
}

// Nudge adds (dx, dy) steps to gravity, clamping each axis to ±Max.
func (m *Manual) Nudge(dx, dy float64) {
	m.g = dynamo.Vec{
		clampAxis(m.g.X()+dx*m.Step, m.Max),
		clampAxis(m.g.Y()+dy*m.Step, m.Max),
	}
}

// Set replaces gravity outright.
func (m *Manual) Set(g dynamo.Vec) {
	m.g = dynamo.Vec{clampAxis(g.X(), m.Max), clampAxis(g.Y(), m.Max)}
}

func (m *Manual) Zero() { m.g = dynamo.Vec{} }

func (m *Manual) Gravity() dynamo.Vec { return m.g }
func (m *Manual) TiltEnabled() bool   { return true }

func clampAxis(v, max float64) float64 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}
