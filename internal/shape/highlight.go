package shape

import (
	"image/color"
	"math"
	"time"

	"github.com/san-kum/raindrops/internal/dynamo"
)

const flickerWindow = time.Second

// GlowLayer is one stroke of the edge glow, drawn widest first.
type GlowLayer struct {
	Color  color.RGBA
	Weight float64
	Alpha  float64
}

var Glow = []GlowLayer{
	{color.RGBA{150, 200, 255, 255}, 40, 0.2},
	{color.RGBA{120, 180, 255, 255}, 32, 0.4},
	{color.RGBA{100, 170, 255, 255}, 28, 0.6},
	{color.RGBA{80, 160, 255, 255}, 24, 0.8},
	{color.RGBA{60, 150, 255, 255}, 20, 0.9},
	{color.RGBA{40, 140, 255, 255}, 16, 1.0},
}

// HighlightAlpha is the highlight opacity in [0,255] at now. It fades
// linearly over d and flickers during the first second; clock is the
// free-running millisecond counter driving the flicker phase.
func HighlightAlpha(ev dynamo.EdgeHighlightEvent, now time.Time, d time.Duration, clock float64) float64 {
	a := ev.Alpha(now, d) * 255
	if a == 0 {
		return 0
	}
	if now.Sub(ev.Start) < flickerWindow {
		a *= 0.8 + 0.4*math.Sin(clock*0.02)
	}
	return math.Min(a, 255)
}

// EdgeLine returns the endpoints of edge e on a canvas.
func EdgeLine(e dynamo.Edge, canvas dynamo.Size) (dynamo.Vec, dynamo.Vec) {
	switch e {
	case dynamo.EdgeLeft:
		return dynamo.Vec{0, 0}, dynamo.Vec{0, canvas.H}
	case dynamo.EdgeRight:
		return dynamo.Vec{canvas.W, 0}, dynamo.Vec{canvas.W, canvas.H}
	case dynamo.EdgeTop:
		return dynamo.Vec{0, 0}, dynamo.Vec{canvas.W, 0}
	default:
		return dynamo.Vec{0, canvas.H}, dynamo.Vec{canvas.W, canvas.H}
	}
}
