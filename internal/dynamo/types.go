package dynamo

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec is a 2D position, displacement or acceleration in canvas pixels.
type Vec = mgl64.Vec2

// Size is the canvas extent in pixels. The origin is the top-left corner
// and y grows downward.
type Size struct {
	W, H float64
}

func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0 && !math.IsInf(s.W, 0) && !math.IsInf(s.H, 0)
}

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.W, s.H) }

// Edge is one side of the canvas. The declaration order is the tie-break
// precedence used everywhere an edge is picked from equal candidates.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Edges lists every edge in precedence order.
var Edges = [...]Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom}

var edgeNames = [...]string{"left", "right", "top", "bottom"}

func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return fmt.Sprintf("edge(%d)", e)
}

// Direction returns the outward unit vector through the edge.
func (e Edge) Direction() Vec {
	switch e {
	case EdgeLeft:
		return Vec{-1, 0}
	case EdgeRight:
		return Vec{1, 0}
	case EdgeTop:
		return Vec{0, -1}
	default:
		return Vec{0, 1}
	}
}

func ParseEdge(s string) (Edge, error) {
	for i, name := range edgeNames {
		if strings.EqualFold(s, name) {
			return Edge(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEdge, s)
}

// HighlightKind tells whether a highlighted edge was used to spawn or to exit.
type HighlightKind uint8

const (
	HighlightSpawn HighlightKind = iota
	HighlightExit
)

func (k HighlightKind) String() string {
	if k == HighlightExit {
		return "exit"
	}
	return "spawn"
}

// EdgeHighlightEvent is emitted on every lifecycle transition. Renderers
// fade it out on their own; the simulation never tracks the fade.
type EdgeHighlightEvent struct {
	Edge  Edge
	Kind  HighlightKind
	Frame int
	Start time.Time
}

// Alpha returns the linear fade level in [0,1] at now for a highlight that
// lasts d. Zero once the window has passed.
func (e EdgeHighlightEvent) Alpha(now time.Time, d time.Duration) float64 {
	elapsed := now.Sub(e.Start)
	if d <= 0 || elapsed < 0 || elapsed > d {
		return 0
	}
	return 1 - float64(elapsed)/float64(d)
}

// InputAdapter supplies the gravity vector and trigger events. It is polled
// once per tick by the simulation driver.
type InputAdapter interface {
	Gravity() Vec
	TiltEnabled() bool
	PollTrigger() bool
}

// FrameAware adapters are told the frame number before they are polled.
type FrameAware interface {
	BeginFrame(frame int)
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// ParticleView is the read-only per-particle record handed to renderers.
type ParticleView struct {
	Pos      Vec
	Velocity Vec
	Heading  float64
	Exiting  bool
}

// Snapshot is the renderer-facing view of one frame.
type Snapshot struct {
	Frame     int
	Canvas    Size
	Gravity   Vec
	Particles []ParticleView
}

func (s *Snapshot) Count() int { return len(s.Particles) }

func (s *Snapshot) ExitingCount() int {
	n := 0
	for i := range s.Particles {
		if s.Particles[i].Exiting {
			n++
		}
	}
	return n
}

func (s *Snapshot) MeanSpeed() float64 {
	if len(s.Particles) == 0 {
		return 0
	}
	sum := 0.0
	for i := range s.Particles {
		sum += s.Particles[i].Velocity.Len()
	}
	return sum / float64(len(s.Particles))
}

// Overlaps counts unordered pairs closer than rest (coincident pairs included).
func (s *Snapshot) Overlaps(rest float64) int {
	n := 0
	r2 := rest * rest
	for i := range s.Particles {
		pi := s.Particles[i].Pos
		for j := i + 1; j < len(s.Particles); j++ {
			d := pi.Sub(s.Particles[j].Pos)
			if d.Dot(d) < r2 {
				n++
			}
		}
	}
	return n
}

type Observer interface {
	OnFrame(s *Snapshot)
}

type Metric interface {
	Name() string
	Observe(s *Snapshot)
	Value() float64
	Reset()
}
