package shape

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/raindrops/internal/dynamo"
)

func near(a, b dynamo.Vec) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestTeardropDimensions(t *testing.T) {
	d := NewTeardrop(16)
	if d.Width != 16 || math.Abs(d.Height-25.6) > 1e-9 {
		t.Errorf("unexpected teardrop %+v", d)
	}
}

func TestTeardropTipFollowsHeading(t *testing.T) {
	d := NewTeardrop(10)
	c := dynamo.Vec{100, 50}

	tests := []struct {
		name  string
		angle float64
		tip   dynamo.Vec
	}{
		{"right", 0, dynamo.Vec{108, 50}},
		{"down", math.Pi / 2, dynamo.Vec{100, 58}},
		{"left", math.Pi, dynamo.Vec{92, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curves := d.Curves(c, tt.angle)
			if !near(curves[0].P0, tt.tip) {
				t.Errorf("tip = %v, want %v", curves[0].P0, tt.tip)
			}
			if !near(curves[1].P3, tt.tip) || !near(curves[0].P3, curves[1].P0) {
				t.Error("outline is not closed")
			}
		})
	}
}

func TestOutlineSymmetric(t *testing.T) {
	d := NewTeardrop(10)
	pts := d.Outline(dynamo.Vec{0, 0}, -math.Pi/2, 8)
	if len(pts) != 16 {
		t.Fatalf("expected 16 points, got %d", len(pts))
	}
	// tip up: right half mirrors left half across x = 0
	for i := 1; i < 8; i++ {
		r, l := pts[i], pts[16-i]
		if math.Abs(r.X()+l.X()) > 1e-9 || math.Abs(r.Y()-l.Y()) > 1e-9 {
			t.Errorf("point %d not mirrored: %v vs %v", i, r, l)
		}
	}
	for _, p := range pts {
		if math.Abs(p.X()) > d.Width/2+1e-9 || math.Abs(p.Y()) > d.Height/2+1e-9 {
			t.Errorf("point %v outside bounding box", p)
		}
	}
}

func TestBezierEndpoints(t *testing.T) {
	b := Bezier{dynamo.Vec{0, 0}, dynamo.Vec{1, 2}, dynamo.Vec{3, 2}, dynamo.Vec{4, 0}}
	if !near(b.At(0), b.P0) || !near(b.At(1), b.P3) {
		t.Error("curve must pass through its endpoints")
	}
	if !near(b.At(0.5), dynamo.Vec{2, 1.5}) {
		t.Errorf("midpoint = %v", b.At(0.5))
	}
}

func TestHighlightAlpha(t *testing.T) {
	start := time.Unix(0, 0)
	ev := dynamo.EdgeHighlightEvent{Edge: dynamo.EdgeTop, Start: start}
	d := 3 * time.Second

	if a := HighlightAlpha(ev, start.Add(1500*time.Millisecond), d, 0); math.Abs(a-127.5) > 1e-9 {
		t.Errorf("mid-fade alpha = %f, want 127.5", a)
	}
	if a := HighlightAlpha(ev, start.Add(4*time.Second), d, 0); a != 0 {
		t.Errorf("expired alpha = %f", a)
	}
	// sin(0) = 0 so the flicker factor is 0.8 at clock zero
	if a := HighlightAlpha(ev, start, d, 0); math.Abs(a-204) > 1e-9 {
		t.Errorf("flicker alpha = %f, want 204", a)
	}
	peak := math.Pi / 2 / 0.02
	if a := HighlightAlpha(ev, start, d, peak); a != 255 {
		t.Errorf("flicker should cap at 255, got %f", a)
	}
}

func TestEdgeLine(t *testing.T) {
	canvas := dynamo.Size{W: 800, H: 600}
	a, b := EdgeLine(dynamo.EdgeRight, canvas)
	if !near(a, dynamo.Vec{800, 0}) || !near(b, dynamo.Vec{800, 600}) {
		t.Errorf("right edge = %v %v", a, b)
	}
	a, b = EdgeLine(dynamo.EdgeBottom, canvas)
	if !near(a, dynamo.Vec{0, 600}) || !near(b, dynamo.Vec{800, 600}) {
		t.Errorf("bottom edge = %v %v", a, b)
	}
}

func TestFanWinding(t *testing.T) {
	d := NewTeardrop(10)
	c := dynamo.Vec{20, 20}
	fan := d.Fan(c, -math.Pi/2, 6)
	if len(fan) != 14 {
		t.Fatalf("expected 14 points, got %d", len(fan))
	}
	if !near(fan[0], c) || !near(fan[1], fan[13]) {
		t.Error("fan must start at the centre and close on its first outline point")
	}
	// signed area in y-down coordinates is negative for on-screen CCW
	area := 0.0
	for i := 1; i < 13; i++ {
		a, b := fan[i].Sub(c), fan[i+1].Sub(c)
		area += a.X()*b.Y() - a.Y()*b.X()
	}
	if area >= 0 {
		t.Errorf("expected on-screen counter-clockwise winding, area %f", area)
	}
}
