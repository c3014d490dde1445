package physics

import (
	"testing"

	"github.com/san-kum/raindrops/internal/dynamo"
)

func TestApplyBoundary_ClampsIdle(t *testing.T) {
	canvas := dynamo.Size{W: 200, H: 100}
	const r = 16.0
	ps := []Particle{
		NewParticle(dynamo.Vec{-50, 50}),
		NewParticle(dynamo.Vec{250, -3}),
		NewParticle(dynamo.Vec{100, 140}),
		NewParticle(dynamo.Vec{100, 50}),
	}

	kept, removed := ApplyBoundary(ps, r, canvas)
	if removed != 0 || len(kept) != 4 {
		t.Fatalf("idle particles must never be removed, removed %d", removed)
	}

	want := []dynamo.Vec{{8, 50}, {192, 8}, {100, 92}, {100, 50}}
	for i, p := range kept {
		if p.Pos != want[i] {
			t.Errorf("particle %d clamped to %v, want %v", i, p.Pos, want[i])
		}
		if p.Pos.X() < r/2 || p.Pos.X() > canvas.W-r/2 || p.Pos.Y() < r/2 || p.Pos.Y() > canvas.H-r/2 {
			t.Errorf("particle %d outside bounds: %v", i, p.Pos)
		}
	}
}

func TestApplyBoundary_RemovesExited(t *testing.T) {
	canvas := dynamo.Size{W: 200, H: 100}
	const r = 16.0

	mk := func(pos dynamo.Vec, e dynamo.Edge) Particle {
		p := NewParticle(pos)
		p.BeginExit(e)
		return p
	}

	tests := []struct {
		name string
		p    Particle
		kept bool
	}{
		{"bottom past radius", mk(dynamo.Vec{50, canvas.H + r + 1}, dynamo.EdgeBottom), false},
		{"bottom within radius", mk(dynamo.Vec{50, canvas.H + r - 1}, dynamo.EdgeBottom), true},
		{"left past radius", mk(dynamo.Vec{-r - 0.5, 50}, dynamo.EdgeLeft), false},
		{"right past radius", mk(dynamo.Vec{canvas.W + r + 2, 50}, dynamo.EdgeRight), false},
		{"top within radius", mk(dynamo.Vec{50, -r + 1}, dynamo.EdgeTop), true},
		{"past the wrong edge", mk(dynamo.Vec{50, canvas.H + 100}, dynamo.EdgeTop), true},
		{"inside is not clamped", mk(dynamo.Vec{1, 50}, dynamo.EdgeLeft), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.p.Pos
			kept, removed := ApplyBoundary([]Particle{tt.p}, r, canvas)
			if (len(kept) == 1) != tt.kept {
				t.Fatalf("kept = %v, want %v", len(kept) == 1, tt.kept)
			}
			if tt.kept && kept[0].Pos != before {
				t.Errorf("exiting particle was clamped from %v to %v", before, kept[0].Pos)
			}
			if !tt.kept && removed != 1 {
				t.Errorf("removed = %d, want 1", removed)
			}
		})
	}
}

func TestApplyBoundary_PreservesOrder(t *testing.T) {
	canvas := dynamo.Size{W: 100, H: 100}
	gone := NewParticle(dynamo.Vec{-100, 50})
	gone.BeginExit(dynamo.EdgeLeft)

	ps := []Particle{NewParticle(dynamo.Vec{10, 10}), gone, NewParticle(dynamo.Vec{20, 20})}
	kept, removed := ApplyBoundary(ps, 16, canvas)

	if removed != 1 || len(kept) != 2 {
		t.Fatalf("expected one removal, got kept=%d removed=%d", len(kept), removed)
	}
	if kept[0].Pos != (dynamo.Vec{10, 10}) || kept[1].Pos != (dynamo.Vec{20, 20}) {
		t.Errorf("survivor order changed: %v", kept)
	}
}
