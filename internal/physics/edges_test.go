package physics

import (
	"math/rand"
	"testing"

	"github.com/san-kum/raindrops/internal/dynamo"
)

func TestChooseSpawnEdge(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name    string
		gravity dynamo.Vec
		want    dynamo.Edge
	}{
		{"down", dynamo.Vec{0, 0.6}, dynamo.EdgeTop},
		{"up", dynamo.Vec{0, -0.6}, dynamo.EdgeBottom},
		{"right", dynamo.Vec{0.6, 0}, dynamo.EdgeLeft},
		{"left", dynamo.Vec{-0.6, 0}, dynamo.EdgeRight},
		{"mostly up", dynamo.Vec{0.3, -0.5}, dynamo.EdgeBottom},
		{"diagonal tie goes horizontal", dynamo.Vec{-0.5, 0.5}, dynamo.EdgeRight},
		{"positive diagonal tie", dynamo.Vec{0.5, -0.5}, dynamo.EdgeLeft},
		{"exactly at the noise floor", dynamo.Vec{0, 0.2}, dynamo.EdgeTop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChooseSpawnEdge(tt.gravity, true, dynamo.DefaultGravityNoiseFloor, rng)
			if got != tt.want {
				t.Errorf("ChooseSpawnEdge(%v) = %v, want %v", tt.gravity, got, tt.want)
			}
		})
	}
}

func TestChooseSpawnEdge_NoiseFloorIsRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := map[dynamo.Edge]int{}

	for i := 0; i < 400; i++ {
		seen[ChooseSpawnEdge(dynamo.Vec{0.1, 0.1}, true, 0.2, rng)]++
	}

	for _, e := range dynamo.Edges {
		if seen[e] == 0 {
			t.Errorf("edge %v never chosen below the noise floor", e)
		}
	}
}

func TestChooseSpawnEdge_TiltDisabledIgnoresGravity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := map[dynamo.Edge]int{}

	for i := 0; i < 400; i++ {
		seen[ChooseSpawnEdge(dynamo.Vec{0, 5}, false, 0.2, rng)]++
	}

	if len(seen) != len(dynamo.Edges) {
		t.Errorf("with tilt disabled every edge should be possible, got %v", seen)
	}
}

func TestNearestEdge(t *testing.T) {
	canvas := dynamo.Size{W: 200, H: 100}

	tests := []struct {
		name string
		pos  dynamo.Vec
		want dynamo.Edge
	}{
		{"near left", dynamo.Vec{5, 50}, dynamo.EdgeLeft},
		{"near right", dynamo.Vec{195, 50}, dynamo.EdgeRight},
		{"near top", dynamo.Vec{100, 3}, dynamo.EdgeTop},
		{"near bottom", dynamo.Vec{100, 97}, dynamo.EdgeBottom},
		{"left-top tie", dynamo.Vec{10, 10}, dynamo.EdgeLeft},
		{"right-bottom tie", dynamo.Vec{190, 90}, dynamo.EdgeRight},
		{"top-bottom tie", dynamo.Vec{100, 50}, dynamo.EdgeTop},
		{"outside left", dynamo.Vec{-20, 50}, dynamo.EdgeLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestEdge(tt.pos, canvas); got != tt.want {
				t.Errorf("NearestEdge(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestEdgeTally_Majority(t *testing.T) {
	tests := []struct {
		name  string
		tally EdgeTally
		want  dynamo.Edge
	}{
		{"empty", EdgeTally{}, dynamo.EdgeLeft},
		{"clear winner", EdgeTally{1, 2, 9, 3}, dynamo.EdgeTop},
		{"tie prefers left", EdgeTally{4, 4, 0, 0}, dynamo.EdgeLeft},
		{"tie prefers right over bottom", EdgeTally{0, 5, 0, 5}, dynamo.EdgeRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tally.Majority(); got != tt.want {
				t.Errorf("Majority() = %v, want %v", got, tt.want)
			}
		})
	}
}
