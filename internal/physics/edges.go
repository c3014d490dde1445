package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/raindrops/internal/dynamo"
)

// ChooseSpawnEdge picks the edge particles pour in from. Below the noise
// floor the edge is random; otherwise the dominant gravity axis decides,
// with gx >= 0 mapping to left and gy >= 0 mapping to top. Ties between the
// axes go horizontal.
func ChooseSpawnEdge(gravity dynamo.Vec, tiltEnabled bool, noiseFloor float64, rng *rand.Rand) dynamo.Edge {
	gx, gy := 0.0, 0.0
	if tiltEnabled {
		gx, gy = gravity.X(), gravity.Y()
	}

	if math.Hypot(gx, gy) < noiseFloor {
		return dynamo.Edges[rng.Intn(len(dynamo.Edges))]
	}

	if math.Abs(gx) >= math.Abs(gy) {
		if gx >= 0 {
			return dynamo.EdgeLeft
		}
		return dynamo.EdgeRight
	}
	if gy >= 0 {
		return dynamo.EdgeTop
	}
	return dynamo.EdgeBottom
}

// NearestEdge returns the edge closest to pos, first minimum in precedence order.
func NearestEdge(pos dynamo.Vec, canvas dynamo.Size) dynamo.Edge {
	dist := [...]float64{
		dynamo.EdgeLeft:   pos.X(),
		dynamo.EdgeRight:  canvas.W - pos.X(),
		dynamo.EdgeTop:    pos.Y(),
		dynamo.EdgeBottom: canvas.H - pos.Y(),
	}

	best := dynamo.EdgeLeft
	for _, e := range dynamo.Edges[1:] {
		if dist[e] < dist[best] {
			best = e
		}
	}
	return best
}

// EdgeTally counts particles per edge.
type EdgeTally [len(dynamo.Edges)]int

// Majority returns the edge with the highest count; ties and an empty tally
// resolve to the earliest edge in precedence order.
func (t EdgeTally) Majority() dynamo.Edge {
	best, max := dynamo.EdgeLeft, 0
	for _, e := range dynamo.Edges {
		if t[e] > max {
			best, max = e, t[e]
		}
	}
	return best
}
