// Package dynamo provides the shared primitives of the raindrop simulation.
//
// The package defines the vocabulary every other package speaks:
//
//   - [Vec]: 2D vector (mgl64) used for positions and accelerations
//   - [Size]: canvas extent in pixels, y pointing down
//   - [Edge]: canvas side, declared in tie-break precedence order
//   - [Params]: named tunables with [Params.Validate]
//   - [InputAdapter]: gravity and trigger source polled once per tick
//   - [Snapshot]: read-only frame view consumed by renderers
//   - [EdgeHighlightEvent]: transition notification faded by renderers
//
// # Example
//
//	params := dynamo.DefaultParams()
//	s, err := sim.New(params, dynamo.Size{W: 800, H: 600})
//	snap, err := s.Tick(control.NewStatic(dynamo.Vec{0, 0.6}, true), s.Canvas())
//
// # Thread Safety
//
// Nothing in this package carries mutable shared state; Snapshots are owned
// by whoever received them.
package dynamo
