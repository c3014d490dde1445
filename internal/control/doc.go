// Package control provides input adapters that feed gravity and trigger
// events into the simulation.
//
// Every adapter implements [dynamo.InputAdapter]:
//
//   - [Static]: fixed gravity, triggers fired by hand
//   - [Pointer]: desktop fallback mapping the pointer over the canvas to [-1,1]²
//   - [Tilt]: accelerometer samples scaled by 0.5, with a [Shake] detector.
//     No desktop front end reads an accelerometer; headless runs feed it a
//     single sample derived from the configured gravity.
//   - [Drift]: slowly wandering perlin-noise tilt for unattended demos
//   - [Manual]: keyboard-nudged gravity used by the terminal and window front ends
//   - [Periodic]: wrapper adding a trigger every n frames
//
// # Usage
//
//	in := control.NewStatic(dynamo.Vec{0, 0.6}, true)
//	in.Fire()                      // queue a trigger
//	snap, err := s.Tick(in, size)  // polled once per tick
//
// Fire may be called from any goroutine; the remaining methods belong to
// the goroutine that ticks the simulation.
package control
