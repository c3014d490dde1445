// Package viz is the terminal front end.
//
//   - [Model]: bubbletea live view of one simulation on a braille [Canvas]
//   - [RunInteractive]: preset picker with parameter tuning
//   - Themes for the drops, exiting drops and the edge glow
//
// # Key Bindings
//
//	Space  - Shake: spawn drops, or send them all out
//	Arrows - Tilt gravity
//	M      - Use the mouse pointer as tilt (tilt then counts as disabled)
//	P      - Pause/Resume
//	R      - Clear all drops
//	T      - Cycle color themes
//	?      - Show help overlay
package viz
