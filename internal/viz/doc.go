// Package viz provides terminal-based visualization for growing maps.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [Model]: live view that grows a city at frame rate
//   - [Canvas]: Braille-based dot canvas for high-fidelity street rendering
//   - [Plot]: one-shot braille snapshot of a finished forest
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume growth
//	R     - Replay the same seed
//	N     - Regrow with the next seed
//	T     - Cycle color themes
//	+/-   - Ticks per frame
//	Q     - Quit
//
// The live view owns tick scheduling: the forest only advances on frames
// the view processes, so a paused view is a paused city.
package viz
