// Package viz previews an alignment schedule in the terminal.
//
// Frames are drawn on a Braille [Canvas]: 2D frames directly, 3D frames
// through an orbiting [Camera]. The [Model] is a Bubble Tea program.
//
// # Key Bindings
//
//	Space - Play/Pause
//	←/→   - Step one frame
//	g/G   - First/last frame
//	R     - Reset frame and camera
//	O     - Toggle looping
//	T     - Cycle color themes
//	x/y   - Rotate the 3D camera (shift reverses)
//	+/-   - Zoom
//	?     - Show all bindings
package viz
