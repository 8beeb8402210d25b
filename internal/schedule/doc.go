// Package schedule computes the interpolation that pulls each concept's
// image and text points toward their shared midpoint.
//
// For a step count N the schedule defines N+1 frames, k = 0..N. Frame k
// blends every pair with t = easing(k/N):
//
//	m  = (a + b)/2 + lift
//	a' = a(1-t) + m·t
//	b' = b(1-t) + m·t
//
// Frames are pure functions of the original spaces, k and N; the originals
// are never mutated.
package schedule
