package animate

import "errors"

var (
	// ErrUnavailable means an encoder's external dependency is missing.
	ErrUnavailable = errors.New("encoder unavailable")
	// ErrNoFrames means the frame directory holds no step_*.png files.
	ErrNoFrames = errors.New("no frames found")
)
