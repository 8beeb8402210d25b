package space

import "errors"

var (
	// ErrDimension indicates a dimensionality other than 2 or 3, or vectors
	// whose length does not match the space.
	ErrDimension = errors.New("space: dimension must be 2 or 3")

	// ErrKeyMismatch indicates image and text spaces with different concepts.
	ErrKeyMismatch = errors.New("space: image and text concepts differ")
)
