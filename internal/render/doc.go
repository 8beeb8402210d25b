// Package render rasterizes alignment frames.
//
// Frames are drawn into RGBA images with anti-aliased vector paths and Go
// fonts. There are three layouts: side-by-side 2D panels, a projected 3D
// scene, and the combined final-state plot. Sink writes them to disk as the
// runner produces frames.
package render
