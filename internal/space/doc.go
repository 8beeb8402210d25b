// Package space provides the synthetic embedding spaces the alignment
// animation starts from.
//
// The package defines the data every other stage consumes:
//
//   - [Vec]: a point in a 2D or 3D coordinate space
//   - [Category]: a named group of concepts sharing a color and a center
//   - [Spaces]: one point per concept in the image and text modalities
//   - [Generator]: seeded, category-clustered generation of [Spaces]
//
// # Example
//
//	gen, _ := space.NewGenerator(2, 42)
//	spaces := gen.Generate()
//	dog := spaces.Image["dog"]
//
// Generation is deterministic for a given dimensionality and seed.
package space
