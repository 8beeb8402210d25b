package space

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	DefaultSeed   = 42
	DefaultJitter = 0.07
)

// Transform is the fixed linear map plus offset that produces the text
// modality from the image modality.
type Transform struct {
	Rotation [][]float64
	Offset   Vec
}

// Apply returns Rotation·v + Offset.
func (t Transform) Apply(v Vec) Vec {
	out := make(Vec, len(t.Rotation))
	for i, row := range t.Rotation {
		sum := 0.0
		for j, r := range row {
			sum += r * v[j]
		}
		out[i] = sum + t.Offset[i]
	}
	return out
}

// DefaultTransform returns a quarter-turn rotation (in the plane for 2D,
// about the y axis for 3D) followed by a 0.1 shift on every axis.
func DefaultTransform(dim int) Transform {
	if dim == 3 {
		theta := math.Pi / 2
		return Transform{
			Rotation: [][]float64{
				{math.Cos(theta), 0, math.Sin(theta)},
				{0, 1, 0},
				{-math.Sin(theta), 0, math.Cos(theta)},
			},
			Offset: Vec{0.1, 0.1, 0.1},
		}
	}
	return Transform{
		Rotation: [][]float64{
			{0, -1},
			{1, 0},
		},
		Offset: Vec{0.1, 0.1},
	}
}

// Generator builds category-clustered image and text spaces.
type Generator struct {
	Dim        int
	Seed       int64
	Jitter     float64
	Categories []Category
	Transform  Transform
}

func NewGenerator(dim int, seed int64) (*Generator, error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("%w: got %d", ErrDimension, dim)
	}
	return &Generator{
		Dim:        dim,
		Seed:       seed,
		Jitter:     DefaultJitter,
		Categories: Categories,
		Transform:  DefaultTransform(dim),
	}, nil
}

// Generate places every concept around its category center with Gaussian
// jitter, then maps the image space through the transform to get the text
// space. The random source is consumed in category then member order.
func (g *Generator) Generate() *Spaces {
	rng := rand.New(rand.NewSource(g.Seed))

	s := &Spaces{
		Dim:   g.Dim,
		Image: make(Points),
		Text:  make(Points),
	}

	for _, cat := range g.Categories {
		center := cat.Center(g.Dim)
		for _, name := range cat.Members {
			p := make(Vec, g.Dim)
			for i := range p {
				p[i] = center[i] + rng.NormFloat64()*g.Jitter
			}
			s.Concepts = append(s.Concepts, Concept{Name: name, Category: cat.Name})
			s.Image[name] = p
		}
	}

	for _, c := range s.Concepts {
		s.Text[c.Name] = g.Transform.Apply(s.Image[c.Name])
	}

	return s
}
