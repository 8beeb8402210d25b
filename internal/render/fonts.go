package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts caches Go font faces by weight and pixel size.
type Fonts struct {
	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

func LoadFonts() (*Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Fonts{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Regular returns a regular face of the given pixel size.
func (f *Fonts) Regular(size float64) font.Face { return f.face(false, size) }

// Bold returns a bold face of the given pixel size.
func (f *Fonts) Bold(size float64) font.Face { return f.face(true, size) }

func (f *Fonts) face(bold bool, size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := faceKey{bold: bold, size: size}
	if face, ok := f.faces[key]; ok {
		return face
	}

	src := f.regular
	if bold {
		src = f.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	f.faces[key] = face
	return face
}
