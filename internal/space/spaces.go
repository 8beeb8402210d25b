package space

import "fmt"

// Modality identifies one of the two coordinate spaces being aligned.
type Modality int

const (
	Image Modality = iota
	Text
)

func (m Modality) String() string {
	switch m {
	case Image:
		return "image"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("modality(%d)", int(m))
	}
}

// Points maps a concept name to its coordinates in one modality.
type Points map[string]Vec

// Clone deep-copies every vector.
func (p Points) Clone() Points {
	c := make(Points, len(p))
	for k, v := range p {
		c[k] = v.Clone()
	}
	return c
}

// Spaces holds both modalities for a fixed set of concepts.
type Spaces struct {
	Dim      int
	Concepts []Concept
	Image    Points
	Text     Points
}

// Get returns the points of the given modality.
func (s *Spaces) Get(m Modality) Points {
	if m == Text {
		return s.Text
	}
	return s.Image
}

// Names returns concept names in generation order.
func (s *Spaces) Names() []string {
	names := make([]string, len(s.Concepts))
	for i, c := range s.Concepts {
		names[i] = c.Name
	}
	return names
}

// Clone deep-copies both modalities.
func (s *Spaces) Clone() *Spaces {
	concepts := make([]Concept, len(s.Concepts))
	copy(concepts, s.Concepts)
	return &Spaces{
		Dim:      s.Dim,
		Concepts: concepts,
		Image:    s.Image.Clone(),
		Text:     s.Text.Clone(),
	}
}

// Validate checks that both modalities cover exactly the listed concepts
// with vectors of the declared dimensionality.
func (s *Spaces) Validate() error {
	if s.Dim != 2 && s.Dim != 3 {
		return fmt.Errorf("%w: got %d", ErrDimension, s.Dim)
	}
	if len(s.Image) != len(s.Concepts) || len(s.Text) != len(s.Concepts) {
		return fmt.Errorf("%w: %d concepts, %d image points, %d text points",
			ErrKeyMismatch, len(s.Concepts), len(s.Image), len(s.Text))
	}
	for _, c := range s.Concepts {
		img, ok := s.Image[c.Name]
		if !ok {
			return fmt.Errorf("%w: %q missing from image space", ErrKeyMismatch, c.Name)
		}
		txt, ok := s.Text[c.Name]
		if !ok {
			return fmt.Errorf("%w: %q missing from text space", ErrKeyMismatch, c.Name)
		}
		if len(img) != s.Dim || len(txt) != s.Dim {
			return fmt.Errorf("%w: %q has %d/%d components, want %d",
				ErrDimension, c.Name, len(img), len(txt), s.Dim)
		}
	}
	return nil
}
