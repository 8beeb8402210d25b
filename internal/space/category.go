package space

import "image/color"

// Category groups concepts that share a display color and a cluster center.
type Category struct {
	Name    string
	Color   color.NRGBA
	Members []string
	center2 Vec
	center3 Vec
}

// Center returns the cluster center for the given dimensionality.
func (c Category) Center(dim int) Vec {
	if dim == 3 {
		return c.center3.Clone()
	}
	return c.center2.Clone()
}

// Concept is a named item present once in each modality.
type Concept struct {
	Name     string
	Category string
}

var (
	Animals = Category{
		Name:    "animals",
		Color:   color.NRGBA{R: 0x32, G: 0x82, B: 0xbe, A: 0xff},
		Members: []string{"dog", "cat", "bird", "fish", "rabbit", "horse"},
		center2: Vec{0.75, 0.75},
		center3: Vec{0.7, 0.7, 0.7},
	}

	Vehicles = Category{
		Name:    "vehicles",
		Color:   color.NRGBA{R: 0x2a, G: 0x92, B: 0x4a, A: 0xff},
		Members: []string{"car", "boat", "plane", "train", "bus", "truck"},
		center2: Vec{0.25, 0.25},
		center3: Vec{0.3, 0.3, 0.3},
	}

	Food = Category{
		Name:    "food",
		Color:   color.NRGBA{R: 0xe6, G: 0x55, B: 0x0d, A: 0xff},
		Members: []string{"apple", "banana", "orange", "pizza", "burger", "pasta"},
		center2: Vec{0.25, 0.75},
		center3: Vec{0.3, 0.7, 0.3},
	}

	Nature = Category{
		Name:    "nature",
		Color:   color.NRGBA{R: 0x74, G: 0x62, B: 0xaa, A: 0xff},
		Members: []string{"mountain", "ocean", "forest", "river", "desert", "cloud"},
		center2: Vec{0.75, 0.25},
		center3: Vec{0.7, 0.3, 0.7},
	}

	// Categories lists the fixed categories in rendering order.
	Categories = []Category{Animals, Vehicles, Food, Nature}
)

// CategoryOf returns the category a concept belongs to.
func CategoryOf(concept string) (Category, bool) {
	for _, c := range Categories {
		for _, m := range c.Members {
			if m == concept {
				return c, true
			}
		}
	}
	return Category{}, false
}

// ConceptNames returns every concept name in category order.
func ConceptNames() []string {
	names := make([]string, 0, 24)
	for _, c := range Categories {
		names = append(names, c.Members...)
	}
	return names
}
