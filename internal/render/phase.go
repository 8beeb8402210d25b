package render

import "image/color"

// Explanation is the caption shown under a 2D frame.
type Explanation struct {
	Text  string
	Color color.NRGBA
}

// Explain2D picks the caption for step k of n. Quarter boundaries use
// integer division of n.
func Explain2D(k, n int) Explanation {
	var e Explanation
	switch {
	case k == 0:
		e = Explanation{"Starting with misaligned spaces: similar concepts are in different positions", DarkOrange}
	case k < n/4:
		e = Explanation{"Beginning alignment through contrastive learning...", DarkOrange}
	case k < n/2:
		e = Explanation{"Gradually aligning spaces through contrastive learning...", DarkCyan}
	case k < 3*n/4:
		e = Explanation{"Similar concepts are being pulled together across spaces", DarkCyan}
	default:
		e = Explanation{"Spaces nearing perfect alignment", DarkGreen}
	}
	if k == n {
		e = Explanation{"Spaces aligned! Same concepts now occupy the same positions", DarkGreen}
	}
	return e
}

// Heading is the title and caption of a 3D frame.
type Heading struct {
	Title string
	Text  string
}

// Explain3D picks the heading for progress p = k/n.
func Explain3D(p float64) Heading {
	switch {
	case p == 0:
		return Heading{"Initial Misaligned Embedding Spaces", "Starting with separate embedding spaces for images and text"}
	case p < 0.25:
		return Heading{"Beginning Contrastive Learning Alignment", "Starting to align corresponding representations"}
	case p < 0.5:
		return Heading{"Contrastive Learning Alignment in Progress", "Corresponding points moving toward shared space"}
	case p < 0.75:
		return Heading{"Advanced Contrastive Learning Alignment", "Embedding spaces becoming more aligned"}
	case p < 1:
		return Heading{"Nearing Optimal Alignment", "Image and text embeddings converging to shared space"}
	default:
		return Heading{"Aligned Multimodal Embedding Space", "Contrastive learning has successfully aligned the embedding spaces"}
	}
}
