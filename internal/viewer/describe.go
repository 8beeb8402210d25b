package viewer

import "fmt"

// Description is the caption shown for one frame of the viewer.
type Description struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	Technical string `json:"technical"`
}

// Describe returns one description per frame for totalFrames frames, plus
// a trailing one for the combined view. Phase boundaries are quarters of
// totalFrames using integer division.
func Describe(totalFrames int) []Description {
	if totalFrames < 1 {
		return []Description{combinedDescription}
	}
	out := make([]Description, 0, totalFrames+1)
	out = append(out, Description{
		Title:     "Initial Misaligned Spaces",
		Text:      "Starting with separate embedding spaces: similar concepts occupy different positions in image vs. text space.",
		Technical: "In contrastive learning, different modalities initially have their own separate feature spaces with different structures and orientations.",
	})

	quarter := totalFrames / 4
	for i := 1; i < totalFrames; i++ {
		switch {
		case i < quarter:
			out = append(out, Description{
				Title:     fmt.Sprintf("Beginning Alignment (Step %d)", i),
				Text:      "Contrastive learning begins pulling corresponding points together across modalities.",
				Technical: "The contrastive loss function minimizes distance between positive pairs (same concept in different modalities) while pushing apart negative pairs.",
			})
		case i < 2*quarter:
			out = append(out, Description{
				Title:     fmt.Sprintf("Progressive Alignment (Step %d)", i),
				Text:      "Gradual alignment continues as the embedding spaces transform toward a common structure.",
				Technical: "Both image and text encoders are trained concurrently, adjusting their parameters to project semantically similar concepts to nearby regions.",
			})
		case i < 3*quarter:
			out = append(out, Description{
				Title:     fmt.Sprintf("Approaching Alignment (Step %d)", i),
				Text:      "Similar concepts across modalities are now positioned much closer in the embedding space.",
				Technical: "The temperature parameter in the contrastive loss controls how sharply the model focuses on the hardest negative examples.",
			})
		case i < totalFrames-1:
			out = append(out, Description{
				Title:     fmt.Sprintf("Near-Complete Alignment (Step %d)", i),
				Text:      "Embedding spaces are nearly aligned, enabling effective cross-modal retrieval.",
				Technical: "The projection heads transform the representation to a space where contrastive loss is applied, often discarded after training.",
			})
		default:
			out = append(out, Description{
				Title:     "Complete Alignment",
				Text:      "Spaces aligned! Same concepts now occupy similar positions across modalities.",
				Technical: "A successful alignment enables zero-shot transfer between modalities and robust multimodal fusion.",
			})
		}
	}

	return append(out, combinedDescription)
}

var combinedDescription = Description{
	Title:     "Combined Multimodal Space",
	Text:      "The final shared embedding space where both modalities effectively represent the same concepts.",
	Technical: "This shared space enables cross-modal operations like image-to-text retrieval, text-to-image retrieval, and zero-shot transfer learning.",
}
