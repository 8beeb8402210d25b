package viewer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

func head(title string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w,
			"<head>\n<meta charset=\"UTF-8\">\n",
			"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n",
			"<title>", templ.EscapeString(title), "</title>\n",
			"<style>\n", viewerStyles, "</style>\n</head>\n",
		)
	})
}

func header(title string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w,
			"<header>\n<div class=\"navbar\">\n",
			"<div class=\"title\"><span class=\"logo\">&#9672;</span><span>", templ.EscapeString(title), "</span></div>\n",
			"<div class=\"right-nav\">\n",
			"<button class=\"theme-toggle\" id=\"themeToggle\" title=\"Toggle theme\">&#9790;</button>\n",
			"<button class=\"info-button\" id=\"showInfo\">Learn About Contrastive Learning</button>\n",
			"</div>\n</div>\n</header>\n",
		)
	})
}

func mainContainer(p Page) templ.Component {
	return templ.Join(
		templ.Raw("<div class=\"main-container\">\n"),
		viewTabs(),
		views(p),
		infoPanel(p),
		controls(p),
		templ.Raw("</div>\n"),
	)
}

func viewTabs() templ.Component {
	return templ.Raw(`<div class="view-options">
<div class="view-tab active" data-view="single">Single View</div>
<div class="view-tab" data-view="side-by-side">Side by Side</div>
<div class="view-tab" data-view="comparison">Comparison Slider</div>
</div>
`)
}

func views(p Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		first := templ.EscapeString(p.FrameName(0))
		combined := templ.EscapeString(p.Combined)
		return write(w,
			"<div class=\"visualization-container\">\n",
			"<div class=\"single-view active-view\"><div class=\"image-wrapper\"><div class=\"image-container\">\n",
			"<img id=\"currentFrame\" src=\"", first, "\" alt=\"Contrastive learning frame\">\n",
			"<div class=\"key-hint\">Use &larr; &rarr; keys to navigate</div>\n",
			"</div></div></div>\n",
			"<div class=\"side-by-side-view\">\n",
			"<div class=\"image-half\"><div class=\"image-wrapper\"><div class=\"image-container\">",
			"<img id=\"beforeFrame\" src=\"", first, "\" alt=\"Before\"></div></div></div>\n",
			"<div class=\"image-half\"><div class=\"image-wrapper\"><div class=\"image-container\">",
			"<img id=\"afterFrame\" src=\"", combined, "\" alt=\"After\"></div></div></div>\n",
			"</div>\n",
			"<div class=\"comparison-view\"><div class=\"image-wrapper\">\n",
			"<div class=\"comparison-slider\" id=\"comparisonSlider\">\n",
			"<img id=\"comparisonBase\" src=\"", first, "\" alt=\"Current\">\n",
			"<div class=\"img-overlay\" id=\"imgOverlay\"><img id=\"comparisonOverlay\" src=\"", combined, "\" alt=\"Aligned\"></div>\n",
			"<div class=\"slider-handle\" id=\"sliderHandle\"></div>\n",
			"</div></div></div>\n",
			"</div>\n",
		)
	})
}

func infoPanel(p Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var d Description
		if len(p.Descriptions) > 0 {
			d = p.Descriptions[0]
		}
		return write(w,
			"<div class=\"info-panel\">\n",
			"<div class=\"info-header\"><div class=\"info-title\" id=\"frameTitle\">", templ.EscapeString(d.Title), "</div></div>\n",
			"<div class=\"info-content\">\n",
			"<div class=\"info-section\"><h3>Explanation</h3><p id=\"frameDescription\">", templ.EscapeString(d.Text), "</p></div>\n",
			"<div class=\"info-section\"><div class=\"tech-details\"><h4>Technical Details</h4><p id=\"technicalDetails\">", templ.EscapeString(d.Technical), "</p></div></div>\n",
			"</div>\n</div>\n",
		)
	})
}

func controls(p Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w,
			"<div class=\"controls\">\n<div class=\"playback-controls\">\n",
			"<button id=\"firstButton\" title=\"Go to first frame\">&#9198;</button>\n",
			"<button id=\"prevButton\" title=\"Previous frame\">&#9664;</button>\n",
			"<button id=\"playButton\" class=\"play-button\" title=\"Play/Pause\"><span id=\"playIcon\">&#9654;</span></button>\n",
			"<button id=\"nextButton\" title=\"Next frame\">&#9654;&#9654;</button>\n",
			"<button id=\"lastButton\" title=\"Go to last frame\">&#9197;</button>\n",
			"<div class=\"counter\"><span id=\"currentStep\">1</span>/<span id=\"totalSteps\">", fmt.Sprint(p.TotalFrames+1), "</span></div>\n",
			"</div>\n",
			"<div class=\"settings-controls\">\n",
			"<div class=\"slider-container\"><label for=\"speedSlider\">Speed:</label>",
			"<input type=\"range\" id=\"speedSlider\" class=\"slider\" min=\"50\" max=\"1000\" value=\"300\">",
			"<span id=\"speedValue\">300ms</span></div>\n",
			"<div class=\"checkbox-container\"><input type=\"checkbox\" id=\"loopToggle\" checked><label for=\"loopToggle\">Loop</label></div>\n",
			"<div class=\"checkbox-container\"><input type=\"checkbox\" id=\"pingpongToggle\"><label for=\"pingpongToggle\">Ping-pong</label></div>\n",
			"</div>\n",
			"<div class=\"progress-outer\"><div class=\"progress-inner\" id=\"progressBar\"></div></div>\n",
			"</div>\n",
		)
	})
}

var algorithmSteps = []string{
	"Sample a batch of data pairs (e.g., images and their corresponding text)",
	"Compute embeddings for both modalities using separate encoders",
	"Calculate similarity scores between all possible pairs",
	"Maximize similarity for positive pairs (same concept)",
	"Minimize similarity for negative pairs (different concepts)",
	"Update the encoders to improve alignment",
	"Repeat until convergence",
}

func infoModal() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var steps strings.Builder
		for i, s := range algorithmSteps {
			fmt.Fprintf(&steps, "<div class=\"algorithm-step\"><span class=\"step-number\">%d.</span><span>%s</span></div>\n", i+1, templ.EscapeString(s))
		}
		return write(w,
			"<div class=\"modal\" id=\"infoModal\">\n<div class=\"modal-content\">\n",
			"<span class=\"close-modal\" id=\"closeModal\">&times;</span>\n",
			"<h1 class=\"modal-title\">Understanding Contrastive Learning</h1>\n",
			"<p>Contrastive learning is a self-supervised paradigm that learns representations by contrasting positive pairs against negative pairs. It is particularly effective for aligning modalities like images and text.</p>\n",
			"<h2>Key Concepts</h2>\n<ul>\n",
			"<li><strong>Embedding Space:</strong> a space where data is represented as vectors</li>\n",
			"<li><strong>Modality:</strong> a type of data, such as images or text</li>\n",
			"<li><strong>Positive Pairs:</strong> different modalities of the same concept</li>\n",
			"<li><strong>Negative Pairs:</strong> different concepts</li>\n",
			"<li><strong>Alignment:</strong> bringing the same concept from different modalities together</li>\n",
			"</ul>\n<h2>The Contrastive Learning Algorithm</h2>\n<div class=\"code-block\"><div class=\"algorithm\">\n",
			steps.String(),
			"</div></div>\n",
			"<h2>Applications</h2>\n<ul>\n",
			"<li><strong>Cross-modal Retrieval:</strong> search images with text queries and vice versa</li>\n",
			"<li><strong>Zero-shot Learning:</strong> recognize new classes without explicit examples</li>\n",
			"<li><strong>Multimodal Fusion:</strong> combine information from several modalities</li>\n",
			"</ul>\n",
			"</div>\n</div>\n",
		)
	})
}
