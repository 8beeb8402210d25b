// Package viewer writes the self-contained HTML page that plays back a
// rendered frame sequence in the browser.
package viewer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/a-h/templ"

	"github.com/san-kum/contrastviz/internal/artifact"
)

// ConfigScriptID is the id of the inline JSON element holding the page
// configuration.
const ConfigScriptID = "viewer-config"

// Page describes the frames a viewer plays back. Frames 0..TotalFrames-1
// are step images; index TotalFrames is the combined image.
type Page struct {
	Title        string
	TotalFrames  int
	Digits       int
	Prefix       string
	Extension    string
	Combined     string
	Descriptions []Description
}

// NewPage builds the page for totalFrames step images named the way
// artifact.Layout names them.
func NewPage(totalFrames int) Page {
	last := totalFrames - 1
	if last < 0 {
		last = 0
	}
	return Page{
		Title:        "Contrastive Learning Visualization",
		TotalFrames:  totalFrames,
		Digits:       artifact.Digits(last),
		Prefix:       artifact.FramePrefix,
		Extension:    artifact.FrameExt,
		Combined:     artifact.CombinedName,
		Descriptions: Describe(totalFrames),
	}
}

// Config is the JSON the page script reads on load.
type Config struct {
	TotalFrames       int           `json:"totalFrames"`
	ImagePrefix       string        `json:"imagePrefix"`
	ImageExtension    string        `json:"imageExtension"`
	FileDigits        int           `json:"fileDigits"`
	CombinedImagePath string        `json:"combinedImagePath"`
	Descriptions      []Description `json:"descriptions"`
}

func (p Page) config() Config {
	return Config{
		TotalFrames:       p.TotalFrames,
		ImagePrefix:       p.Prefix,
		ImageExtension:    p.Extension,
		FileDigits:        p.Digits,
		CombinedImagePath: p.Combined,
		Descriptions:      p.Descriptions,
	}
}

// FrameName returns the image file shown at index i.
func (p Page) FrameName(i int) string {
	if i >= p.TotalFrames {
		return p.Combined
	}
	return fmt.Sprintf("%s%0*d%s", p.Prefix, p.Digits, i, p.Extension)
}

// Component returns the whole document as a templ component.
func (p Page) Component() templ.Component {
	return templ.Join(
		templ.Raw("<!DOCTYPE html>\n<html lang=\"en\">\n"),
		head(p.Title),
		templ.Raw("<body>\n"),
		header(p.Title),
		mainContainer(p),
		infoModal(),
		templ.JSONScript(ConfigScriptID, p.config()),
		templ.Raw("\n<script>\n"+viewerScript+"</script>\n</body>\n</html>\n"),
	)
}

// Write renders the page to w.
func Write(ctx context.Context, w io.Writer, p Page) error {
	return p.Component().Render(ctx, w)
}

// WriteFile renders the page into dir/interactive_viewer.html, creating
// dir if needed, and returns the path written.
func WriteFile(ctx context.Context, dir string, p Page) (path string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create viewer dir: %w", err)
	}
	path = filepath.Join(dir, artifact.ViewerName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := Write(ctx, f, p); err != nil {
		return "", fmt.Errorf("render viewer: %w", err)
	}
	return path, nil
}
