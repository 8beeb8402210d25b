package render

import (
	"fmt"
	"image"
	"math"

	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

const (
	DefaultWidth  = 1600
	DefaultHeight = 900
)

type Options struct {
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Height: DefaultHeight}
}

// Renderer turns frames into images. It keeps one View for the whole run.
type Renderer struct {
	opts  Options
	view  View
	fonts *Fonts
	scale float64
}

func New(opts Options, view View) (*Renderer, error) {
	if opts.Width < 320 || opts.Height < 240 {
		return nil, fmt.Errorf("image size %dx%d is below 320x240", opts.Width, opts.Height)
	}
	fonts, err := LoadFonts()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		opts:  opts,
		view:  view,
		fonts: fonts,
		scale: float64(opts.Height) / DefaultHeight,
	}, nil
}

func (r *Renderer) Options() Options { return r.opts }
func (r *Renderer) View() View       { return r.view }

// Frame renders f with the layout for its dimensionality.
func (r *Renderer) Frame(f schedule.Frame) *image.RGBA {
	if f.Dim == 3 {
		return r.Frame3D(f)
	}
	return r.Frame2D(f)
}

// Frame2D draws the image and text panels side by side with an
// explanation strip underneath.
func (r *Renderer) Frame2D(f schedule.Frame) *image.RGBA {
	W, H := float64(r.opts.Width), float64(r.opts.Height)
	s := r.scale
	c := NewCanvas(r.opts.Width, r.opts.Height, colorBackground, r.fonts)

	c.Text(r.fonts.Bold(30*s), "Contrastive Learning Space Alignment", W/2, 0.045*H, AnchorCenter, colorInk)

	top, bottom := 0.14*H, 0.68*H
	left := plot{x0: 0.07 * W, y0: top, x1: 0.47 * W, y1: bottom, view: r.view}
	right := plot{x0: 0.55 * W, y0: top, x1: 0.95 * W, y1: bottom, view: r.view}
	r.drawAxes(c, left, "Image Embedding Space")
	r.drawAxes(c, right, "Text Embedding Space")

	// Pair connectors fade as a pair closes, and stay faintly visible.
	for _, cpt := range f.Concepts {
		img, txt := f.Image[cpt.Name], f.Text[cpt.Name]
		ax, ay := left.px(img)
		bx, by := right.px(txt)
		alpha := math.Max(0.1, 1-img.Dist(txt)) * 0.5
		c.DashedLine(ax, ay, bx, by, 1*s, 6*s, 4*s, withAlpha(colorConnector, alpha))
	}

	r.drawPoints(c.Clip(left.rect()), left, f, space.Image)
	r.drawPoints(c.Clip(right.rect()), right, f, space.Text)

	r.drawExplanation(c, f)
	r.drawLegend(c, 0.07*W, 0.76*H)
	return c.Image()
}

func (r *Renderer) drawPoints(c *Canvas, p plot, f schedule.Frame, m space.Modality) {
	face := r.fonts.Bold(11 * r.scale)
	pts := f.Image
	if m == space.Text {
		pts = f.Text
	}
	for _, cat := range space.Categories {
		for _, name := range cat.Members {
			v, ok := pts[name]
			if !ok {
				continue
			}
			x, y := p.px(v)
			r.marker(c, m, x, y, cat.Color, 0.8)
			c.Badge(face, label(m, name), x, y, withAlpha(cat.Color, 0.7))
		}
	}
}

// drawExplanation renders the caption, progress bar and counters.
func (r *Renderer) drawExplanation(c *Canvas, f schedule.Frame) {
	W, H := float64(r.opts.Width), float64(r.opts.Height)
	s := r.scale
	e := Explain2D(f.Step, f.Total)

	face := r.fonts.Bold(18 * s)
	tw := c.TextWidth(face, e.Text)
	cy := 0.80 * H
	c.FillRoundRect(W/2-tw/2-14*s, cy-18*s, W/2+tw/2+14*s, cy+18*s, 8*s, withAlpha(colorBackground, 0.7))
	c.StrokeRect(W/2-tw/2-14*s, cy-18*s, W/2+tw/2+14*s, cy+18*s, 1.5*s, e.Color)
	c.Text(face, e.Text, W/2, cy, AnchorCenter, e.Color)

	x0, x1 := 0.25*W, 0.75*W
	by := 0.88 * H
	bh := 14 * s
	c.FillRect(x0, by, x1, by+bh, colorTrack)
	c.StrokeRect(x0, by, x1, by+bh, 1*s, colorMuted)
	if f.Progress > 0 {
		c.FillRect(x0, by, x0+(x1-x0)*f.Progress, by+bh, withAlpha(Viridis(f.Progress), 0.8))
	}

	c.Text(r.fonts.Bold(15*s), fmt.Sprintf("Progress: %d%%", int(f.Progress*100)), W/2, by+bh+18*s, AnchorCenter, colorInk)
	c.Text(r.fonts.Regular(14*s), fmt.Sprintf("Step: %d/%d", f.Step, f.Total), x1+20*s, by+bh/2, AnchorLeft, colorInk)
}
