package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

// sprite is one depth-sorted element of the 3D scene.
type sprite struct {
	depth float64
	draw  func()
}

// to3 maps a point into the unit cube of the view.
func (r *Renderer) to3(p space.Vec) Vec3 {
	v := Vec3{X: r.view.Norm(p, 0), Y: r.view.Norm(p, 1)}
	if len(p) > 2 && len(r.view.Min) > 2 {
		v.Z = r.view.Norm(p, 2)
	}
	return v
}

// Frame3D draws a single projected scene with the camera swept by progress.
func (r *Renderer) Frame3D(f schedule.Frame) *image.RGBA {
	W, H := float64(r.opts.Width), float64(r.opts.Height)
	s := r.scale
	c := NewCanvas(r.opts.Width, r.opts.Height, colorPanel, r.fonts)
	cam := SweepCamera(f.Progress)

	cx, cy := W/2, H*0.53
	vw, vh := W*0.8, H*0.72
	proj := func(v Vec3) (float64, float64, float64) { return cam.Project(v, cx, cy, vw, vh) }

	for _, e := range CubeEdges() {
		x0, y0, _ := proj(e[0])
		x1, y1, _ := proj(e[1])
		c.Line(x0, y0, x1, y1, 1*s, colorGrid)
	}
	axis := r.fonts.Regular(13 * s)
	for i, end := range []Vec3{{1.15, 0, 0}, {0, 1.15, 0}, {0, 0, 1.15}} {
		x, y, _ := proj(end)
		c.Text(axis, fmt.Sprintf("Dimension %d", i+1), x, y, AnchorCenter, colorAxis)
	}

	sprites := make([]sprite, 0, 3*len(f.Concepts))
	face := r.fonts.Bold(11 * s)
	for _, cpt := range f.Concepts {
		cat, _ := space.CategoryOf(cpt.Name)
		name := cpt.Name
		img, txt := f.Image[name], f.Text[name]

		ax, ay, ad := proj(r.to3(img))
		bx, by, bd := proj(r.to3(txt))
		alpha := math.Min(1, img.Dist(txt)) * 0.5
		sprites = append(sprites, sprite{depth: math.Min(ad, bd) - 1, draw: func() {
			c.DashedLine(ax, ay, bx, by, 1*s, 6*s, 4*s, withAlpha(colorConnector, alpha))
		}})

		for _, m := range []space.Modality{space.Image, space.Text} {
			x, y, d := ax, ay, ad
			if m == space.Text {
				x, y, d = bx, by, bd
			}
			col := cat.Color
			sprites = append(sprites, sprite{depth: d, draw: func() {
				r.marker(c, m, x, y, col, 0.8)
				c.Badge(face, label(m, name), x, y-20*s, withAlpha(col, 0.7))
			}})
		}
	}
	sort.SliceStable(sprites, func(i, j int) bool { return sprites[i].depth < sprites[j].depth })
	for _, sp := range sprites {
		sp.draw()
	}

	h := Explain3D(f.Progress)
	c.Text(r.fonts.Bold(30*s), h.Title, W/2, 0.05*H, AnchorCenter, colorInk)
	c.Text(r.fonts.Regular(20*s), h.Text, W/2, 0.97*H, AnchorCenter, colorInk)

	badge := fmt.Sprintf("Training Progress: %d%%", int(f.Progress*100))
	bf := r.fonts.Bold(17 * s)
	bw := c.TextWidth(bf, badge)
	by := 0.92 * H
	c.FillRoundRect(W/2-bw/2-12*s, by-15*s, W/2+bw/2+12*s, by+15*s, 8*s, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb3})
	c.StrokeRect(W/2-bw/2-12*s, by-15*s, W/2+bw/2+12*s, by+15*s, 1*s, colorMuted)
	c.Text(bf, badge, W/2, by, AnchorCenter, colorInk)

	r.drawLegend(c, W-170*s, 0.1*H)
	return c.Image()
}
