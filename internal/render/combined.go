package render

import (
	"image"

	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

// Combined plots both modalities of f in one plane, with pair connectors
// and midpoint markers. 3D frames are shown on their first two axes.
func (r *Renderer) Combined(f schedule.Frame) *image.RGBA {
	H := float64(r.opts.Height)
	W := H * 6 / 5
	s := r.scale
	c := NewCanvas(int(W), r.opts.Height, colorBackground, r.fonts)

	c.Text(r.fonts.Bold(30*s), "Aligned Shared Embedding Space", W/2, 0.05*H, AnchorCenter, colorInk)

	p := plot{x0: 0.1 * W, y0: 0.13 * H, x1: 0.9 * W, y1: 0.8 * H, view: r.view}
	r.drawAxes(c, p, "")

	area := c.Clip(p.rect())
	for _, cpt := range f.Concepts {
		img, txt := f.Image[cpt.Name], f.Text[cpt.Name]
		ax, ay := p.px(img)
		bx, by := p.px(txt)
		area.DashedLine(ax, ay, bx, by, 1.5*s, 6*s, 4*s, withAlpha(colorInk, 0.3))
		mid := img.Midpoint(txt)
		mx, my := p.px(mid)
		area.Cross(mx, my, 4*s, 1.5*s, withAlpha(colorMuted, 0.3))
	}

	face := r.fonts.Bold(11 * s)
	for _, cat := range space.Categories {
		for _, name := range cat.Members {
			img, ok := f.Image[name]
			if !ok {
				continue
			}
			txt := f.Text[name]

			tx, ty := p.px(txt)
			r.marker(area, space.Text, tx, ty, cat.Color, 0.7)
			ix, iy := p.px(img)
			r.marker(area, space.Image, ix, iy, cat.Color, 0.9)

			area.Badge(face, label(space.Image, name), ix, iy, withAlpha(cat.Color, 0.7))
			area.Badge(face, label(space.Text, name), tx+0.02*(p.x1-p.x0), ty+0.02*(p.y1-p.y0), withAlpha(cat.Color, 0.6))
		}
	}

	r.drawLegend(c, p.x1-140*s, p.y0+10*s)

	c.Text(r.fonts.Regular(16*s), "Contrastive Learning Alignment Complete - Final State", W/2, 0.88*H, AnchorCenter, DarkBlue)
	msg := "Image and text representations now occupy the same semantic space"
	mf := r.fonts.Bold(19 * s)
	mw := c.TextWidth(mf, msg)
	c.FillRoundRect(W/2-mw/2-14*s, 0.94*H-18*s, W/2+mw/2+14*s, 0.94*H+18*s, 8*s, withAlpha(colorBackground, 0.7))
	c.StrokeRect(W/2-mw/2-14*s, 0.94*H-18*s, W/2+mw/2+14*s, 0.94*H+18*s, 1.5*s, DarkGreen)
	c.Text(mf, msg, W/2, 0.94*H, AnchorCenter, DarkGreen)
	return c.Image()
}
