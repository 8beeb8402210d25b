package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/san-kum/contrastviz/internal/space"
)

// plot is a rectangle on the canvas showing a 2D view.
type plot struct {
	x0, y0, x1, y1 float64
	view           View
}

// px maps a data point to canvas pixels. Data y grows upward.
func (p plot) px(v space.Vec) (float64, float64) {
	x := p.x0 + p.view.Norm(v, 0)*(p.x1-p.x0)
	y := p.y1 - p.view.Norm(v, 1)*(p.y1-p.y0)
	return x, y
}

func (p plot) rect() image.Rectangle {
	return image.Rect(int(p.x0), int(p.y0), int(p.x1)+1, int(p.y1)+1)
}

// drawAxes paints the panel background, a dashed grid with tick labels,
// the border and axis titles.
func (r *Renderer) drawAxes(c *Canvas, p plot, title string) {
	s := r.scale
	c.FillRect(p.x0, p.y0, p.x1, p.y1, colorPanel)

	tick := r.fonts.Regular(11 * s)
	for _, t := range p.view.Ticks(0, 0.2) {
		x, _ := p.px(space.Vec{t, p.view.Min[1]})
		c.DashedLine(x, p.y0, x, p.y1, 1*s, 4*s, 4*s, colorGrid)
		c.Text(tick, fmt.Sprintf("%.1f", t), x, p.y1+12*s, AnchorCenter, colorAxis)
	}
	for _, t := range p.view.Ticks(1, 0.2) {
		_, y := p.px(space.Vec{p.view.Min[0], t})
		c.DashedLine(p.x0, y, p.x1, y, 1*s, 4*s, 4*s, colorGrid)
		c.Text(tick, fmt.Sprintf("%.1f", t), p.x0-6*s, y, AnchorRight, colorAxis)
	}
	c.StrokeRect(p.x0, p.y0, p.x1, p.y1, 1.2*s, colorAxis)

	label := r.fonts.Regular(13 * s)
	c.Text(label, "Dimension 1", (p.x0+p.x1)/2, p.y1+32*s, AnchorCenter, colorInk)
	c.Text(label, "Dimension 2", p.x0-34*s, p.y0-10*s, AnchorLeft, colorInk)
	if title != "" {
		c.Text(r.fonts.Bold(20*s), title, (p.x0+p.x1)/2, p.y0-28*s, AnchorCenter, colorInk)
	}
}

var titleCase = cases.Title(language.English)

// drawLegend draws the category key with its top-left corner at (x, y).
func (r *Renderer) drawLegend(c *Canvas, x, y float64) {
	s := r.scale
	head := r.fonts.Bold(13 * s)
	item := r.fonts.Regular(12 * s)
	row := 20 * s

	w := 130 * s
	h := row*float64(len(space.Categories)+1) + 10*s
	c.FillRoundRect(x, y, x+w, y+h, 6*s, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb3})
	c.StrokeRect(x, y, x+w, y+h, 1*s, colorGrid)

	c.Text(head, "Categories", x+w/2, y+row*0.75, AnchorCenter, colorInk)
	for i, cat := range space.Categories {
		cy := y + row*(float64(i)+1.75)
		c.FillCircle(x+16*s, cy, 6*s, cat.Color)
		c.Text(item, titleCase.String(cat.Name), x+30*s, cy, AnchorLeft, colorInk)
	}
}

// marker draws a concept point as a circle (image) or square (text).
func (r *Renderer) marker(c *Canvas, m space.Modality, x, y float64, col color.NRGBA, alpha float64) {
	s := r.scale
	fill := withAlpha(col, alpha)
	if m == space.Text {
		h := 8 * s
		c.FillRect(x-h-1.5*s, y-h-1.5*s, x+h+1.5*s, y+h+1.5*s, color.White)
		c.FillRect(x-h, y-h, x+h, y+h, fill)
		return
	}
	c.FillCircle(x, y, 10.5*s, color.White)
	c.FillCircle(x, y, 9*s, fill)
}

// label returns the display label of a concept in a modality: uppercase,
// quoted for text.
func label(m space.Modality, name string) string {
	up := cases.Upper(language.English).String(name)
	if m == space.Text {
		return "'" + up + "'"
	}
	return up
}
