package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Canvas wraps an RGBA image with anti-aliased drawing helpers.
type Canvas struct {
	img   *image.RGBA
	fonts *Fonts
}

func NewCanvas(w, h int, bg color.Color, fonts *Fonts) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{img: img, fonts: fonts}
}

// Clip returns a canvas drawing into r only. Pixels are shared.
func (c *Canvas) Clip(r image.Rectangle) *Canvas {
	sub, _ := c.img.SubImage(r.Intersect(c.img.Bounds())).(*image.RGBA)
	return &Canvas{img: sub, fonts: c.fonts}
}

func (c *Canvas) Image() *image.RGBA       { return c.img }
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// path is a closed polygon or curve in absolute pixel coordinates.
type path struct {
	ops  []pathOp
	minX float64
	minY float64
	maxX float64
	maxY float64
}

type pathOp struct {
	kind int
	pts  [3][2]float64
}

const (
	opMove = iota
	opLine
	opCube
	opClose
)

func newPath() *path {
	return &path{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
}

func (p *path) grow(x, y float64) {
	p.minX = math.Min(p.minX, x)
	p.minY = math.Min(p.minY, y)
	p.maxX = math.Max(p.maxX, x)
	p.maxY = math.Max(p.maxY, y)
}

func (p *path) moveTo(x, y float64) {
	p.grow(x, y)
	p.ops = append(p.ops, pathOp{kind: opMove, pts: [3][2]float64{{x, y}}})
}

func (p *path) lineTo(x, y float64) {
	p.grow(x, y)
	p.ops = append(p.ops, pathOp{kind: opLine, pts: [3][2]float64{{x, y}}})
}

func (p *path) cubeTo(bx, by, cx, cy, dx, dy float64) {
	p.grow(bx, by)
	p.grow(cx, cy)
	p.grow(dx, dy)
	p.ops = append(p.ops, pathOp{kind: opCube, pts: [3][2]float64{{bx, by}, {cx, cy}, {dx, dy}}})
}

func (p *path) close() {
	p.ops = append(p.ops, pathOp{kind: opClose})
}

// fill rasterizes p over the smallest rectangle that holds it, so the cost
// follows the shape size rather than the canvas size.
func (c *Canvas) fill(p *path, col color.Color) {
	if len(p.ops) == 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(p.minX)), int(math.Floor(p.minY)),
		int(math.Ceil(p.maxX))+1, int(math.Ceil(p.maxY))+1,
	).Intersect(c.img.Bounds())
	if box.Empty() {
		return
	}

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	z.DrawOp = draw.Over
	for _, op := range p.ops {
		switch op.kind {
		case opMove:
			z.MoveTo(float32(op.pts[0][0]-ox), float32(op.pts[0][1]-oy))
		case opLine:
			z.LineTo(float32(op.pts[0][0]-ox), float32(op.pts[0][1]-oy))
		case opCube:
			z.CubeTo(
				float32(op.pts[0][0]-ox), float32(op.pts[0][1]-oy),
				float32(op.pts[1][0]-ox), float32(op.pts[1][1]-oy),
				float32(op.pts[2][0]-ox), float32(op.pts[2][1]-oy),
			)
		case opClose:
			z.ClosePath()
		}
	}
	z.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

// FillRect fills an axis-aligned rectangle.
func (c *Canvas) FillRect(x0, y0, x1, y1 float64, col color.Color) {
	p := newPath()
	p.moveTo(x0, y0)
	p.lineTo(x1, y0)
	p.lineTo(x1, y1)
	p.lineTo(x0, y1)
	p.close()
	c.fill(p, col)
}

// StrokeRect outlines a rectangle with a line of width w.
func (c *Canvas) StrokeRect(x0, y0, x1, y1, w float64, col color.Color) {
	c.Line(x0, y0, x1, y0, w, col)
	c.Line(x1, y0, x1, y1, w, col)
	c.Line(x1, y1, x0, y1, w, col)
	c.Line(x0, y1, x0, y0, w, col)
}

// FillRoundRect fills a rectangle with corner radius r.
func (c *Canvas) FillRoundRect(x0, y0, x1, y1, r float64, col color.Color) {
	r = math.Min(r, math.Min((x1-x0)/2, (y1-y0)/2))
	k := r * kappa
	p := newPath()
	p.moveTo(x0+r, y0)
	p.lineTo(x1-r, y0)
	p.cubeTo(x1-r+k, y0, x1, y0+r-k, x1, y0+r)
	p.lineTo(x1, y1-r)
	p.cubeTo(x1, y1-r+k, x1-r+k, y1, x1-r, y1)
	p.lineTo(x0+r, y1)
	p.cubeTo(x0+r-k, y1, x0, y1-r+k, x0, y1-r)
	p.lineTo(x0, y0+r)
	p.cubeTo(x0, y0+r-k, x0+r-k, y0, x0+r, y0)
	p.close()
	c.fill(p, col)
}

// FillCircle fills a circle of radius r centered at (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) {
	k := r * kappa
	p := newPath()
	p.moveTo(cx+r, cy)
	p.cubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	p.cubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	p.cubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	p.cubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	p.close()
	c.fill(p, col)
}

// Line strokes a segment of width w as a quadrilateral.
func (c *Canvas) Line(x0, y0, x1, y1, w float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*w/2, dx/l*w/2
	p := newPath()
	p.moveTo(x0+nx, y0+ny)
	p.lineTo(x1+nx, y1+ny)
	p.lineTo(x1-nx, y1-ny)
	p.lineTo(x0-nx, y0-ny)
	p.close()
	c.fill(p, col)
}

// DashedLine strokes a segment as dashes of length dash separated by gap.
func (c *Canvas) DashedLine(x0, y0, x1, y1, w, dash, gap float64, col color.Color) {
	l := math.Hypot(x1-x0, y1-y0)
	if l == 0 || dash <= 0 {
		return
	}
	ux, uy := (x1-x0)/l, (y1-y0)/l
	for s := 0.0; s < l; s += dash + gap {
		e := math.Min(s+dash, l)
		c.Line(x0+ux*s, y0+uy*s, x0+ux*e, y0+uy*e, w, col)
	}
}

// Cross draws an x-shaped marker.
func (c *Canvas) Cross(cx, cy, r, w float64, col color.Color) {
	c.Line(cx-r, cy-r, cx+r, cy+r, w, col)
	c.Line(cx-r, cy+r, cx+r, cy-r, w, col)
}

// Anchor positions text relative to a point.
type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorCenter
	AnchorRight
)

// TextWidth measures s in pixels.
func (c *Canvas) TextWidth(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// Text draws s with its vertical center at y.
func (c *Canvas) Text(face font.Face, s string, x, y float64, a Anchor, col color.Color) {
	w := c.TextWidth(face, s)
	switch a {
	case AnchorCenter:
		x -= w / 2
	case AnchorRight:
		x -= w
	}
	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	baseline := y + (ascent-descent)/2

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(baseline * 64)},
	}
	d.DrawString(s)
}

// Badge draws s in white on a rounded box filled with bg, centered at (x, y).
func (c *Canvas) Badge(face font.Face, s string, x, y float64, bg color.Color) {
	w := c.TextWidth(face, s)
	m := face.Metrics()
	h := float64(m.Ascent+m.Descent) / 64
	pad := h * 0.25
	c.FillRoundRect(x-w/2-pad, y-h/2-pad, x+w/2+pad, y+h/2+pad, pad*1.5, bg)
	c.Text(face, s, x, y, AnchorCenter, color.White)
}

// withAlpha scales the alpha of col by a in [0, 1].
func withAlpha(col color.NRGBA, a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	col.A = uint8(math.Round(float64(col.A) * a))
	return col
}
