// Package export writes vector versions of frames and metric series.
package export

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/san-kum/contrastviz/internal/artifact"
	"github.com/san-kum/contrastviz/internal/render"
	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FrameToSVG draws both modalities of a frame as two side-by-side panels.
// 3D frames use their first two axes.
func FrameToSVG(f schedule.Frame, view render.View, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<text x="%d" y="%d" text-anchor="middle" font-size="%d" font-weight="bold">Contrastive Learning Space Alignment</text>
`, width, height, width, height, width/2, height/12, height/30))

	pw := float64(width) * 0.4
	ph := float64(height) * 0.7
	top := float64(height) * 0.15
	panels := []struct {
		title string
		x0    float64
		m     space.Modality
	}{
		{"Image Embedding Space", float64(width) * 0.06, space.Image},
		{"Text Embedding Space", float64(width) * 0.54, space.Text},
	}

	toPx := func(x0 float64, p space.Vec) (float64, float64) {
		return x0 + view.Norm(p, 0)*pw, top + ph - view.Norm(p, 1)*ph
	}

	for _, cpt := range f.Concepts {
		ax, ay := toPx(panels[0].x0, f.Image[cpt.Name])
		bx, by := toPx(panels[1].x0, f.Text[cpt.Name])
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#808080" stroke-dasharray="6 4" stroke-opacity="0.25"/>
`, ax, ay, bx, by))
	}

	for _, p := range panels {
		sb.WriteString(fmt.Sprintf(`<g>
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#f8f9fa" stroke="#444444"/>
<text x="%.1f" y="%.1f" text-anchor="middle" font-size="%d" font-weight="bold">%s</text>
`, p.x0, top, pw, ph, p.x0+pw/2, top-10, height/40, p.title))

		pts := f.Image
		if p.m == space.Text {
			pts = f.Text
		}
		for _, cat := range space.Categories {
			fill := hex(cat.Color)
			for _, name := range cat.Members {
				v, ok := pts[name]
				if !ok {
					continue
				}
				x, y := toPx(p.x0, v)
				if p.m == space.Text {
					sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="12" height="12" fill="%s" fill-opacity="0.8" stroke="#ffffff"/>
`, x-6, y-6, fill))
				} else {
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="7" fill="%s" fill-opacity="0.8" stroke="#ffffff"/>
`, x, y, fill))
				}
				text := strings.ToUpper(name)
				if p.m == space.Text {
					text = "'" + text + "'"
				}
				sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="9" font-weight="bold" fill="%s">%s</text>
`, x, y-10, fill, text))
			}
		}
		sb.WriteString("</g>\n")
	}

	e := render.Explain2D(f.Step, f.Total)
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" text-anchor="middle" font-size="%d" font-weight="bold" fill="%s">%s</text>
<text x="%d" y="%.1f" text-anchor="middle" font-size="%d">Step: %d/%d  Progress: %d%%</text>
</svg>`, width/2, float64(height)*0.92, height/45, hex(e.Color), e.Text,
		width/2, float64(height)*0.97, height/55, f.Step, f.Total, int(f.Progress*100)))

	return sb.String()
}

// SeriesToSVG draws a metric series as a polyline over its step index.
func SeriesToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	minY, maxY := series[0], series[0]
	for _, v := range series {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(series) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range series {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// Sink writes step_<k>.svg next to the PNG frames.
type Sink struct {
	layout  artifact.Layout
	view    render.View
	width   int
	height  int
	written []string
}

func NewSink(layout artifact.Layout, view render.View, width, height int) *Sink {
	return &Sink{layout: layout, view: view, width: width, height: height}
}

func (s *Sink) OnFrame(ctx context.Context, f schedule.Frame) error {
	if f.IsFirst() {
		if err := os.MkdirAll(s.layout.Dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	path := s.layout.SVGPath(f.Step)
	if err := os.WriteFile(path, []byte(FrameToSVG(f, s.view, s.width, s.height)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.written = append(s.written, path)
	return nil
}

func (s *Sink) Written() []string { return s.written }
