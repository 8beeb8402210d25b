package render

import (
	"math"

	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

// View is the data range shown on every axis of a run. It covers the unit
// box and every point of the given frames, so nothing leaves the plot
// while the spaces converge.
type View struct {
	Min space.Vec
	Max space.Vec
}

// Fit returns the view over frames. Interpolated frames lie inside the box
// spanned by the first and last frame, so those two are enough.
func Fit(frames ...schedule.Frame) View {
	dim := 2
	if len(frames) > 0 && frames[0].Dim > 0 {
		dim = frames[0].Dim
	}
	v := View{Min: make(space.Vec, dim), Max: make(space.Vec, dim)}
	for i := 0; i < dim; i++ {
		v.Min[i], v.Max[i] = 0, 1
	}
	for _, f := range frames {
		for _, pts := range []space.Points{f.Image, f.Text} {
			for _, p := range pts {
				for i := 0; i < dim && i < len(p); i++ {
					v.Min[i] = math.Min(v.Min[i], p[i])
					v.Max[i] = math.Max(v.Max[i], p[i])
				}
			}
		}
	}
	for i := 0; i < dim; i++ {
		if v.Min[i] < 0 || v.Max[i] > 1 {
			pad := (v.Max[i] - v.Min[i]) * 0.05
			v.Min[i] -= pad
			v.Max[i] += pad
		}
	}
	return v
}

// Unit is the [0, 1] view of the given dimensionality.
func Unit(dim int) View {
	v := View{Min: make(space.Vec, dim), Max: make(space.Vec, dim)}
	for i := range v.Max {
		v.Max[i] = 1
	}
	return v
}

// Norm maps component i of p into [0, 1] relative to the view.
func (v View) Norm(p space.Vec, i int) float64 {
	span := v.Max[i] - v.Min[i]
	if span == 0 {
		return 0.5
	}
	return (p[i] - v.Min[i]) / span
}

// Ticks returns grid positions every step along axis i.
func (v View) Ticks(i int, step float64) []float64 {
	ticks := make([]float64, 0, 8)
	for t := math.Ceil(v.Min[i]/step-1e-9) * step; t <= v.Max[i]+1e-9; t += step {
		ticks = append(ticks, math.Round(t/step)*step)
	}
	return ticks
}
