package metrics

import (
	"math"

	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

// Retrieval is the top-1 image→text retrieval accuracy: the fraction of
// concepts whose nearest text point is their own.
type Retrieval struct {
	name  string
	value float64
}

func NewRetrieval() *Retrieval {
	return &Retrieval{name: "retrieval_at_1"}
}

func (r *Retrieval) Name() string { return r.name }

func (r *Retrieval) Observe(f schedule.Frame) {
	if len(f.Concepts) == 0 {
		r.value = 0
		return
	}
	hits := 0
	for _, c := range f.Concepts {
		if nearest(f.Image[c.Name], f) == c.Name {
			hits++
		}
	}
	r.value = float64(hits) / float64(len(f.Concepts))
}

func (r *Retrieval) Value() float64 { return r.value }
func (r *Retrieval) Reset()         { r.value = 0 }

// nearest returns the text concept closest to q. Ties resolve to the
// earliest concept in generation order.
func nearest(q space.Vec, f schedule.Frame) string {
	best, bestDist := "", math.Inf(1)
	for _, c := range f.Concepts {
		if d := q.Dist(f.Text[c.Name]); d < bestDist {
			best, bestDist = c.Name, d
		}
	}
	return best
}

// Cosine is the mean cosine similarity between paired points, measured
// about the shared centroid of both modalities.
type Cosine struct {
	name  string
	value float64
}

func NewCosine() *Cosine {
	return &Cosine{name: "mean_cosine"}
}

func (c *Cosine) Name() string { return c.name }

func (c *Cosine) Observe(f schedule.Frame) {
	if len(f.Concepts) == 0 {
		c.value = 0
		return
	}
	centroid := make(space.Vec, f.Dim)
	for _, con := range f.Concepts {
		centroid = centroid.Add(f.Image[con.Name]).Add(f.Text[con.Name])
	}
	centroid = centroid.Scale(1 / float64(2*len(f.Concepts)))

	sum := 0.0
	for _, con := range f.Concepts {
		sum += cosine(f.Image[con.Name].Sub(centroid), f.Text[con.Name].Sub(centroid))
	}
	c.value = sum / float64(len(f.Concepts))
}

func (c *Cosine) Value() float64 { return c.value }
func (c *Cosine) Reset()         { c.value = 0 }

func cosine(a, b space.Vec) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}
