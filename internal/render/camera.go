package render

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera looks at Target from Azimuth degrees around the vertical (z) axis
// and Elevation degrees above the xy plane.
type Camera struct {
	Target    Vec3
	Azimuth   float64
	Elevation float64
	Distance  float64
	Zoom      float64
}

func NewCamera(azimuth, elevation float64) *Camera {
	return &Camera{
		Target:    Vec3{0.5, 0.5, 0.5},
		Azimuth:   azimuth,
		Elevation: elevation,
		Distance:  6,
		Zoom:      1,
	}
}

// SweepCamera returns the camera for progress p: the view starts from the
// side and turns toward the top as alignment completes.
func SweepCamera(p float64) *Camera {
	return NewCamera(30+50*p, 30-20*p)
}

// View rotates p into camera space: x to the right, y up, z toward the
// viewer.
func (c *Camera) View(p Vec3) Vec3 {
	q := p.Sub(c.Target)
	az := c.Azimuth * math.Pi / 180
	el := c.Elevation * math.Pi / 180
	ca, sa := math.Cos(az), math.Sin(az)
	ce, se := math.Cos(el), math.Sin(el)

	right := -sa*q.X + ca*q.Y
	radial := ca*q.X + sa*q.Y
	return Vec3{
		X: right,
		Y: -se*radial + ce*q.Z,
		Z: ce*radial + se*q.Z,
	}
}

// Project maps p to screen coordinates inside a w by h viewport centered at
// (cx, cy). Larger depth is closer to the viewer.
func (c *Camera) Project(p Vec3, cx, cy, w, h float64) (x, y, depth float64) {
	v := c.View(p).Scale(c.Zoom)
	persp := c.Distance / (c.Distance - v.Z)
	unit := math.Min(w, h) / 1.9
	return cx + v.X*persp*unit, cy - v.Y*persp*unit, v.Z
}

// CubeEdges lists the twelve edges of the [0,1]^3 cube.
func CubeEdges() [][2]Vec3 {
	v := []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}
	idx := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	edges := make([][2]Vec3, len(idx))
	for i, e := range idx {
		edges[i] = [2]Vec3{v[e[0]], v[e[1]]}
	}
	return edges
}
