package space

import (
	"math"
)

// Vec is a point in a 2D or 3D coordinate space.
type Vec []float64

func (v Vec) Clone() Vec {
	c := make(Vec, len(v))
	copy(c, v)
	return c
}

func (v Vec) Add(other Vec) Vec {
	result := make(Vec, len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] + other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

func (v Vec) Sub(other Vec) Vec {
	result := make(Vec, len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] - other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

func (v Vec) Scale(factor float64) Vec {
	result := make(Vec, len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

func (v Vec) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v Vec) Dot(other Vec) float64 {
	sum := 0.0
	for i := range v {
		if i < len(other) {
			sum += v[i] * other[i]
		}
	}
	return sum
}

// Dist returns the Euclidean distance between v and other.
func (v Vec) Dist(other Vec) float64 {
	return v.Sub(other).Norm()
}

// Midpoint returns (v + other) / 2.
func (v Vec) Midpoint(other Vec) Vec {
	result := make(Vec, len(v))
	for i := range v {
		result[i] = (v[i] + other[i]) / 2
	}
	return result
}

// Lerp returns v*(1-t) + target*t, computed per component so that t=0
// reproduces v and t=1 reproduces target bit for bit.
func (v Vec) Lerp(target Vec, t float64) Vec {
	result := make(Vec, len(v))
	for i := range v {
		result[i] = v[i]*(1-t) + target[i]*t
	}
	return result
}

func (v Vec) Equal(other Vec) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

func (v Vec) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
