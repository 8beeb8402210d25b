package schedule

import (
	"fmt"
	"math"
	"sort"
)

// Easing reparameterizes linear progress in [0, 1].
type Easing interface {
	Name() string
	Apply(t float64) float64
}

type Linear struct{}

func NewLinear() *Linear { return &Linear{} }

func (l *Linear) Name() string            { return "linear" }
func (l *Linear) Apply(t float64) float64 { return t }

// CubicInOut accelerates through the first half and decelerates through
// the second: 4t³ below 0.5, 1 - (-2t+2)³/2 above.
type CubicInOut struct{}

func NewCubicInOut() *CubicInOut { return &CubicInOut{} }

func (c *CubicInOut) Name() string { return "cubic" }

func (c *CubicInOut) Apply(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

var easings = map[string]func() Easing{
	"linear": func() Easing { return NewLinear() },
	"cubic":  func() Easing { return NewCubicInOut() },
}

// Lookup returns the easing registered under name.
func Lookup(name string) (Easing, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing: %s (available: %v)", name, EasingNames())
	}
	return fn(), nil
}

// EasingNames lists registered easings in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
