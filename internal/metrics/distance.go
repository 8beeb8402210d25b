package metrics

import (
	"github.com/san-kum/contrastviz/internal/schedule"
)

// PairDistance tracks the mean distance between each concept's image and
// text points in the most recent frame.
type PairDistance struct {
	name  string
	value float64
}

func NewPairDistance() *PairDistance {
	return &PairDistance{name: "mean_pair_distance"}
}

func (p *PairDistance) Name() string { return p.name }

func (p *PairDistance) Observe(f schedule.Frame) {
	if len(f.Concepts) == 0 {
		p.value = 0
		return
	}
	sum := 0.0
	for _, c := range f.Concepts {
		sum += f.PairDistance(c.Name)
	}
	p.value = sum / float64(len(f.Concepts))
}

func (p *PairDistance) Value() float64 { return p.value }
func (p *PairDistance) Reset()         { p.value = 0 }

// MaxPairDistance tracks the largest pair distance in the most recent frame.
type MaxPairDistance struct {
	name  string
	value float64
}

func NewMaxPairDistance() *MaxPairDistance {
	return &MaxPairDistance{name: "max_pair_distance"}
}

func (m *MaxPairDistance) Name() string { return m.name }

func (m *MaxPairDistance) Observe(f schedule.Frame) {
	m.value = 0
	for _, c := range f.Concepts {
		if d := f.PairDistance(c.Name); d > m.value {
			m.value = d
		}
	}
}

func (m *MaxPairDistance) Value() float64 { return m.value }
func (m *MaxPairDistance) Reset()         { m.value = 0 }
