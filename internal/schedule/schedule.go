package schedule

import (
	"fmt"
	"slices"

	"github.com/san-kum/contrastviz/internal/space"
)

// Frame is a snapshot of both modalities at one step.
type Frame struct {
	Step     int
	Total    int
	Progress float64 // k/N
	Blend    float64 // easing(k/N)
	Dim      int
	Concepts []space.Concept
	Image    space.Points
	Text     space.Points
}

// IsFirst reports whether this is the k=0 frame.
func (f Frame) IsFirst() bool { return f.Step == 0 }

// IsLast reports whether this is the k=N frame.
func (f Frame) IsLast() bool { return f.Step == f.Total }

// PairDistance returns the distance between a concept's two points.
func (f Frame) PairDistance(name string) float64 {
	return f.Image[name].Dist(f.Text[name])
}

// Schedule fixes the step count, easing and convergence lift.
type Schedule struct {
	steps  int
	easing Easing
	lift   space.Vec
}

type Option func(*Schedule)

// WithLift adds v to every convergence target.
func WithLift(v space.Vec) Option {
	return func(s *Schedule) { s.lift = v.Clone() }
}

func New(steps int, easing Easing, opts ...Option) (*Schedule, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrSteps, steps)
	}
	if easing == nil {
		easing = NewLinear()
	}
	s := &Schedule{steps: steps, easing: easing}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Schedule) Steps() int      { return s.steps }
func (s *Schedule) Easing() Easing  { return s.easing }
func (s *Schedule) Lift() space.Vec { return s.lift.Clone() }

// Len returns the number of frames, N+1.
func (s *Schedule) Len() int { return s.steps + 1 }

// Progress returns k/N.
func (s *Schedule) Progress(k int) float64 {
	return float64(k) / float64(s.steps)
}

// Blend returns the eased blend factor for step k.
func (s *Schedule) Blend(k int) float64 {
	return s.easing.Apply(s.Progress(k))
}

// Target returns the point both a and b converge to.
func (s *Schedule) Target(a, b space.Vec) space.Vec {
	m := a.Midpoint(b)
	if len(s.lift) > 0 {
		m = m.Add(s.lift)
	}
	return m
}

// Frame computes the snapshot at step k.
func (s *Schedule) Frame(orig *space.Spaces, k int) (Frame, error) {
	if k < 0 || k > s.steps {
		return Frame{}, &StepError{Step: k, Total: s.steps, Wrapped: ErrStepRange}
	}
	if err := orig.Validate(); err != nil {
		return Frame{}, &StepError{Step: k, Total: s.steps, Wrapped: err}
	}

	t := s.Blend(k)
	f := Frame{
		Step:     k,
		Total:    s.steps,
		Progress: s.Progress(k),
		Blend:    t,
		Dim:      orig.Dim,
		Concepts: slices.Clone(orig.Concepts),
		Image:    make(space.Points, len(orig.Image)),
		Text:     make(space.Points, len(orig.Text)),
	}

	for _, c := range orig.Concepts {
		a, b := orig.Image[c.Name], orig.Text[c.Name]
		target := s.Target(a, b)
		f.Image[c.Name] = a.Lerp(target, t)
		f.Text[c.Name] = b.Lerp(target, t)
	}

	return f, nil
}

// Frames computes all N+1 snapshots in step order.
func (s *Schedule) Frames(orig *space.Spaces) ([]Frame, error) {
	frames := make([]Frame, 0, s.Len())
	for k := 0; k <= s.steps; k++ {
		f, err := s.Frame(orig, k)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}
