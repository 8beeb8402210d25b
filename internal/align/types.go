package align

import (
	"context"

	"github.com/san-kum/contrastviz/internal/schedule"
)

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(f schedule.Frame)
	Value() float64
	Reset()
}

// Observer receives every frame in step order. Renderers are observers.
type Observer interface {
	OnFrame(ctx context.Context, f schedule.Frame) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, f schedule.Frame) error

func (fn ObserverFunc) OnFrame(ctx context.Context, f schedule.Frame) error {
	return fn(ctx, f)
}

// Finisher is implemented by observers that emit something once the last
// frame has been seen, such as the combined final-state image.
type Finisher interface {
	Finish(ctx context.Context, last schedule.Frame) error
}

// Result summarizes a completed run.
type Result struct {
	Frames  int
	Final   schedule.Frame
	Metrics map[string]float64
	Series  map[string][]float64
}
