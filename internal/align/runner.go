package align

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

// Runner drives a schedule from k=0 to k=N, one frame at a time.
type Runner struct {
	schedule  *schedule.Schedule
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(s *schedule.Schedule, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		schedule:  s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Schedule returns the schedule the runner drives.
func (r *Runner) Schedule() *schedule.Schedule { return r.schedule }

// Run computes every frame, feeds it to the metrics and then to each
// observer, and finishes observers that implement Finisher. Each frame is
// completely handled before the next is computed.
func (r *Runner) Run(ctx context.Context, orig *space.Spaces) (*Result, error) {
	if r.schedule == nil {
		return nil, fmt.Errorf("runner has no schedule")
	}
	if err := orig.Validate(); err != nil {
		return nil, err
	}

	n := r.schedule.Len()
	result := &Result{
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, n)
	}

	var last schedule.Frame
	for k := 0; k <= r.schedule.Steps(); k++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f, err := r.schedule.Frame(orig, k)
		if err != nil {
			return result, err
		}

		for _, m := range r.metrics {
			m.Observe(f)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		for _, obs := range r.observers {
			if err := obs.OnFrame(ctx, f); err != nil {
				return result, &schedule.StepError{Step: k, Total: f.Total, Wrapped: err}
			}
		}

		r.logger.Debug("frame complete", "step", k, "total", f.Total, "blend", f.Blend)
		result.Frames++
		last = f
	}

	for _, obs := range r.observers {
		if fin, ok := obs.(Finisher); ok {
			if err := fin.Finish(ctx, last); err != nil {
				return result, fmt.Errorf("finish: %w", err)
			}
		}
	}

	result.Final = last
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
