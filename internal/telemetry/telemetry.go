// Package telemetry collects run counters and writes them as a Prometheus
// textfile next to the rendered artifacts.
package telemetry

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "contrastviz"

// Recorder owns a private registry. The pipeline uses one per part, so a
// part's textfile only describes that part.
type Recorder struct {
	registry  *prometheus.Registry
	frames    *prometheus.CounterVec
	renderDur *prometheus.HistogramVec
	alignment *prometheus.GaugeVec
	artifacts *prometheus.CounterVec
	skipped   *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_rendered_total",
			Help:      "Frames rendered, by dimensionality.",
		}, []string{"dim"}),
		renderDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_render_seconds",
			Help:      "Time to rasterize and encode one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"dim"}),
		alignment: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alignment_metric",
			Help:      "Alignment metric value at the final frame.",
		}, []string{"dim", "metric"}),
		artifacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_written_total",
			Help:      "Artifacts written, by kind.",
		}, []string{"kind"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_skipped_total",
			Help:      "Optional artifacts skipped, by kind.",
		}, []string{"kind"}),
	}
	r.registry.MustRegister(r.frames, r.renderDur, r.alignment, r.artifacts, r.skipped)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Frames records rendered frames and their durations.
func (r *Recorder) Frames(dim int, elapsed []time.Duration) {
	d := strconv.Itoa(dim)
	r.frames.WithLabelValues(d).Add(float64(len(elapsed)))
	for _, e := range elapsed {
		r.renderDur.WithLabelValues(d).Observe(e.Seconds())
	}
}

// Alignment records the final value of every metric.
func (r *Recorder) Alignment(dim int, values map[string]float64) {
	d := strconv.Itoa(dim)
	for name, v := range values {
		r.alignment.WithLabelValues(d, name).Set(v)
	}
}

// Artifact records n files of one kind.
func (r *Recorder) Artifact(kind string, n int) { r.artifacts.WithLabelValues(kind).Add(float64(n)) }

func (r *Recorder) Skipped(kind string) { r.skipped.WithLabelValues(kind).Inc() }

// WriteTextfile writes every collected metric in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
