package storage

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/contrastviz/internal/align"
	"github.com/san-kum/contrastviz/internal/space"
)

// ErrRunNotFound is returned by Load for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Run records one pipeline invocation for one dimensionality.
type Run struct {
	ID        string               `json:"id"`
	Mode      string               `json:"mode"`
	Dim       int                  `json:"dim"`
	Steps     int                  `json:"steps"`
	Seed      int64                `json:"seed"`
	Easing    string               `json:"easing"`
	Timestamp time.Time            `json:"timestamp"`
	Output    string               `json:"output"`
	Artifacts []string             `json:"artifacts"`
	Metrics   map[string]float64   `json:"metrics"`
	Series    map[string][]float64 `json:"series,omitempty"`
	Final     *Points              `json:"final,omitempty"`
}

// Points is the final position of every concept in both modalities.
type Points struct {
	Image map[string][]float64 `json:"image"`
	Text  map[string][]float64 `json:"text"`
}

// NewRun fills a run record from a finished alignment.
func NewRun(mode string, seed int64, easing, output string, res *align.Result) *Run {
	r := &Run{
		ID:        uuid.NewString(),
		Mode:      mode,
		Seed:      seed,
		Easing:    easing,
		Timestamp: time.Now().UTC(),
		Output:    output,
		Metrics:   make(map[string]float64),
		Series:    make(map[string][]float64),
	}
	if res == nil {
		return r
	}
	r.Dim = res.Final.Dim
	r.Steps = res.Final.Total
	for k, v := range res.Metrics {
		r.Metrics[k] = v
	}
	for k, v := range res.Series {
		r.Series[k] = append([]float64(nil), v...)
	}
	r.Final = &Points{
		Image: toSlices(res.Final.Image),
		Text:  toSlices(res.Final.Text),
	}
	return r
}

func toSlices(p space.Points) map[string][]float64 {
	out := make(map[string][]float64, len(p))
	for k, v := range p {
		out[k] = append([]float64(nil), v...)
	}
	return out
}

// SeriesNames returns the metric series names in sorted order.
func (r *Run) SeriesNames() []string {
	names := make([]string, 0, len(r.Series))
	for name := range r.Series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog persists run records.
type Catalog interface {
	Init() error
	Save(ctx context.Context, r *Run) error
	List(ctx context.Context) ([]Run, error)
	Load(ctx context.Context, id string) (*Run, error)
	Close() error
}
