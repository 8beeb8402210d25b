// Package pipeline wires generation, scheduling, rendering, animation and
// the viewer into one run per configured mode.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/contrastviz/internal/config"
	"github.com/san-kum/contrastviz/internal/storage"
)

const (
	PartStatic = "static"
	Part3D     = "3d"
	PartHTML   = "html"
)

// Pipeline runs the parts the configured mode asks for, in the order
// static, 3d, html.
type Pipeline struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog storage.Catalog
}

type Option func(*Pipeline)

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithCatalog stores one run record per rendered part.
func WithCatalog(c storage.Catalog) Option {
	return func(p *Pipeline) { p.catalog = c }
}

func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	p := &Pipeline{
		cfg:    cfg.Clone(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Part is what one mode produced.
type Part struct {
	Name      string
	Dir       string
	Dim       int
	Frames    int
	Artifacts []string
	Skipped   map[string]error
	Metrics   map[string]float64
	Series    map[string][]float64
	RunID     string
	Elapsed   []time.Duration
}

// Report lists the parts in the order they ran.
type Report struct {
	Parts   []*Part
	Elapsed time.Duration
}

// Part returns the named part, or nil.
func (r *Report) Part(name string) *Part {
	for _, p := range r.Parts {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Run executes every wanted part. Optional artifacts that cannot be produced
// are recorded in Part.Skipped; I/O failures abort the run.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}

	var static *Part
	if p.cfg.Wants(PartStatic) {
		part, err := p.runRendered(ctx, PartStatic, 2, true)
		if err != nil {
			return report, fmt.Errorf("static: %w", err)
		}
		report.Parts = append(report.Parts, part)
		static = part
	}

	if p.cfg.Wants(Part3D) {
		part, err := p.runRendered(ctx, Part3D, 3, false)
		if err != nil {
			return report, fmt.Errorf("3d: %w", err)
		}
		report.Parts = append(report.Parts, part)
	}

	if p.cfg.Wants(PartHTML) {
		part, err := p.runHTML(ctx, static)
		if err != nil {
			return report, fmt.Errorf("html: %w", err)
		}
		report.Parts = append(report.Parts, part)
	}

	report.Elapsed = time.Since(start)
	return report, nil
}
