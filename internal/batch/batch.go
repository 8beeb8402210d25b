// Package batch runs a YAML list of visualization jobs one after another.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/contrastviz/internal/config"
	"github.com/san-kum/contrastviz/internal/pipeline"
)

// Plan is a batch file.
type Plan struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// KeepGoing runs the remaining jobs after one fails.
	KeepGoing bool  `yaml:"keep_going"`
	Jobs      []Job `yaml:"jobs"`
}

// Job overrides the base configuration for one run. Fields left empty keep
// the base value. A job with Seeds runs once per seed, each into its own
// output prefix.
type Job struct {
	Name      string        `yaml:"name"`
	Preset    string        `yaml:"preset"`
	NoMP4     bool          `yaml:"no_mp4"`
	Seeds     []int64       `yaml:"seeds"`
	Overrides config.Config `yaml:",inline"`
}

// Planned is one fully resolved run.
type Planned struct {
	Name   string
	Config *config.Config
}

// Result is the outcome of one planned run.
type Result struct {
	Name   string
	Config *config.Config
	Report *pipeline.Report
	Err    error
}

// RunFunc executes one configuration.
type RunFunc func(ctx context.Context, cfg *config.Config) (*pipeline.Report, error)

func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(plan.Jobs) == 0 {
		return nil, fmt.Errorf("%s: no jobs", path)
	}
	return &plan, nil
}

// Expand resolves every job against base: defaults, then the job's preset,
// then its own fields. All configurations are validated before any runs.
func (p *Plan) Expand(base *config.Config) ([]Planned, error) {
	if base == nil {
		base = config.DefaultConfig()
	}
	var out []Planned
	for i, job := range p.Jobs {
		name := job.Name
		if name == "" {
			name = fmt.Sprintf("job-%d", i+1)
		}

		cfg := base.Clone()
		if job.Preset != "" {
			preset := config.GetPreset(job.Preset)
			if preset == nil {
				return nil, fmt.Errorf("%s: unknown preset %q (available: %v)", name, job.Preset, config.ListPresets())
			}
			cfg.ApplyPreset(preset)
		}
		cfg.ApplyPreset(&job.Overrides)
		if job.NoMP4 {
			cfg.Anim.MP4 = false
		}

		if len(job.Seeds) == 0 {
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			out = append(out, Planned{Name: name, Config: cfg})
			continue
		}
		for _, seed := range job.Seeds {
			c := cfg.Clone()
			c.Seed = seed
			c.Output = fmt.Sprintf("%s_seed%d", cfg.Output, seed)
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			out = append(out, Planned{Name: fmt.Sprintf("%s/seed-%d", name, seed), Config: c})
		}
	}
	return out, nil
}

// Run executes the plan in order. Without KeepGoing the first failure stops
// the batch; otherwise failures are collected and joined.
func Run(ctx context.Context, p *Plan, base *config.Config, run RunFunc, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	planned, err := p.Expand(base)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(planned))
	var errs []error
	for i, job := range planned {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Info("batch job", "job", job.Name, "index", i+1, "total", len(planned), "mode", job.Config.Mode)

		report, err := run(ctx, job.Config)
		results = append(results, Result{Name: job.Name, Config: job.Config, Report: report, Err: err})
		if err == nil {
			continue
		}
		err = fmt.Errorf("%s: %w", job.Name, err)
		if !p.KeepGoing || ctx.Err() != nil {
			return results, err
		}
		logger.Warn("batch job failed", "job", job.Name, "error", err)
		errs = append(errs, err)
	}
	return results, errors.Join(errs...)
}
