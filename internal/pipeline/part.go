package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/san-kum/contrastviz/internal/align"
	"github.com/san-kum/contrastviz/internal/animate"
	"github.com/san-kum/contrastviz/internal/artifact"
	"github.com/san-kum/contrastviz/internal/export"
	"github.com/san-kum/contrastviz/internal/metrics"
	"github.com/san-kum/contrastviz/internal/render"
	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
	"github.com/san-kum/contrastviz/internal/storage"
	"github.com/san-kum/contrastviz/internal/telemetry"
	"github.com/san-kum/contrastviz/internal/viewer"
)

// Lift3D raises every convergence target in the 3D scene.
var Lift3D = space.Vec{0, 0.1, 0}

// BuildSchedule returns the schedule used for a dimensionality: the 2D
// easing with no lift, or the 3D easing lifted by Lift3D.
func BuildSchedule(steps int, easing string, dim int) (*schedule.Schedule, error) {
	e, err := schedule.Lookup(easing)
	if err != nil {
		return nil, err
	}
	var opts []schedule.Option
	if dim == 3 {
		opts = append(opts, schedule.WithLift(Lift3D))
	}
	return schedule.New(steps, e, opts...)
}

// rendered is the outcome of driving one schedule through the renderers.
type rendered struct {
	layout  artifact.Layout
	result  *align.Result
	written []string
	elapsed []time.Duration
}

func (p *Pipeline) easingFor(dim int) string {
	if dim == 3 {
		return p.cfg.Ease3D
	}
	return p.cfg.Easing
}

// renderFrames generates the spaces, runs the schedule and writes every
// frame plus the combined image into dir, recording them in rec.
func (p *Pipeline) renderFrames(ctx context.Context, dir string, dim int, svg bool, rec *telemetry.Recorder, logger *slog.Logger) (*rendered, error) {
	gen, err := space.NewGenerator(dim, p.cfg.Seed)
	if err != nil {
		return nil, err
	}
	orig := gen.Generate()

	sched, err := BuildSchedule(p.cfg.Steps, p.easingFor(dim), dim)
	if err != nil {
		return nil, err
	}
	first, err := sched.Frame(orig, 0)
	if err != nil {
		return nil, err
	}
	last, err := sched.Frame(orig, sched.Steps())
	if err != nil {
		return nil, err
	}
	view := render.Fit(first, last)

	r, err := render.New(render.Options{Width: p.cfg.Render.Width, Height: p.cfg.Render.Height}, view)
	if err != nil {
		return nil, err
	}

	layout := artifact.New(dir, p.cfg.Steps, dim)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := clearFrames(dir, logger); err != nil {
		return nil, err
	}

	runner := align.New(sched, logger)
	runner.AddMetric(metrics.NewPairDistance())
	runner.AddMetric(metrics.NewMaxPairDistance())
	runner.AddMetric(metrics.NewRetrieval())
	runner.AddMetric(metrics.NewCosine())

	sink := render.NewSink(r, layout, logger)
	runner.AddObserver(sink)

	var svgSink *export.Sink
	if svg {
		svgSink = export.NewSink(layout, view, p.cfg.Render.Width, p.cfg.Render.Height)
		runner.AddObserver(svgSink)
	}

	logger.Info("rendering frames", "dir", dir, "frames", sched.Len(), "easing", sched.Easing().Name())
	res, err := runner.Run(ctx, orig)
	if err != nil {
		return nil, err
	}

	out := &rendered{
		layout:  layout,
		result:  res,
		written: append([]string(nil), sink.Written()...),
		elapsed: sink.Elapsed(),
	}
	if svgSink != nil {
		out.written = append(out.written, svgSink.Written()...)
		if curve := export.SeriesToSVG(res.Series["mean_pair_distance"], 640, 240, "#3f83f8"); curve != "" {
			path := filepath.Join(dir, "convergence.svg")
			if err := os.WriteFile(path, []byte(curve), 0o644); err != nil {
				return nil, fmt.Errorf("write %s: %w", path, err)
			}
			out.written = append(out.written, path)
		}
	}

	rec.Frames(dim, out.elapsed)
	rec.Alignment(dim, res.Metrics)
	rec.Artifact("frame", len(out.elapsed))
	rec.Artifact("combined", 1)
	if svgSink != nil {
		rec.Artifact("svg", len(svgSink.Written()))
	}
	return out, nil
}

// clearFrames removes frame files left by an earlier run with a different
// step count, so the animation only sees this run's frames.
func clearFrames(dir string, logger *slog.Logger) error {
	for _, pattern := range []string{artifact.FramePrefix + "*.png", artifact.FramePrefix + "*.svg"} {
		matches, err := doublestar.Glob(os.DirFS(dir), pattern)
		if err != nil {
			return fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			if err := os.Remove(filepath.Join(dir, m)); err != nil {
				return fmt.Errorf("remove stale frame: %w", err)
			}
		}
		if len(matches) > 0 {
			logger.Debug("removed stale frames", "dir", dir, "count", len(matches))
		}
	}
	return nil
}

// runRendered renders one dimensionality, animates it and optionally adds
// the viewer.
func (p *Pipeline) runRendered(ctx context.Context, name string, dim int, withViewer bool) (*Part, error) {
	dir := p.cfg.Dir(name)
	logger := p.logger.With("part", name)
	rec := telemetry.New()

	out, err := p.renderFrames(ctx, dir, dim, p.cfg.Render.SVG, rec, logger)
	if err != nil {
		return nil, err
	}
	part := &Part{
		Name:      name,
		Dir:       dir,
		Dim:       dim,
		Frames:    out.result.Frames,
		Artifacts: out.written,
		Skipped:   make(map[string]error),
		Metrics:   out.result.Metrics,
		Series:    out.result.Series,
		Elapsed:   out.elapsed,
	}
	report, err := animate.Assemble(ctx, dir, p.animationJobs(out.layout), logger)
	if err != nil {
		return nil, err
	}
	part.Artifacts = append(part.Artifacts, report.Written...)
	for _, w := range report.Written {
		rec.Artifact(filepath.Ext(w)[1:], 1)
	}
	for enc, reason := range report.Skipped {
		part.Skipped[enc] = reason
		rec.Skipped(enc)
	}

	if withViewer {
		path, err := viewer.WriteFile(ctx, dir, viewer.NewPage(out.layout.Steps+1))
		if err != nil {
			return nil, err
		}
		part.Artifacts = append(part.Artifacts, path)
		rec.Artifact("viewer", 1)
	}

	if err := p.finish(ctx, part, out.layout, out.result, rec); err != nil {
		return nil, err
	}
	return part, nil
}

func (p *Pipeline) animationJobs(layout artifact.Layout) []animate.Job {
	jobs := []animate.Job{{
		Encoder: animate.NewGIF(p.cfg.Anim.GIFFPS, p.cfg.Anim.GIFScale),
		Output:  layout.GIFPath(),
	}}
	if p.cfg.Anim.MP4 {
		jobs = append(jobs, animate.Job{
			Encoder:  animate.NewMP4(p.cfg.Anim.FFmpeg, p.cfg.Anim.MP4FPS),
			Output:   layout.MP4Path(),
			Optional: true,
		})
	}
	return jobs
}

// runHTML writes the viewer with its frames. Frames rendered by the static
// part of the same run are copied rather than rendered again.
func (p *Pipeline) runHTML(ctx context.Context, static *Part) (*Part, error) {
	dir := p.cfg.Dir(PartHTML)
	logger := p.logger.With("part", PartHTML)
	rec := telemetry.New()
	layout := artifact.New(dir, p.cfg.Steps, 2)
	part := &Part{
		Name:    PartHTML,
		Dir:     dir,
		Dim:     2,
		Skipped: make(map[string]error),
	}

	var result *align.Result
	if static != nil {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		if err := clearFrames(dir, logger); err != nil {
			return nil, err
		}
		copied, err := copyFrames(static.Dir, dir)
		if err != nil {
			return nil, err
		}
		logger.Info("reused static frames", "from", static.Dir, "files", len(copied))
		rec.Artifact("copied", len(copied))
		part.Frames = len(copied) - 1
		part.Artifacts = copied
		part.Metrics = static.Metrics
		part.Series = static.Series
	} else {
		out, err := p.renderFrames(ctx, dir, 2, false, rec, logger)
		if err != nil {
			return nil, err
		}
		part.Frames = out.result.Frames
		part.Artifacts = out.written
		part.Metrics = out.result.Metrics
		part.Series = out.result.Series
		part.Elapsed = out.elapsed
		result = out.result
	}

	path, err := viewer.WriteFile(ctx, dir, viewer.NewPage(layout.Steps+1))
	if err != nil {
		return nil, err
	}
	part.Artifacts = append(part.Artifacts, path)
	rec.Artifact("viewer", 1)

	if result == nil {
		// Copied frames: the static part already recorded the run.
		if err := writeSidecars(layout, nil, rec); err != nil {
			return nil, err
		}
		return part, nil
	}
	if err := p.finish(ctx, part, layout, result, rec); err != nil {
		return nil, err
	}
	return part, nil
}

func copyFrames(from, to string) ([]string, error) {
	frames, err := animate.CollectFrames(from)
	if err != nil {
		return nil, err
	}
	srcs := append(frames, filepath.Join(from, artifact.CombinedName))

	copied := make([]string, 0, len(srcs))
	for _, src := range srcs {
		dst := filepath.Join(to, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			return nil, err
		}
		copied = append(copied, dst)
	}
	return copied, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}

// finish records the run in the catalog and writes the manifest and the
// metrics textfile.
func (p *Pipeline) finish(ctx context.Context, part *Part, layout artifact.Layout, res *align.Result, rec *telemetry.Recorder) error {
	run := storage.NewRun(part.Name, p.cfg.Seed, p.easingFor(part.Dim), part.Dir, res)
	run.Artifacts = append([]string(nil), part.Artifacts...)
	part.RunID = run.ID

	if p.catalog != nil {
		if err := p.catalog.Save(ctx, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
	}
	return writeSidecars(layout, run, rec)
}

func writeSidecars(layout artifact.Layout, run *storage.Run, rec *telemetry.Recorder) error {
	if run != nil {
		if err := storage.ExportJSONFile(layout.ManifestPath(), run); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	}
	if err := rec.WriteTextfile(layout.MetricsPath()); err != nil {
		return err
	}
	return nil
}
