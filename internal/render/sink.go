package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/san-kum/contrastviz/internal/artifact"
	"github.com/san-kum/contrastviz/internal/schedule"
)

// Sink writes one PNG per frame and the combined image after the last one.
// It is an align observer.
type Sink struct {
	renderer *Renderer
	layout   artifact.Layout
	logger   *slog.Logger
	written  []string
	elapsed  []time.Duration
}

func NewSink(r *Renderer, layout artifact.Layout, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{
		renderer: r,
		layout:   layout,
		logger:   logger,
		written:  make([]string, 0, layout.Steps+2),
		elapsed:  make([]time.Duration, 0, layout.Steps+1),
	}
}

func (s *Sink) OnFrame(ctx context.Context, f schedule.Frame) error {
	if f.IsFirst() {
		if err := os.MkdirAll(s.layout.Dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	start := time.Now()
	path := s.layout.FramePath(f.Step)
	if err := WritePNG(path, s.renderer.Frame(f)); err != nil {
		return err
	}
	d := time.Since(start)
	s.written = append(s.written, path)
	s.elapsed = append(s.elapsed, d)
	s.logger.Debug("frame rendered", "path", path, "elapsed", d)
	return nil
}

// Finish writes combined_space.png from the final frame.
func (s *Sink) Finish(ctx context.Context, last schedule.Frame) error {
	path := s.layout.CombinedPath()
	if err := WritePNG(path, s.renderer.Combined(last)); err != nil {
		return err
	}
	s.written = append(s.written, path)
	s.logger.Info("combined view written", "path", path)
	return nil
}

// Written lists every file written so far, frames first.
func (s *Sink) Written() []string { return s.written }

// Elapsed returns the render time of each frame.
func (s *Sink) Elapsed() []time.Duration { return s.elapsed }

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
