// Package animate assembles rendered frame files into animations.
package animate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/san-kum/contrastviz/internal/artifact"
)

// Encoder turns an ordered list of frame files into one animation file.
type Encoder interface {
	Name() string
	// Probe reports ErrUnavailable when the encoder cannot run here.
	Probe() error
	Encode(ctx context.Context, frames []string, out string) error
}

// Job pairs an encoder with its output path. Optional jobs that fail are
// warnings; required ones abort the assembly.
type Job struct {
	Encoder  Encoder
	Output   string
	Optional bool
}

// Report lists what Assemble produced and what it skipped.
type Report struct {
	Frames  int
	Written []string
	Skipped map[string]error
}

// CollectFrames returns the frame files in dir in step order. Frame numbers
// are zero-padded, so lexical order is step order.
func CollectFrames(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), artifact.FramePrefix+"*"+artifact.FrameExt)
	if err != nil {
		return nil, fmt.Errorf("glob frames: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFrames, dir)
	}
	sort.Strings(matches)

	frames := make([]string, len(matches))
	for i, m := range matches {
		frames[i] = filepath.Join(dir, m)
	}
	return frames, nil
}

// Assemble runs every job over the frames found in dir.
func Assemble(ctx context.Context, dir string, jobs []Job, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	frames, err := CollectFrames(dir)
	if err != nil {
		return nil, err
	}

	report := &Report{Frames: len(frames), Skipped: make(map[string]error)}
	for _, job := range jobs {
		name := job.Encoder.Name()
		if err := job.Encoder.Probe(); err != nil {
			if !job.Optional {
				return report, fmt.Errorf("%s: %w", name, err)
			}
			logger.Warn("skipping animation", "encoder", name, "reason", err)
			report.Skipped[name] = err
			continue
		}

		if err := job.Encoder.Encode(ctx, frames, job.Output); err != nil {
			if ctx.Err() != nil || !job.Optional {
				return report, fmt.Errorf("%s: %w", name, err)
			}
			logger.Warn("animation failed", "encoder", name, "error", err)
			report.Skipped[name] = err
			continue
		}

		logger.Info("animation written", "encoder", name, "path", job.Output, "frames", len(frames))
		report.Written = append(report.Written, job.Output)
	}
	return report, nil
}
