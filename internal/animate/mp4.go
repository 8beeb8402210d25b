package animate

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/contrastviz/internal/artifact"
)

const DefaultFFmpeg = "ffmpeg"

// MP4 drives an external ffmpeg binary over the frame files.
type MP4 struct {
	Binary  string
	FPS     int
	Bitrate string

	path string
}

func NewMP4(binary string, fps int) *MP4 {
	if binary == "" {
		binary = DefaultFFmpeg
	}
	if fps <= 0 {
		fps = 20
	}
	return &MP4{Binary: binary, FPS: fps, Bitrate: "8000k"}
}

func (m *MP4) Name() string { return "mp4" }

func (m *MP4) Probe() error {
	path, err := exec.LookPath(m.Binary)
	if err != nil {
		return fmt.Errorf("%w: %s not found in PATH", ErrUnavailable, m.Binary)
	}
	m.path = path
	return nil
}

// Args builds the ffmpeg command line for frames written as step_<k>.png.
func (m *MP4) Args(frames []string, out string) ([]string, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	base := filepath.Base(frames[0])
	digits := len(base) - len(artifact.FramePrefix) - len(artifact.FrameExt)
	if digits < 1 || !strings.HasPrefix(base, artifact.FramePrefix) {
		return nil, fmt.Errorf("unexpected frame name %q", base)
	}
	input := filepath.Join(filepath.Dir(frames[0]), fmt.Sprintf("%s%%0%dd%s", artifact.FramePrefix, digits, artifact.FrameExt))

	return []string{
		"-y", "-loglevel", "error",
		"-framerate", strconv.Itoa(m.FPS),
		"-start_number", "0",
		"-i", input,
		"-frames:v", strconv.Itoa(len(frames)),
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-b:v", m.Bitrate,
		out,
	}, nil
}

func (m *MP4) Encode(ctx context.Context, frames []string, out string) error {
	if m.path == "" {
		if err := m.Probe(); err != nil {
			return err
		}
	}
	args, err := m.Args(frames, out)
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, m.path, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
