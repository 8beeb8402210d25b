package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/contrastviz/internal/animate"
	"github.com/san-kum/contrastviz/internal/config"
	"github.com/san-kum/contrastviz/internal/storage"
)

func smallConfig(t *testing.T, mode string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Mode = mode
	cfg.Steps = 4
	cfg.Output = filepath.Join(t.TempDir(), "viz")
	cfg.Render.Width = 320
	cfg.Render.Height = 240
	cfg.Anim.GIFScale = 0.25
	cfg.Anim.FFmpeg = "definitely-missing-ffmpeg"
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	cfg := config.DefaultConfig()
	cfg.Mode = "video"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestBuildSchedule(t *testing.T) {
	s2, err := BuildSchedule(10, "linear", 2)
	require.NoError(t, err)
	assert.Equal(t, 11, s2.Len())
	for _, c := range s2.Lift() {
		assert.Zero(t, c)
	}

	s3, err := BuildSchedule(10, "cubic", 3)
	require.NoError(t, err)
	assert.Equal(t, "cubic", s3.Easing().Name())
	assert.InDelta(t, 0.1, s3.Lift()[1], 1e-12)

	_, err = BuildSchedule(10, "bounce", 2)
	assert.Error(t, err)
}

func TestRunStaticWithoutFFmpeg(t *testing.T) {
	cfg := smallConfig(t, "static")
	p, err := New(cfg)
	require.NoError(t, err)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Parts, 1)

	part := report.Part(PartStatic)
	require.NotNil(t, part)
	assert.Equal(t, 5, part.Frames)
	assert.Contains(t, part.Skipped, "mp4")

	frames, err := animate.CollectFrames(part.Dir)
	require.NoError(t, err)
	assert.Len(t, frames, 5)
	assert.Equal(t, "step_0.png", filepath.Base(frames[0]))

	for _, name := range []string{
		"combined_space.png",
		"contrastive_learning_animation.gif",
		"interactive_viewer.html",
		"manifest.json",
		"metrics.prom",
	} {
		assert.FileExists(t, filepath.Join(part.Dir, name))
	}
	assert.NoFileExists(t, filepath.Join(part.Dir, "contrastive_learning.mp4"))

	assert.InDelta(t, 0, part.Metrics["mean_pair_distance"], 1e-9)
	assert.Equal(t, 1.0, part.Metrics["retrieval_at_1"])
}

// fakeFFmpeg writes an executable that creates its last argument, the
// output path, the way ffmpeg would.
func fakeFFmpeg(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script encoder")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := "#!/bin/sh\nfor last; do :; done\nprintf mp4 > \"$last\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestRunStaticWithFFmpeg(t *testing.T) {
	cfg := smallConfig(t, "static")
	cfg.Anim.MP4 = true
	cfg.Anim.FFmpeg = fakeFFmpeg(t)

	p, err := New(cfg)
	require.NoError(t, err)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	part := report.Part(PartStatic)
	require.NotNil(t, part)
	assert.Equal(t, 5, part.Frames)
	assert.Empty(t, part.Skipped)

	frames, err := animate.CollectFrames(part.Dir)
	require.NoError(t, err)
	assert.Len(t, frames, 5)
	assert.FileExists(t, filepath.Join(part.Dir, "combined_space.png"))
	assert.FileExists(t, filepath.Join(part.Dir, "contrastive_learning_animation.gif"))
	assert.FileExists(t, filepath.Join(part.Dir, "contrastive_learning.mp4"))
	assert.Contains(t, part.Artifacts, filepath.Join(part.Dir, "contrastive_learning.mp4"))
}

func readMetrics(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "metrics.prom"))
	require.NoError(t, err)
	return string(data)
}

func TestMetricsTextfilePerPart(t *testing.T) {
	cfg := smallConfig(t, "all")
	cfg.Anim.MP4 = false

	p, err := New(cfg)
	require.NoError(t, err)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	static := readMetrics(t, report.Part(PartStatic).Dir)
	assert.Contains(t, static, `contrastviz_frames_rendered_total{dim="2"} 5`)
	assert.Contains(t, static, `contrastviz_artifacts_written_total{kind="frame"} 5`)
	assert.Contains(t, static, `contrastviz_artifacts_written_total{kind="viewer"} 1`)
	assert.NotContains(t, static, `dim="3"`)

	d3 := readMetrics(t, report.Part(Part3D).Dir)
	assert.Contains(t, d3, `contrastviz_frames_rendered_total{dim="3"} 5`)
	assert.Contains(t, d3, `contrastviz_artifacts_written_total{kind="frame"} 5`)
	assert.NotContains(t, d3, `dim="2"`)
	assert.NotContains(t, d3, `kind="viewer"`)

	html := readMetrics(t, report.Part(PartHTML).Dir)
	assert.NotContains(t, html, "contrastviz_frames_rendered_total{")
	assert.NotContains(t, html, `kind="frame"`)
	assert.Contains(t, html, `contrastviz_artifacts_written_total{kind="copied"} 6`)
	assert.Contains(t, html, `contrastviz_artifacts_written_total{kind="viewer"} 1`)
	assert.NotContains(t, html, `kind="gif"`)
}

func TestRunAllSharesStaticFrames(t *testing.T) {
	cfg := smallConfig(t, "all")
	cfg.Anim.MP4 = false
	cfg.Render.SVG = true

	dataDir := t.TempDir()
	catalog := storage.New(dataDir)
	require.NoError(t, catalog.Init())

	p, err := New(cfg, WithCatalog(catalog))
	require.NoError(t, err)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(report.Parts))
	for _, part := range report.Parts {
		names = append(names, part.Name)
	}
	assert.Equal(t, []string{PartStatic, Part3D, PartHTML}, names)

	d3 := report.Part(Part3D)
	assert.FileExists(t, filepath.Join(d3.Dir, "contrastive_learning_3d.gif"))
	assert.FileExists(t, filepath.Join(d3.Dir, "combined_space.png"))
	assert.NoFileExists(t, filepath.Join(d3.Dir, "interactive_viewer.html"))
	assert.Empty(t, d3.Skipped)

	static := report.Part(PartStatic)
	assert.FileExists(t, filepath.Join(static.Dir, "step_0.svg"))
	assert.FileExists(t, filepath.Join(static.Dir, "convergence.svg"))

	html := report.Part(PartHTML)
	assert.Equal(t, cfg.Output+"_html", html.Dir)
	frames, err := animate.CollectFrames(html.Dir)
	require.NoError(t, err)
	assert.Len(t, frames, 5)
	assert.FileExists(t, filepath.Join(html.Dir, "combined_space.png"))
	assert.FileExists(t, filepath.Join(html.Dir, "interactive_viewer.html"))
	assert.NoFileExists(t, filepath.Join(html.Dir, "contrastive_learning_animation.gif"))
	assert.Empty(t, html.RunID)

	runs, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunHTMLOnlyRendersItsOwnFrames(t *testing.T) {
	cfg := smallConfig(t, "html")
	p, err := New(cfg)
	require.NoError(t, err)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Parts, 1)

	html := report.Part(PartHTML)
	require.NotNil(t, html)
	assert.NotEmpty(t, html.RunID)
	assert.FileExists(t, filepath.Join(html.Dir, "step_4.png"))
	assert.FileExists(t, filepath.Join(html.Dir, "manifest.json"))

	_, err = os.Stat(cfg.Dir(PartStatic))
	assert.True(t, os.IsNotExist(err))
}

func TestRerunRemovesStaleFrames(t *testing.T) {
	cfg := smallConfig(t, "static")
	cfg.Anim.MP4 = false
	cfg.Steps = 12

	p, err := New(cfg)
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	require.NoError(t, err)

	cfg.Steps = 3
	p, err = New(cfg)
	require.NoError(t, err)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	frames, err := animate.CollectFrames(report.Part(PartStatic).Dir)
	require.NoError(t, err)
	assert.Len(t, frames, 4)
}

func TestRunCancelled(t *testing.T) {
	cfg := smallConfig(t, "static")
	p, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
