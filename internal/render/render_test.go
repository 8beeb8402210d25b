package render

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/contrastviz/internal/artifact"
	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

func frames(t *testing.T, dim, steps int) (*schedule.Schedule, *space.Spaces) {
	t.Helper()
	g, err := space.NewGenerator(dim, space.DefaultSeed)
	require.NoError(t, err)
	s, err := schedule.New(steps, schedule.NewLinear())
	require.NoError(t, err)
	return s, g.Generate()
}

func fitView(t *testing.T, s *schedule.Schedule, orig *space.Spaces) View {
	t.Helper()
	first, err := s.Frame(orig, 0)
	require.NoError(t, err)
	last, err := s.Frame(orig, s.Steps())
	require.NoError(t, err)
	return Fit(first, last)
}

func painted(img *image.RGBA, bg color.Color) int {
	br, bgc, bb, _ := bg.RGBA()
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != br || g != bgc || bl != bb {
				n++
			}
		}
	}
	return n
}

func TestExplain2DPhases(t *testing.T) {
	tests := []struct {
		k    int
		want color.NRGBA
		text string
	}{
		{0, DarkOrange, "Starting with misaligned spaces: similar concepts are in different positions"},
		{10, DarkOrange, "Beginning alignment through contrastive learning..."},
		{30, DarkCyan, "Gradually aligning spaces through contrastive learning..."},
		{60, DarkCyan, "Similar concepts are being pulled together across spaces"},
		{90, DarkGreen, "Spaces nearing perfect alignment"},
		{100, DarkGreen, "Spaces aligned! Same concepts now occupy the same positions"},
	}
	for _, tt := range tests {
		e := Explain2D(tt.k, 100)
		assert.Equal(t, tt.text, e.Text, "step %d", tt.k)
		assert.Equal(t, tt.want, e.Color, "step %d", tt.k)
	}
}

func TestExplain3DPhases(t *testing.T) {
	assert.Equal(t, "Initial Misaligned Embedding Spaces", Explain3D(0).Title)
	assert.Equal(t, "Beginning Contrastive Learning Alignment", Explain3D(0.1).Title)
	assert.Equal(t, "Contrastive Learning Alignment in Progress", Explain3D(0.3).Title)
	assert.Equal(t, "Advanced Contrastive Learning Alignment", Explain3D(0.6).Title)
	assert.Equal(t, "Nearing Optimal Alignment", Explain3D(0.9).Title)
	assert.Equal(t, "Aligned Multimodal Embedding Space", Explain3D(1).Title)
}

func TestViridisEndpoints(t *testing.T) {
	assert.Equal(t, viridis[0], Viridis(0))
	assert.Equal(t, viridis[len(viridis)-1], Viridis(1))
	assert.Equal(t, viridis[0], Viridis(-3))
	assert.Equal(t, viridis[2], Viridis(0.5))
}

func TestFitCoversEveryPoint(t *testing.T) {
	s, orig := frames(t, 2, 10)
	v := fitView(t, s, orig)

	all, err := s.Frames(orig)
	require.NoError(t, err)
	for _, f := range all {
		for _, pts := range []space.Points{f.Image, f.Text} {
			for name, p := range pts {
				for i := range p {
					n := v.Norm(p, i)
					assert.True(t, n >= 0 && n <= 1, "%s axis %d step %d at %f", name, i, f.Step, n)
				}
			}
		}
	}
}

func TestFitKeepsUnitBoxWhenInside(t *testing.T) {
	f := schedule.Frame{
		Dim:   2,
		Image: space.Points{"dog": {0.2, 0.3}},
		Text:  space.Points{"dog": {0.7, 0.9}},
	}
	v := Fit(f)
	assert.Equal(t, space.Vec{0, 0}, v.Min)
	assert.Equal(t, space.Vec{1, 1}, v.Max)
	assert.Equal(t, Unit(2), v)
	assert.Len(t, v.Ticks(0, 0.2), 6)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "DOG", label(space.Image, "dog"))
	assert.Equal(t, "'DOG'", label(space.Text, "dog"))
}

func TestCameraProjectsTargetToCenter(t *testing.T) {
	cam := SweepCamera(0.4)
	x, y, d := cam.Project(cam.Target, 100, 50, 200, 100)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
	assert.InDelta(t, 0, d, 1e-9)

	top := Vec3{0.5, 0.5, 1}
	_, ty, _ := cam.Project(top, 100, 50, 200, 100)
	assert.Less(t, ty, 50.0, "up axis should project above center")
}

func TestNewRejectsTinyImages(t *testing.T) {
	_, err := New(Options{Width: 10, Height: 10}, Unit(2))
	assert.Error(t, err)
}

func TestFramesAreDrawn(t *testing.T) {
	opts := Options{Width: 480, Height: 270}

	s, orig := frames(t, 2, 4)
	r, err := New(opts, fitView(t, s, orig))
	require.NoError(t, err)
	f, err := s.Frame(orig, 2)
	require.NoError(t, err)

	img := r.Frame(f)
	assert.Equal(t, image.Rect(0, 0, 480, 270), img.Bounds())
	assert.Greater(t, painted(img, colorBackground), 1000)

	combined := r.Combined(f)
	assert.Equal(t, 324, combined.Bounds().Dx())
	assert.Equal(t, 270, combined.Bounds().Dy())
	assert.Greater(t, painted(combined, colorBackground), 1000)

	s3, orig3 := frames(t, 3, 4)
	r3, err := New(opts, fitView(t, s3, orig3))
	require.NoError(t, err)
	f3, err := s3.Frame(orig3, 1)
	require.NoError(t, err)

	img3 := r3.Frame(f3)
	assert.Equal(t, image.Rect(0, 0, 480, 270), img3.Bounds())
	assert.Greater(t, painted(img3, colorPanel), 1000)
}

func TestSinkWritesEveryFrameAndCombined(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s, orig := frames(t, 2, 3)
	r, err := New(Options{Width: 320, Height: 240}, fitView(t, s, orig))
	require.NoError(t, err)

	layout := artifact.New(dir, 3, 2)
	sink := NewSink(r, layout, nil)

	all, err := s.Frames(orig)
	require.NoError(t, err)
	for _, f := range all {
		require.NoError(t, sink.OnFrame(context.Background(), f))
	}
	require.NoError(t, sink.Finish(context.Background(), all[len(all)-1]))

	for k := 0; k <= 3; k++ {
		assert.FileExists(t, layout.FramePath(k))
	}
	assert.FileExists(t, layout.CombinedPath())
	assert.Len(t, sink.Written(), 5)
	assert.Len(t, sink.Elapsed(), 4)

	matches, err := filepath.Glob(filepath.Join(dir, "step_*.png"))
	require.NoError(t, err)
	assert.Len(t, matches, 4)

	fh, err := os.Open(layout.FramePath(0))
	require.NoError(t, err)
	defer fh.Close()
	cfg, _, err := image.DecodeConfig(fh)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
}
