package animate

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/contrastviz/internal/artifact"
)

func writeFrames(t *testing.T, dir string, steps int) artifact.Layout {
	t.Helper()
	layout := artifact.New(dir, steps, 2)
	for k := 0; k <= steps; k++ {
		img := image.NewRGBA(image.Rect(0, 0, 40, 30))
		for x := 0; x < 40; x++ {
			img.Set(x, k%30, color.RGBA{R: uint8(10 * k), G: 0x80, B: 0xff, A: 0xff})
		}
		f, err := os.Create(layout.FramePath(k))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
	}
	return layout
}

type failing struct{ optional bool }

func (f failing) Name() string { return "broken" }
func (f failing) Probe() error { return nil }
func (f failing) Encode(ctx context.Context, frames []string, out string) error {
	return errors.New("encoder crashed")
}

func TestCollectFramesInStepOrder(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, 12)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "combined_space.png"), []byte("x"), 0o644))

	frames, err := CollectFrames(dir)
	require.NoError(t, err)
	require.Len(t, frames, 13)
	assert.Equal(t, "step_00.png", filepath.Base(frames[0]))
	assert.Equal(t, "step_09.png", filepath.Base(frames[9]))
	assert.Equal(t, "step_12.png", filepath.Base(frames[12]))
}

func TestCollectFramesEmpty(t *testing.T) {
	_, err := CollectFrames(t.TempDir())
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestGIFEncode(t *testing.T) {
	dir := t.TempDir()
	layout := writeFrames(t, dir, 4)
	frames, err := CollectFrames(dir)
	require.NoError(t, err)

	out := layout.GIFPath()
	require.NoError(t, NewGIF(10, 0.5).Encode(context.Background(), frames, out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 5)
	assert.Equal(t, 10, anim.Delay[0])
	assert.Equal(t, 20, anim.Image[0].Bounds().Dx())
	assert.Equal(t, 0, anim.LoopCount)
}

func TestGIFEncodeCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, 2)
	frames, _ := CollectFrames(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewGIF(10, 1).Encode(ctx, frames, filepath.Join(dir, "out.gif"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGIFEncodeUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, 1)
	frames, _ := CollectFrames(dir)

	err := NewGIF(10, 1).Encode(context.Background(), frames, filepath.Join(dir, "missing", "out.gif"))
	assert.Error(t, err)
}

func TestWriteGIFFailureRemovesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "broken.gif")
	anim := &gif.GIF{
		Image: []*image.Paletted{image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})},
		Delay: []int{5, 5},
	}

	err := writeGIF(out, anim)
	require.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestMP4ProbeMissingBinary(t *testing.T) {
	m := NewMP4("contrastviz-no-such-encoder", 20)
	assert.ErrorIs(t, m.Probe(), ErrUnavailable)
}

func TestMP4Args(t *testing.T) {
	m := NewMP4("", 20)
	frames := []string{filepath.Join("out", "step_000.png"), filepath.Join("out", "step_001.png")}

	args, err := m.Args(frames, "out/contrastive_learning.mp4")
	require.NoError(t, err)
	assert.Contains(t, args, filepath.Join("out", "step_%03d.png"))
	assert.Contains(t, args, "libx264")
	assert.Equal(t, "out/contrastive_learning.mp4", args[len(args)-1])

	_, err = m.Args(nil, "x.mp4")
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestAssembleSkipsUnavailableEncoder(t *testing.T) {
	dir := t.TempDir()
	layout := writeFrames(t, dir, 3)

	report, err := Assemble(context.Background(), dir, []Job{
		{Encoder: NewGIF(10, 1), Output: layout.GIFPath()},
		{Encoder: NewMP4("contrastviz-no-such-encoder", 20), Output: layout.MP4Path(), Optional: true},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Frames)
	assert.Equal(t, []string{layout.GIFPath()}, report.Written)
	assert.ErrorIs(t, report.Skipped["mp4"], ErrUnavailable)
	assert.FileExists(t, layout.GIFPath())
	assert.NoFileExists(t, layout.MP4Path())

	frames, err := CollectFrames(dir)
	require.NoError(t, err)
	assert.Len(t, frames, 4, "frame count must not depend on encoder availability")
}

func TestAssembleOptionalFailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, 2)

	report, err := Assemble(context.Background(), dir, []Job{
		{Encoder: failing{}, Output: filepath.Join(dir, "x"), Optional: true},
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, report.Skipped, "broken")

	_, err = Assemble(context.Background(), dir, []Job{
		{Encoder: failing{}, Output: filepath.Join(dir, "x")},
	}, nil)
	assert.Error(t, err)
}
