package animate

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// GIF encodes frames into a looping animated GIF. Frames are scaled by
// Scale and dithered onto the Plan 9 palette.
type GIF struct {
	FPS   int
	Scale float64
}

func NewGIF(fps int, scale float64) *GIF {
	if fps <= 0 {
		fps = 10
	}
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	return &GIF{FPS: fps, Scale: scale}
}

func (g *GIF) Name() string { return "gif" }

// Probe always succeeds: GIF encoding is pure Go.
func (g *GIF) Probe() error { return nil }

func (g *GIF) Encode(ctx context.Context, frames []string, out string) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	delay := 100 / g.FPS
	if delay < 1 {
		delay = 1
	}
	anim := gif.GIF{LoopCount: 0}
	for _, path := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := readPNG(path)
		if err != nil {
			return err
		}
		anim.Image = append(anim.Image, g.quantize(src))
		anim.Delay = append(anim.Delay, delay)
	}

	return writeGIF(out, &anim)
}

// writeGIF encodes anim to out. A failed encode leaves no file behind.
func writeGIF(out string, anim *gif.GIF) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		os.Remove(out)
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(out)
		return fmt.Errorf("close %s: %w", out, err)
	}
	return nil
}

func (g *GIF) quantize(src image.Image) *image.Paletted {
	sb := src.Bounds()
	w := int(float64(sb.Dx())*g.Scale + 0.5)
	h := int(float64(sb.Dy())*g.Scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	var scaled image.Image = src
	if w != sb.Dx() || h != sb.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
		scaled = dst
	}

	pal := image.NewPaletted(image.Rect(0, 0, w, h), palette.Plan9)
	draw.FloydSteinberg.Draw(pal, pal.Bounds(), scaled, scaled.Bounds().Min)
	return pal
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
