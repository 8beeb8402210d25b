package render

import (
	"image/color"
	"math"
)

var (
	colorBackground = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorPanel      = color.NRGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}
	colorGrid       = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0x80}
	colorAxis       = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	colorInk        = color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	colorMuted      = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	colorConnector  = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	colorTrack      = color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0x80}

	DarkOrange = color.NRGBA{R: 0xff, G: 0x8c, B: 0x00, A: 0xff}
	DarkCyan   = color.NRGBA{R: 0x00, G: 0x8b, B: 0x8b, A: 0xff}
	DarkGreen  = color.NRGBA{R: 0x00, G: 0x64, B: 0x00, A: 0xff}
	DarkBlue   = color.NRGBA{R: 0x00, G: 0x00, B: 0x8b, A: 0xff}
)

// viridis stops at 0, .25, .5, .75, 1.
var viridis = [...]color.NRGBA{
	{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

// Viridis maps p in [0, 1] onto the viridis color ramp.
func Viridis(p float64) color.NRGBA {
	p = math.Max(0, math.Min(1, p))
	seg := p * float64(len(viridis)-1)
	i := int(seg)
	if i >= len(viridis)-1 {
		return viridis[len(viridis)-1]
	}
	f := seg - float64(i)
	a, b := viridis[i], viridis[i+1]
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*(1-f) + float64(y)*f))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}
