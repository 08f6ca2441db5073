package geom

import (
	"image/color"
	"math"
)

// RGB is an 8-bit per channel color
type RGB struct {
	R, G, B uint8
}

// RGBA returns the opaque color.RGBA for c
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Blend mixes c and o linearly, p = 0 gives c and p = 1 gives o.
// Channels are rounded to the nearest integer.
func (c RGB) Blend(o RGB, p float64) RGB {
	return RGB{
		R: blendChannel(c.R, o.R, p),
		G: blendChannel(c.G, o.G, p),
		B: blendChannel(c.B, o.B, p),
	}
}

func blendChannel(a, b uint8, p float64) uint8 {
	v := math.Round(float64(a)*(1-p) + float64(b)*p)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
