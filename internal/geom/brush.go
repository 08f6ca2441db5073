package geom

import (
	"image"
	"image/color"
)

// Brush is a disk-shaped stamp of pixel offsets used to thicken a
// one pixel line into a stroke.
type Brush struct {
	Points []image.Point
}

// NewBrush collects every offset (i, j) with 4i²+4j² <= thickness².
// Thickness 0 gives a single point, negative thickness an empty brush.
func NewBrush(thickness int) Brush {
	var points []image.Point
	if thickness < 0 {
		return Brush{}
	}
	t2 := thickness * thickness
	for i := -thickness; i <= thickness; i++ {
		for j := -thickness; j <= thickness; j++ {
			if 4*i*i+4*j*j <= t2 {
				points = append(points, image.Pt(i, j))
			}
		}
	}
	return Brush{Points: points}
}

// Stamp paints the brush centered at (x, y). Offsets falling outside
// the image are dropped.
func (b Brush) Stamp(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Rect
	for _, p := range b.Points {
		px, py := x+p.X, y+p.Y
		if px < bounds.Min.X || py < bounds.Min.Y || px >= bounds.Max.X || py >= bounds.Max.Y {
			continue
		}
		i := img.PixOffset(px, py)
		s := img.Pix[i : i+4 : i+4]
		s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
	}
}
