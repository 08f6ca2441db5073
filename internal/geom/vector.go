package geom

import (
	"image"
	"math"
)

// Vector is a 2D point or displacement on an image.
// The origin is the center of the image, units are pixels and Y grows upwards.
type Vector struct {
	X float64
	Y float64
}

// NewVector creates a new Vector
func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Zero returns the zero vector
func Zero() Vector {
	return Vector{}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector) Mul(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

func (v Vector) MulInt(n int) Vector {
	return v.Mul(float64(n))
}

// ToPixels converts center-origin coordinates into top-left-origin pixel
// coordinates of a width x height image, clamped into the image.
func (v Vector) ToPixels(width, height int) (int, int) {
	px := int(math.Round(float64(width)/2 + v.X))
	py := int(math.Round(float64(height)/2 - v.Y))
	return clamp(px, 0, width-1), clamp(py, 0, height-1)
}

// Pixel is ToPixels packed into an image.Point
func (v Vector) Pixel(width, height int) image.Point {
	x, y := v.ToPixels(width, height)
	return image.Pt(x, y)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
