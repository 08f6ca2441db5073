package geom

import (
	"fmt"
	"image"
)

const (
	// DefaultStep is the fixed trace parameter increment used when sampling
	// curves for drawing. It is not adaptive: 1e-4 keeps consecutive samples
	// within a pixel of each other for curves up to a few thousand pixels long.
	DefaultStep = 1e-4

	// MaxOrder is the highest curve order whose binomial coefficients are
	// computed exactly (C(56, 28) still fits the float64 mantissa).
	MaxOrder = 56
)

// Binomial computes C(n, k) with integer arithmetic.
// Every intermediate value is itself a binomial coefficient, so the result
// is exact as long as C(n, k)·(n-k) fits in a uint64.
func Binomial(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := uint64(1)
	for i := 0; i < k; i++ {
		result = result * uint64(n-i) / uint64(i+1)
	}
	return result
}

// Bezier is a generalized Bezier curve of arbitrary order.
// Control points are relative to Origin.
type Bezier struct {
	Origin    Vector
	Color     RGB
	Thickness int

	points []Vector
	coeffs []float64
}

// NewBezier constructs a curve from its control points.
// A curve without points is valid and traces to its origin.
func NewBezier(points []Vector, origin Vector, color RGB, thickness int) (Bezier, error) {
	if len(points)-1 > MaxOrder {
		return Bezier{}, fmt.Errorf("%w: order %d exceeds %d", ErrOrderTooHigh, len(points)-1, MaxOrder)
	}

	pts := make([]Vector, len(points))
	copy(pts, points)

	order := len(pts) - 1
	coeffs := make([]float64, len(pts))
	for k := range coeffs {
		coeffs[k] = float64(Binomial(order, k))
	}

	return Bezier{
		Origin:    origin,
		Color:     color,
		Thickness: thickness,
		points:    pts,
		coeffs:    coeffs,
	}, nil
}

// MustBezier is like NewBezier but panics on error. Intended for literals.
func MustBezier(points []Vector, origin Vector, color RGB, thickness int) Bezier {
	b, err := NewBezier(points, origin, color, thickness)
	if err != nil {
		panic(err)
	}
	return b
}

// Points returns a copy of the control points
func (b Bezier) Points() []Vector {
	pts := make([]Vector, len(b.points))
	copy(pts, b.points)
	return pts
}

// Order is the number of control points minus one
func (b Bezier) Order() int {
	return len(b.points) - 1
}

// Empty reports whether the curve has no control points
func (b Bezier) Empty() bool {
	return len(b.points) == 0
}

// Trace evaluates the curve at parameter t, normally in [0, 1].
func (b Bezier) Trace(t float64) Vector {
	if len(b.points) == 0 {
		return b.Origin
	}

	n := len(b.points) - 1
	u := 1 - t

	var x, y float64
	tk := 1.0
	for k, p := range b.points {
		w := b.coeffs[k] * pow(u, n-k) * tk
		x += (p.X + b.Origin.X) * w
		y += (p.Y + b.Origin.Y) * w
		tk *= t
	}
	return Vector{X: x, Y: y}
}

// Draw rasterizes the curve with the default step.
func (b Bezier) Draw(placement Vector, img *image.RGBA) {
	b.DrawStep(placement, img, DefaultStep)
}

// DrawStep samples t from 0 to 1 in increments of step and writes the
// curve color into img, one pixel per sample. Thickness is ignored here.
// A straight curve (two control points) is drawn as the Bresenham line
// between its end pixels instead.
func (b Bezier) DrawStep(placement Vector, img *image.RGBA, step float64) {
	if len(b.points) == 0 {
		return
	}
	step = normalizeStep(step)

	c := b.Color.RGBA()
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if len(b.points) == 2 {
		p0 := placement.Add(b.Trace(0)).Pixel(w, h)
		p1 := placement.Add(b.Trace(1)).Pixel(w, h)
		for _, p := range Bresenham(p0.X, p0.Y, p1.X, p1.Y) {
			img.SetRGBA(img.Rect.Min.X+p.X, img.Rect.Min.Y+p.Y, c)
		}
		return
	}

	last := image.Pt(-1, -1)
	for i, n := 0, Samples(1, step); i < n; i++ {
		p := placement.Add(b.Trace(SampleAt(i, n, 1, step))).Pixel(w, h)
		if p == last {
			continue
		}
		last = p
		img.SetRGBA(img.Rect.Min.X+p.X, img.Rect.Min.Y+p.Y, c)
	}
}

// Samples returns how many samples cover the parameter range [0, end]
// with the given step: every multiple of step up to end, plus end itself
// when it is not a multiple.
func Samples(end, step float64) int {
	if end < 0 {
		return 0
	}
	n := int(end/step) + 1
	if float64(n-1)*step < end {
		n++
	}
	return n
}

// SampleAt is the parameter of sample i of n over [0, end]
func SampleAt(i, n int, end, step float64) float64 {
	if i == n-1 {
		return end
	}
	return float64(i) * step
}

func normalizeStep(step float64) float64 {
	if step <= 0 {
		return DefaultStep
	}
	return step
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
