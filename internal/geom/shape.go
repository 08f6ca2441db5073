package geom

import (
	"fmt"
	"image"
	"math"
)

// Shape is an ordered chain of Bezier curves sharing an origin.
// Color and thickness are taken from the first curve.
type Shape struct {
	Origin    Vector
	Color     RGB
	Thickness int

	curves []Bezier
}

// NewShape builds a shape from at least one curve.
func NewShape(curves []Bezier, origin Vector) (Shape, error) {
	if len(curves) == 0 {
		return Shape{}, fmt.Errorf("shape: %w", ErrEmptyGeometry)
	}

	cs := make([]Bezier, len(curves))
	copy(cs, curves)

	return Shape{
		Origin:    origin,
		Color:     cs[0].Color,
		Thickness: cs[0].Thickness,
		curves:    cs,
	}, nil
}

// MustShape is like NewShape but panics on error.
func MustShape(curves []Bezier, origin Vector) Shape {
	s, err := NewShape(curves, origin)
	if err != nil {
		panic(err)
	}
	return s
}

// Curves returns a copy of the curve list
func (s Shape) Curves() []Bezier {
	cs := make([]Bezier, len(s.curves))
	copy(cs, s.curves)
	return cs
}

// Len is the number of curves in the shape
func (s Shape) Len() int {
	return len(s.curves)
}

// Curve returns curve i
func (s Shape) Curve(i int) Bezier {
	return s.curves[i]
}

// Empty reports whether the shape has no curves. Only the zero Shape is empty.
func (s Shape) Empty() bool {
	return len(s.curves) == 0
}

// Topology returns the number of control points of each curve
func (s Shape) Topology() []int {
	top := make([]int, len(s.curves))
	for i, c := range s.curves {
		top[i] = len(c.points)
	}
	return top
}

// SameTopology reports whether s and o have the same curve count and the
// same control-point count per curve. The error describes the first difference.
func (s Shape) SameTopology(o Shape) error {
	if len(s.curves) != len(o.curves) {
		return fmt.Errorf("%w: %d curves vs %d", ErrGeometryMismatch, len(s.curves), len(o.curves))
	}
	for i := range s.curves {
		if a, b := len(s.curves[i].points), len(o.curves[i].points); a != b {
			return fmt.Errorf("%w: curve %d has %d control points vs %d", ErrGeometryMismatch, i, a, b)
		}
	}
	return nil
}

// Segment maps a shape parameter t to the curve index and the parameter
// along that curve. The range [0, 1] is split evenly between the curves;
// t >= 1 lands on the end of the last curve.
func (s Shape) Segment(t float64) (int, float64) {
	n := len(s.curves)
	scaled := t * float64(n)
	idx := int(math.Floor(scaled))
	local := scaled - math.Floor(scaled)
	if idx >= n {
		return n - 1, 1
	}
	if idx < 0 {
		return 0, scaled
	}
	return idx, local
}

// Trace evaluates the shape at parameter t in [0, 1].
func (s Shape) Trace(t float64) Vector {
	if len(s.curves) == 0 {
		return s.Origin
	}
	idx, local := s.Segment(t)
	return s.Origin.Add(s.curves[idx].Trace(local))
}

// Draw rasterizes every curve of the shape, one pixel wide.
func (s Shape) Draw(placement Vector, img *image.RGBA) {
	s.DrawStep(placement, img, DefaultStep)
}

// DrawStep is Draw with an explicit sampling step
func (s Shape) DrawStep(placement Vector, img *image.RGBA, step float64) {
	at := placement.Add(s.Origin)
	for _, c := range s.curves {
		c.DrawStep(at, img, step)
	}
}

// Brush returns the stroke brush for the shape thickness
func (s Shape) Brush() Brush {
	return NewBrush(s.Thickness)
}
