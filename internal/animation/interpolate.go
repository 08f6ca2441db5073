package animation

import (
	"fmt"
	"image"

	"github.com/ivlev/beaverstudio/internal/geom"
)

// Interpolate morphs one shape into another. Both shapes must have the same
// number of curves and the same number of control points per curve.
type Interpolate struct {
	one, two geom.Shape
	Step     float64
}

// NewInterpolate checks that one and two share a topology.
func NewInterpolate(one, two geom.Shape) (*Interpolate, error) {
	if one.Empty() || two.Empty() {
		return nil, fmt.Errorf("interpolate: %w", geom.ErrEmptyGeometry)
	}
	if err := one.SameTopology(two); err != nil {
		return nil, fmt.Errorf("interpolate: %w", err)
	}
	return &Interpolate{one: one, two: two}, nil
}

// NewCurveInterpolate morphs a single curve into another.
func NewCurveInterpolate(one, two geom.Bezier) (*Interpolate, error) {
	a, err := geom.NewShape([]geom.Bezier{one}, geom.Zero())
	if err != nil {
		return nil, err
	}
	b, err := geom.NewShape([]geom.Bezier{two}, geom.Zero())
	if err != nil {
		return nil, err
	}
	return NewInterpolate(a, b)
}

func (a *Interpolate) Play(progress float64) Artist {
	return InterpolatedShape{
		one:      a.one,
		two:      a.two,
		progress: clampProgress(progress),
		step:     a.Step,
	}
}

// InterpolatedShape is the blend of two shapes at a fixed progress.
type InterpolatedShape struct {
	one, two geom.Shape
	progress float64
	step     float64
}

// Progress returns the blend weight of the second shape
func (s InterpolatedShape) Progress() float64 {
	return s.progress
}

// Trace blends the traces of both shapes at t.
func (s InterpolatedShape) Trace(t float64) geom.Vector {
	return s.one.Trace(t).Mul(1 - s.progress).Add(s.two.Trace(t).Mul(s.progress))
}

// CurveColor blends the colors of curve i of both shapes, rounding each
// channel. It is the color Draw uses for that curve.
func (s InterpolatedShape) CurveColor(i int) geom.RGB {
	return s.one.Curve(i).Color.Blend(s.two.Curve(i).Color, s.progress)
}

// Curve returns curve i blended at the snapshot progress. Control points,
// curve origin and color are mixed pairwise; the shape origins are left to Draw.
func (s InterpolatedShape) Curve(i int) geom.Bezier {
	p := s.progress
	c1, c2 := s.one.Curve(i), s.two.Curve(i)
	a, b := c1.Points(), c2.Points()

	pts := make([]geom.Vector, len(a))
	for k := range a {
		pts[k] = a[k].Mul(1 - p).Add(b[k].Mul(p))
	}
	origin := c1.Origin.Mul(1 - p).Add(c2.Origin.Mul(p))

	// same order as c1, which NewBezier already accepted
	return geom.MustBezier(pts, origin, s.CurveColor(i), c1.Thickness)
}

func (s InterpolatedShape) Draw(placement geom.Vector, img *image.RGBA) {
	p := s.progress
	at := placement.Add(s.one.Origin.Mul(1 - p).Add(s.two.Origin.Mul(p)))
	for i := 0; i < s.one.Len(); i++ {
		s.Curve(i).DrawStep(at, img, s.step)
	}
}
