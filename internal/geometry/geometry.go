// Package geometry builds common shapes out of Bezier curves.
package geometry

import (
	"fmt"

	"github.com/ivlev/beaverstudio/internal/geom"
)

// Magic relates the control points of a cubic Bezier approximating a
// quarter circle to its radius.
const Magic = 0.552284749831

// Polygon closes the given vertices into a chain of straight sides.
func Polygon(points []geom.Vector, center geom.Vector, color geom.RGB, thickness int) (geom.Shape, error) {
	if len(points) < 2 {
		return geom.Shape{}, fmt.Errorf("polygon needs at least 2 vertices, got %d: %w", len(points), geom.ErrEmptyGeometry)
	}

	curves := make([]geom.Bezier, 0, len(points))
	for i := range points {
		next := points[(i+1)%len(points)]
		curves = append(curves, line(points[i], next, color, thickness))
	}
	return geom.NewShape(curves, center)
}

// Rectangle is an axis-aligned rectangle centered on center
func Rectangle(center geom.Vector, width, height float64, color geom.RGB, thickness int) (geom.Shape, error) {
	xside := geom.NewVector(0.5*width, 0)
	yside := geom.NewVector(0, 0.5*height)

	tr := xside.Add(yside)
	tl := yside.Sub(xside)
	bl := geom.Zero().Sub(xside).Sub(yside)
	br := xside.Sub(yside)

	return geom.NewShape([]geom.Bezier{
		line(tr, tl, color, thickness),
		line(tl, bl, color, thickness),
		line(bl, br, color, thickness),
		line(br, tr, color, thickness),
	}, center)
}

// Circle approximates a circle with four cubic arcs, counter-clockwise
// starting at the positive X axis.
func Circle(center geom.Vector, radius float64, color geom.RGB, thickness int) (geom.Shape, error) {
	xstep := geom.NewVector(radius*Magic, 0)
	ystep := geom.NewVector(0, radius*Magic)
	xrad := geom.NewVector(radius, 0)
	yrad := geom.NewVector(0, radius)
	nxrad := xrad.Mul(-1)
	nyrad := yrad.Mul(-1)

	arcs := [][]geom.Vector{
		{xrad, xrad.Add(ystep), yrad.Add(xstep), yrad},
		{yrad, yrad.Sub(xstep), nxrad.Add(ystep), nxrad},
		{nxrad, nxrad.Sub(ystep), nyrad.Sub(xstep), nyrad},
		{nyrad, nyrad.Add(xstep), xrad.Sub(ystep), xrad},
	}

	curves := make([]geom.Bezier, 0, len(arcs))
	for _, pts := range arcs {
		c, err := geom.NewBezier(pts, geom.Zero(), color, thickness)
		if err != nil {
			return geom.Shape{}, err
		}
		curves = append(curves, c)
	}
	return geom.NewShape(curves, center)
}

func line(a, b geom.Vector, color geom.RGB, thickness int) geom.Bezier {
	return geom.MustBezier([]geom.Vector{a, b}, geom.Zero(), color, thickness)
}
