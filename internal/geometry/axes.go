package geometry

import (
	"fmt"

	"github.com/ivlev/beaverstudio/internal/geom"
)

var (
	// MajorColor is used for the two axes through the origin
	MajorColor = geom.RGB{R: 255, G: 255, B: 255}
	// MinorColor is used for the gridlines
	MinorColor = geom.RGB{R: 160, G: 160, B: 160}
)

const (
	MajorThickness = 4
	MinorThickness = 2
)

// AxesCount is the number of gridlines on the negative and positive side of an axis
type AxesCount struct {
	Negative int
	Positive int
}

// LinearAxes builds a linear-linear coordinate grid around origin with
// gridlines every spacing pixels. The minor gridlines come first so the
// major axes are drawn on top of them.
func LinearAxes(origin geom.Vector, spacing float64, xCount, yCount AxesCount) (geom.Shape, error) {
	if spacing <= 0 {
		return geom.Shape{}, fmt.Errorf("axes spacing must be positive, got %g", spacing)
	}

	xVals, xMin, xMax := gridValues(origin.X, spacing, xCount)
	yVals, yMin, yMax := gridValues(origin.Y, spacing, yCount)

	var curves []geom.Bezier
	for _, x := range xVals {
		curves = append(curves, line(geom.NewVector(x, yMin), geom.NewVector(x, yMax), MinorColor, MinorThickness))
	}
	for _, y := range yVals {
		curves = append(curves, line(geom.NewVector(xMin, y), geom.NewVector(xMax, y), MinorColor, MinorThickness))
	}

	curves = append(curves,
		line(geom.NewVector(origin.X, yMin), geom.NewVector(origin.X, yMax), MajorColor, MajorThickness),
		line(geom.NewVector(xMin, origin.Y), geom.NewVector(xMax, origin.Y), MajorColor, MajorThickness),
	)

	return geom.NewShape(curves, geom.Zero())
}

// gridValues lists gridline positions on both sides of start and the covered range
func gridValues(start, spacing float64, count AxesCount) (vals []float64, lo, hi float64) {
	lo, hi = start, start

	v := start
	for i := 0; i < count.Positive; i++ {
		v += spacing
		vals = append(vals, v)
		hi = max(hi, v)
	}

	v = start
	for i := 0; i < count.Negative; i++ {
		v -= spacing
		vals = append(vals, v)
		lo = min(lo, v)
	}
	return vals, lo, hi
}
