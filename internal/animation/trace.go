package animation

import (
	"fmt"
	"image"

	"github.com/ivlev/beaverstudio/internal/geom"
)

// Trace progressively reveals the outline of a shape, stroked with the
// shape's brush.
type Trace struct {
	shape geom.Shape
	brush geom.Brush
	Step  float64
}

// NewTrace prepares a tracing animation. The shape must have curves.
func NewTrace(shape geom.Shape) (*Trace, error) {
	if shape.Empty() {
		return nil, fmt.Errorf("trace: %w", geom.ErrEmptyGeometry)
	}
	return &Trace{shape: shape, brush: shape.Brush()}, nil
}

func (a *Trace) Play(progress float64) Artist {
	return TracedShape{
		shape:    a.shape,
		brush:    a.brush,
		progress: clampProgress(progress),
		step:     a.Step,
	}
}

// TracedShape is a shape outlined from parameter 0 up to its progress.
type TracedShape struct {
	shape    geom.Shape
	brush    geom.Brush
	progress float64
	step     float64
}

// Pixels returns the pixel samples of the traced part of the outline,
// with consecutive duplicates removed. Nil when there are fewer than two
// samples.
func (s TracedShape) Pixels(placement geom.Vector, width, height int) []image.Point {
	step := s.step
	if step <= 0 {
		step = geom.DefaultStep
	}
	n := geom.Samples(s.progress, step)
	if n < 2 {
		return nil
	}

	pixels := make([]image.Point, 0, n)
	for i := 0; i < n; i++ {
		p := placement.Add(s.shape.Trace(geom.SampleAt(i, n, s.progress, step))).Pixel(width, height)
		if len(pixels) > 0 && pixels[len(pixels)-1] == p {
			continue
		}
		pixels = append(pixels, p)
	}
	return pixels
}

func (s TracedShape) Draw(placement geom.Vector, img *image.RGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pixels := s.Pixels(placement, w, h)
	if len(pixels) == 0 {
		return
	}

	c := s.shape.Color.RGBA()
	off := img.Rect.Min
	s.brush.Stamp(img, off.X+pixels[0].X, off.Y+pixels[0].Y, c)

	for i := 1; i < len(pixels); i++ {
		a, b := pixels[i-1], pixels[i]
		line := geom.Bresenham(a.X, a.Y, b.X, b.Y)
		// the first point was stamped as the end of the previous line
		for _, p := range line[1:] {
			s.brush.Stamp(img, off.X+p.X, off.Y+p.Y, c)
		}
	}
}
