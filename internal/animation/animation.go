// Package animation turns shapes into progress-driven drawables.
//
// An Animation is played at a progress value in [0, 1] and returns an
// Artist: an immutable snapshot that paints itself onto a frame. Animations
// hold their own copies of the shapes they animate and never mutate them, so
// one Animation can be played concurrently from several render workers.
package animation

import (
	"image"

	"github.com/ivlev/beaverstudio/internal/geom"
)

// Artist paints a fixed state of an animation onto a frame.
type Artist interface {
	Draw(placement geom.Vector, img *image.RGBA)
}

// Animation produces an Artist for a given progress in [0, 1].
type Animation interface {
	Play(progress float64) Artist
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Display shows a shape unchanged for the whole animation.
type Display struct {
	Shape geom.Shape
	// Step is the sampling step along each curve, 0 means geom.DefaultStep
	Step float64
}

func NewDisplay(shape geom.Shape) *Display {
	return &Display{Shape: shape}
}

func (d *Display) Play(float64) Artist {
	return StaticShape{Shape: d.Shape, Step: d.Step}
}

// StaticShape draws a shape with one pixel wide curves.
type StaticShape struct {
	Shape geom.Shape
	Step  float64
}

func (s StaticShape) Draw(placement geom.Vector, img *image.RGBA) {
	s.Shape.DrawStep(placement, img, s.Step)
}
