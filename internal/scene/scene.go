// Package scene reads and writes YAML scene documents and turns them into
// a renderable engine.Video.
package scene

import (
	"github.com/ivlev/beaverstudio/internal/config"
)

// Scene is a complete video description
type Scene struct {
	Version    string          `yaml:"version"`
	Video      config.Config   `yaml:"video"`
	Shapes     []ShapeSpec     `yaml:"shapes"`
	Animations []AnimationSpec `yaml:"animations"`
}

// ShapeSpec describes one named shape. Exactly one of Curves, Polygon,
// Rect, Circle, Axes and QRCode must be set.
type ShapeSpec struct {
	Name      string    `yaml:"name"`
	Color     []int     `yaml:"color,omitempty"`     // RGB, white when empty
	Thickness int       `yaml:"thickness,omitempty"` // stroke width in pixels, 1 when 0
	Origin    []float64 `yaml:"origin,omitempty"`    // [x, y], shape center for builders

	Curves  []CurveSpec `yaml:"curves,omitempty"`
	Polygon [][]float64 `yaml:"polygon,omitempty"` // vertices
	Rect    *RectSpec   `yaml:"rect,omitempty"`
	Circle  *CircleSpec `yaml:"circle,omitempty"`
	Axes    *AxesSpec   `yaml:"axes,omitempty"`
	QRCode  *QRSpec     `yaml:"qrcode,omitempty"`
}

// CurveSpec is a raw Bezier curve. Color and thickness default to the shape's.
type CurveSpec struct {
	Points    [][]float64 `yaml:"points"`
	Origin    []float64   `yaml:"origin,omitempty"`
	Color     []int       `yaml:"color,omitempty"`
	Thickness int         `yaml:"thickness,omitempty"`
}

type RectSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type CircleSpec struct {
	Radius float64 `yaml:"radius"`
}

// AxesSpec is a coordinate grid; X and Y hold [negative, positive] line counts
type AxesSpec struct {
	Spacing float64 `yaml:"spacing"`
	X       []int   `yaml:"x"`
	Y       []int   `yaml:"y"`
}

type QRSpec struct {
	Content string  `yaml:"content"`
	Level   string  `yaml:"level,omitempty"` // low, medium, high, highest
	Module  float64 `yaml:"module"`
	Border  bool    `yaml:"border,omitempty"`
}

// AnimationSpec places an animation of a named shape on the timeline
type AnimationSpec struct {
	Kind      string    `yaml:"kind"` // display, interpolate, trace
	Shape     string    `yaml:"shape"`
	To        string    `yaml:"to,omitempty"` // target shape for interpolate
	Placement []float64 `yaml:"placement,omitempty"`
	Start     float64   `yaml:"start"` // seconds
	End       float64   `yaml:"end"`   // seconds
	Step      float64   `yaml:"step,omitempty"`
}

const (
	KindDisplay     = "display"
	KindInterpolate = "interpolate"
	KindTrace       = "trace"
)
