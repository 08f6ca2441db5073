package scene

import (
	"fmt"
	"strings"

	"github.com/ivlev/beaverstudio/internal/animation"
	"github.com/ivlev/beaverstudio/internal/config"
	"github.com/ivlev/beaverstudio/internal/engine"
	"github.com/ivlev/beaverstudio/internal/geom"
	"github.com/ivlev/beaverstudio/internal/geometry"
	"github.com/skip2/go-qrcode"
)

var defaultColor = geom.RGB{R: 255, G: 255, B: 255}

// Build creates the shapes and animations of sc and schedules them on a
// video configured by cfg. Shapes are referenced by name; animations are
// drawn in the order they appear.
func Build(sc *Scene, cfg config.Config) (*engine.Video, error) {
	bg, err := cfg.BackgroundRGB()
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	shapes := make(map[string]geom.Shape, len(sc.Shapes))
	for i, spec := range sc.Shapes {
		if spec.Name == "" {
			return nil, fmt.Errorf("shape #%d has no name", i+1)
		}
		if _, dup := shapes[spec.Name]; dup {
			return nil, fmt.Errorf("shape %q defined twice", spec.Name)
		}
		s, err := BuildShape(spec)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", spec.Name, err)
		}
		shapes[spec.Name] = s
	}

	v := engine.New(cfg.Width, cfg.Height, bg, cfg.FPS, cfg.Duration)
	for i, spec := range sc.Animations {
		anim, err := buildAnimation(spec, shapes, cfg.SamplingStep)
		if err != nil {
			return nil, fmt.Errorf("animation #%d (%s %s): %w", i+1, spec.Kind, spec.Shape, err)
		}
		placement, err := vector(spec.Placement)
		if err != nil {
			return nil, fmt.Errorf("animation #%d placement: %w", i+1, err)
		}
		v.Add(anim, placement, spec.Start, spec.End)
	}
	return v, nil
}

func buildAnimation(spec AnimationSpec, shapes map[string]geom.Shape, defaultStep float64) (animation.Animation, error) {
	shape, ok := shapes[spec.Shape]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q", spec.Shape)
	}
	step := spec.Step
	if step == 0 {
		step = defaultStep
	}

	switch strings.ToLower(spec.Kind) {
	case KindDisplay, "":
		d := animation.NewDisplay(shape)
		d.Step = step
		return d, nil
	case KindInterpolate:
		to, ok := shapes[spec.To]
		if !ok {
			return nil, fmt.Errorf("unknown target shape %q", spec.To)
		}
		a, err := animation.NewInterpolate(shape, to)
		if err != nil {
			return nil, err
		}
		a.Step = step
		return a, nil
	case KindTrace:
		a, err := animation.NewTrace(shape)
		if err != nil {
			return nil, err
		}
		a.Step = step
		return a, nil
	}
	return nil, fmt.Errorf("unknown animation kind %q", spec.Kind)
}

// BuildShape turns one shape description into geometry
func BuildShape(spec ShapeSpec) (geom.Shape, error) {
	color := defaultColor
	if spec.Color != nil {
		c, err := config.ParseRGB(spec.Color)
		if err != nil {
			return geom.Shape{}, err
		}
		color = c
	}
	thickness := spec.Thickness
	if thickness == 0 {
		thickness = 1
	}
	origin, err := vector(spec.Origin)
	if err != nil {
		return geom.Shape{}, fmt.Errorf("origin: %w", err)
	}

	kinds := 0
	for _, set := range []bool{spec.Curves != nil, spec.Polygon != nil, spec.Rect != nil, spec.Circle != nil, spec.Axes != nil, spec.QRCode != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return geom.Shape{}, fmt.Errorf("exactly one of curves, polygon, rect, circle, axes, qrcode is required, got %d", kinds)
	}

	switch {
	case spec.Curves != nil:
		curves := make([]geom.Bezier, 0, len(spec.Curves))
		for i, cs := range spec.Curves {
			c, err := buildCurve(cs, color, thickness)
			if err != nil {
				return geom.Shape{}, fmt.Errorf("curve #%d: %w", i+1, err)
			}
			curves = append(curves, c)
		}
		return geom.NewShape(curves, origin)

	case spec.Polygon != nil:
		pts, err := vectors(spec.Polygon)
		if err != nil {
			return geom.Shape{}, err
		}
		return geometry.Polygon(pts, origin, color, thickness)

	case spec.Rect != nil:
		return geometry.Rectangle(origin, spec.Rect.Width, spec.Rect.Height, color, thickness)

	case spec.Circle != nil:
		return geometry.Circle(origin, spec.Circle.Radius, color, thickness)

	case spec.Axes != nil:
		x, err := axesCount(spec.Axes.X)
		if err != nil {
			return geom.Shape{}, fmt.Errorf("axes x: %w", err)
		}
		y, err := axesCount(spec.Axes.Y)
		if err != nil {
			return geom.Shape{}, fmt.Errorf("axes y: %w", err)
		}
		return geometry.LinearAxes(origin, spec.Axes.Spacing, x, y)

	default:
		level, err := recoveryLevel(spec.QRCode.Level)
		if err != nil {
			return geom.Shape{}, err
		}
		opts := geometry.QROptions{
			Content: spec.QRCode.Content,
			Level:   level,
			Module:  spec.QRCode.Module,
			Border:  spec.QRCode.Border,
		}
		return geometry.QRCode(opts, origin, color, thickness)
	}
}

func buildCurve(cs CurveSpec, color geom.RGB, thickness int) (geom.Bezier, error) {
	if cs.Color != nil {
		c, err := config.ParseRGB(cs.Color)
		if err != nil {
			return geom.Bezier{}, err
		}
		color = c
	}
	if cs.Thickness != 0 {
		thickness = cs.Thickness
	}
	origin, err := vector(cs.Origin)
	if err != nil {
		return geom.Bezier{}, fmt.Errorf("origin: %w", err)
	}
	pts, err := vectors(cs.Points)
	if err != nil {
		return geom.Bezier{}, err
	}
	return geom.NewBezier(pts, origin, color, thickness)
}

func vector(v []float64) (geom.Vector, error) {
	switch len(v) {
	case 0:
		return geom.Zero(), nil
	case 2:
		return geom.NewVector(v[0], v[1]), nil
	}
	return geom.Vector{}, fmt.Errorf("point needs [x, y], got %v", v)
}

func vectors(vs [][]float64) ([]geom.Vector, error) {
	out := make([]geom.Vector, 0, len(vs))
	for _, v := range vs {
		if len(v) != 2 {
			return nil, fmt.Errorf("point needs [x, y], got %v", v)
		}
		out = append(out, geom.NewVector(v[0], v[1]))
	}
	return out, nil
}

func axesCount(v []int) (geometry.AxesCount, error) {
	if len(v) != 2 || v[0] < 0 || v[1] < 0 {
		return geometry.AxesCount{}, fmt.Errorf("need [negative, positive] line counts, got %v", v)
	}
	return geometry.AxesCount{Negative: v[0], Positive: v[1]}, nil
}

func recoveryLevel(name string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(name) {
	case "low":
		return qrcode.Low, nil
	case "", "medium":
		return qrcode.Medium, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	}
	return qrcode.Medium, fmt.Errorf("unknown qr recovery level %q", name)
}
