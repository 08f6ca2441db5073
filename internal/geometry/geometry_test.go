package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/ivlev/beaverstudio/internal/geom"
	"github.com/skip2/go-qrcode"
)

var white = geom.RGB{R: 255, G: 255, B: 255}

func near(a, b geom.Vector) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestPolygonIsClosed(t *testing.T) {
	pts := []geom.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}
	s, err := Polygon(pts, geom.NewVector(1, 1), white, 2)
	if err != nil {
		t.Fatalf("Polygon: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 sides, got %d", s.Len())
	}
	if !near(s.Trace(0), s.Trace(1)) {
		t.Errorf("polygon not closed: %v != %v", s.Trace(0), s.Trace(1))
	}
	if want := geom.NewVector(1, 1); !near(s.Trace(0), want) {
		t.Errorf("Trace(0) = %v, want %v", s.Trace(0), want)
	}

	if _, err := Polygon(pts[:1], geom.Zero(), white, 1); !errors.Is(err, geom.ErrEmptyGeometry) {
		t.Errorf("single vertex: expected ErrEmptyGeometry, got %v", err)
	}
}

func TestRectangleCorners(t *testing.T) {
	s, err := Rectangle(geom.NewVector(5, -5), 20, 10, white, 3)
	if err != nil {
		t.Fatalf("Rectangle: %v", err)
	}

	corners := []geom.Vector{{X: 15, Y: 0}, {X: -5, Y: 0}, {X: -5, Y: -10}, {X: 15, Y: -10}}
	for i, want := range corners {
		if got := s.Trace(float64(i) / 4); !near(got, want) {
			t.Errorf("corner %d = %v, want %v", i, got, want)
		}
	}
	if s.Thickness != 3 || s.Color != white {
		t.Errorf("style not propagated: %v/%d", s.Color, s.Thickness)
	}
}

func TestCircleRadius(t *testing.T) {
	const r = 50.0
	s, err := Circle(geom.Zero(), r, white, 1)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}

	for i := 0; i <= 100; i++ {
		p := s.Trace(float64(i) / 100)
		d := math.Hypot(p.X, p.Y)
		// the cubic approximation stays within 0.05% of the radius
		if math.Abs(d-r) > r*5e-4 {
			t.Errorf("t=%.2f: distance %f from center, want %f", float64(i)/100, d, r)
		}
	}

	if p := s.Trace(0.25); !near(p, geom.NewVector(0, r)) {
		t.Errorf("quarter turn at %v", p)
	}
}

func TestLinearAxes(t *testing.T) {
	s, err := LinearAxes(geom.Zero(), 10, AxesCount{Negative: 2, Positive: 3}, AxesCount{Negative: 1, Positive: 1})
	if err != nil {
		t.Fatalf("LinearAxes: %v", err)
	}

	// 5 vertical + 2 horizontal minor lines, 2 major
	if s.Len() != 9 {
		t.Fatalf("expected 9 gridlines, got %d", s.Len())
	}

	minor := s.Curve(0)
	if minor.Color != MinorColor || minor.Thickness != MinorThickness {
		t.Errorf("first gridline style %v/%d", minor.Color, minor.Thickness)
	}
	major := s.Curve(s.Len() - 1)
	if major.Color != MajorColor || major.Thickness != MajorThickness {
		t.Errorf("major axis style %v/%d", major.Color, major.Thickness)
	}
	// horizontal major axis spans the x range
	if a, b := major.Trace(0), major.Trace(1); !near(a, geom.NewVector(-20, 0)) || !near(b, geom.NewVector(30, 0)) {
		t.Errorf("major x axis from %v to %v", a, b)
	}

	if _, err := LinearAxes(geom.Zero(), 0, AxesCount{}, AxesCount{}); err == nil {
		t.Error("zero spacing should fail")
	}
}

func TestQRCode(t *testing.T) {
	opts := QROptions{Content: "beaver", Level: qrcode.Medium, Module: 4}
	s, err := QRCode(opts, geom.Zero(), white, 4)
	if err != nil {
		t.Fatalf("QRCode: %v", err)
	}
	if s.Len() == 0 {
		t.Fatal("expected strokes")
	}

	// version 1 symbol is 21 modules wide without border
	half := 21 * 4 / 2.0
	for i := 0; i < s.Len(); i++ {
		for _, p := range []geom.Vector{s.Curve(i).Trace(0), s.Curve(i).Trace(1)} {
			if math.Abs(p.X) > half || math.Abs(p.Y) > half {
				t.Fatalf("stroke %d endpoint %v outside the symbol", i, p)
			}
		}
	}

	// top-left finder pattern: first row starts with a run of 7 dark modules
	first := s.Curve(0)
	if got := first.Trace(1).X - first.Trace(0).X; math.Abs(got-6*4) > 1e-9 {
		t.Errorf("finder pattern run spans %g pixels, want %d", got, 6*4)
	}

	if _, err := QRCode(QROptions{Content: "x"}, geom.Zero(), white, 1); err == nil {
		t.Error("zero module size should fail")
	}
}
