package animation

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ivlev/beaverstudio/internal/geom"
	"github.com/ivlev/beaverstudio/internal/geometry"
)

var (
	white = geom.RGB{R: 255, G: 255, B: 255}
	red   = geom.RGB{R: 255}
	blue  = geom.RGB{B: 255}
)

func newFrame(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// painted collects every pixel with a non-zero alpha
func painted(img *image.RGBA) map[image.Point]color.RGBA {
	out := make(map[image.Point]color.RGBA)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.A != 0 {
				out[image.Pt(x, y)] = c
			}
		}
	}
	return out
}

func square(t *testing.T, half float64, c geom.RGB, thickness int) geom.Shape {
	t.Helper()
	s, err := geometry.Rectangle(geom.Zero(), 2*half, 2*half, c, thickness)
	if err != nil {
		t.Fatalf("Rectangle: %v", err)
	}
	return s
}

func TestDisplayIgnoresProgress(t *testing.T) {
	s := square(t, 10, white, 1)
	d := NewDisplay(s)

	want := newFrame(50, 50)
	s.Draw(geom.Zero(), want)

	for _, p := range []float64{0, 0.3, 1} {
		got := newFrame(50, 50)
		d.Play(p).Draw(geom.Zero(), got)
		if !cmp.Equal(want.Pix, got.Pix) {
			t.Errorf("progress %g: display differs from the shape", p)
		}
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	one := geom.MustBezier([]geom.Vector{{X: -10, Y: 0}, {X: 0, Y: 15}, {X: 10, Y: 0}}, geom.Zero(), red, 1)
	two := geom.MustBezier([]geom.Vector{{X: -20, Y: 5}, {X: 3, Y: -7}, {X: 20, Y: 9}}, geom.NewVector(1, 2), blue, 1)

	a, err := NewCurveInterpolate(one, two)
	if err != nil {
		t.Fatalf("NewCurveInterpolate: %v", err)
	}

	start := a.Play(0).(InterpolatedShape)
	end := a.Play(1).(InterpolatedShape)
	mid := a.Play(0.5).(InterpolatedShape)

	for i := 0; i <= 20; i++ {
		tt := float64(i) / 20
		if got, want := start.Trace(tt), one.Trace(tt); got != want {
			t.Errorf("progress 0, t=%g: %v, want %v", tt, got, want)
		}
		if got, want := end.Trace(tt), two.Trace(tt); got != want {
			t.Errorf("progress 1, t=%g: %v, want %v", tt, got, want)
		}
		a, b := one.Trace(tt), two.Trace(tt)
		want := geom.NewVector((a.X+b.X)/2, (a.Y+b.Y)/2)
		if got := mid.Trace(tt); math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
			t.Errorf("progress 0.5, t=%g: %v, want midpoint %v", tt, got, want)
		}
	}

	if start.CurveColor(0) != red || end.CurveColor(0) != blue {
		t.Errorf("endpoint colors %v, %v", start.CurveColor(0), end.CurveColor(0))
	}
	if got, want := mid.CurveColor(0), (geom.RGB{R: 128, B: 128}); got != want {
		t.Errorf("mid color %v, want %v", got, want)
	}
	if got := mid.Curve(0).Trace(0.3); math.Abs(got.X-mid.Trace(0.3).X) > 1e-9 || math.Abs(got.Y-mid.Trace(0.3).Y) > 1e-9 {
		t.Errorf("blended curve %v does not follow the blended trace %v", got, mid.Trace(0.3))
	}
}

func TestInterpolateCurveColors(t *testing.T) {
	green := geom.RGB{G: 255}
	top := geom.MustBezier([]geom.Vector{{X: -10, Y: 10}, {X: 10, Y: 10}}, geom.Zero(), red, 1)
	bottom := geom.MustBezier([]geom.Vector{{X: -10, Y: -10}, {X: 10, Y: -10}}, geom.Zero(), blue, 1)
	one := geom.MustShape([]geom.Bezier{top, bottom}, geom.Zero())

	top2 := geom.MustBezier([]geom.Vector{{X: -10, Y: 10}, {X: 10, Y: 10}}, geom.Zero(), green, 1)
	bottom2 := geom.MustBezier([]geom.Vector{{X: -10, Y: -10}, {X: 10, Y: -10}}, geom.Zero(), white, 1)
	two := geom.MustShape([]geom.Bezier{top2, bottom2}, geom.Zero())

	a, err := NewInterpolate(one, two)
	if err != nil {
		t.Fatalf("NewInterpolate: %v", err)
	}
	snap := a.Play(0.5).(InterpolatedShape)

	want := map[int]geom.RGB{
		20: {R: 128, G: 128},
		40: {R: 128, G: 128, B: 255},
	}
	if got := snap.CurveColor(0); got != want[20] {
		t.Errorf("curve 0 color %v, want %v", got, want[20])
	}
	if got := snap.CurveColor(1); got != want[40] {
		t.Errorf("curve 1 color %v, want %v", got, want[40])
	}

	for p, c := range painted(drawn(snap, 60, 60)) {
		rgb, ok := want[p.Y]
		if !ok {
			t.Fatalf("unexpected pixel %v", p)
		}
		if c != rgb.RGBA() {
			t.Errorf("pixel %v has %v, want %v", p, c, rgb.RGBA())
		}
	}
}

func TestInterpolateDrawMatchesEndpoints(t *testing.T) {
	one := square(t, 10, red, 1)
	two := square(t, 20, blue, 1)
	a, err := NewInterpolate(one, two)
	if err != nil {
		t.Fatalf("NewInterpolate: %v", err)
	}

	for _, tc := range []struct {
		progress float64
		shape    geom.Shape
	}{{0, one}, {1, two}} {
		want := newFrame(60, 60)
		tc.shape.Draw(geom.NewVector(3, -2), want)
		got := newFrame(60, 60)
		a.Play(tc.progress).Draw(geom.NewVector(3, -2), got)
		if !cmp.Equal(want.Pix, got.Pix) {
			t.Errorf("progress %g does not reproduce the endpoint shape", tc.progress)
		}
	}

	// halfway square has half-size 15
	got := painted(drawn(a.Play(0.5), 60, 60))
	if _, ok := got[image.Pt(45, 15)]; !ok {
		t.Errorf("expected corner (45, 15) on the halfway square")
	}
	for p, c := range got {
		if c != (color.RGBA{R: 128, B: 128, A: 255}) {
			t.Fatalf("pixel %v has color %v", p, c)
		}
	}
}

func drawn(a Artist, w, h int) *image.RGBA {
	img := newFrame(w, h)
	a.Draw(geom.Zero(), img)
	return img
}

func TestInterpolateTopologyMismatch(t *testing.T) {
	sq := square(t, 10, white, 1)
	circle, err := geometry.Circle(geom.Zero(), 10, white, 1)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	tri, err := geometry.Polygon([]geom.Vector{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 0, Y: 5}}, geom.Zero(), white, 1)
	if err != nil {
		t.Fatalf("Polygon: %v", err)
	}

	// same curve count, different control-point count
	if _, err := NewInterpolate(sq, circle); !errors.Is(err, geom.ErrGeometryMismatch) {
		t.Errorf("square -> circle: expected ErrGeometryMismatch, got %v", err)
	}
	// different curve count
	if _, err := NewInterpolate(sq, tri); !errors.Is(err, geom.ErrGeometryMismatch) {
		t.Errorf("square -> triangle: expected ErrGeometryMismatch, got %v", err)
	}
	if _, err := NewInterpolate(geom.Shape{}, geom.Shape{}); !errors.Is(err, geom.ErrEmptyGeometry) {
		t.Errorf("empty shapes: expected ErrEmptyGeometry, got %v", err)
	}
}

func TestTraceProgressZeroDrawsNothing(t *testing.T) {
	a, err := NewTrace(square(t, 10, white, 3))
	if err != nil {
		t.Fatalf("NewTrace: %v", err)
	}
	if got := painted(drawn(a.Play(0), 40, 40)); len(got) != 0 {
		t.Errorf("progress 0 painted %d pixels", len(got))
	}
}

func TestTraceFullMatchesRawDraw(t *testing.T) {
	s := square(t, 12, white, 1)
	a, err := NewTrace(s)
	if err != nil {
		t.Fatalf("NewTrace: %v", err)
	}

	raw := newFrame(40, 40)
	s.Draw(geom.Zero(), raw)

	want := painted(raw)
	got := painted(drawn(a.Play(1), 40, 40))
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("traced square differs from raw draw:\n%s", d)
	}
}

func TestTraceThickCoversRawDraw(t *testing.T) {
	const thickness = 5
	s, err := geometry.Circle(geom.NewVector(3, 4), 30, white, thickness)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	a, err := NewTrace(s)
	if err != nil {
		t.Fatalf("NewTrace: %v", err)
	}

	raw := newFrame(100, 100)
	s.Draw(geom.Zero(), raw)
	rawPixels := painted(raw)
	traced := painted(drawn(a.Play(1), 100, 100))

	for p := range rawPixels {
		if _, ok := traced[p]; !ok {
			t.Errorf("raw pixel %v not covered by the trace", p)
		}
	}

	// every stroke pixel is within the brush radius of the outline
	limit := float64(thickness)/2 + 1.5
	for p := range traced {
		best := math.Inf(1)
		for q := range rawPixels {
			best = math.Min(best, math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y)))
		}
		if best > limit {
			t.Errorf("stroke pixel %v is %.2f away from the outline", p, best)
		}
	}
}

func TestTracePartial(t *testing.T) {
	s := square(t, 10, white, 1)
	a, err := NewTrace(s)
	if err != nil {
		t.Fatalf("NewTrace: %v", err)
	}

	// a quarter of the square is its top side, from (10, 10) to (-10, 10)
	got := painted(drawn(a.Play(0.25), 40, 40))
	if len(got) != 21 {
		t.Errorf("expected 21 pixels on the top side, got %d", len(got))
	}
	for p := range got {
		if p.Y != 10 || p.X < 10 || p.X > 30 {
			t.Errorf("unexpected pixel %v", p)
		}
	}
}

func TestTraceEmptyShape(t *testing.T) {
	if _, err := NewTrace(geom.Shape{}); !errors.Is(err, geom.ErrEmptyGeometry) {
		t.Errorf("expected ErrEmptyGeometry, got %v", err)
	}
}

func TestTraceClampsProgress(t *testing.T) {
	a, err := NewTrace(square(t, 10, white, 1))
	if err != nil {
		t.Fatalf("NewTrace: %v", err)
	}
	over := painted(drawn(a.Play(1.7), 40, 40))
	full := painted(drawn(a.Play(1), 40, 40))
	if !cmp.Equal(over, full) {
		t.Error("progress above 1 should draw the full outline")
	}
}
