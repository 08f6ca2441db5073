package geom

import "errors"

var (
	// ErrEmptyGeometry is returned when a shape has no curves to draw
	ErrEmptyGeometry = errors.New("empty geometry")
	// ErrGeometryMismatch is returned when two shapes differ in curve or control-point count
	ErrGeometryMismatch = errors.New("geometry topology mismatch")
	// ErrOrderTooHigh is returned for curves whose binomial coefficients lose precision
	ErrOrderTooHigh = errors.New("bezier order too high")
)
