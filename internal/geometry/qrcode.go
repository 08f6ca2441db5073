package geometry

import (
	"fmt"

	"github.com/ivlev/beaverstudio/internal/geom"
	"github.com/skip2/go-qrcode"
)

// QROptions controls how a QR code is turned into strokes
type QROptions struct {
	Content string
	Level   qrcode.RecoveryLevel
	// Module is the size of one QR module in pixels
	Module float64
	// Border keeps the quiet zone around the symbol
	Border bool
}

// QRCode renders content as a QR symbol centered on center. Each run of
// dark modules in a row becomes one horizontal stroke, so the symbol is
// readable once drawn with thickness close to Module.
func QRCode(opts QROptions, center geom.Vector, color geom.RGB, thickness int) (geom.Shape, error) {
	if opts.Module <= 0 {
		return geom.Shape{}, fmt.Errorf("qr module size must be positive, got %g", opts.Module)
	}

	q, err := qrcode.New(opts.Content, opts.Level)
	if err != nil {
		return geom.Shape{}, fmt.Errorf("qrcode: %w", err)
	}
	q.DisableBorder = !opts.Border

	bitmap := q.Bitmap()
	size := float64(len(bitmap)) * opts.Module
	half := size / 2

	// Module centers; Y grows upwards while bitmap rows grow downwards.
	at := func(col, row int) geom.Vector {
		return geom.NewVector(
			float64(col)*opts.Module+opts.Module/2-half,
			half-float64(row)*opts.Module-opts.Module/2,
		)
	}

	var curves []geom.Bezier
	for row, bits := range bitmap {
		for col := 0; col < len(bits); {
			if !bits[col] {
				col++
				continue
			}
			start := col
			for col < len(bits) && bits[col] {
				col++
			}
			curves = append(curves, line(at(start, row), at(col-1, row), color, thickness))
		}
	}

	if len(curves) == 0 {
		return geom.Shape{}, fmt.Errorf("qrcode %q: %w", opts.Content, geom.ErrEmptyGeometry)
	}
	return geom.NewShape(curves, center)
}
