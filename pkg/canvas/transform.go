package canvas

import (
	"image/color"
	"math"

	"github.com/opd-ai/go-canvas/internal/paint"
)

// GradientKind selects the shape built by Frame.Gradient.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientRadial
)

// ColorStop is one stop of a gradient, Offset normally in [0, 1].
type ColorStop struct {
	Offset float64
	Color  color.Color
}

// Transform translates to (x, y), rotates by rotation radians and scales,
// returning a function that reinstates the exact prior matrix. scale takes
// zero values (no scaling), one (uniform) or two (x then y).
//
//	restore := f.Transform(cx, cy, angle)
//	defer restore()
func (f *Frame) Transform(x, y, rotation float64, scale ...float64) (restore func()) {
	if f.ctx == nil {
		return func() {}
	}
	prev := f.ctx.Transform()
	f.ctx.Translate(x, y)
	if rotation != 0 {
		f.ctx.Rotate(rotation)
	}
	switch len(scale) {
	case 0:
	case 1:
		f.ctx.Scale(scale[0], scale[0])
	default:
		f.ctx.Scale(scale[0], scale[1])
	}
	return func() { f.ctx.SetTransform(prev) }
}

// Gradient builds a gradient from (x1, y1) to (x2, y2). Radial gradients
// start as a point at (x1, y1) and end on the circle around (x2, y2) whose
// radius is the distance between the two points. Stops are added in order
// and passed through as given.
func (f *Frame) Gradient(kind GradientKind, x1, y1, x2, y2 float64, stops []ColorStop) Gradient {
	var g Gradient
	switch {
	case f.ctx == nil && kind == GradientRadial:
		g = paint.NewRadialGradient(x1, y1, 0, x2, y2, math.Hypot(x2-x1, y2-y1))
	case f.ctx == nil:
		g = paint.NewLinearGradient(x1, y1, x2, y2)
	case kind == GradientRadial:
		g = f.ctx.CreateRadialGradient(x1, y1, 0, x2, y2, math.Hypot(x2-x1, y2-y1))
	default:
		g = f.ctx.CreateLinearGradient(x1, y1, x2, y2)
	}
	for _, s := range stops {
		g.AddColorStop(s.Offset, s.Color)
	}
	return g
}
