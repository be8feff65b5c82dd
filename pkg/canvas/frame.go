package canvas

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	// DefaultReferenceSize is the design size draw code is authored against.
	DefaultReferenceSize = 400.0
	// DefaultLightBackground is the light theme background.
	DefaultLightBackground = "#87CEEB"
	// DefaultDarkBackground is the dark theme background.
	DefaultDarkBackground = "#1a1a2e"
	// MinScale is the floor applied when the surface is degenerate.
	MinScale = 1e-6
)

// Random is the source of per-call randomness for organic hatch tiles.
// Both *math/rand.Rand and *math/rand/v2.Rand satisfy it.
type Random interface {
	Float64() float64
}

// FrameOptions configures NewFrame. Zero values select the defaults.
type FrameOptions struct {
	ReferenceSize   float64
	LightBackground string
	DarkBackground  string
	// Dark selects which background Label contrasts against.
	Dark bool
	// Rand seeds the earth and gravel hatch tiles. Nil uses the global
	// source, so repeated tiles differ slightly.
	Rand Random
	// Elapsed is the time since the surface was mounted, for animation.
	Elapsed time.Duration
}

func (o FrameOptions) withDefaults() FrameOptions {
	if !(o.ReferenceSize > 0) || math.IsInf(o.ReferenceSize, 0) {
		o.ReferenceSize = DefaultReferenceSize
	}
	if o.LightBackground == "" {
		o.LightBackground = DefaultLightBackground
	}
	if o.DarkBackground == "" {
		o.DarkBackground = DefaultDarkBackground
	}
	return o
}

// Frame is an immutable snapshot of a surface's dimensions that turns
// reference-size units into pixels and issues scaled drawing primitives.
// Build a new Frame for every draw; do not keep one past the draw call.
type Frame struct {
	ctx    Context
	opts   FrameOptions
	width  float64
	height float64
	scale  float64
}

// NewFrame snapshots ctx. A nil or zero-sized context yields a degenerate
// frame whose scale is MinScale and whose primitives draw nothing.
func NewFrame(ctx Context, opts FrameOptions) *Frame {
	opts = opts.withDefaults()
	f := &Frame{ctx: ctx, opts: opts}
	if ctx != nil {
		f.width = math.Max(0, float64(ctx.Width()))
		f.height = math.Max(0, float64(ctx.Height()))
	}
	f.scale = math.Min(f.width, f.height) / opts.ReferenceSize
	if !(f.scale > 0) || math.IsInf(f.scale, 0) {
		f.scale = MinScale
	}
	return f
}

// Context returns the drawing context the frame issues primitives to.
func (f *Frame) Context() Context { return f.ctx }

// Scale is min(width, height) / reference size, never below MinScale.
func (f *Frame) Scale() float64 { return f.scale }

// ReferenceSize returns the design size in use.
func (f *Frame) ReferenceSize() float64 { return f.opts.ReferenceSize }

func (f *Frame) Width() float64   { return f.width }
func (f *Frame) Height() float64  { return f.height }
func (f *Frame) CenterX() float64 { return f.width / 2 }
func (f *Frame) CenterY() float64 { return f.height / 2 }

// LightBackground returns the declared light theme background string.
func (f *Frame) LightBackground() string { return f.opts.LightBackground }

// DarkBackground returns the declared dark theme background string.
func (f *Frame) DarkBackground() string { return f.opts.DarkBackground }

// Dark reports whether the frame was built for the dark theme.
func (f *Frame) Dark() bool { return f.opts.Dark }

// Seconds is FrameOptions.Elapsed in seconds.
func (f *Frame) Seconds() float64 { return f.opts.Elapsed.Seconds() }

// Size scales a reference length with a floor of one pixel.
func (f *Frame) Size(v float64) float64 { return math.Max(1, v*f.scale) }

// Radius is Size, named for readability at call sites.
func (f *Frame) Radius(v float64) float64 { return f.Size(v) }

// Spacing is Size, named for readability at call sites.
func (f *Frame) Spacing(v float64) float64 { return f.Size(v) }

// Margin scales a reference length with a floor of two pixels.
func (f *Frame) Margin(v float64) float64 { return math.Max(2, v*f.scale) }

// X scales a reference coordinate without a floor.
func (f *Frame) X(v float64) float64 { return v * f.scale }

// Y scales a reference coordinate without a floor.
func (f *Frame) Y(v float64) float64 { return v * f.scale }

// PercentX returns p percent of the surface width.
func (f *Frame) PercentX(p float64) float64 { return f.width * p / 100 }

// PercentY returns p percent of the surface height.
func (f *Frame) PercentY(p float64) float64 { return f.height * p / 100 }

// FontSize scales a font size with a floor of min, which defaults to 8.
func (f *Frame) FontSize(base float64, min ...float64) float64 {
	return math.Max(optional(min, 8), base*f.scale)
}

// LineWidth scales a stroke width with a floor of min, which defaults to 1.
func (f *Frame) LineWidth(base float64, min ...float64) float64 {
	return math.Max(optional(min, 1), base*f.scale)
}

// DashArray returns an equal dash and gap, scaled with a floor of two.
func (f *Frame) DashArray(base float64) []float64 {
	d := math.Max(2, base*f.scale)
	return []float64{d, d}
}

func optional(v []float64, def float64) float64 {
	if len(v) > 0 {
		return v[0]
	}
	return def
}

func (f *Frame) random() float64 {
	if f.opts.Rand != nil {
		return f.opts.Rand.Float64()
	}
	return rand.Float64()
}
