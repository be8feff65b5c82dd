package paint

import (
	"image/color"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// GradientKind selects the gradient geometry.
type GradientKind int

const (
	// Linear interpolates along the line from (X0, Y0) to (X1, Y1).
	Linear GradientKind = iota
	// Radial interpolates between the circles (X0, Y0, R0) and (X1, Y1, R1).
	Radial
)

// Stop is a colour at an offset along a gradient.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a linear or two-circle radial gradient with pad extension.
// Coordinates are in the user space that was active when the gradient is
// used for a fill, matching the HTML canvas model.
type Gradient struct {
	Kind       GradientKind
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	stops      []Stop
	ordered    []Stop
}

// NewLinearGradient returns a gradient along (x0, y0) -> (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return &Gradient{Kind: Linear, X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// NewRadialGradient returns a gradient between two circles.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) *Gradient {
	return &Gradient{Kind: Radial, X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1}
}

// AddColorStop appends a stop. Offsets are not validated: values outside
// [0, 1] are clamped and NaN offsets are dropped. Stops with
// equal offsets keep their insertion order, producing a hard edge.
func (g *Gradient) AddColorStop(offset float64, c color.Color) {
	if math.IsNaN(offset) {
		return
	}
	g.stops = append(g.stops, Stop{Offset: clamp(offset, 0, 1), Color: ToNRGBA(c)})
	g.ordered = make([]Stop, len(g.stops))
	copy(g.ordered, g.stops)
	sort.SliceStable(g.ordered, func(i, j int) bool { return g.ordered[i].Offset < g.ordered[j].Offset })
}

// Stops returns a copy of the stops in the order they were added.
func (g *Gradient) Stops() []Stop {
	out := make([]Stop, len(g.stops))
	copy(out, g.stops)
	return out
}

// ColorAt samples the gradient at a user-space point.
func (g *Gradient) ColorAt(x, y float64) color.NRGBA {
	t, ok := g.param(x, y)
	if !ok {
		return color.NRGBA{}
	}
	return g.At(t)
}

// At returns the interpolated colour at parameter t, padded outside [0, 1].
// It does not mutate g, so sampling is safe from concurrent rasterisers.
func (g *Gradient) At(t float64) color.NRGBA {
	stops := g.ordered
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	t = clamp(t, 0, 1)

	first, last := stops[0], stops[len(stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}

	i := sort.Search(len(stops), func(i int) bool { return stops[i].Offset > t })
	a, b := stops[i-1], stops[i]
	span := b.Offset - a.Offset
	if span <= 0 {
		return b.Color
	}
	return blend(a.Color, b.Color, (t-a.Offset)/span)
}

func (g *Gradient) param(x, y float64) (float64, bool) {
	if g.Kind == Linear {
		dx, dy := g.X1-g.X0, g.Y1-g.Y0
		den := dx*dx + dy*dy
		if den == 0 {
			return 0, false
		}
		return ((x-g.X0)*dx + (y-g.Y0)*dy) / den, true
	}

	// Two-circle radial: the largest t with r(t) >= 0 such that p lies on
	// the circle interpolated between the start and end circles.
	cdx, cdy := g.X1-g.X0, g.Y1-g.Y0
	pdx, pdy := x-g.X0, y-g.Y0
	dr := g.R1 - g.R0

	a := cdx*cdx + cdy*cdy - dr*dr
	b := pdx*cdx + pdy*cdy + g.R0*dr
	c := pdx*pdx + pdy*pdy - g.R0*g.R0

	if a == 0 {
		if b == 0 {
			return 0, false
		}
		t := c / (2 * b)
		return t, g.R0+t*dr >= 0
	}

	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1, t2 := (b+sq)/a, (b-sq)/a
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	if g.R0+t1*dr >= 0 {
		return t1, true
	}
	if g.R0+t2*dr >= 0 {
		return t2, true
	}
	return 0, false
}

// blend mixes two colours in RGB space with go-colorful and lerps alpha.
func blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(alpha))}
}
