package paint

import (
	"image/color"
	"math"
)

// Source yields a colour at a user-space point.
type Source interface {
	ColorAt(x, y float64) color.NRGBA
}

// Solid is a single-colour Source.
type Solid color.NRGBA

func (s Solid) ColorAt(float64, float64) color.NRGBA { return color.NRGBA(s) }

// Line caps, in the order the public API declares them.
const (
	CapButt = iota
	CapRound
	CapSquare
)

// State is the drawing state that Save and Restore snapshot.
type State struct {
	FillColor   color.Color
	StrokeColor color.Color
	// Fill and Stroke are what the rasteriser samples. Setting a colour
	// replaces them with a Solid.
	Fill      Source
	Stroke    Source
	LineWidth float64
	Cap       int
	Dash      []float64
	FontSize  float64
	M         Matrix
}

// DefaultState matches a fresh canvas context: opaque black, 1px butt
// lines, a 10px font and no transform.
func DefaultState() State {
	black := color.NRGBA{A: 255}
	return State{
		FillColor:   black,
		StrokeColor: black,
		Fill:        Solid(black),
		Stroke:      Solid(black),
		LineWidth:   1,
		FontSize:    10,
		M:           Identity(),
	}
}

// Stack holds the current State and the saved ones beneath it.
type Stack struct {
	cur   State
	saved []State
}

// NewStack returns a Stack whose current state is DefaultState.
func NewStack() Stack {
	return Stack{cur: DefaultState()}
}

// Cur returns the live state for modification.
func (s *Stack) Cur() *State { return &s.cur }

func (s *Stack) Save() {
	c := s.cur
	c.Dash = append([]float64(nil), s.cur.Dash...)
	s.saved = append(s.saved, c)
}

// Restore pops the last saved state. Unbalanced calls are ignored.
func (s *Stack) Restore() {
	if n := len(s.saved); n > 0 {
		s.cur = s.saved[n-1]
		s.saved = s.saved[:n-1]
	}
}

// SetFillColor sets a solid fill. A nil colour is ignored.
func (s *Stack) SetFillColor(c color.Color) {
	if c == nil {
		return
	}
	s.cur.FillColor = c
	s.cur.Fill = Solid(ToNRGBA(c))
}

// SetStrokeColor sets a solid stroke. A nil colour is ignored.
func (s *Stack) SetStrokeColor(c color.Color) {
	if c == nil {
		return
	}
	s.cur.StrokeColor = c
	s.cur.Stroke = Solid(ToNRGBA(c))
}

// SetLineWidth ignores non-positive and non-finite widths.
func (s *Stack) SetLineWidth(w float64) {
	if w > 0 && !isInf(w) {
		s.cur.LineWidth = w
	}
}

// SetDash ignores patterns with negative or non-finite entries. An odd
// pattern is repeated to make it even.
func (s *Stack) SetDash(d []float64) {
	for _, v := range d {
		if !(v >= 0) || isInf(v) {
			return
		}
	}
	if len(d)%2 == 1 {
		d = append(append([]float64(nil), d...), d...)
	}
	s.cur.Dash = append([]float64(nil), d...)
}

// SetFontSize ignores non-positive sizes.
func (s *Stack) SetFontSize(px float64) {
	if px > 0 && !isInf(px) {
		s.cur.FontSize = px
	}
}

// DeviceDash returns the dash pattern scaled into device units.
func (s *Stack) DeviceDash() []float64 {
	if len(s.cur.Dash) == 0 {
		return nil
	}
	k := s.cur.M.LineScale()
	out := make([]float64, len(s.cur.Dash))
	for i, v := range s.cur.Dash {
		out[i] = v * k
	}
	return out
}

// UserSource wraps src so it can be sampled at device pixels: each device
// point is mapped back through the inverse of m. A singular m samples
// nothing.
func UserSource(src Source, m Matrix) func(x, y float64) color.NRGBA {
	if _, ok := src.(Solid); ok || m.IsIdentity() {
		return src.ColorAt
	}
	inv, ok := m.Invert()
	if !ok {
		return func(float64, float64) color.NRGBA { return color.NRGBA{} }
	}
	return func(x, y float64) color.NRGBA {
		ux, uy := inv.Apply(x, y)
		return src.ColorAt(ux, uy)
	}
}

// SetFillSource sets a patterned or gradient fill. Nil is ignored.
func (s *Stack) SetFillSource(src Source) {
	if src != nil {
		s.cur.Fill = src
	}
}

// SetStrokeSource sets a patterned or gradient stroke. Nil is ignored.
func (s *Stack) SetStrokeSource(src Source) {
	if src != nil {
		s.cur.Stroke = src
	}
}

func isInf(v float64) bool { return math.IsInf(v, 0) }
