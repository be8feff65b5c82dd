package canvas

import "math"

// TextStyle sets the font size and placement for Frame.Text. Size should
// already be scaled with FontSize.
type TextStyle struct {
	Size     float64
	Align    TextAlign
	Baseline TextBaseline
	MaxWidth float64
}

func (f *Frame) finish(fill bool) {
	if fill {
		f.ctx.Fill()
	} else {
		f.ctx.Stroke()
	}
}

// Circle draws a full circle, filled or stroked.
func (f *Frame) Circle(x, y, r float64, fill bool) {
	if f.ctx == nil {
		return
	}
	f.ctx.BeginPath()
	f.ctx.Arc(x, y, r, 0, 2*math.Pi, false)
	f.finish(fill)
}

// Rect draws an axis-aligned rectangle, filled or stroked.
func (f *Frame) Rect(x, y, w, h float64, fill bool) {
	if f.ctx == nil {
		return
	}
	f.ctx.BeginPath()
	f.ctx.Rect(x, y, w, h)
	f.finish(fill)
}

// Line strokes a single segment.
func (f *Frame) Line(x1, y1, x2, y2 float64) {
	if f.ctx == nil {
		return
	}
	f.ctx.BeginPath()
	f.ctx.MoveTo(x1, y1)
	f.ctx.LineTo(x2, y2)
	f.ctx.Stroke()
}

// Text fills s with the current fill colour.
func (f *Frame) Text(s string, x, y float64, style TextStyle) {
	if f.ctx == nil {
		return
	}
	f.ctx.SetFontSize(style.Size)
	f.ctx.FillText(s, x, y, TextOptions{
		Align:    style.Align,
		Baseline: style.Baseline,
		MaxWidth: style.MaxWidth,
	})
}

// Arc draws a clockwise arc from start to end radians.
func (f *Frame) Arc(x, y, r, start, end float64, fill bool) {
	if f.ctx == nil {
		return
	}
	f.ctx.BeginPath()
	f.ctx.Arc(x, y, r, start, end, false)
	f.finish(fill)
}

// RoundedRect draws a rectangle whose corners are quadratic curves of the
// given radius.
func (f *Frame) RoundedRect(x, y, w, h, radius float64, fill bool) {
	if f.ctx == nil {
		return
	}
	c := f.ctx
	c.BeginPath()
	c.MoveTo(x+radius, y)
	c.LineTo(x+w-radius, y)
	c.QuadraticCurveTo(x+w, y, x+w, y+radius)
	c.LineTo(x+w, y+h-radius)
	c.QuadraticCurveTo(x+w, y+h, x+w-radius, y+h)
	c.LineTo(x+radius, y+h)
	c.QuadraticCurveTo(x, y+h, x, y+h-radius)
	c.LineTo(x, y+radius)
	c.QuadraticCurveTo(x, y, x+radius, y)
	c.ClosePath()
	f.finish(fill)
}
