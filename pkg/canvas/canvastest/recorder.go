// Package canvastest provides a recording canvas.Context and a Surface for
// tests of draw code and hosts.
package canvastest

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/opd-ai/go-canvas/internal/paint"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// ErrOffscreen is returned by NewOffscreen when FailOffscreen is set.
var ErrOffscreen = errors.New("canvastest: offscreen unavailable")

// Op is one recorded call.
type Op struct {
	Name string
	Args []float64
	Text string
}

func (o Op) String() string {
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = fmt.Sprintf("%g", a)
	}
	if o.Text != "" {
		parts = append([]string{fmt.Sprintf("%q", o.Text)}, parts...)
	}
	return o.Name + "(" + strings.Join(parts, ", ") + ")"
}

type state struct {
	fill, stroke color.Color
	fillPaint    canvas.Paint
	strokePaint  canvas.Paint
	lineWidth    float64
	cap          canvas.LineCap
	dash         []float64
	font         float64
	m            canvas.Matrix
}

// Recorder is a canvas.Context that draws nothing and logs every call. It
// keeps the drawing state, so getters and Transform behave like a real
// context. It is safe for concurrent use.
type Recorder struct {
	// FailOffscreen makes NewOffscreen fail.
	FailOffscreen bool
	// FailPattern makes CreatePattern fail.
	FailPattern bool

	mu    sync.Mutex
	w, h  int
	ops   []Op
	st    state
	stack []state
	tiles []*Recorder
}

// NewRecorder returns a w by h recorder with canvas defaults.
func NewRecorder(w, h int) *Recorder {
	r := &Recorder{w: w, h: h}
	r.st = defaultState()
	return r
}

func defaultState() state {
	return state{
		fill:      color.NRGBA{A: 255},
		stroke:    color.NRGBA{A: 255},
		lineWidth: 1,
		font:      10,
		m:         paint.Identity(),
	}
}

func (r *Recorder) rec(name string, args ...float64) {
	r.ops = append(r.ops, Op{Name: name, Args: args})
}

// Ops returns a copy of the call log.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Names returns the name of every recorded call, in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.ops))
	for i, op := range r.ops {
		names[i] = op.Name
	}
	return names
}

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Reset clears the call log but keeps the drawing state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

// Tiles returns the offscreen recorders handed out by NewOffscreen.
func (r *Recorder) Tiles() []*Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Recorder(nil), r.tiles...)
}

// Dash returns the current dash pattern.
func (r *Recorder) Dash() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.st.dash...)
}

// LineCap returns the current line cap.
func (r *Recorder) LineCap() canvas.LineCap {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.cap
}

// FontSize returns the current font size.
func (r *Recorder) FontSize() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.font
}

// FillPaint returns the Paint set by SetFillPaint, if any.
func (r *Recorder) FillPaint() canvas.Paint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.fillPaint
}

func (r *Recorder) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w
}

func (r *Recorder) Height() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.h
}

// SetSize resizes the recorder, which lets it double as a Surface context.
func (r *Recorder) SetSize(w, h int) {
	r.mu.Lock()
	r.w, r.h = w, h
	r.mu.Unlock()
}

func (r *Recorder) Save() {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.st
	s.dash = append([]float64(nil), r.st.dash...)
	r.stack = append(r.stack, s)
	r.rec("Save")
}

func (r *Recorder) Restore() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.stack); n > 0 {
		r.st = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.rec("Restore")
}

func (r *Recorder) SetFillColor(c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.fill, r.st.fillPaint = c, nil
	r.ops = append(r.ops, Op{Name: "SetFillColor", Text: paint.ToCSS(paint.ToNRGBA(c))})
}

func (r *Recorder) SetStrokeColor(c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.stroke, r.st.strokePaint = c, nil
	r.ops = append(r.ops, Op{Name: "SetStrokeColor", Text: paint.ToCSS(paint.ToNRGBA(c))})
}

func (r *Recorder) FillColor() color.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.fill
}

func (r *Recorder) StrokeColor() color.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.stroke
}

func (r *Recorder) SetFillPaint(p canvas.Paint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.fillPaint = p
	r.rec("SetFillPaint")
}

func (r *Recorder) SetStrokePaint(p canvas.Paint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.strokePaint = p
	r.rec("SetStrokePaint")
}

func (r *Recorder) SetLineWidth(w float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.lineWidth = w
	r.rec("SetLineWidth", w)
}

func (r *Recorder) LineWidth() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.lineWidth
}

func (r *Recorder) SetLineCap(c canvas.LineCap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.cap = c
	r.rec("SetLineCap", float64(c))
}

func (r *Recorder) SetLineDash(segments []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.dash = append([]float64(nil), segments...)
	r.rec("SetLineDash", segments...)
}

func (r *Recorder) SetFontSize(px float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.font = px
	r.rec("SetFontSize", px)
}

func (r *Recorder) op(name string, args ...float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec(name, args...)
}

func (r *Recorder) BeginPath()          { r.op("BeginPath") }
func (r *Recorder) MoveTo(x, y float64) { r.op("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.op("LineTo", x, y) }
func (r *Recorder) ClosePath()          { r.op("ClosePath") }
func (r *Recorder) Fill()               { r.op("Fill") }
func (r *Recorder) Stroke()             { r.op("Stroke") }

func (r *Recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.op("QuadraticCurveTo", cpx, cpy, x, y)
}

func (r *Recorder) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.op("BezierCurveTo", c1x, c1y, c2x, c2y, x, y)
}

func (r *Recorder) Arc(x, y, rad, start, end float64, ccw bool) {
	dir := 0.0
	if ccw {
		dir = 1
	}
	r.op("Arc", x, y, rad, start, end, dir)
}

func (r *Recorder) Rect(x, y, w, h float64)      { r.op("Rect", x, y, w, h) }
func (r *Recorder) FillRect(x, y, w, h float64)  { r.op("FillRect", x, y, w, h) }
func (r *Recorder) ClearRect(x, y, w, h float64) { r.op("ClearRect", x, y, w, h) }

func (r *Recorder) FillText(s string, x, y float64, opts canvas.TextOptions) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{
		Name: "FillText",
		Text: s,
		Args: []float64{x, y, float64(opts.Align), float64(opts.Baseline), opts.MaxWidth},
	})
}

// MeasureText approximates glyphs as 0.6em wide.
func (r *Recorder) MeasureText(s string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return float64(len([]rune(s))) * r.st.font * 0.6
}

func (r *Recorder) Translate(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.m = r.st.m.Translate(x, y)
	r.rec("Translate", x, y)
}

func (r *Recorder) Rotate(rad float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.m = r.st.m.Rotate(rad)
	r.rec("Rotate", rad)
}

func (r *Recorder) Scale(sx, sy float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.m = r.st.m.Scale(sx, sy)
	r.rec("Scale", sx, sy)
}

func (r *Recorder) Transform() canvas.Matrix {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.m
}

func (r *Recorder) SetTransform(m canvas.Matrix) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.m = m
	r.rec("SetTransform", m.A, m.B, m.C, m.D, m.E, m.F)
}

func (r *Recorder) CreateLinearGradient(x0, y0, x1, y1 float64) canvas.Gradient {
	r.op("CreateLinearGradient", x0, y0, x1, y1)
	return paint.NewLinearGradient(x0, y0, x1, y1)
}

func (r *Recorder) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) canvas.Gradient {
	r.op("CreateRadialGradient", x0, y0, r0, x1, y1, r1)
	return paint.NewRadialGradient(x0, y0, r0, x1, y1, r1)
}

func (r *Recorder) NewOffscreen(w, h int) (canvas.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec("NewOffscreen", float64(w), float64(h))
	if r.FailOffscreen {
		return nil, ErrOffscreen
	}
	t := NewRecorder(w, h)
	r.tiles = append(r.tiles, t)
	return t, nil
}

// Pattern is the Paint returned by CreatePattern. It paints the tile's
// stroke colour everywhere.
type Pattern struct {
	Tile *Recorder
}

func (p *Pattern) ColorAt(x, y float64) color.NRGBA {
	return paint.ToNRGBA(p.Tile.StrokeColor())
}

func (r *Recorder) CreatePattern(tile canvas.Context) (canvas.Paint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec("CreatePattern")
	t, ok := tile.(*Recorder)
	if !ok || r.FailPattern {
		return nil, errors.New("canvastest: pattern unavailable")
	}
	return &Pattern{Tile: t}, nil
}

var _ canvas.Context = (*Recorder)(nil)
