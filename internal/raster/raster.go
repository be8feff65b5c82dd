// Package raster is a headless canvas.Context backed by the gogpu/gg CPU
// rasteriser. It renders PNG snapshots and serves pixel-level tests.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-canvas/internal/paint"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// ErrInvalidSize is returned for surfaces with a non-positive dimension.
var ErrInvalidSize = errors.New("raster: invalid size")

var (
	fontOnce sync.Once
	fontSrc  *text.FontSource
	fontErr  error
)

func defaultFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSrc, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSrc, fontErr
}

// Canvas draws into an in-memory RGBA pixmap. The gg context always runs
// with an identity transform; paths are flattened into device space by
// internal/paint before they reach gg.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	gc    *gg.Context
	w, h  int
	st    paint.Stack
	path  paint.Path
	faces map[float64]text.Face
	mask  *gg.Context
	err   error
}

// New returns a transparent w by h canvas.
func New(w, h int) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &Canvas{
		gc:    gg.NewContext(w, h),
		w:     w,
		h:     h,
		st:    paint.NewStack(),
		faces: make(map[float64]text.Face),
	}, nil
}

// Err returns the first error reported by the rasteriser, if any.
func (c *Canvas) Err() error { return c.err }

func (c *Canvas) keep(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

// Resize reallocates the pixmap, which clears it. Drawing state is reset.
func (c *Canvas) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if err := c.gc.Resize(w, h); err != nil {
		return fmt.Errorf("resize pixmap: %w", err)
	}
	c.w, c.h = w, h
	c.st = paint.NewStack()
	c.path.Reset()
	return nil
}

// Image returns a copy of the pixels.
func (c *Canvas) Image() image.Image { return c.gc.Image() }

// SavePNG writes the pixels to a PNG file.
func (c *Canvas) SavePNG(path string) error { return c.gc.SavePNG(path) }

// EncodePNG writes the pixels as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.gc.EncodePNG(w) }

// Close releases the gg contexts.
func (c *Canvas) Close() error {
	if c.mask != nil {
		c.mask.Close()
		c.mask = nil
	}
	return c.gc.Close()
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

func (c *Canvas) Save()    { c.st.Save() }
func (c *Canvas) Restore() { c.st.Restore() }

func (c *Canvas) SetFillColor(col color.Color)   { c.st.SetFillColor(col) }
func (c *Canvas) SetStrokeColor(col color.Color) { c.st.SetStrokeColor(col) }
func (c *Canvas) FillColor() color.Color         { return c.st.Cur().FillColor }
func (c *Canvas) StrokeColor() color.Color       { return c.st.Cur().StrokeColor }
func (c *Canvas) SetFillPaint(p canvas.Paint)    { c.st.SetFillSource(p) }
func (c *Canvas) SetStrokePaint(p canvas.Paint)  { c.st.SetStrokeSource(p) }
func (c *Canvas) SetLineWidth(w float64)         { c.st.SetLineWidth(w) }
func (c *Canvas) LineWidth() float64             { return c.st.Cur().LineWidth }
func (c *Canvas) SetLineCap(lc canvas.LineCap)   { c.st.Cur().Cap = int(lc) }
func (c *Canvas) SetLineDash(d []float64)        { c.st.SetDash(d) }
func (c *Canvas) SetFontSize(px float64)         { c.st.SetFontSize(px) }

func (c *Canvas) m() paint.Matrix { return c.st.Cur().M }

func (c *Canvas) BeginPath()          { c.path.Reset() }
func (c *Canvas) MoveTo(x, y float64) { c.path.MoveTo(c.m(), x, y) }
func (c *Canvas) LineTo(x, y float64) { c.path.LineTo(c.m(), x, y) }
func (c *Canvas) ClosePath()          { c.path.Close() }

func (c *Canvas) QuadraticCurveTo(cpx, cpy, x, y float64) {
	c.path.QuadTo(c.m(), cpx, cpy, x, y)
}

func (c *Canvas) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.path.CubicTo(c.m(), c1x, c1y, c2x, c2y, x, y)
}

func (c *Canvas) Arc(x, y, r, start, end float64, ccw bool) {
	c.path.Arc(c.m(), x, y, r, start, end, ccw)
}

func (c *Canvas) Rect(x, y, w, h float64) { c.path.Rect(c.m(), x, y, w, h) }

func (c *Canvas) Translate(x, y float64) { c.st.Cur().M = c.m().Translate(x, y) }
func (c *Canvas) Rotate(rad float64)     { c.st.Cur().M = c.m().Rotate(rad) }
func (c *Canvas) Scale(sx, sy float64)   { c.st.Cur().M = c.m().Scale(sx, sy) }

func (c *Canvas) Transform() canvas.Matrix     { return c.m() }
func (c *Canvas) SetTransform(m canvas.Matrix) { c.st.Cur().M = m }

// load replaces gc's path with the device-space subpaths.
func load(gc *gg.Context, sps []paint.Subpath) {
	gc.ClearPath()
	for _, sp := range sps {
		if len(sp.Points) == 0 {
			continue
		}
		gc.MoveTo(sp.Points[0].X, sp.Points[0].Y)
		for _, p := range sp.Points[1:] {
			gc.LineTo(p.X, p.Y)
		}
		if sp.Closed {
			gc.ClosePath()
		}
	}
}

// draw rasterises sps with src. gg's CPU renderer only takes solid
// colours, so any other source is drawn as white coverage into a scratch
// context and composited by sampling src per pixel.
func (c *Canvas) draw(sps []paint.Subpath, src paint.Source, stroke bool) {
	if s, ok := src.(paint.Solid); ok {
		c.rasterise(c.gc, sps, color.NRGBA(s), stroke)
		return
	}
	if c.mask == nil || c.mask.Width() != c.w || c.mask.Height() != c.h {
		if c.mask != nil {
			c.mask.Close()
		}
		c.mask = gg.NewContext(c.w, c.h)
	}
	c.mask.ClearWithColor(gg.Transparent)
	c.rasterise(c.mask, sps, color.White, stroke)
	composite(c.gc.ResizeTarget().Data(), c.mask.ResizeTarget().Data(), c.w,
		paint.UserSource(src, c.m()))
}

func (c *Canvas) rasterise(gc *gg.Context, sps []paint.Subpath, col color.Color, stroke bool) {
	load(gc, sps)
	gc.SetColor(col)
	if !stroke {
		c.keep(gc.Fill())
		return
	}
	cur := c.st.Cur()
	gc.SetLineWidth(cur.LineWidth * cur.M.LineScale())
	gc.SetLineCap(ggCap(cur.Cap))
	if d := c.st.DeviceDash(); len(d) > 0 {
		gc.SetDash(d...)
	} else {
		gc.ClearDash()
	}
	c.keep(gc.Stroke())
}

// composite blends sample source-over onto the straight-alpha RGBA pixels
// in dst, weighted by the alpha channel of cov.
func composite(dst, cov []uint8, stride int, sample func(x, y float64) color.NRGBA) {
	for i := 3; i < len(cov) && i < len(dst); i += 4 {
		if cov[i] == 0 {
			continue
		}
		px := (i / 4) % stride
		py := (i / 4) / stride
		s := sample(float64(px)+0.5, float64(py)+0.5)
		sa := float64(s.A) / 255 * float64(cov[i]) / 255
		if sa == 0 {
			continue
		}
		o := i - 3
		da := float64(dst[o+3]) / 255
		keep := da * (1 - sa)
		outA := sa + keep
		for k, sc := range [3]uint8{s.R, s.G, s.B} {
			v := (float64(sc)*sa + float64(dst[o+k])*keep) / outA
			dst[o+k] = uint8(math.Round(v))
		}
		dst[o+3] = uint8(math.Round(outA * 255))
	}
}

func (c *Canvas) Fill() {
	if c.path.Empty() {
		return
	}
	c.draw(c.path.Subpaths(), c.st.Cur().Fill, false)
}

func (c *Canvas) Stroke() {
	if c.path.Empty() {
		return
	}
	c.draw(c.path.Subpaths(), c.st.Cur().Stroke, true)
}

func ggCap(lc int) gg.LineCap {
	switch lc {
	case paint.CapRound:
		return gg.LineCapRound
	case paint.CapSquare:
		return gg.LineCapSquare
	}
	return gg.LineCapButt
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	var p paint.Path
	p.Rect(c.m(), x, y, w, h)
	if !p.Empty() {
		c.draw(p.Subpaths(), c.st.Cur().Fill, false)
	}
}

// ClearRect makes the device-space bounding box of the transformed
// rectangle transparent.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	var p paint.Path
	p.Rect(c.m(), x, y, w, h)
	minX, minY, maxX, maxY, ok := p.Bounds()
	if !ok {
		return
	}
	x0, y0 := clampInt(math.Floor(minX), c.w), clampInt(math.Floor(minY), c.h)
	x1, y1 := clampInt(math.Ceil(maxX), c.w), clampInt(math.Ceil(maxY), c.h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.gc.SetPixel(px, py, gg.Transparent)
		}
	}
}

func clampInt(v float64, hi int) int {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > float64(hi):
		return hi
	}
	return int(v)
}

func (c *Canvas) face(size float64) text.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	src, err := defaultFont()
	if err != nil {
		c.keep(fmt.Errorf("load font: %w", err))
		return nil
	}
	f := src.Face(size)
	c.faces[size] = f
	return f
}

// FillText draws s with the current fill colour. The anchor follows the
// transform; glyphs are not rotated.
func (c *Canvas) FillText(s string, x, y float64, opts canvas.TextOptions) {
	cur := c.st.Cur()
	k := cur.M.LineScale()
	size := cur.FontSize * k
	f := c.face(size)
	if f == nil || s == "" {
		return
	}
	width := f.Advance(s)
	if fit := paint.FitSize(size, width, opts.MaxWidth*k); fit != size {
		size = fit
		if f = c.face(size); f == nil {
			return
		}
		width = f.Advance(s)
	}
	met := f.Metrics()
	dx, dy := cur.M.Apply(x, y)
	ox, oy := paint.TextOrigin(dx, dy, width, met.Ascent, met.Descent, int(opts.Align), int(opts.Baseline))

	c.gc.SetFont(f)
	c.gc.SetColor(cur.Fill.ColorAt(x, y))
	c.gc.DrawString(s, ox, oy)
}

// MeasureText returns the advance width of s in user units.
func (c *Canvas) MeasureText(s string) float64 {
	f := c.face(c.st.Cur().FontSize)
	if f == nil {
		return 0
	}
	return f.Advance(s)
}

func (c *Canvas) CreateLinearGradient(x0, y0, x1, y1 float64) canvas.Gradient {
	return paint.NewLinearGradient(x0, y0, x1, y1)
}

func (c *Canvas) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) canvas.Gradient {
	return paint.NewRadialGradient(x0, y0, r0, x1, y1, r1)
}

func (c *Canvas) NewOffscreen(w, h int) (canvas.Context, error) {
	return New(w, h)
}

// CreatePattern snapshots a Canvas created by NewOffscreen into a
// repeating Paint.
func (c *Canvas) CreatePattern(tile canvas.Context) (canvas.Paint, error) {
	t, ok := tile.(*Canvas)
	if !ok {
		return nil, fmt.Errorf("raster: cannot pattern a %T", tile)
	}
	p := paint.NewImagePattern(t.Image())
	if p == nil {
		return nil, ErrInvalidSize
	}
	return p, nil
}

var _ canvas.Context = (*Canvas)(nil)
