// Package render is the ebiten backend: a canvas.Context that draws into an
// *ebiten.Image, the Surface a Host sizes, and the Game that drives a Host
// from the ebiten loop.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/go-canvas/internal/paint"
	"github.com/opd-ai/go-canvas/internal/raster"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Canvas draws into an ebiten image. Paths are flattened into device space
// by internal/paint and triangulated with ebiten's vector package.
//
// Pattern tiles from NewOffscreen are CPU canvases, since ebiten pixels
// cannot be read back before the game loop starts.
type Canvas struct {
	dst   *ebiten.Image
	w, h  int
	st    paint.Stack
	path  paint.Path
	faces map[float64]*text.GoTextFace
	err   error
}

// NewCanvas wraps dst. It panics if dst is nil.
func NewCanvas(dst *ebiten.Image) *Canvas {
	b := dst.Bounds()
	return &Canvas{
		dst:   dst,
		w:     b.Dx(),
		h:     b.Dy(),
		st:    paint.NewStack(),
		faces: make(map[float64]*text.GoTextFace),
	}
}

// Image returns the target image.
func (c *Canvas) Image() *ebiten.Image { return c.dst }

// Err returns the first font loading error, if any.
func (c *Canvas) Err() error { return c.err }

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

func vectorPath(sps []paint.Subpath) *vector.Path {
	var vp vector.Path
	for _, sp := range sps {
		if len(sp.Points) == 0 {
			continue
		}
		vp.MoveTo(float32(sp.Points[0].X), float32(sp.Points[0].Y))
		for _, p := range sp.Points[1:] {
			vp.LineTo(float32(p.X), float32(p.Y))
		}
		if sp.Closed {
			vp.Close()
		}
	}
	return &vp
}

func strokeOptions(st *paint.State) *vector.StrokeOptions {
	opts := &vector.StrokeOptions{
		Width:      float32(st.LineWidth * st.M.LineScale()),
		LineJoin:   vector.LineJoinMiter,
		MiterLimit: 10,
	}
	switch st.Cap {
	case paint.CapRound:
		opts.LineCap = vector.LineCapRound
	case paint.CapSquare:
		opts.LineCap = vector.LineCapSquare
	default:
		opts.LineCap = vector.LineCapButt
	}
	return opts
}

func (c *Canvas) Fill() {
	if c.path.Empty() {
		return
	}
	vs, is := vectorPath(c.path.Subpaths()).AppendVerticesAndIndicesForFilling(nil, nil)
	c.drawTriangles(vs, is, c.st.Cur().Fill)
}

func (c *Canvas) Stroke() {
	if c.path.Empty() {
		return
	}
	cur := c.st.Cur()
	sps := c.path.Subpaths()
	if d := c.st.DeviceDash(); len(d) > 0 {
		sps = paint.Dash(sps, d)
	}
	vs, is := vectorPath(sps).AppendVerticesAndIndicesForStroke(nil, nil, strokeOptions(cur))
	c.drawTriangles(vs, is, cur.Stroke)
}

// drawTriangles paints with src. A solid colour rides on the vertices;
// anything else is sampled into an image the size of the target and
// mapped one to one.
func (c *Canvas) drawTriangles(vs []ebiten.Vertex, is []uint16, src paint.Source) {
	if len(is) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	}
	if s, ok := src.(paint.Solid); ok {
		r, g, b, a := float32(s.R)/255, float32(s.G)/255, float32(s.B)/255, float32(s.A)/255
		for i := range vs {
			vs[i].SrcX, vs[i].SrcY = 1, 1
			vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
		}
		c.dst.DrawTriangles(vs, is, whiteSubImage, op)
		return
	}

	img := c.sample(src, vs)
	if img == nil {
		return
	}
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = vs[i].DstX, vs[i].DstY
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = 1, 1, 1, 1
	}
	op.Address = ebiten.AddressClampToZero
	c.dst.DrawTriangles(vs, is, img, op)
}

// sample renders src over the on-screen bounding box of vs.
func (c *Canvas) sample(src paint.Source, vs []ebiten.Vertex) *ebiten.Image {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range vs {
		minX, maxX = math.Min(minX, float64(v.DstX)), math.Max(maxX, float64(v.DstX))
		minY, maxY = math.Min(minY, float64(v.DstY)), math.Max(maxY, float64(v.DstY))
	}
	r := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY))).
		Intersect(image.Rect(0, 0, c.w, c.h))
	if r.Empty() {
		return nil
	}
	at := paint.UserSource(src, c.m())
	pix := image.NewNRGBA(image.Rect(0, 0, c.w, c.h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pix.SetNRGBA(x, y, at(float64(x)+0.5, float64(y)+0.5))
		}
	}
	return ebiten.NewImageFromImage(pix)
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	var p paint.Path
	p.Rect(c.m(), x, y, w, h)
	if p.Empty() {
		return
	}
	vs, is := vectorPath(p.Subpaths()).AppendVerticesAndIndicesForFilling(nil, nil)
	c.drawTriangles(vs, is, c.st.Cur().Fill)
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	var p paint.Path
	p.Rect(c.m(), x, y, w, h)
	if p.Empty() {
		return
	}
	vs, is := vectorPath(p.Subpaths()).AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = 1, 1, 1, 1
	}
	c.dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		Blend: ebiten.BlendClear,
	})
}

func (c *Canvas) face(size float64) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f, err := newFace(size)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return nil
	}
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
	width := text.Advance(s, f)
	if fit := paint.FitSize(size, width, opts.MaxWidth*k); fit != size {
		if f = c.face(fit); f == nil {
			return
		}
		width = text.Advance(s, f)
	}
	met := f.Metrics()
	dx, dy := cur.M.Apply(x, y)
	ox, oy := paint.TextOrigin(dx, dy, width, met.HAscent, met.HDescent, int(opts.Align), int(opts.Baseline))

	op := &text.DrawOptions{}
	op.GeoM.Translate(ox, oy-met.HAscent)
	op.ColorScale.ScaleWithColor(cur.Fill.ColorAt(x, y))
	text.Draw(c.dst, s, f, op)
}

// MeasureText returns the advance width of s in user units.
func (c *Canvas) MeasureText(s string) float64 {
	f := c.face(c.st.Cur().FontSize)
	if f == nil {
		return 0
	}
	return text.Advance(s, f)
}

func (c *Canvas) CreateLinearGradient(x0, y0, x1, y1 float64) canvas.Gradient {
	return paint.NewLinearGradient(x0, y0, x1, y1)
}

func (c *Canvas) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) canvas.Gradient {
	return paint.NewRadialGradient(x0, y0, r0, x1, y1, r1)
}

// NewOffscreen returns a CPU canvas for pattern tiles.
func (c *Canvas) NewOffscreen(w, h int) (canvas.Context, error) {
	return raster.New(w, h)
}

// CreatePattern snapshots a tile from NewOffscreen into a repeating Paint.
func (c *Canvas) CreatePattern(tile canvas.Context) (canvas.Paint, error) {
	t, ok := tile.(*raster.Canvas)
	if !ok {
		return nil, fmt.Errorf("render: cannot pattern a %T", tile)
	}
	p := paint.NewImagePattern(t.Image())
	if p == nil {
		return nil, raster.ErrInvalidSize
	}
	return p, nil
}

var _ canvas.Context = (*Canvas)(nil)
