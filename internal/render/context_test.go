//go:build !noebiten

package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-canvas/internal/raster"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

func newTestCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	img := ebiten.NewImage(w, h)
	t.Cleanup(img.Deallocate)
	return NewCanvas(img)
}

func TestCanvasSize(t *testing.T) {
	c := newTestCanvas(t, 64, 32)
	if c.Width() != 64 || c.Height() != 32 {
		t.Errorf("size = %dx%d, want 64x32", c.Width(), c.Height())
	}
}

func TestCanvasStateStack(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	red := color.NRGBA{255, 0, 0, 255}
	c.SetFillColor(red)
	c.SetLineWidth(3)
	c.Save()
	c.Translate(5, 6)
	c.SetFillColor(color.NRGBA{0, 0, 255, 255})
	c.SetLineWidth(7)
	c.Restore()

	if got := c.FillColor(); got != color.Color(red) {
		t.Errorf("fill after Restore = %v, want %v", got, red)
	}
	if c.LineWidth() != 3 {
		t.Errorf("line width after Restore = %v, want 3", c.LineWidth())
	}
	if !c.Transform().IsIdentity() {
		t.Errorf("transform after Restore = %+v, want identity", c.Transform())
	}
}

func TestCanvasDrawingDoesNotPanic(t *testing.T) {
	c := newTestCanvas(t, 100, 100)
	f := canvas.NewFrame(c, canvas.FrameOptions{})

	c.SetFillColor(color.NRGBA{255, 0, 0, 255})
	f.Circle(50, 50, 20, true)
	c.SetLineDash([]float64{4, 2})
	f.Line(0, 0, 100, 100)
	c.SetLineDash(nil)

	g := c.CreateLinearGradient(0, 0, 100, 0)
	g.AddColorStop(0, color.Black)
	g.AddColorStop(1, color.White)
	c.SetFillPaint(g)
	f.RoundedRect(10, 10, 80, 40, 8, true)

	c.SetFillPaint(f.HatchPattern(canvas.HatchCross, 8, 1, color.Black))
	c.FillRect(0, 60, 100, 40)
	c.ClearRect(0, 0, 10, 10)

	restore := f.Transform(50, 50, math.Pi/4)
	f.Rect(-5, -5, 10, 10, false)
	restore()

	c.SetFillColor(color.Black)
	f.Text("label", 50, 90, canvas.TextStyle{Size: 12, Align: canvas.AlignCenter, MaxWidth: 20})
	if err := c.Err(); err != nil {
		t.Errorf("Err = %v", err)
	}
}

func TestCanvasMeasureText(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.SetFontSize(16)
	a, b := c.MeasureText("a"), c.MeasureText("aaaa")
	if !(a > 0 && b > a) {
		t.Errorf("MeasureText a=%v aaaa=%v", a, b)
	}
}

func TestCanvasPatternsUseCPUTiles(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	tile, err := c.NewOffscreen(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tile.(*raster.Canvas); !ok {
		t.Fatalf("offscreen is %T, want *raster.Canvas", tile)
	}
	tile.SetFillColor(color.NRGBA{0, 255, 0, 255})
	tile.FillRect(0, 0, 4, 4)
	p, err := c.CreatePattern(tile)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.ColorAt(5, 5); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("pattern colour = %v", got)
	}
	if _, err := c.CreatePattern(c); err == nil {
		t.Error("CreatePattern accepted an ebiten canvas")
	}
}

func TestSurfaceResize(t *testing.T) {
	s := NewSurface()
	if s.Context() != nil || s.Image() != nil {
		t.Fatal("empty surface has an image")
	}
	s.SetSize(40, 30)
	img := s.Image()
	if img == nil || img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Fatalf("image after SetSize = %v", img)
	}
	s.SetSize(40, 30)
	if s.Image() != img {
		t.Error("same size reallocated the image")
	}
	s.SetSize(0, 30)
	if s.Context() != nil {
		t.Error("zero-width surface kept its context")
	}
}
