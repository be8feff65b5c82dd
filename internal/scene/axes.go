package scene

import (
	"github.com/opd-ai/go-canvas/internal/paint"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

var (
	axesDark  = paint.MustParseColor("#e2e8f0")
	axesLight = paint.MustParseColor("#475569")
)

// Axes draws a y axis 0.8h tall and an x axis 0.85w wide meeting at
// (Size(30), groundY), with arrow heads and x, y and 0 labels. The scales
// leave 10% headroom over maxHeight and maxRange. Non-positive maxima
// yield zero scales.
func Axes(ctx canvas.Context, f *canvas.Frame, maxHeight, maxRange, groundY float64) AxesInfo {
	ox, oy := f.Size(30), groundY
	yLen := f.Height() * 0.8
	xLen := f.Width() * 0.85
	info := AxesInfo{OriginX: ox, OriginY: oy}
	if maxHeight > 0 {
		info.ScaleY = yLen / (maxHeight * 1.1)
	}
	if maxRange > 0 {
		info.ScaleX = xLen / (maxRange * 1.1)
	}
	if ctx == nil {
		return info
	}
	ctx.Save()
	defer ctx.Restore()

	ink := axesLight
	if f.Dark() {
		ink = axesDark
	}
	ctx.SetStrokeColor(ink)
	ctx.SetFillColor(ink)
	ctx.SetLineWidth(f.Size(2))

	f.Line(ox, oy, ox, oy-yLen)
	f.Line(ox, oy, ox+xLen, oy)

	head := f.Size(8)
	triangle(ctx, ox, oy-yLen, ox-head/2, oy-yLen+head, ox+head/2, oy-yLen+head)
	triangle(ctx, ox+xLen, oy, ox+xLen-head, oy-head/2, ox+xLen-head, oy+head/2)

	mid := canvas.TextStyle{Size: f.FontSize(14), Align: canvas.AlignCenter, Baseline: canvas.BaselineMiddle}
	f.Text("y", ox+f.Size(15), oy-yLen+f.Size(5), mid)
	f.Text("x", ox+xLen-f.Size(5), oy+f.Size(15), mid)

	f.Circle(ox, oy, f.Size(3), true)
	f.Text("0", ox-f.Size(8), oy+f.Size(5), canvas.TextStyle{
		Size:     f.FontSize(12),
		Align:    canvas.AlignRight,
		Baseline: canvas.BaselineTop,
	})
	return info
}

func triangle(ctx canvas.Context, x1, y1, x2, y2, x3, y3 float64) {
	ctx.BeginPath()
	ctx.MoveTo(x1, y1)
	ctx.LineTo(x2, y2)
	ctx.LineTo(x3, y3)
	ctx.ClosePath()
	ctx.Fill()
}
