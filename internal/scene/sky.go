package scene

import (
	"image/color"
	"math"

	"github.com/opd-ai/go-canvas/internal/paint"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// Sky draws a sun or a moon near the top right corner, then nine clouds
// drifting right and wrapping around.
func Sky(ctx canvas.Context, f *canvas.Frame, t float64) {
	if ctx == nil {
		return
	}
	ctx.Save()
	defer ctx.Restore()

	x, y, r := f.Width()-f.Size(60), f.Size(60), f.Size(25)
	if f.Dark() {
		moon(ctx, f, x, y, r)
	} else {
		sun(ctx, f, x, y, r)
	}
	clouds(ctx, f, t)
}

// radial builds a gradient from a point at (x0, y0) to the circle of
// radius r around (x1, y1).
func radial(ctx canvas.Context, x0, y0, x1, y1, r float64, stops ...canvas.ColorStop) canvas.Gradient {
	g := ctx.CreateRadialGradient(x0, y0, 0, x1, y1, r)
	for _, s := range stops {
		g.AddColorStop(s.Offset, s.Color)
	}
	return g
}

func hex(s string) color.NRGBA { return paint.MustParseColor(s) }

func moon(ctx canvas.Context, f *canvas.Frame, x, y, r float64) {
	ctx.SetFillPaint(radial(ctx, x-f.Size(8), y-f.Size(8), x, y, r,
		canvas.ColorStop{Offset: 0, Color: hex("#ffffff")},
		canvas.ColorStop{Offset: 0.7, Color: hex("#f3f4f6")},
		canvas.ColorStop{Offset: 1, Color: hex("#e5e7eb")}))
	f.Circle(x, y, r, true)

	ctx.SetFillColor(rgba(156, 163, 175, 0.4))
	for _, c := range [...][3]float64{{-8, -5, 4}, {6, -8, 2.5}, {-3, 7, 3}, {10, 4, 2}} {
		f.Circle(x+f.Size(c[0]), y+f.Size(c[1]), f.Size(c[2]), true)
	}
	ctx.SetFillColor(rgba(107, 114, 128, 0.3))
	for _, c := range [...][3]float64{{2, -2, 6}, {-5, 3, 5}} {
		f.Circle(x+f.Size(c[0]), y+f.Size(c[1]), f.Size(c[2]), true)
	}

	ctx.SetFillPaint(radial(ctx, x-f.Size(8), y-f.Size(8), x, y, r*1.5,
		canvas.ColorStop{Offset: 0, Color: rgba(255, 255, 255, 0.3)},
		canvas.ColorStop{Offset: 1, Color: rgba(255, 255, 255, 0)}))
	f.Circle(x, y, r*1.3, true)
}

const sunRays = 8

func sun(ctx canvas.Context, f *canvas.Frame, x, y, r float64) {
	ctx.SetStrokeColor(hex("#fbbf24"))
	ctx.SetLineWidth(f.Size(3))
	ctx.SetLineCap(canvas.LineCapRound)
	outer := r + f.Size(12)
	for i := range sunRays {
		a := float64(i) * 2 * math.Pi / sunRays
		cos, sin := math.Cos(a), math.Sin(a)
		f.Line(x+cos*r, y+sin*r, x+cos*outer, y+sin*outer)
	}

	ctx.SetFillPaint(radial(ctx, x, y, x, y, r,
		canvas.ColorStop{Offset: 0, Color: hex("#fef3c7")},
		canvas.ColorStop{Offset: 0.7, Color: hex("#fbbf24")},
		canvas.ColorStop{Offset: 1, Color: hex("#f59e0b")}))
	f.Circle(x, y, r, true)

	ctx.SetFillPaint(radial(ctx, x, y, x, y, r*1.8,
		canvas.ColorStop{Offset: 0, Color: rgba(251, 191, 36, 0.2)},
		canvas.ColorStop{Offset: 1, Color: rgba(251, 191, 36, 0)}))
	f.Circle(x, y, r*1.5, true)
}

// cloud positions: base x as (fraction of width, reference offset), speed
// multiplier, y as a fraction of height, width, height and opacity.
var cloudLayout = [...]struct {
	wx, dx, speed, fy, w, h, alpha float64
}{
	{0, 80, 1.0, 0.15, 100, 40, 0.9},
	{1, -75, 0.6, 0.18, 90, 32, 0.85},
	{1, -120, 1.2, 0.25, 120, 35, 0.8},
	{0.4, 0, 0.85, 0.12, 80, 30, 0.7},
	{0, 130, 0.9, 0.08, 85, 35, 0.75},
	{0.6, 0, 0.7, 0.14, 70, 28, 0.65},
	{1, -180, 1.1, 0.32, 95, 38, 0.8},
	{0, 45, 0.6, 0.22, 60, 25, 0.6},
	{0.25, 0, 1.05, 0.16, 65, 26, 0.7},
}

func clouds(ctx canvas.Context, f *canvas.Frame, t float64) {
	w, h := f.Width(), f.Height()
	speed := f.Size(18)
	margin := f.Size(300)
	for _, c := range cloudLayout {
		base := w * c.wx
		if c.dx != 0 {
			base += f.Size(c.dx)
		}
		x := wrapX(base, t, speed*c.speed, w, margin)
		cloud(ctx, f, x, h*c.fy, f.Size(c.w), f.Size(c.h), c.alpha)
	}
}

func cloud(ctx canvas.Context, f *canvas.Frame, cx, cy, w, h, alpha float64) {
	type puff struct{ x, y, r float64 }
	puffs := [...]puff{
		{cx - w*0.3, cy, h * 0.36},
		{cx - w*0.15, cy - h*0.2, h * 0.44},
		{cx, cy - h*0.3, h * 0.48},
		{cx + w*0.15, cy - h*0.2, h * 0.4},
		{cx + w*0.3, cy, h * 0.32},
		{cx - w*0.1, cy + h*0.1, h * 0.28},
		{cx + w*0.1, cy + h*0.1, h * 0.24},
		{cx, cy, h * 0.36},
	}

	main, shadow, shine := rgba(255, 255, 255, alpha), rgba(229, 231, 235, alpha*0.8), rgba(248, 250, 252, alpha*0.9)
	if f.Dark() {
		main, shadow, shine = rgba(75, 85, 99, alpha), rgba(55, 65, 81, alpha*0.8), rgba(107, 114, 128, alpha*0.6)
	}

	ctx.SetFillColor(shadow)
	for _, p := range puffs {
		f.Circle(p.x+f.Size(2), p.y+f.Size(2), p.r, true)
	}
	ctx.SetFillColor(main)
	for _, p := range puffs {
		f.Circle(p.x, p.y, p.r, true)
	}
	ctx.SetFillColor(shine)
	for _, p := range puffs[:4] {
		f.Circle(p.x-f.Size(3), p.y-f.Size(3), p.r*0.6, true)
	}
}
