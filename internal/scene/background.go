package scene

import (
	"image/color"
	"math"

	"github.com/opd-ai/go-canvas/internal/paint"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

const groundHeight = 50

var (
	groundDark  = paint.MustParseColor("#16a34a")
	groundLight = paint.MustParseColor("#22c55e")
)

// Background fills the ground band and shades its top edge, then adds
// twinkling stars for the dark theme or flapping birds for the light one.
func Background(ctx canvas.Context, f *canvas.Frame, t float64) Ground {
	g := Ground{Y: f.Height() - f.Size(groundHeight), Dark: f.Dark()}
	if ctx == nil {
		return g
	}
	ctx.Save()
	defer ctx.Restore()

	w := f.Width()
	if g.Dark {
		ctx.SetFillColor(groundDark)
	} else {
		ctx.SetFillColor(groundLight)
	}
	ctx.FillRect(0, g.Y, w, f.Size(groundHeight))

	top := ctx.CreateLinearGradient(0, g.Y-f.Size(10), 0, g.Y+f.Size(5))
	top.AddColorStop(0, color.NRGBA{})
	top.AddColorStop(1, rgba(0, 0, 0, 0.15))
	ctx.SetFillPaint(top)
	ctx.FillRect(0, g.Y-f.Size(10), w, f.Size(15))

	if g.Dark {
		stars(ctx, f, t, g.Y)
	} else {
		birds(ctx, f, t, g.Y)
	}
	return g
}

func count(f *canvas.Frame, density float64, lo, hi int) int {
	n := int(math.Floor(f.Width() * f.Height() * density))
	return max(lo, min(hi, n))
}

func stars(ctx canvas.Context, f *canvas.Frame, t, groundY float64) {
	w, h := f.Width(), f.Height()
	n := count(f, 0.00006, 20, 220)
	seed := w*374.1 + h*73.7
	band := math.Max(0, groundY-f.Size(10))

	for i := range n {
		k := float64(i)
		x := pseudo(k+1, seed) * w
		y := pseudo(k+1001, seed) * band
		size := f.Size(0.6) * (0.6 + pseudo(k+2001, seed)*1.4)
		speed := 0.6 + pseudo(k+3001, seed)*1.6
		phase := pseudo(k+4001, seed) * 2 * math.Pi
		alpha := 0.18 + 0.82*(0.5+0.5*math.Sin(t*speed+phase))

		ctx.SetFillColor(rgba(255, 255, 255, alpha))
		f.Circle(x, y, size, true)
		ctx.SetFillColor(rgba(255, 255, 255, math.Min(0.25, alpha*0.25)))
		f.Circle(x, y, size*2.5, true)
	}
}

func birds(ctx canvas.Context, f *canvas.Frame, t, groundY float64) {
	w, h := f.Width(), f.Height()
	n := count(f, 0.000012, 6, 48)
	seed := w*97.3 + h*13.7 + 7.1
	speedBase := f.Size(28)
	margin := f.Size(160)
	ctx.SetLineCap(canvas.LineCapRound)

	for i := range n {
		k := float64(i)
		baseX := pseudo(k+11, seed) * w
		baseY := pseudo(k+22, seed) * math.Max(0, groundY-f.Size(80))
		x := wrapX(baseX, t, speedBase*(0.7+pseudo(k+33, seed)*1.6), w, margin)
		bob := math.Sin(t*(0.6+pseudo(k+44, seed)*1.4)+pseudo(k+55, seed)*2*math.Pi) * f.Size(3)
		y := math.Max(f.Size(12), baseY+bob+f.Size(12))

		body := 0.8 + pseudo(k+66, seed)*1.2
		wing := f.Size(6) * body
		flapSpeed := 2.2 + pseudo(k+77, seed)*1.8
		phase := pseudo(k+88, seed) * 2 * math.Pi
		flap := math.Abs(math.Sin(t*flapSpeed + phase))
		angle := 0.55 + 0.35*flap
		dir := -1.0
		if pseudo(k+99, seed) > 0.5 {
			dir = 1
		}

		ink := rgba(40, 40, 40, 0.9-pseudo(k+111, seed)*0.4)
		ctx.SetStrokeColor(ink)
		ctx.SetFillColor(ink)
		ctx.SetLineWidth(math.Max(0.4, f.Size(0.6)*(0.6+pseudo(k+121, seed)*0.8)))

		tipY := y - math.Sin(angle)*wing
		reach := dir * math.Cos(angle) * wing
		curl := f.Size(2.2) * (0.6 + flap*1.2) * body
		cx := dir * curl
		cy := -math.Max(f.Size(1), curl*0.4) - flap*f.Size(1.6)

		for _, side := range [...]float64{-1, 1} {
			ctx.BeginPath()
			ctx.MoveTo(x, y)
			ctx.QuadraticCurveTo(x+side*cx, y+cy, x+side*reach, tipY)
			ctx.Stroke()
		}

		bodyR := math.Max(f.Size(0.8), f.Size(0.9)*body*0.9)
		headR := math.Max(f.Size(0.45), bodyR*0.5)
		f.Circle(x, y-bodyR*0.1, bodyR, true)
		f.Circle(x+dir*bodyR*0.8, y-bodyR*0.25, headR, true)
	}
}
