package canvas

import (
	"fmt"
	"image/color"
	"math"

	"github.com/opd-ai/go-canvas/internal/paint"
)

// HatchKind names a repeating hatch tile.
type HatchKind int

const (
	HatchHorizontal HatchKind = iota
	HatchVertical
	HatchDiagonal
	HatchDiagonalReverse
	HatchCross
	HatchDiagonalCross
	HatchDots
	HatchEarth
	HatchGravel
	HatchDashedHorizontal
)

var hatchNames = [...]string{
	HatchHorizontal:       "horizontal",
	HatchVertical:         "vertical",
	HatchDiagonal:         "diagonal",
	HatchDiagonalReverse:  "diagonal-reverse",
	HatchCross:            "cross",
	HatchDiagonalCross:    "diagonal-cross",
	HatchDots:             "dots",
	HatchEarth:            "earth",
	HatchGravel:           "gravel",
	HatchDashedHorizontal: "dashed-horizontal",
}

// String returns the kebab-case name of the kind.
func (k HatchKind) String() string {
	if k >= 0 && int(k) < len(hatchNames) {
		return hatchNames[k]
	}
	return fmt.Sprintf("HatchKind(%d)", int(k))
}

// ParseHatchKind maps a kebab-case name such as "diagonal-cross" to its kind.
func ParseHatchKind(s string) (HatchKind, error) {
	for i, name := range hatchNames {
		if name == s {
			return HatchKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hatch kind %q", s)
}

// hatchTile is everything a tile function needs. ink is the caller's colour
// or the host context's stroke colour; custom reports whether the caller
// supplied it.
type hatchTile struct {
	ctx    Context
	size   float64
	lw     float64
	ink    color.Color
	fill   color.Color
	custom bool
	f      *Frame
}

func (t *hatchTile) segment(x1, y1, x2, y2 float64) {
	t.ctx.BeginPath()
	t.ctx.MoveTo(x1, y1)
	t.ctx.LineTo(x2, y2)
	t.ctx.Stroke()
}

func (t *hatchTile) dot(x, y, r float64) {
	t.ctx.BeginPath()
	t.ctx.Arc(x, y, r, 0, 2*math.Pi, false)
	t.ctx.Fill()
}

var hatchTiles = map[HatchKind]func(*hatchTile){
	HatchHorizontal: func(t *hatchTile) {
		t.segment(0, t.size/2, t.size, t.size/2)
	},
	HatchVertical: func(t *hatchTile) {
		t.segment(t.size/2, 0, t.size/2, t.size)
	},
	HatchDiagonal: func(t *hatchTile) {
		t.segment(0, 0, t.size, t.size)
	},
	HatchDiagonalReverse: func(t *hatchTile) {
		t.segment(0, t.size, t.size, 0)
	},
	HatchCross: func(t *hatchTile) {
		t.segment(0, t.size/2, t.size, t.size/2)
		t.segment(t.size/2, 0, t.size/2, t.size)
	},
	HatchDiagonalCross: func(t *hatchTile) {
		t.segment(0, 0, t.size, t.size)
		t.segment(0, t.size, t.size, 0)
	},
	HatchDots: func(t *hatchTile) {
		t.ctx.SetFillColor(t.fill)
		r := math.Max(0.5, t.lw/2)
		t.dot(t.size/2-0.3*r, t.size/2+0.2*r, r)
	},
	HatchEarth:            earthTile,
	HatchGravel:           gravelTile,
	HatchDashedHorizontal: dashedTile,
}

var earthColors = [...]color.NRGBA{
	{0x8B, 0x45, 0x13, 0xFF},
	{0xA0, 0x52, 0x2D, 0xFF},
	{0xCD, 0x85, 0x3F, 0xFF},
	{0xD2, 0x69, 0x1E, 0xFF},
	{0xB8, 0x86, 0x0B, 0xFF},
}

func earthTile(t *hatchTile) {
	base := earthColors[0]
	if t.custom {
		base = paint.ToNRGBA(t.ink)
	}
	t.ctx.SetStrokeColor(base)
	t.ctx.SetLineWidth(math.Max(0.5, t.lw*0.5))
	for i := 0.0; i < t.size+4; i += 4 {
		t.segment(i, 0, i+4, t.size)
	}

	cross, grain := earthColors[1], earthColors[2]
	if t.custom {
		cross, grain = base, base
		cross.A, grain.A = 0x80, 0x60
	}
	t.ctx.SetStrokeColor(cross)
	t.ctx.SetLineWidth(math.Max(0.3, t.lw*0.3))
	for i := 0.0; i < t.size+5; i += 5 {
		t.segment(0, i, t.size, i+5)
	}

	t.ctx.SetFillColor(grain)
	for i := 0.0; i < t.size; i += 4 {
		for j := 0.0; j < t.size; j += 4 {
			ox := (t.f.random() - 0.5) * 0.5
			oy := (t.f.random() - 0.5) * 0.5
			t.ctx.FillRect(i+ox, j+oy, 1, 1)
		}
	}
}

var gravelStones = [...]struct{ x, y, r float64 }{
	{5, 5, 2.5},
	{15, 10, 3.0},
	{8, 18, 2.2},
	{18, 3, 1.8},
	{3, 14, 2.8},
}

func gravelTile(t *hatchTile) {
	c := color.Color(color.NRGBA{0x80, 0x80, 0x80, 0xFF})
	if t.custom {
		c = t.ink
	}
	t.ctx.SetFillColor(c)
	sf := t.size / 20
	for _, s := range gravelStones {
		r := math.Max(0.5, s.r*sf*(t.lw/1.5))
		ox := (t.f.random() - 0.5) * 0.8
		oy := (t.f.random() - 0.5) * 0.8
		t.dot(s.x*sf+ox, s.y*sf+oy, r)
	}
}

func dashedTile(t *hatchTile) {
	scale := t.f.Scale()
	dash := math.Max(1, t.lw*scale*2)
	gap := math.Max(1, t.lw*scale*2.5)
	t.ctx.SetLineDash([]float64{dash, gap})
	t.segment(0, t.size/2, t.size, t.size/2)
}

// HatchPattern renders a spacing-sized tile of the given kind and returns it
// as a repeating Paint. A nil c uses the context's stroke colour. The result
// is nil when the tile cannot be created; callers skip the fill in that case.
//
// Earth and gravel tiles jitter their marks with the frame's random source,
// so two calls with the same arguments can differ slightly.
func (f *Frame) HatchPattern(kind HatchKind, spacing, lineWidth float64, c color.Color) Paint {
	draw, ok := hatchTiles[kind]
	if !ok || f.ctx == nil {
		return nil
	}
	size := int(spacing)
	if size < 1 {
		return nil
	}
	tile, err := f.ctx.NewOffscreen(size, size)
	if err != nil || tile == nil {
		return nil
	}

	t := &hatchTile{
		ctx:    tile,
		size:   float64(size),
		lw:     lineWidth,
		ink:    c,
		fill:   c,
		custom: c != nil,
		f:      f,
	}
	if c == nil {
		t.ink = f.ctx.StrokeColor()
		t.fill = f.ctx.FillColor()
		if t.fill == nil {
			t.fill = t.ink
		}
	}
	tile.SetStrokeColor(t.ink)
	tile.SetLineWidth(lineWidth)
	tile.SetLineCap(LineCapSquare)
	draw(t)

	p, err := f.ctx.CreatePattern(tile)
	if err != nil || p == nil {
		return nil
	}
	return p
}
