package canvas

import (
	"image/color"

	"github.com/opd-ai/go-canvas/internal/paint"
)

var (
	// LabelOnLight is near-black text for bright backgrounds.
	LabelOnLight = color.NRGBA{A: 217}
	// LabelOnDark is near-white text for dim backgrounds.
	LabelOnDark = color.NRGBA{R: 255, G: 255, B: 255, A: 242}
)

// Label returns a text colour that contrasts with the active theme's
// background.
func (f *Frame) Label() color.NRGBA {
	if f.opts.Dark {
		return f.LabelDark()
	}
	return f.LabelLight()
}

// LabelLight contrasts with the light background whatever the theme.
func (f *Frame) LabelLight() color.NRGBA {
	return contrastFor(f.opts.LightBackground, LabelOnLight)
}

// LabelDark contrasts with the dark background whatever the theme.
func (f *Frame) LabelDark() color.NRGBA {
	return contrastFor(f.opts.DarkBackground, LabelOnDark)
}

func contrastFor(bg string, fallback color.NRGBA) color.NRGBA {
	c, err := paint.ParseColor(bg)
	if err != nil {
		return fallback
	}
	if paint.PerceivedLuminance(c) > 0.5 {
		return LabelOnLight
	}
	return LabelOnDark
}

// CSS formats c as "rgba(r, g, b, a)" with alpha in [0, 1].
func CSS(c color.Color) string {
	return paint.ToCSS(paint.ToNRGBA(c))
}

// ParseColor parses a CSS colour: a name, #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb() or rgba().
func ParseColor(s string) (color.NRGBA, error) {
	return paint.ParseColor(s)
}
