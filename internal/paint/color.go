// Package paint holds the backend-neutral pieces shared by every drawing
// context: colour parsing, affine matrices, gradients, image patterns and a
// flattening path builder with dash support.
package paint

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// NamedColors maps the CSS colour names accepted by ParseColor.
var NamedColors = map[string]color.NRGBA{
	"black":       {R: 0, G: 0, B: 0, A: 255},
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"red":         {R: 255, G: 0, B: 0, A: 255},
	"green":       {R: 0, G: 128, B: 0, A: 255},
	"blue":        {R: 0, G: 0, B: 255, A: 255},
	"yellow":      {R: 255, G: 255, B: 0, A: 255},
	"cyan":        {R: 0, G: 255, B: 255, A: 255},
	"magenta":     {R: 255, G: 0, B: 255, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
	"grey":        {R: 128, G: 128, B: 128, A: 255},
	"silver":      {R: 192, G: 192, B: 192, A: 255},
	"orange":      {R: 255, G: 165, B: 0, A: 255},
	"brown":       {R: 165, G: 42, B: 42, A: 255},
	"gold":        {R: 255, G: 215, B: 0, A: 255},
	"navy":        {R: 0, G: 0, B: 128, A: 255},
	"purple":      {R: 128, G: 0, B: 128, A: 255},
	"skyblue":     {R: 135, G: 206, B: 235, A: 255},
	"transparent": {R: 0, G: 0, B: 0, A: 0},
}

// ParseColor parses a colour string into a non-premultiplied colour.
// Supported formats:
//   - Named colours: "red", "skyblue", "transparent"
//   - Hex: "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA" (the # is optional)
//   - Functions: "rgb(255, 0, 0)", "rgba(255, 0, 0, 0.5)"
//
// Alpha in rgba() is always a 0..1 fraction, as in CSS.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}

	if c, ok := NamedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") || isHexString(s) {
		return parseHexColor(s)
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "rgba("):
		return parseColorFunc(s, "rgba(", 4)
	case strings.HasPrefix(lower, "rgb("):
		return parseColorFunc(s, "rgb(", 3)
	}

	return color.NRGBA{}, fmt.Errorf("unrecognized color format: %q", s)
}

// MustParseColor parses a colour string and panics if parsing fails.
// Use this only for known-good literals in package initialisation.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func isHexString(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, c := range s {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")

	// Expand shorthand so every form is handled as RRGGBB[AA].
	if len(s) == 3 || len(s) == 4 {
		var b strings.Builder
		for _, c := range s {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		s = b.String()
	}
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color length: %d", len(s))
	}

	var channels [4]uint8
	channels[3] = 255
	names := [4]string{"red", "green", "blue", "alpha"}
	for i := 0; i*2 < len(s); i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid %s component: %w", names[i], err)
		}
		channels[i] = uint8(v)
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

func parseColorFunc(s, prefix string, want int) (color.NRGBA, error) {
	if !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, fmt.Errorf("invalid %s) format: %q", prefix, s)
	}
	parts := strings.Split(s[len(prefix):len(s)-1], ",")
	if len(parts) != want {
		return color.NRGBA{}, fmt.Errorf("%s) requires exactly %d values, got %d", prefix, want, len(parts))
	}

	out := color.NRGBA{A: 255}
	targets := []*uint8{&out.R, &out.G, &out.B}
	for i, dst := range targets {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid channel %d: %w", i, err)
		}
		*dst = uint8(math.Round(clamp(v, 0, 255)))
	}
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha value: %w", err)
		}
		out.A = uint8(math.Round(clamp(a, 0, 1) * 255))
	}
	return out, nil
}

// ToNRGBA converts any colour to its non-premultiplied 8-bit form.
// A nil colour converts to transparent.
func ToNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// ToHex formats a colour as #RRGGBB, or #RRGGBBAA when it is not opaque.
func ToHex(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ToCSS formats a colour as "rgba(r, g, b, a)" with alpha trimmed to at most
// two decimals, e.g. "rgba(0, 0, 0, 0.85)".
func ToCSS(c color.NRGBA) string {
	alpha := strconv.FormatFloat(math.Round(float64(c.A)/255*100)/100, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, alpha)
}

// WithOpacity returns c with its alpha replaced by opacity (0..1).
func WithOpacity(c color.Color, opacity float64) color.NRGBA {
	n := ToNRGBA(c)
	n.A = uint8(math.Round(clamp(opacity, 0, 1) * 255))
	return n
}

// PerceivedLuminance returns 0.299r + 0.587g + 0.114b on channels scaled to
// 0..1. Alpha is ignored.
func PerceivedLuminance(c color.NRGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
