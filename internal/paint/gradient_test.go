package paint

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestLinearGradient(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0)
	g.AddColorStop(0, black)
	g.AddColorStop(1, white)

	tests := []struct {
		name string
		x    float64
		want color.NRGBA
	}{
		{"before start pads", -50, black},
		{"start", 0, black},
		{"middle", 50, color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
		{"end", 100, white},
		{"after end pads", 300, white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.ColorAt(tt.x, 42)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ColorAt(%v) mismatch (-want +got):\n%s", tt.x, diff)
			}
		})
	}
}

func TestGradientStopsKeepInsertionOrder(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0)
	g.AddColorStop(1, white)
	g.AddColorStop(0, black)
	g.AddColorStop(-3, white)

	want := []Stop{{1, white}, {0, black}, {0, white}}
	if diff := cmp.Diff(want, g.Stops()); diff != "" {
		t.Errorf("Stops mismatch (-want +got):\n%s", diff)
	}
	// Equal offsets keep insertion order: black then white at 0, so t=0
	// resolves to the first one.
	if got := g.At(0); got != black {
		t.Errorf("At(0) = %v, want black", got)
	}
}

func TestGradientEmptyAndDegenerate(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0)
	if got := g.ColorAt(5, 0); got != (color.NRGBA{}) {
		t.Errorf("no stops should be transparent, got %v", got)
	}

	d := NewLinearGradient(5, 5, 5, 5)
	d.AddColorStop(0, black)
	if got := d.ColorAt(5, 5); got != (color.NRGBA{}) {
		t.Errorf("zero-length gradient should be transparent, got %v", got)
	}
}

func TestRadialGradient(t *testing.T) {
	g := NewRadialGradient(50, 50, 0, 50, 50, 10)
	g.AddColorStop(0, white)
	g.AddColorStop(1, black)

	if got := g.ColorAt(50, 50); got != white {
		t.Errorf("centre = %v, want white", got)
	}
	if got := g.ColorAt(60, 50); got != black {
		t.Errorf("edge = %v, want black", got)
	}
	if got := g.ColorAt(90, 90); got != black {
		t.Errorf("outside pads to last stop, got %v", got)
	}
	mid := g.ColorAt(55, 50)
	if mid.R < 120 || mid.R > 135 {
		t.Errorf("halfway R = %d, want about 128", mid.R)
	}
}

func TestImagePatternWraps(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, white)
	img.SetNRGBA(1, 1, black)
	p := NewImagePattern(img)

	tests := []struct {
		x, y float64
		want color.NRGBA
	}{
		{0, 0, white},
		{2, 2, white},
		{-2, 4, white},
		{1.5, 1.5, black},
		{-1, -1, black},
	}
	for _, tt := range tests {
		if got := p.ColorAt(tt.x, tt.y); got != tt.want {
			t.Errorf("ColorAt(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	if NewImagePattern(image.NewNRGBA(image.Rect(0, 0, 0, 0))) != nil {
		t.Error("empty image should not produce a pattern")
	}
}
