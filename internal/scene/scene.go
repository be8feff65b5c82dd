// Package scene draws the stock backdrop shared by physics exercises:
// ground with stars or birds, sun or moon with clouds, and a pair of
// labelled axes. Every function takes the animation time t in seconds so
// output depends only on its inputs.
package scene

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// Ground is where Background put the ground line.
type Ground struct {
	Y    float64
	Dark bool
}

// AxesInfo maps world units onto the surface.
type AxesInfo struct {
	OriginX, OriginY float64
	ScaleX, ScaleY   float64
}

// Info is everything Base produced.
type Info struct {
	Ground
	AxesInfo
}

func fract(v float64) float64 { return v - math.Floor(v) }

// pseudo is a stable hash of (i, seed) into [0, 1).
func pseudo(i, seed float64) float64 {
	return fract(math.Sin(i*12.9898+seed) * 43758.5453)
}

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(canvas.Clamp(a, 0, 1) * 255))}
}

// wrapX moves baseX right at speed px/s and wraps it across width plus
// margin, so items leave one edge fully before entering the other.
func wrapX(baseX, t, speed, width, margin float64) float64 {
	return math.Mod(baseX+t*speed, width+margin) - margin/2
}

// Modules lists the names Layers accepts, in drawing order.
var Modules = []string{"background", "sky", "axes", "base"}

// Layers returns a draw function that renders the named modules in the
// order given, using the frame's elapsed time. base draws all three.
// maxHeight and maxRange size the axes.
func Layers(names []string, maxHeight, maxRange float64) (canvas.DrawFunc, error) {
	for _, n := range names {
		if !slices.Contains(Modules, n) {
			return nil, fmt.Errorf("scene: unknown module %q", n)
		}
	}
	names = slices.Clone(names)
	return func(ctx canvas.Context, f *canvas.Frame) {
		t := f.Seconds()
		ground := Ground{Y: f.Height() - f.Size(groundHeight), Dark: f.Dark()}
		for _, n := range names {
			switch n {
			case "background":
				ground = Background(ctx, f, t)
			case "sky":
				Sky(ctx, f, t)
			case "axes":
				Axes(ctx, f, maxHeight, maxRange, ground.Y)
			case "base":
				Base(ctx, f, t, maxHeight, maxRange)
			}
		}
	}, nil
}

// Base draws the background, the axes on its ground line and the sky.
func Base(ctx canvas.Context, f *canvas.Frame, t, maxHeight, maxRange float64) Info {
	g := Background(ctx, f, t)
	a := Axes(ctx, f, maxHeight, maxRange, g.Y)
	Sky(ctx, f, t)
	return Info{Ground: g, AxesInfo: a}
}
