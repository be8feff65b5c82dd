package paint

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// ImagePattern repeats an image in both directions, anchored at the
// user-space origin.
type ImagePattern struct {
	img *image.NRGBA
}

// NewImagePattern copies src into a repeating pattern. It returns nil for an
// empty image.
func NewImagePattern(src image.Image) *ImagePattern {
	b := src.Bounds()
	if b.Empty() {
		return nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return &ImagePattern{img: img}
}

// Image returns the tile.
func (p *ImagePattern) Image() *image.NRGBA {
	return p.img
}

// ColorAt returns the tile pixel under (x, y), wrapping in both axes.
func (p *ImagePattern) ColorAt(x, y float64) color.NRGBA {
	w, h := p.img.Rect.Dx(), p.img.Rect.Dy()
	ix := wrap(int(math.Floor(x)), w)
	iy := wrap(int(math.Floor(y)), h)
	return p.img.NRGBAAt(ix, iy)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
