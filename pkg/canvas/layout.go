package canvas

import "math"

// Cell is one slot of a uniform grid over the surface.
type Cell struct {
	X, Y          float64
	Width, Height float64
}

// Grid divides the surface into cols by rows equal cells and returns the
// cell at (col, row). No gutter is applied.
func (f *Frame) Grid(cols, rows, col, row int) Cell {
	w := f.width / float64(cols)
	h := f.height / float64(rows)
	return Cell{X: float64(col) * w, Y: float64(row) * h, Width: w, Height: h}
}

// Relative offsets a pixel position by a reference-unit delta.
func (f *Frame) Relative(fromX, fromY, dx, dy float64) (x, y float64) {
	return fromX + dx*f.scale, fromY + dy*f.scale
}

// InBounds reports whether (x, y) lies on the surface.
func (f *Frame) InBounds(x, y float64) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// Distance is the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }
func Rad2Deg(rad float64) float64 { return rad * 180 / math.Pi }

// Clamp limits v to [lo, hi]. When lo > hi the result is hi.
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Lerp interpolates linearly; t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Map rescales v from one range to another. fromMin must differ from
// fromMax.
func Map(v, fromMin, fromMax, toMin, toMax float64) float64 {
	return toMin + (v-fromMin)*(toMax-toMin)/(fromMax-fromMin)
}
