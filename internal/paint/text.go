package paint

// Text anchors, in the order the public API declares them.
const (
	AlignLeft = iota
	AlignCenter
	AlignRight
)

const (
	BaselineTop = iota
	BaselineMiddle
	BaselineAlphabetic
	BaselineBottom
)

// TextOrigin returns the baseline-left point at which to draw text of the
// given advance width so that (x, y) sits at the requested anchor. ascent
// and descent are positive distances from the baseline.
func TextOrigin(x, y, width, ascent, descent float64, align, baseline int) (float64, float64) {
	switch align {
	case AlignCenter:
		x -= width / 2
	case AlignRight:
		x -= width
	}
	switch baseline {
	case BaselineTop:
		y += ascent
	case BaselineMiddle:
		y += (ascent - descent) / 2
	case BaselineBottom:
		y -= descent
	}
	return x, y
}

// FitSize shrinks size so text of the given width fits maxWidth. A
// non-positive maxWidth means no limit.
func FitSize(size, width, maxWidth float64) float64 {
	if maxWidth <= 0 || width <= maxWidth || width == 0 {
		return size
	}
	return size * maxWidth / width
}
