package canvas

import (
	"image/color"

	"github.com/opd-ai/go-canvas/internal/paint"
)

// Matrix is a 2D affine transform in canvas component order
// (x' = A*x + C*y + E, y' = B*x + D*y + F).
type Matrix = paint.Matrix

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return paint.Identity()
}

// Paint yields a non-premultiplied colour for a user-space point.
// Gradients and patterns are Paints.
type Paint interface {
	ColorAt(x, y float64) color.NRGBA
}

// Gradient is a Paint that accepts colour stops.
type Gradient interface {
	Paint
	AddColorStop(offset float64, c color.Color)
}

// LineCap is the shape drawn at the ends of open stroked subpaths.
type LineCap int

const (
	// LineCapButt ends the stroke flush with the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound adds a semicircle at each end.
	LineCapRound
	// LineCapSquare adds a half-width square at each end.
	LineCapSquare
)

// TextAlign positions text horizontally relative to the anchor x.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline positions text vertically relative to the anchor y.
type TextBaseline int

const (
	BaselineTop TextBaseline = iota
	BaselineMiddle
	BaselineAlphabetic
	BaselineBottom
)

// TextOptions controls FillText placement. A MaxWidth of zero means no
// limit; otherwise text wider than MaxWidth is drawn at a smaller size.
type TextOptions struct {
	Align    TextAlign
	Baseline TextBaseline
	MaxWidth float64
}

// Context is the 2D drawing context of a raster surface. Its shape follows
// the HTML canvas 2D API so draw code reads the same across backends.
//
// Path coordinates pass through the current transform when they are added,
// not when the path is filled. Implementations are not required to be safe
// for concurrent use; a Host serialises every call it makes.
type Context interface {
	Width() int
	Height() int

	Save()
	Restore()

	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	FillColor() color.Color
	StrokeColor() color.Color
	SetFillPaint(p Paint)
	SetStrokePaint(p Paint)
	SetLineWidth(w float64)
	LineWidth() float64
	SetLineCap(c LineCap)
	SetLineDash(segments []float64)
	SetFontSize(px float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	Arc(x, y, r, start, end float64, counterclockwise bool)
	Rect(x, y, w, h float64)
	ClosePath()
	Fill()
	Stroke()

	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	FillText(s string, x, y float64, opts TextOptions)
	MeasureText(s string) float64

	Translate(x, y float64)
	Rotate(rad float64)
	Scale(sx, sy float64)
	Transform() Matrix
	SetTransform(m Matrix)

	CreateLinearGradient(x0, y0, x1, y1 float64) Gradient
	CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) Gradient

	// NewOffscreen returns a detached context of the given size, used to
	// render pattern tiles.
	NewOffscreen(w, h int) (Context, error)
	// CreatePattern turns the pixels of an offscreen context into a
	// repeating Paint.
	CreatePattern(tile Context) (Paint, error)
}
