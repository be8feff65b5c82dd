package paint

import "math"

// Point is a device-space coordinate.
type Point struct {
	X, Y float64
}

// Subpath is a flattened polyline.
type Subpath struct {
	Points []Point
	Closed bool
}

// tolerance is the maximum distance, in device pixels, between a curve and
// its flattened polyline.
const tolerance = 0.25

// Path accumulates flattened subpaths. Every point is pushed through the
// matrix supplied with the call, so callers keep the current transform and
// the path itself stays in device space.
type Path struct {
	subpaths []Subpath
	// user-space current point, needed to start curves and arcs
	ux, uy float64
	hasCur bool
}

// Reset drops every subpath.
func (p *Path) Reset() {
	p.subpaths = p.subpaths[:0]
	p.hasCur = false
}

// Empty reports whether the path has no drawable segment.
func (p *Path) Empty() bool {
	for _, sp := range p.subpaths {
		if len(sp.Points) > 1 {
			return false
		}
	}
	return true
}

// Subpaths returns the flattened subpaths. The slice is shared with p.
func (p *Path) Subpaths() []Subpath {
	return p.subpaths
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(m Matrix, x, y float64) {
	dx, dy := m.Apply(x, y)
	p.subpaths = append(p.subpaths, Subpath{Points: []Point{{dx, dy}}})
	p.ux, p.uy, p.hasCur = x, y, true
}

// LineTo adds a straight segment. Without a current point it behaves as
// MoveTo.
func (p *Path) LineTo(m Matrix, x, y float64) {
	if !p.hasCur {
		p.MoveTo(m, x, y)
		return
	}
	p.push(m, x, y)
}

// QuadTo adds a quadratic Bézier curve.
func (p *Path) QuadTo(m Matrix, cx, cy, x, y float64) {
	if !p.hasCur {
		p.MoveTo(m, cx, cy)
	}
	x0, y0 := p.ux, p.uy
	n := segmentsFor(m, math.Hypot(cx-x0, cy-y0)+math.Hypot(x-cx, y-cy))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		px := mt*mt*x0 + 2*mt*t*cx + t*t*x
		py := mt*mt*y0 + 2*mt*t*cy + t*t*y
		p.push(m, px, py)
	}
}

// CubicTo adds a cubic Bézier curve.
func (p *Path) CubicTo(m Matrix, c1x, c1y, c2x, c2y, x, y float64) {
	if !p.hasCur {
		p.MoveTo(m, c1x, c1y)
	}
	x0, y0 := p.ux, p.uy
	length := math.Hypot(c1x-x0, c1y-y0) + math.Hypot(c2x-c1x, c2y-c1y) + math.Hypot(x-c2x, y-c2y)
	n := segmentsFor(m, length)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
		p.push(m, a*x0+b*c1x+c*c2x+d*x, a*y0+b*c1y+c*c2y+d*y)
	}
}

// Arc adds a circular arc around (cx, cy). Angles follow the HTML canvas
// rules: a sweep of 2π or more draws a full circle, otherwise the sweep is
// normalised into (0, 2π) clockwise or (-2π, 0) counter-clockwise. A line
// joins the current point to the arc start.
func (p *Path) Arc(m Matrix, cx, cy, r, start, end float64, ccw bool) {
	if r < 0 || math.IsNaN(r) {
		return
	}
	sweep := ArcSweep(start, end, ccw)

	sx, sy := cx+r*math.Cos(start), cy+r*math.Sin(start)
	if p.hasCur {
		p.push(m, sx, sy)
	} else {
		p.MoveTo(m, sx, sy)
	}
	if sweep == 0 {
		return
	}

	n := segmentsFor(m, math.Abs(sweep)*r)
	for i := 1; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		p.push(m, cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
}

// ArcSweep returns the signed sweep the canvas arc rules produce for the
// given angles.
func ArcSweep(start, end float64, ccw bool) float64 {
	const full = 2 * math.Pi
	sweep := end - start
	if !ccw {
		if sweep >= full {
			return full
		}
		sweep = math.Mod(sweep, full)
		if sweep < 0 {
			sweep += full
		}
		return sweep
	}
	if -sweep >= full {
		return -full
	}
	sweep = math.Mod(sweep, full)
	if sweep > 0 {
		sweep -= full
	}
	return sweep
}

// Rect adds a closed rectangle subpath.
func (p *Path) Rect(m Matrix, x, y, w, h float64) {
	p.MoveTo(m, x, y)
	p.push(m, x+w, y)
	p.push(m, x+w, y+h)
	p.push(m, x, y+h)
	p.Close()
	p.ux, p.uy = x, y
}

// Close closes the current subpath. The next segment starts a new subpath
// at the same point.
func (p *Path) Close() {
	if len(p.subpaths) == 0 {
		return
	}
	last := &p.subpaths[len(p.subpaths)-1]
	if last.Closed || len(last.Points) == 0 {
		return
	}
	last.Closed = true
	first := last.Points[0]
	p.subpaths = append(p.subpaths, Subpath{Points: []Point{first}})
}

func (p *Path) push(m Matrix, x, y float64) {
	dx, dy := m.Apply(x, y)
	last := &p.subpaths[len(p.subpaths)-1]
	last.Points = append(last.Points, Point{dx, dy})
	p.ux, p.uy = x, y
}

// segmentsFor picks a segment count for a curve whose user-space length is
// roughly length under transform m.
func segmentsFor(m Matrix, length float64) int {
	devLen := length * m.LineScale()
	n := int(math.Ceil(math.Sqrt(devLen / tolerance)))
	if n < 4 {
		return 4
	}
	if n > 512 {
		return 512
	}
	return n
}

// Bounds returns the device-space bounding box of every point.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, sp := range p.subpaths {
		for _, pt := range sp.Points {
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
			ok = true
		}
	}
	return minX, minY, maxX, maxY, ok
}

// Dash splits subpaths into open on-segments following pattern, which is in
// device units. An empty pattern, or one whose entries are all zero or any
// entry negative, returns the subpaths unchanged. Odd-length patterns are
// repeated to even length.
func Dash(subpaths []Subpath, pattern []float64) []Subpath {
	if !validDash(pattern) {
		return subpaths
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64{}, pattern...), pattern...)
	}

	var out []Subpath
	for _, sp := range subpaths {
		pts := sp.Points
		if sp.Closed && len(pts) > 1 {
			pts = append(append([]Point{}, pts...), pts[0])
		}
		idx, remain, on := 0, pattern[0], true
		var cur []Point
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
			pos := 0.0
			for segLen-pos > 0 {
				step := math.Min(remain, segLen-pos)
				t0, t1 := pos/segLen, (pos+step)/segLen
				if on {
					p0 := Point{a.X + (b.X-a.X)*t0, a.Y + (b.Y-a.Y)*t0}
					p1 := Point{a.X + (b.X-a.X)*t1, a.Y + (b.Y-a.Y)*t1}
					if len(cur) == 0 {
						cur = append(cur, p0)
					}
					cur = append(cur, p1)
				}
				pos += step
				remain -= step
				if remain <= 0 {
					if on && len(cur) > 1 {
						out = append(out, Subpath{Points: cur})
					}
					cur = nil
					on = !on
					idx = (idx + 1) % len(pattern)
					remain = pattern[idx]
				}
			}
		}
		if on && len(cur) > 1 {
			out = append(out, Subpath{Points: cur})
		}
	}
	return out
}

func validDash(pattern []float64) bool {
	if len(pattern) == 0 {
		return false
	}
	sum := 0.0
	for _, v := range pattern {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		sum += v
	}
	return sum > 0
}
