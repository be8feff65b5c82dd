package canvas

import (
	"fmt"
	"math"
)

// AspectPolicy maps a container box to surface dimensions of a fixed ratio.
type AspectPolicy int

const (
	// Horizontal is 2:1 and fills the container width first.
	Horizontal AspectPolicy = iota
	// Square is 1:1.
	Square
	// Vertical is 9:16.
	Vertical
	// VerticalLarge is 4:5.
	VerticalLarge
)

var aspectNames = [...]string{
	Horizontal:    "horizontal",
	Square:        "square",
	Vertical:      "vertical",
	VerticalLarge: "vertical-large",
}

var aspectRatios = [...][2]int{
	Horizontal:    {2, 1},
	Square:        {1, 1},
	Vertical:      {9, 16},
	VerticalLarge: {4, 5},
}

func (p AspectPolicy) valid() bool {
	return p >= 0 && int(p) < len(aspectNames)
}

func (p AspectPolicy) String() string {
	if p.valid() {
		return aspectNames[p]
	}
	return fmt.Sprintf("AspectPolicy(%d)", int(p))
}

// ParseAspectPolicy accepts horizontal, square, vertical and
// vertical-large. The empty string selects Horizontal.
func ParseAspectPolicy(s string) (AspectPolicy, error) {
	if s == "" {
		return Horizontal, nil
	}
	for i, name := range aspectNames {
		if name == s {
			return AspectPolicy(i), nil
		}
	}
	return Horizontal, fmt.Errorf("unknown aspect ratio %q", s)
}

// Ratio returns the declared width:height ratio. Unknown values report
// the Horizontal ratio.
func (p AspectPolicy) Ratio() (rw, rh int) {
	if !p.valid() {
		p = Horizontal
	}
	r := aspectRatios[p]
	return r[0], r[1]
}

// Fit returns the largest surface of exactly the declared ratio that fits
// inside a w by h container. Horizontal fills the width first and the other
// policies fill the height first; either falls back to the other axis when
// the first choice overflows. Dimensions are whole multiples of the ratio
// so the ratio holds exactly after pixel rounding. A container smaller than
// one ratio unit yields (0, 0). Neither dimension exceeds math.MaxInt32.
func (p AspectPolicy) Fit(w, h float64) (int, int) {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return 0, 0
	}
	rw, rh := p.Ratio()
	fw, fh := float64(rw), float64(rh)

	var units float64
	if p == Horizontal || !p.valid() {
		units = w / fw
		if units*fh > h {
			units = h / fh
		}
	} else {
		units = h / fh
		if units*fw > w {
			units = w / fw
		}
	}
	if lim := float64(math.MaxInt32 / max(rw, rh)); units > lim {
		units = lim
	}
	n := int(math.Floor(units + 1e-9))
	// floor of a nudged value must not push past the box
	for n > 0 && (float64(n*rw) > w || float64(n*rh) > h) {
		n--
	}
	return n * rw, n * rh
}
