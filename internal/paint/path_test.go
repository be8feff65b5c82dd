package paint

import (
	"math"
	"testing"
)

func TestPathRectTransformed(t *testing.T) {
	var p Path
	p.Rect(Identity().Translate(10, 10).Scale(2, 2), 0, 0, 5, 5)

	sps := p.Subpaths()
	if len(sps) == 0 || !sps[0].Closed {
		t.Fatalf("expected a closed first subpath, got %+v", sps)
	}
	want := []Point{{10, 10}, {20, 10}, {20, 20}, {10, 20}}
	if len(sps[0].Points) != len(want) {
		t.Fatalf("got %d points, want %d", len(sps[0].Points), len(want))
	}
	for i, pt := range want {
		if sps[0].Points[i] != pt {
			t.Errorf("point %d = %v, want %v", i, sps[0].Points[i], pt)
		}
	}

	minX, minY, maxX, maxY, ok := p.Bounds()
	if !ok || minX != 10 || minY != 10 || maxX != 20 || maxY != 20 {
		t.Errorf("Bounds = %v %v %v %v %v", minX, minY, maxX, maxY, ok)
	}
}

func TestPathEmpty(t *testing.T) {
	var p Path
	if !p.Empty() {
		t.Error("new path should be empty")
	}
	p.MoveTo(Identity(), 1, 1)
	if !p.Empty() {
		t.Error("a lone MoveTo has nothing to draw")
	}
	p.LineTo(Identity(), 2, 2)
	if p.Empty() {
		t.Error("path with a segment should not be empty")
	}
	p.Reset()
	if !p.Empty() {
		t.Error("Reset should empty the path")
	}
}

func TestPathCurvesEndOnTarget(t *testing.T) {
	var p Path
	m := Identity()
	p.MoveTo(m, 0, 0)
	p.QuadTo(m, 50, 100, 100, 0)
	p.CubicTo(m, 120, -50, 180, 50, 200, 0)

	pts := p.Subpaths()[0].Points
	last := pts[len(pts)-1]
	if !approx(last.X, 200) || !approx(last.Y, 0) {
		t.Errorf("curve ended at %v, want (200, 0)", last)
	}
	if len(pts) < 9 {
		t.Errorf("curves were flattened into too few points: %d", len(pts))
	}
}

func TestArcSweep(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		ccw        bool
		want       float64
	}{
		{"full circle", 0, 2 * math.Pi, false, 2 * math.Pi},
		{"more than full", 0, 7, false, 2 * math.Pi},
		{"half", 0, math.Pi, false, math.Pi},
		{"wraps clockwise", math.Pi, 0, false, math.Pi},
		{"ccw half", 0, math.Pi, true, -math.Pi},
		{"ccw full", 2 * math.Pi, 0, true, -2 * math.Pi},
		{"zero", 1, 1, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArcSweep(tt.start, tt.end, tt.ccw); !approx(got, tt.want) {
				t.Errorf("ArcSweep = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathArcFullCircle(t *testing.T) {
	var p Path
	p.Arc(Identity(), 50, 50, 10, 0, 2*math.Pi, false)
	for _, pt := range p.Subpaths()[0].Points {
		if d := math.Hypot(pt.X-50, pt.Y-50); !approx(d, 10) {
			t.Fatalf("point %v is %v from centre, want 10", pt, d)
		}
	}
}

func TestDash(t *testing.T) {
	line := []Subpath{{Points: []Point{{0, 0}, {10, 0}}}}

	got := Dash(line, []float64{2, 3})
	// on [0,2], off, on [5,7], off
	if len(got) != 2 {
		t.Fatalf("got %d dashes, want 2: %+v", len(got), got)
	}
	if got[0].Points[0].X != 0 || got[0].Points[len(got[0].Points)-1].X != 2 {
		t.Errorf("first dash = %+v", got[0])
	}
	if got[1].Points[0].X != 5 || got[1].Points[len(got[1].Points)-1].X != 7 {
		t.Errorf("second dash = %+v", got[1])
	}

	if same := Dash(line, nil); len(same) != 1 || len(same[0].Points) != 2 {
		t.Error("empty pattern should leave the path untouched")
	}
	if same := Dash(line, []float64{0, 0}); len(same) != 1 {
		t.Error("all-zero pattern should leave the path untouched")
	}
	if same := Dash(line, []float64{-1, 2}); len(same) != 1 {
		t.Error("negative pattern should leave the path untouched")
	}
}

func TestDashOddPatternRepeats(t *testing.T) {
	line := []Subpath{{Points: []Point{{0, 0}, {12, 0}}}}
	// [3] behaves as [3, 3]: on 0-3, off 3-6, on 6-9, off 9-12
	got := Dash(line, []float64{3})
	if len(got) != 2 {
		t.Fatalf("got %d dashes, want 2", len(got))
	}
}
