package canvas_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opd-ai/go-canvas/pkg/canvas"
	"github.com/opd-ai/go-canvas/pkg/canvas/canvastest"
)

func TestFrameScale(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		ref       float64
		wantScale float64
	}{
		{"reference square", 400, 400, 0, 1},
		{"wide uses height", 800, 200, 0, 0.5},
		{"tall uses width", 100, 900, 0, 0.25},
		{"custom reference", 300, 300, 100, 3},
		{"negative reference falls back", 800, 800, -5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := canvas.NewFrame(canvastest.NewRecorder(tt.w, tt.h), canvas.FrameOptions{ReferenceSize: tt.ref})
			if got := f.Scale(); got != tt.wantScale {
				t.Errorf("Scale() = %v, want %v", got, tt.wantScale)
			}
			for _, v := range []float64{0, 0.5, 1, 10, 250} {
				if got, want := f.Size(v), math.Max(1, v*tt.wantScale); got != want {
					t.Errorf("Size(%v) = %v, want %v", v, got, want)
				}
			}
		})
	}
}

func TestFrameSizeMonotonic(t *testing.T) {
	f := canvas.NewFrame(canvastest.NewRecorder(123, 77), canvas.FrameOptions{})
	prev := f.Size(-10)
	for v := -10.0; v <= 500; v += 0.37 {
		got := f.Size(v)
		if got < prev {
			t.Fatalf("Size(%v) = %v decreased from %v", v, got, prev)
		}
		prev = got
	}
}

func TestFrameDegenerate(t *testing.T) {
	frames := map[string]*canvas.Frame{
		"nil context": canvas.NewFrame(nil, canvas.FrameOptions{}),
		"zero size":   canvas.NewFrame(canvastest.NewRecorder(0, 0), canvas.FrameOptions{}),
		"negative":    canvas.NewFrame(canvastest.NewRecorder(-3, 50), canvas.FrameOptions{}),
		"nan ref":     canvas.NewFrame(canvastest.NewRecorder(0, 0), canvas.FrameOptions{ReferenceSize: math.NaN()}),
	}
	for name, f := range frames {
		t.Run(name, func(t *testing.T) {
			vals := []float64{
				f.Scale(), f.CenterX(), f.CenterY(), f.Width(), f.Height(),
				f.Size(10), f.Margin(10), f.X(10), f.Y(10), f.PercentX(50), f.PercentY(50),
				f.FontSize(16), f.LineWidth(2),
			}
			for i, v := range vals {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Errorf("derived value %d is %v", i, v)
				}
			}
			if f.Scale() != canvas.MinScale {
				t.Errorf("Scale() = %v, want MinScale", f.Scale())
			}
			// primitives on a degenerate frame must not panic
			f.Circle(1, 1, 1, true)
			f.RoundedRect(0, 0, 1, 1, 0.2, false)
			f.Text("x", 0, 0, canvas.TextStyle{Size: 8})
			f.Transform(1, 1, 1, 2)()
		})
	}
}

func TestFrameHelpers(t *testing.T) {
	f := canvas.NewFrame(canvastest.NewRecorder(800, 400), canvas.FrameOptions{})
	// scale is 1
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Margin floors at 2", f.Margin(1), 2},
		{"Margin scales", f.Margin(10), 10},
		{"Radius equals Size", f.Radius(0.2), 1},
		{"Spacing equals Size", f.Spacing(7), 7},
		{"X has no floor", f.X(0.25), 0.25},
		{"PercentX", f.PercentX(25), 200},
		{"PercentY", f.PercentY(25), 100},
		{"FontSize default min", f.FontSize(4), 8},
		{"FontSize custom min", f.FontSize(4, 2), 4},
		{"FontSize scaled", f.FontSize(16), 16},
		{"LineWidth default min", f.LineWidth(0.1), 1},
		{"LineWidth custom min", f.LineWidth(0.1, 0.05), 0.1},
		{"CenterX", f.CenterX(), 400},
		{"CenterY", f.CenterY(), 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-12 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if diff := cmp.Diff([]float64{2, 2}, f.DashArray(1)); diff != "" {
		t.Errorf("DashArray(1) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{6, 6}, f.DashArray(6)); diff != "" {
		t.Errorf("DashArray(6) (-want +got):\n%s", diff)
	}
}

func TestGridAndRelative(t *testing.T) {
	f := canvas.NewFrame(canvastest.NewRecorder(300, 200), canvas.FrameOptions{ReferenceSize: 100})
	got := f.Grid(3, 4, 2, 1)
	want := canvas.Cell{X: 200, Y: 50, Width: 100, Height: 50}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Grid (-want +got):\n%s", diff)
	}

	x, y := f.Relative(10, 20, 5, -5)
	if x != 20 || y != 10 {
		t.Errorf("Relative = (%v, %v), want (20, 10)", x, y)
	}
}

func TestMathHelpers(t *testing.T) {
	f := canvas.NewFrame(canvastest.NewRecorder(10, 10), canvas.FrameOptions{})
	bounds := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{9.99, 9.99, true},
		{10, 5, false},
		{5, 10, false},
		{-0.01, 5, false},
	}
	for _, b := range bounds {
		if got := f.InBounds(b.x, b.y); got != b.want {
			t.Errorf("InBounds(%v, %v) = %v, want %v", b.x, b.y, got, b.want)
		}
	}

	if got := canvas.Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := canvas.Deg2Rad(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Deg2Rad(180) = %v", got)
	}
	if got := canvas.Rad2Deg(math.Pi / 2); math.Abs(got-90) > 1e-12 {
		t.Errorf("Rad2Deg(pi/2) = %v", got)
	}
	if got := canvas.Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp high = %v", got)
	}
	if got := canvas.Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp low = %v", got)
	}
	if got := canvas.Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Lerp = %v", got)
	}
	if got := canvas.Map(5, 0, 10, 100, 200); got != 150 {
		t.Errorf("Map = %v", got)
	}
	if got := canvas.Map(1, 1, 1, 0, 1); !math.IsNaN(got) {
		t.Errorf("Map over an empty range = %v, want NaN", got)
	}
}
