package canvas_test

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opd-ai/go-canvas/internal/paint"
	"github.com/opd-ai/go-canvas/pkg/canvas"
	"github.com/opd-ai/go-canvas/pkg/canvas/canvastest"
)

func TestTransformRestoresExactMatrix(t *testing.T) {
	tests := []struct {
		name  string
		rot   float64
		scale []float64
	}{
		{"translate only", 0, nil},
		{"rotate", 0.3, nil},
		{"uniform scale", 1.1, []float64{2}},
		{"non-uniform scale", -2.7, []float64{0.5, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := canvastest.NewRecorder(100, 100)
			rec.Translate(3, 4)
			rec.Rotate(0.1)
			before := rec.Transform()

			f := canvas.NewFrame(rec, canvas.FrameOptions{})
			restore := f.Transform(10, 20, tt.rot, tt.scale...)
			if rec.Transform() == before {
				t.Error("transform did not change the matrix")
			}
			restore()
			if got := rec.Transform(); got != before {
				t.Errorf("after restore = %+v, want %+v", got, before)
			}
		})
	}
}

func TestTransformRestoresAfterPanic(t *testing.T) {
	rec := canvastest.NewRecorder(100, 100)
	f := canvas.NewFrame(rec, canvas.FrameOptions{})
	func() {
		defer func() { _ = recover() }()
		restore := f.Transform(5, 5, 1, 2)
		defer restore()
		panic("draw failed")
	}()
	if !rec.Transform().IsIdentity() {
		t.Errorf("matrix after panic = %+v, want identity", rec.Transform())
	}
}

func TestTransformUniformScale(t *testing.T) {
	rec := canvastest.NewRecorder(100, 100)
	canvas.NewFrame(rec, canvas.FrameOptions{}).Transform(0, 0, 0, 3)
	x, y := rec.Transform().Apply(1, 1)
	if x != 3 || y != 3 {
		t.Errorf("uniform scale maps (1,1) to (%v,%v)", x, y)
	}
}

func TestGradient(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	rec := canvastest.NewRecorder(100, 100)
	f := canvas.NewFrame(rec, canvas.FrameOptions{})
	g := f.Gradient(canvas.GradientLinear, 0, 0, 100, 0, []canvas.ColorStop{
		{Offset: 1, Color: blue},
		{Offset: 0, Color: red},
	})
	pg, ok := g.(*paint.Gradient)
	if !ok {
		t.Fatalf("gradient type %T", g)
	}
	want := []paint.Stop{{Offset: 1, Color: blue}, {Offset: 0, Color: red}}
	if diff := cmp.Diff(want, pg.Stops()); diff != "" {
		t.Errorf("stops keep call order (-want +got):\n%s", diff)
	}
	if got := g.ColorAt(0, 50); got != red {
		t.Errorf("start = %v, want red", got)
	}

	f.Gradient(canvas.GradientRadial, 10, 10, 13, 14, nil)
	ops := rec.Ops()
	last := ops[len(ops)-1]
	if last.Name != "CreateRadialGradient" {
		t.Fatalf("last op = %s", last.Name)
	}
	if diff := cmp.Diff([]float64{10, 10, 0, 13, 14, 5}, last.Args); diff != "" {
		t.Errorf("radial args (-want +got):\n%s", diff)
	}
}

func TestGradientWithoutContext(t *testing.T) {
	f := canvas.NewFrame(nil, canvas.FrameOptions{})
	g := f.Gradient(canvas.GradientRadial, 0, 0, 3, 4, []canvas.ColorStop{{Offset: 0, Color: color.White}})
	if g == nil {
		t.Fatal("want a detached gradient")
	}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if got := g.ColorAt(3, 4); got != white {
		t.Errorf("ColorAt(3, 4) = %v, want white", got)
	}
}
