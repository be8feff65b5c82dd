package canvas_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opd-ai/go-canvas/pkg/canvas"
	"github.com/opd-ai/go-canvas/pkg/canvas/canvastest"
)

func TestPrimitiveOps(t *testing.T) {
	tests := []struct {
		name string
		draw func(f *canvas.Frame)
		want []string
	}{
		{
			"stroked circle",
			func(f *canvas.Frame) { f.Circle(10, 10, 5, false) },
			[]string{"BeginPath", "Arc", "Stroke"},
		},
		{
			"filled rect",
			func(f *canvas.Frame) { f.Rect(0, 0, 5, 5, true) },
			[]string{"BeginPath", "Rect", "Fill"},
		},
		{
			"line",
			func(f *canvas.Frame) { f.Line(0, 0, 5, 5) },
			[]string{"BeginPath", "MoveTo", "LineTo", "Stroke"},
		},
		{
			"arc",
			func(f *canvas.Frame) { f.Arc(0, 0, 5, 0, math.Pi, true) },
			[]string{"BeginPath", "Arc", "Fill"},
		},
		{
			"text",
			func(f *canvas.Frame) { f.Text("hi", 1, 2, canvas.TextStyle{Size: 12}) },
			[]string{"SetFontSize", "FillText"},
		},
		{
			"rounded rect",
			func(f *canvas.Frame) { f.RoundedRect(0, 0, 20, 10, 2, false) },
			[]string{
				"BeginPath", "MoveTo",
				"LineTo", "QuadraticCurveTo",
				"LineTo", "QuadraticCurveTo",
				"LineTo", "QuadraticCurveTo",
				"LineTo", "QuadraticCurveTo",
				"ClosePath", "Stroke",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := canvastest.NewRecorder(100, 100)
			tt.draw(canvas.NewFrame(rec, canvas.FrameOptions{}))
			if diff := cmp.Diff(tt.want, rec.Names()); diff != "" {
				t.Errorf("ops (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCircleIsFullTurn(t *testing.T) {
	rec := canvastest.NewRecorder(100, 100)
	canvas.NewFrame(rec, canvas.FrameOptions{}).Circle(10, 20, 5, true)
	arc := rec.Ops()[1]
	want := []float64{10, 20, 5, 0, 2 * math.Pi, 0}
	if diff := cmp.Diff(want, arc.Args); diff != "" {
		t.Errorf("Arc args (-want +got):\n%s", diff)
	}
}

func TestTextDefaults(t *testing.T) {
	rec := canvastest.NewRecorder(100, 100)
	f := canvas.NewFrame(rec, canvas.FrameOptions{})
	f.Text("label", 5, 6, canvas.TextStyle{Size: 14})
	f.Text("mid", 5, 6, canvas.TextStyle{Size: 9, Align: canvas.AlignCenter, Baseline: canvas.BaselineMiddle, MaxWidth: 40})

	ops := rec.Ops()
	if diff := cmp.Diff([]float64{5, 6, float64(canvas.AlignLeft), float64(canvas.BaselineTop), 0}, ops[1].Args); diff != "" {
		t.Errorf("default placement (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{5, 6, float64(canvas.AlignCenter), float64(canvas.BaselineMiddle), 40}, ops[3].Args); diff != "" {
		t.Errorf("explicit placement (-want +got):\n%s", diff)
	}
	if rec.FontSize() != 9 {
		t.Errorf("font size = %v, want 9", rec.FontSize())
	}
}

func TestRoundedRectCorners(t *testing.T) {
	rec := canvastest.NewRecorder(100, 100)
	canvas.NewFrame(rec, canvas.FrameOptions{}).RoundedRect(10, 20, 30, 40, 5, true)
	ops := rec.Ops()
	want := map[int][]float64{
		1: {15, 20},         // MoveTo
		2: {35, 20},         // top edge
		3: {40, 20, 40, 25}, // top-right corner
		9: {10, 20, 15, 20}, // top-left corner closes back on the start
	}
	for i, args := range want {
		if diff := cmp.Diff(args, ops[i].Args); diff != "" {
			t.Errorf("op %d %s (-want +got):\n%s", i, ops[i].Name, diff)
		}
	}
}
