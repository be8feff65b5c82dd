package paint

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStackSaveRestore(t *testing.T) {
	s := NewStack()
	s.SetFillColor(white)
	s.SetDash([]float64{1, 2})
	s.Save()

	s.SetFillColor(black)
	s.SetLineWidth(5)
	s.SetDash([]float64{4})
	s.Cur().M = s.Cur().M.Translate(3, 3)
	if diff := cmp.Diff([]float64{4, 4}, s.Cur().Dash); diff != "" {
		t.Errorf("odd dash (-want +got):\n%s", diff)
	}

	s.Restore()
	cur := s.Cur()
	if cur.FillColor != color.Color(white) || cur.LineWidth != 1 || !cur.M.IsIdentity() {
		t.Errorf("restore lost state: %+v", cur)
	}
	if diff := cmp.Diff([]float64{1, 2}, cur.Dash); diff != "" {
		t.Errorf("dash after restore (-want +got):\n%s", diff)
	}
	s.Restore() // unbalanced
}

func TestStackIgnoresInvalid(t *testing.T) {
	s := NewStack()
	s.SetLineWidth(-1)
	s.SetLineWidth(0)
	s.SetFontSize(-3)
	s.SetDash([]float64{1, -2})
	s.SetFillColor(nil)
	s.SetFillSource(nil)
	cur := s.Cur()
	if cur.LineWidth != 1 || cur.FontSize != 10 || cur.Dash != nil || cur.Fill == nil {
		t.Errorf("invalid values changed state: %+v", cur)
	}
}

func TestDeviceDashAndUserSource(t *testing.T) {
	s := NewStack()
	s.SetDash([]float64{2, 3})
	s.Cur().M = Identity().Scale(2, 2)
	if diff := cmp.Diff([]float64{4, 6}, s.DeviceDash()); diff != "" {
		t.Errorf("DeviceDash (-want +got):\n%s", diff)
	}

	g := NewLinearGradient(0, 0, 10, 0)
	g.AddColorStop(0, black)
	g.AddColorStop(1, white)
	sample := UserSource(g, Identity().Scale(10, 10))
	// device x=100 is user x=10
	if got := sample(100, 0); got != white {
		t.Errorf("sample(100, 0) = %v, want white", got)
	}
}

func TestTextOrigin(t *testing.T) {
	tests := []struct {
		name            string
		align, baseline int
		wantX, wantY    float64
	}{
		{"left top", AlignLeft, BaselineTop, 100, 58},
		{"center middle", AlignCenter, BaselineMiddle, 80, 53},
		{"right alphabetic", AlignRight, BaselineAlphabetic, 60, 50},
		{"left bottom", AlignLeft, BaselineBottom, 100, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := TextOrigin(100, 50, 40, 8, 2, tt.align, tt.baseline)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("TextOrigin = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
	if got := FitSize(20, 200, 100); got != 10 {
		t.Errorf("FitSize = %v, want 10", got)
	}
	if got := FitSize(20, 50, 100); got != 20 {
		t.Errorf("FitSize should not grow text, got %v", got)
	}
}
