package canvastest

import (
	"sync"

	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// Surface is a canvas.Surface backed by a Recorder.
type Surface struct {
	Rec *Recorder
	// Detached makes Context return nil, as an unmounted element would.
	Detached bool

	mu    sync.Mutex
	sizes [][2]int
}

// NewSurface returns a surface with a zero-sized recorder.
func NewSurface() *Surface {
	return &Surface{Rec: NewRecorder(0, 0)}
}

func (s *Surface) SetSize(w, h int) {
	s.mu.Lock()
	s.sizes = append(s.sizes, [2]int{w, h})
	s.mu.Unlock()
	s.Rec.SetSize(w, h)
}

func (s *Surface) Context() canvas.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Detached {
		return nil
	}
	return s.Rec
}

func (s *Surface) Size() (int, int) {
	return s.Rec.Width(), s.Rec.Height()
}

// Sizes returns every size passed to SetSize.
func (s *Surface) Sizes() [][2]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][2]int(nil), s.sizes...)
}
