package render

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// Surface is an offscreen ebiten image that a Host sizes. The Game draws
// it onto the window centred in the container.
type Surface struct {
	mu   sync.Mutex
	img  *ebiten.Image
	c    *Canvas
	w, h int
}

// NewSurface returns an empty surface.
func NewSurface() *Surface { return &Surface{} }

// SetSize reallocates the image when the size changes. A zero dimension
// releases it.
func (s *Surface) SetSize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img != nil && w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	if s.img != nil {
		s.img.Deallocate()
		s.img, s.c = nil, nil
	}
	if w <= 0 || h <= 0 {
		return
	}
	s.img = ebiten.NewImage(w, h)
	s.c = NewCanvas(s.img)
}

// Context returns the drawing context, or nil while the surface is empty.
func (s *Surface) Context() canvas.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		return nil
	}
	return s.c
}

// Size returns the last size requested by SetSize.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

// Image returns the backing image, or nil.
func (s *Surface) Image() *ebiten.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img
}

var _ canvas.Surface = (*Surface)(nil)
