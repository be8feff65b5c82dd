package raster

import (
	"image"
	"sync"

	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// Surface is a canvas.Surface backed by a Canvas. The Canvas is allocated
// on the first non-empty SetSize and reallocated on every later size change.
type Surface struct {
	mu   sync.Mutex
	c    *Canvas
	w, h int
	err  error
}

// NewSurface returns an empty surface.
func NewSurface() *Surface { return &Surface{} }

// SetSize resizes the backing canvas. A zero dimension detaches it.
func (s *Surface) SetSize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w, s.h = w, h
	if w <= 0 || h <= 0 {
		if s.c != nil {
			s.c.Close()
			s.c = nil
		}
		return
	}
	if s.c == nil {
		s.c, s.err = New(w, h)
		return
	}
	if s.c.Width() == w && s.c.Height() == h {
		return
	}
	s.err = s.c.Resize(w, h)
}

// Context returns the canvas, or nil while the surface is empty.
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

// Canvas returns the backing canvas, or nil.
func (s *Surface) Canvas() *Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c
}

// Image returns the current pixels, or nil while the surface is empty.
func (s *Surface) Image() image.Image {
	if c := s.Canvas(); c != nil {
		return c.Image()
	}
	return nil
}

// Err returns the last allocation error.
func (s *Surface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

var _ canvas.Surface = (*Surface)(nil)
