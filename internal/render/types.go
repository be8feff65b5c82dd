package render

import (
	"fmt"
	"image/color"
)

// Config holds the window options for a Game.
type Config struct {
	// Width and Height are the initial window size in pixels.
	Width  int
	Height int
	// Title is the window title.
	Title string
	// Letterbox fills the window area around the fitted surface.
	Letterbox color.RGBA
	// Resizable lets the user resize the window, which refits the surface.
	Resizable bool
}

// DefaultConfig returns an 800x600 resizable window.
func DefaultConfig() Config {
	return Config{
		Width:     800,
		Height:    600,
		Title:     "go-canvas",
		Letterbox: color.RGBA{A: 255},
		Resizable: true,
	}
}

// Validate checks that the window size is positive.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	return nil
}
