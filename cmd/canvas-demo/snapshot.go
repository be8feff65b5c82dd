package main

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-canvas/internal/raster"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// snapshot fits a surface into a w by h box, draws one frame with the CPU
// rasteriser and writes it as PNG. The image has the fitted size, which
// may be smaller than the box on one axis.
func snapshot(path string, w, h int, opts canvas.Options, th canvas.ThemeObserver, log canvas.Logger) error {
	surface := raster.NewSurface()
	host := canvas.NewHost(opts, canvas.WithTheme(th), canvas.WithLogger(log))
	if err := host.Mount(surface); err != nil {
		return err
	}
	defer host.Unmount()
	defer surface.SetSize(0, 0)

	host.Resize(float64(w), float64(h))
	if err := surface.Err(); err != nil {
		return fmt.Errorf("allocate surface: %w", err)
	}
	c := surface.Canvas()
	if c == nil {
		return errors.New("box too small for the aspect ratio")
	}
	if err := c.Err(); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if err := c.SavePNG(path); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
