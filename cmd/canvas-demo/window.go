package main

import (
	"context"
	"errors"
	"image/color"

	"github.com/opd-ai/go-canvas/internal/config"
	"github.com/opd-ai/go-canvas/internal/render"
	"github.com/opd-ai/go-canvas/internal/script"
	"github.com/opd-ai/go-canvas/internal/theme"
	"github.com/opd-ai/go-canvas/internal/watch"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// window opens the ebiten window and blocks until it closes or ctx ends.
// T toggles the theme and edits to the script are picked up live.
func window(ctx context.Context, cfg config.HostConfig, opts canvas.Options, th theme.Observer, runner *script.Runner, log canvas.Logger) error {
	game, err := render.NewGame(render.Config{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Title:     cfg.Title,
		Letterbox: color.RGBA{A: 255},
		Resizable: true,
	}, opts, canvas.WithTheme(th), canvas.WithLogger(log))
	if err != nil {
		return canvas.Categorize(err, canvas.CategoryRender, canvas.SeverityCritical)
	}
	game.SetLogger(log)
	game.SetContext(ctx)
	game.SetThemeToggle(func() {
		log.Info("theme toggled", "dark", th.Toggle())
	})

	if runner != nil && runner.Path() != "" {
		w, err := runner.Watch(watch.DefaultDebounce, game.Host().Redraw)
		if err != nil {
			log.Warn("script hot reload disabled", "error", err)
		} else {
			w.Start()
			defer w.Stop()
		}
	}

	if err := game.Run(); err != nil && !errors.Is(err, render.ErrGameTerminated) {
		return canvas.Categorize(err, canvas.CategoryRender, canvas.SeverityError)
	}
	return nil
}
