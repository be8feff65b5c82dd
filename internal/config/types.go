// Package config loads canvas host settings from Lua or TOML files.
package config

import (
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// HostConfig is everything needed to build a canvas Host and its window.
type HostConfig struct {
	// AspectRatio is an aspect policy name: horizontal, square, vertical
	// or vertical-large.
	AspectRatio     string  `toml:"aspect_ratio"`
	LightBackground string  `toml:"light_background"`
	DarkBackground  string  `toml:"dark_background"`
	Animate         bool    `toml:"animate"`
	ReferenceSize   float64 `toml:"reference_size"`

	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`

	// Theme is light, dark, auto or file:<path>.
	Theme string `toml:"theme"`
	// Script is a Lua file defining draw(r, t).
	Script string `toml:"script"`
	// Scene lists built-in scene modules drawn before the script.
	Scene []string `toml:"scene"`
}

// Aspect returns the parsed aspect policy.
func (c HostConfig) Aspect() (canvas.AspectPolicy, error) {
	return canvas.ParseAspectPolicy(c.AspectRatio)
}

// HostOptions converts the settings into canvas.Options. OnDraw and the
// mouse handlers are left for the caller.
func (c HostConfig) HostOptions() (canvas.Options, error) {
	aspect, err := c.Aspect()
	if err != nil {
		return canvas.Options{}, err
	}
	return canvas.Options{
		LightBackground: c.LightBackground,
		DarkBackground:  c.DarkBackground,
		AspectRatio:     aspect,
		Animate:         c.Animate,
		ReferenceSize:   c.ReferenceSize,
	}, nil
}
