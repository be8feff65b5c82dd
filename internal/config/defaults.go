package config

import "github.com/opd-ai/go-canvas/pkg/canvas"

// Default returns the settings used when no file is given.
func Default() HostConfig {
	return HostConfig{
		AspectRatio:     canvas.Horizontal.String(),
		LightBackground: canvas.DefaultLightBackground,
		DarkBackground:  canvas.DefaultDarkBackground,
		ReferenceSize:   canvas.DefaultReferenceSize,
		Width:           800,
		Height:          600,
		Title:           "go-canvas",
		Theme:           "auto",
		Scene:           []string{"base"},
	}
}
