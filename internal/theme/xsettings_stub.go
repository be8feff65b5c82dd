//go:build !linux

package theme

import "github.com/opd-ai/go-canvas/pkg/canvas"

// XSettingsObserver is only available on Linux.
type XSettingsObserver struct {
	*canvas.ManualTheme
}

// NewXSettingsObserver always fails off Linux.
func NewXSettingsObserver(canvas.Logger) (*XSettingsObserver, error) {
	return nil, ErrUnsupported
}

func (*XSettingsObserver) Close() error { return nil }
