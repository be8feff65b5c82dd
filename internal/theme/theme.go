// Package theme supplies canvas.ThemeObserver implementations: a fixed
// choice, a marker file and the desktop's XSETTINGS theme name.
package theme

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// ErrUnsupported is returned when desktop theme detection is unavailable
// on this platform or session.
var ErrUnsupported = errors.New("theme detection unsupported")

// Observer is a ThemeObserver the demo can toggle by hand and must close.
type Observer interface {
	canvas.ThemeObserver
	Toggle() bool
	Close() error
}

type fixed struct{ *canvas.ManualTheme }

func (fixed) Close() error { return nil }

// Fixed returns an observer that starts at dark and only changes on Toggle.
func Fixed(dark bool) Observer {
	return fixed{canvas.NewManualTheme(dark)}
}

// Open resolves a theme mode:
//
//	light, dark     fixed
//	auto            XSETTINGS, then $GTK_THEME, then light
//	file:<path>     a marker file holding "dark" or "light"
//
// The empty mode is auto.
func Open(mode string, log canvas.Logger) (Observer, error) {
	if log == nil {
		log = canvas.NopLogger()
	}
	switch {
	case mode == "light":
		return Fixed(false), nil
	case mode == "dark":
		return Fixed(true), nil
	case mode == "" || mode == "auto":
		o, err := NewXSettingsObserver(log)
		if err == nil {
			return o, nil
		}
		log.Debug("xsettings unavailable", "err", err)
		return Fixed(EnvDark()), nil
	case strings.HasPrefix(mode, "file:"):
		o, err := NewFileObserver(strings.TrimPrefix(mode, "file:"), 0, log)
		if err != nil {
			return nil, err
		}
		return o, nil
	}
	return nil, fmt.Errorf("unknown theme mode %q", mode)
}

// EnvDark reports whether $GTK_THEME names a dark variant, as in
// "Adwaita:dark".
func EnvDark() bool {
	return IsDarkName(os.Getenv("GTK_THEME"))
}

// IsDarkName reports whether a desktop theme name is a dark variant.
func IsDarkName(name string) bool {
	return strings.Contains(strings.ToLower(name), "dark")
}
