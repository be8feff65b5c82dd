//go:build linux

package theme

import (
	"errors"
	"testing"

	"github.com/jezek/xgb/xproto"

	"github.com/opd-ai/go-canvas/pkg/canvas"
)

func TestXSettingsHandle(t *testing.T) {
	const settingsAtom = xproto.Atom(42)
	tests := []struct {
		name     string
		ev       xproto.PropertyNotifyEvent
		dark     bool
		readErr  error
		wantDark bool
		wantRead bool
	}{
		{"theme turns dark", xproto.PropertyNotifyEvent{Atom: settingsAtom}, true, nil, true, true},
		{"reread fails", xproto.PropertyNotifyEvent{Atom: settingsAtom}, true, errors.New("gone"), false, true},
		{"other property", xproto.PropertyNotifyEvent{Atom: settingsAtom + 1}, true, nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &XSettingsObserver{
				ManualTheme: canvas.NewManualTheme(false),
				prop:        settingsAtom,
				log:         canvas.NopLogger(),
			}
			read := false
			o.handle(tt.ev, nil, func() (bool, error) {
				read = true
				return tt.dark, tt.readErr
			})
			if read != tt.wantRead {
				t.Errorf("read called = %v, want %v", read, tt.wantRead)
			}
			if o.IsDark() != tt.wantDark {
				t.Errorf("IsDark = %v, want %v", o.IsDark(), tt.wantDark)
			}
		})
	}
}

func TestXSettingsHandleEventError(t *testing.T) {
	o := &XSettingsObserver{
		ManualTheme: canvas.NewManualTheme(true),
		log:         canvas.NopLogger(),
	}
	o.handle(nil, xproto.WindowError{}, func() (bool, error) {
		t.Fatal("read called after an event error")
		return false, nil
	})
	if !o.IsDark() {
		t.Error("theme changed after an event error")
	}
}
