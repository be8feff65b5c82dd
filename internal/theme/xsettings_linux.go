//go:build linux

package theme

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// XSettingsObserver follows Net/ThemeName from the X settings manager and
// reports dark when the name contains "dark".
type XSettingsObserver struct {
	*canvas.ManualTheme
	conn  *xgb.Conn
	owner xproto.Window
	prop  xproto.Atom
	log   canvas.Logger
	once  sync.Once
}

// NewXSettingsObserver connects to $DISPLAY, reads the current theme name
// and watches the settings window for changes. It fails when no settings
// manager owns _XSETTINGS_S0.
func NewXSettingsObserver(log canvas.Logger) (*XSettingsObserver, error) {
	if log == nil {
		log = canvas.NopLogger()
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	o := &XSettingsObserver{conn: conn, log: log}
	if err := o.init(); err != nil {
		conn.Close()
		return nil, err
	}
	go o.loop()
	return o, nil
}

func intern(conn *xgb.Conn, name string) (xproto.Atom, error) {
	r, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	return r.Atom, nil
}

func (o *XSettingsObserver) init() error {
	sel, err := intern(o.conn, "_XSETTINGS_S0")
	if err != nil {
		return err
	}
	if o.prop, err = intern(o.conn, "_XSETTINGS_SETTINGS"); err != nil {
		return err
	}
	owner, err := xproto.GetSelectionOwner(o.conn, sel).Reply()
	if err != nil {
		return fmt.Errorf("get settings owner: %w", err)
	}
	if owner.Owner == xproto.WindowNone {
		return fmt.Errorf("%w: no XSETTINGS manager", ErrUnsupported)
	}
	o.owner = owner.Owner

	dark, err := o.read()
	if err != nil {
		return err
	}
	o.ManualTheme = canvas.NewManualTheme(dark)

	err = xproto.ChangeWindowAttributesChecked(o.conn, o.owner, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return fmt.Errorf("select property events: %w", err)
	}
	return nil
}

func (o *XSettingsObserver) read() (bool, error) {
	r, err := xproto.GetProperty(o.conn, false, o.owner, o.prop,
		xproto.GetPropertyTypeAny, 0, 1<<16).Reply()
	if err != nil {
		return false, fmt.Errorf("read xsettings: %w", err)
	}
	settings, err := parseXSettings(r.Value)
	if err != nil {
		return false, err
	}
	return IsDarkName(settings[ThemeNameSetting]), nil
}

func (o *XSettingsObserver) loop() {
	for {
		ev, err := o.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		o.handle(ev, err, o.read)
	}
}

// handle applies one event from the connection. read fetches the current
// theme from the settings window.
func (o *XSettingsObserver) handle(ev xgb.Event, err xgb.Error, read func() (bool, error)) {
	if err != nil {
		o.log.Warn("xsettings event error", "err", err)
		return
	}
	pn, ok := ev.(xproto.PropertyNotifyEvent)
	if !ok || pn.Atom != o.prop {
		return
	}
	dark, rerr := read()
	if rerr != nil {
		o.log.Warn("xsettings reread failed", "err", rerr)
		return
	}
	o.log.Debug("desktop theme changed", "dark", dark)
	o.Set(dark)
}

// Close disconnects from the X server, which ends the event loop.
func (o *XSettingsObserver) Close() error {
	o.once.Do(o.conn.Close)
	return nil
}
