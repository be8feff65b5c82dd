package theme

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestOpenModes(t *testing.T) {
	tests := []struct {
		mode     string
		wantDark bool
	}{
		{"light", false},
		{"dark", true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			o, err := Open(tt.mode, nil)
			if err != nil {
				t.Fatal(err)
			}
			defer o.Close()
			if o.IsDark() != tt.wantDark {
				t.Errorf("IsDark = %v, want %v", o.IsDark(), tt.wantDark)
			}
			if o.Toggle() == tt.wantDark {
				t.Error("Toggle did not flip the theme")
			}
		})
	}
}

func TestOpenUnknownMode(t *testing.T) {
	if _, err := Open("sepia", nil); err == nil {
		t.Error("Open accepted an unknown mode")
	}
}

func TestOpenAutoFallsBackToEnv(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("GTK_THEME", "Adwaita:dark")
	o, err := Open("auto", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer o.Close()
	if !o.IsDark() {
		t.Error("auto without X did not honour GTK_THEME")
	}
}

func TestIsDarkName(t *testing.T) {
	tests := map[string]bool{
		"Adwaita":      false,
		"Adwaita-dark": true,
		"Adwaita:dark": true,
		"Yaru-Dark":    true,
		"":             false,
	}
	for name, want := range tests {
		if got := IsDarkName(name); got != want {
			t.Errorf("IsDarkName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFileObserver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme")
	o, err := NewFileObserver(path, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer o.Close()
	if o.IsDark() {
		t.Fatal("missing marker file read as dark")
	}

	var changes atomic.Int32
	unsubscribe := o.OnChange(func(bool) { changes.Add(1) })
	defer unsubscribe()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte(" Dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !o.IsDark() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !o.IsDark() {
		t.Fatal("observer did not pick up the dark marker")
	}
	if changes.Load() != 1 {
		t.Errorf("notifications = %d, want 1", changes.Load())
	}
}

func TestOpenFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme")
	if err := os.WriteFile(path, []byte("dark"), 0o644); err != nil {
		t.Fatal(err)
	}
	o, err := Open("file:"+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer o.Close()
	if !o.IsDark() {
		t.Error("file mode ignored the marker")
	}
}

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// xsettingsBlob encodes settings in the XSETTINGS wire format.
func xsettingsBlob(order byteOrder, ints map[string]int32, strs map[string]string) []byte {
	var b []byte
	u16 := func(v uint16) { b = order.AppendUint16(b, v) }
	u32 := func(v uint32) { b = order.AppendUint32(b, v) }
	padTo4 := func() {
		for len(b)%4 != 0 {
			b = append(b, 0)
		}
	}
	name := func(kind byte, s string) {
		b = append(b, kind, 0)
		u16(uint16(len(s)))
		b = append(b, s...)
		padTo4()
		u32(0)
	}

	if order == binary.BigEndian {
		b = append(b, 1, 0, 0, 0)
	} else {
		b = append(b, 0, 0, 0, 0)
	}
	u32(7)
	u32(uint32(len(ints) + len(strs) + 1))
	for k, v := range ints {
		name(xsInt, k)
		u32(uint32(v))
	}
	name(xsColor, "Gtk/Color")
	b = append(b, make([]byte, 8)...)
	for k, v := range strs {
		name(xsString, k)
		u32(uint32(len(v)))
		b = append(b, v...)
		padTo4()
	}
	return b
}

func TestParseXSettings(t *testing.T) {
	strs := map[string]string{ThemeNameSetting: "Adwaita-dark", "Net/IconThemeName": "Yaru"}
	for _, order := range []byteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			blob := xsettingsBlob(order, map[string]int32{"Xft/DPI": 98304}, strs)
			got, err := parseXSettings(blob)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(strs, got); diff != "" {
				t.Errorf("settings (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseXSettingsTruncated(t *testing.T) {
	blob := xsettingsBlob(binary.LittleEndian, nil, map[string]string{ThemeNameSetting: "Adwaita"})
	for _, n := range []int{0, 8, 14, len(blob) - 3} {
		if _, err := parseXSettings(blob[:n]); err == nil {
			t.Errorf("parse of %d/%d bytes succeeded", n, len(blob))
		}
	}
}
