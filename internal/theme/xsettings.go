package theme

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ThemeNameSetting is the XSETTINGS key carrying the GTK theme name.
const ThemeNameSetting = "Net/ThemeName"

var errShortSettings = errors.New("xsettings: truncated data")

const (
	xsInt    = 0
	xsString = 1
	xsColor  = 2
)

func pad4(n int) int { return (n + 3) &^ 3 }

// parseXSettings decodes the _XSETTINGS_SETTINGS property and returns its
// string-valued settings.
func parseXSettings(data []byte) (map[string]string, error) {
	if len(data) < 12 {
		return nil, errShortSettings
	}
	var order binary.ByteOrder = binary.LittleEndian
	if data[0] != 0 {
		order = binary.BigEndian
	}
	n := order.Uint32(data[8:12])
	out := make(map[string]string)
	p := 12
	for i := uint32(0); i < n; i++ {
		if p+4 > len(data) {
			return nil, errShortSettings
		}
		kind := data[p]
		nameLen := int(order.Uint16(data[p+2 : p+4]))
		p += 4
		if p+pad4(nameLen)+4 > len(data) {
			return nil, errShortSettings
		}
		name := string(data[p : p+nameLen])
		p += pad4(nameLen) + 4 // name, last-change serial

		switch kind {
		case xsInt:
			p += 4
		case xsColor:
			p += 8
		case xsString:
			if p+4 > len(data) {
				return nil, errShortSettings
			}
			vlen := int(order.Uint32(data[p : p+4]))
			p += 4
			if vlen < 0 || p+vlen > len(data) {
				return nil, errShortSettings
			}
			out[name] = string(data[p : p+vlen])
			p += pad4(vlen)
		default:
			return nil, fmt.Errorf("xsettings: unknown setting type %d", kind)
		}
		if p > len(data) {
			return nil, errShortSettings
		}
	}
	return out, nil
}
