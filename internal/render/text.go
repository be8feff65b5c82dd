package render

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce sync.Once
	fontSrc  *text.GoTextFaceSource
	fontErr  error
)

// newFace returns a Go Regular face of the given pixel size. The font
// source is parsed once per process.
func newFace(size float64) (*text.GoTextFace, error) {
	fontOnce.Do(func() {
		fontSrc, fontErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if fontErr != nil {
		return nil, fmt.Errorf("load font: %w", fontErr)
	}
	return &text.GoTextFace{Source: fontSrc, Size: size}, nil
}
