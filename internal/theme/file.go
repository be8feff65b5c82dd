package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/opd-ai/go-canvas/internal/watch"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// FileObserver follows a marker file whose trimmed content is "dark" or
// "light". A missing or unrecognised file means light.
type FileObserver struct {
	*canvas.ManualTheme
	path string
	w    *watch.Watcher
	log  canvas.Logger
}

// NewFileObserver reads path and starts watching it.
func NewFileObserver(path string, debounce time.Duration, log canvas.Logger) (*FileObserver, error) {
	if path == "" {
		return nil, errors.New("theme file path is empty")
	}
	if log == nil {
		log = canvas.NopLogger()
	}
	o := &FileObserver{path: path, log: log}
	dark, err := readMarker(path)
	if err != nil {
		return nil, err
	}
	o.ManualTheme = canvas.NewManualTheme(dark)

	w, err := watch.New(path, debounce, o.reload, func(err error) {
		log.Warn("theme file watch error", "path", path, "err", err)
	})
	if err != nil {
		return nil, fmt.Errorf("watch theme file: %w", err)
	}
	o.w = w
	w.Start()
	return o, nil
}

func (o *FileObserver) reload() error {
	dark, err := readMarker(o.path)
	if err != nil {
		return err
	}
	o.log.Debug("theme file changed", "path", o.path, "dark", dark)
	o.Set(dark)
	return nil
}

// Close stops watching.
func (o *FileObserver) Close() error {
	o.w.Stop()
	return nil
}

func readMarker(path string) (bool, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read theme file: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(string(b)), "dark"), nil
}
