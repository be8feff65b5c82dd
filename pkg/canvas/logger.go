package canvas

import (
	"io"
	"log/slog"
	"os"
)

// Logger receives lifecycle messages from a Host and the backends. Args are
// slog-style key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter routes Logger calls to a *slog.Logger.
//
//	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
//	host := canvas.NewHost(opts, canvas.WithLogger(canvas.NewSlogAdapter(slog.New(h))))
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps l, or slog.Default() when l is nil.
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogAdapter{l: l}
}

func (s *SlogAdapter) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *SlogAdapter) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *SlogAdapter) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *SlogAdapter) Error(msg string, args ...any) { s.l.Error(msg, args...) }

// DefaultLogger writes text records at Info level to stderr.
func DefaultLogger() Logger {
	return textLogger(slog.LevelInfo, false)
}

// DebugLogger writes text records at Debug level to stderr with source
// positions.
func DebugLogger() Logger {
	return textLogger(slog.LevelDebug, true)
}

func textLogger(level slog.Level, source bool) Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level, AddSource: source})
	return NewSlogAdapter(slog.New(h))
}

// JSONLogger writes JSON records at level to w, or to stderr when w is nil.
func JSONLogger(w io.Writer, level slog.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	return NewSlogAdapter(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

// NopLogger discards everything.
func NopLogger() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
