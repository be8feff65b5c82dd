package canvas

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAlreadyMounted is returned by Mount on a host that owns a surface.
	ErrAlreadyMounted = errors.New("canvas: host already mounted")
	// ErrNilSurface is returned by Mount when given no surface.
	ErrNilSurface = errors.New("canvas: nil surface")
)

// ErrorCategory says which subsystem an error came from.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryConfig
	CategoryScript
	CategoryRender
	CategoryTheme
	CategoryIO
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryConfig:
		return "config"
	case CategoryScript:
		return "script"
	case CategoryRender:
		return "render"
	case CategoryTheme:
		return "theme"
	case CategoryIO:
		return "io"
	}
	return "unknown"
}

// Severity decides whether an embedding program keeps running.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	// SeverityCritical errors stop the program.
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	}
	return "unknown"
}

// CategorizedError tags an error with its origin and severity.
type CategorizedError struct {
	Err      error
	Category ErrorCategory
	Severity Severity
	Time     time.Time
	Fields   map[string]string
}

// Categorize wraps err. It returns nil for a nil err.
func Categorize(err error, cat ErrorCategory, sev Severity) *CategorizedError {
	if err == nil {
		return nil
	}
	return &CategorizedError{Err: err, Category: cat, Severity: sev, Time: time.Now()}
}

func (e *CategorizedError) Error() string {
	return fmt.Sprintf("[%s/%s] %v", e.Severity, e.Category, e.Err)
}

func (e *CategorizedError) Unwrap() error { return e.Err }

// With records a key/value pair and returns e for chaining.
func (e *CategorizedError) With(key, value string) *CategorizedError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[key] = value
	return e
}

// SeverityOf reports the severity of the first CategorizedError in err's
// chain, or SeverityError when there is none.
func SeverityOf(err error) Severity {
	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce.Severity
	}
	return SeverityError
}
