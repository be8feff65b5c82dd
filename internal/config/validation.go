package config

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/opd-ai/go-canvas/internal/paint"
	"github.com/opd-ai/go-canvas/internal/scene"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// ValidationError names the field a problem was found in.
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult collects every problem in one pass.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid reports whether no errors were found.
func (vr *ValidationResult) IsValid() bool { return len(vr.Errors) == 0 }

// Err joins the errors into one, or returns nil.
func (vr *ValidationResult) Err() error {
	if vr.IsValid() {
		return nil
	}
	msgs := make([]string, len(vr.Errors))
	for i, e := range vr.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

func (vr *ValidationResult) add(field, format string, args ...any) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Check validates every field and reports all problems.
func (c HostConfig) Check() *ValidationResult {
	vr := &ValidationResult{}
	if _, err := canvas.ParseAspectPolicy(c.AspectRatio); err != nil {
		vr.add("aspect_ratio", "%v", err)
	}
	if !(c.ReferenceSize > 0) || math.IsInf(c.ReferenceSize, 0) {
		vr.add("reference_size", "must be positive, got %v", c.ReferenceSize)
	}
	for field, v := range map[string]string{
		"light_background": c.LightBackground,
		"dark_background":  c.DarkBackground,
	} {
		if _, err := paint.ParseColor(v); err != nil {
			vr.add(field, "%v", err)
		}
	}
	if c.Width <= 0 {
		vr.add("width", "must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		vr.add("height", "must be positive, got %d", c.Height)
	}
	switch {
	case c.Theme == "", c.Theme == "light", c.Theme == "dark", c.Theme == "auto":
	case strings.HasPrefix(c.Theme, "file:") && len(c.Theme) > len("file:"):
	default:
		vr.add("theme", "unknown mode %q", c.Theme)
	}
	for _, s := range c.Scene {
		if !slices.Contains(scene.Modules, s) {
			vr.add("scene", "unknown module %q", s)
		}
	}
	slices.SortFunc(vr.Errors, func(a, b ValidationError) int { return strings.Compare(a.Field, b.Field) })
	return vr
}

// Validate returns the joined Check errors, or nil.
func (c HostConfig) Validate() error {
	return c.Check().Err()
}
