package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-canvas/internal/watch"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// Options configures a Runner.
type Options struct {
	Limits Limits
	// Stdout receives print output. Nil discards it.
	Stdout io.Writer
	Logger canvas.Logger
	// FailureThreshold consecutive draw failures suspend the script for
	// Cooldown. Zero values select the defaults.
	FailureThreshold int
	Cooldown         time.Duration
}

// Runner holds the current script. Loading a new one replaces it only on
// success, so a broken edit keeps the last good script drawing.
type Runner struct {
	opts    Options
	breaker *breaker

	mu      sync.Mutex
	path    string
	env     *env
	lastErr string
}

// NewRunner returns a Runner with nothing loaded. A zero Limits selects
// DefaultLimits.
func NewRunner(opts Options) *Runner {
	if opts.Limits == (Limits{}) {
		opts.Limits = DefaultLimits()
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = canvas.NopLogger()
	}
	r := &Runner{opts: opts, breaker: newBreaker(opts.FailureThreshold, opts.Cooldown)}
	r.breaker.onChange = r.breakerChanged
	return r
}

func (r *Runner) breakerChanged(from, to BreakerState, failures int) {
	switch to {
	case BreakerOpen:
		r.opts.Logger.Warn("script suspended", "failures", failures, "cooldown", r.breaker.cooldown)
	case BreakerClosed:
		if from != BreakerClosed {
			r.opts.Logger.Info("script resumed")
		}
	}
}

// BreakerState reports whether the draw callback is currently skipping the
// script.
func (r *Runner) BreakerState() BreakerState { return r.breaker.State() }

// LoadFile loads path and remembers it for Reload and Watch.
func (r *Runner) LoadFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if err := r.LoadString(path, src); err != nil {
		return err
	}
	r.mu.Lock()
	r.path = path
	r.mu.Unlock()
	return nil
}

// LoadString compiles src, runs its top level and looks up draw.
func (r *Runner) LoadString(name string, src []byte) error {
	e, err := newEnv(name, src, r.opts.Limits, r.opts.Stdout)
	if err != nil {
		return err
	}
	r.mu.Lock()
	old := r.env
	r.env = e
	r.lastErr = ""
	r.mu.Unlock()
	if old != nil {
		old.close()
	}
	r.breaker.reset()
	r.opts.Logger.Info("script loaded", "name", name)
	return nil
}

// Reload reads the last file given to LoadFile again.
func (r *Runner) Reload() error {
	r.mu.Lock()
	path := r.path
	r.mu.Unlock()
	if path == "" {
		return ErrNotLoaded
	}
	return r.LoadFile(path)
}

// Path returns the file the runner was loaded from, if any.
func (r *Runner) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Draw calls draw(r, t) with helpers bound to f and t = f.Seconds(). The
// context is saved and restored around the call.
func (r *Runner) Draw(ctx canvas.Context, f *canvas.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.env == nil {
		return ErrNotLoaded
	}
	e := r.env
	e.api.bind(ctx, f)
	if ctx != nil {
		ctx.Save()
		defer ctx.Restore()
	}
	if _, err := e.call(e.draw, rt.TableValue(e.api.table), rt.FloatValue(f.Seconds())); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}

// DrawFunc adapts Draw to a Host callback. Failures are logged once per
// distinct message, and a script that keeps failing is skipped for the
// breaker cooldown. Nothing is drawn while no script is loaded.
func (r *Runner) DrawFunc() canvas.DrawFunc {
	return func(ctx canvas.Context, f *canvas.Frame) {
		r.mu.Lock()
		loaded := r.env != nil
		r.mu.Unlock()
		if !loaded {
			return
		}
		err := r.breaker.do(func() error { return r.Draw(ctx, f) })
		if errors.Is(err, ErrSuspended) {
			return
		}
		r.mu.Lock()
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		changed := msg != r.lastErr
		r.lastErr = msg
		r.mu.Unlock()
		if err != nil && changed {
			r.opts.Logger.Warn("script draw failed", "error", err)
		}
	}
}

// Watch reloads the script whenever its file changes and then calls
// onReload. Reload failures are logged and the old script stays active.
// The caller must Start and eventually Stop the returned watcher.
func (r *Runner) Watch(debounce time.Duration, onReload func()) (*watch.Watcher, error) {
	path := r.Path()
	if path == "" {
		return nil, ErrNotLoaded
	}
	return watch.New(path, debounce, func() error {
		if err := r.Reload(); err != nil {
			return err
		}
		if onReload != nil {
			onReload()
		}
		return nil
	}, func(err error) {
		r.opts.Logger.Warn("script reload failed", "path", path, "error", err)
	})
}

// Close releases the loaded script.
func (r *Runner) Close() error {
	r.mu.Lock()
	e := r.env
	r.env = nil
	r.mu.Unlock()
	if e != nil {
		e.close()
	}
	return nil
}
