package canvas

import (
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-canvas/internal/paint"
)

// Surface is a raster target whose pixel size the Host controls.
type Surface interface {
	SetSize(w, h int)
	// Context returns the drawing context, or nil when the surface cannot
	// draw right now.
	Context() Context
	Size() (w, h int)
}

// HostState is the lifecycle position of a Host.
type HostState int

const (
	// StateIdle is before the first resize, and after Unmount.
	StateIdle HostState = iota
	// StateSized means the surface has been fitted to a container.
	StateSized
	// StateDrawing is held for the duration of a redraw.
	StateDrawing
)

func (s HostState) String() string {
	switch s {
	case StateSized:
		return "sized"
	case StateDrawing:
		return "drawing"
	}
	return "idle"
}

// MouseEventKind distinguishes pointer events.
type MouseEventKind int

const (
	MouseMove MouseEventKind = iota
	MouseLeave
	MouseClick
	MouseDown
	MouseUp
)

// MouseEvent is a pointer event in surface pixel coordinates.
type MouseEvent struct {
	Kind   MouseEventKind
	X, Y   float64
	Button int
}

// MouseHandlers receive pointer events forwarded from the surface. Nil
// handlers are skipped.
type MouseHandlers struct {
	OnMove  func(MouseEvent)
	OnLeave func(MouseEvent)
	OnClick func(MouseEvent)
	OnDown  func(MouseEvent)
	OnUp    func(MouseEvent)
}

// DrawFunc paints one frame. It runs after the background fill with a
// Frame built for the current surface size.
type DrawFunc func(ctx Context, f *Frame)

// Options are the caller-facing settings of a Host.
type Options struct {
	OnDraw          DrawFunc
	LightBackground string
	DarkBackground  string
	AspectRatio     AspectPolicy
	Animate         bool
	ReferenceSize   float64
	Mouse           MouseHandlers
	// Rand is passed to every Frame; see FrameOptions.Rand.
	Rand Random
}

// HostOption injects a collaborator into NewHost.
type HostOption func(*Host)

// WithTheme sets the theme source. The default is a static light theme.
func WithTheme(t ThemeObserver) HostOption {
	return func(h *Host) {
		if t != nil {
			h.theme = t
		}
	}
}

// WithScheduler sets the frame scheduler used for animation. Without one
// the host runs its own 60 fps TickerScheduler while animating.
func WithScheduler(s FrameScheduler) HostOption {
	return func(h *Host) { h.sched = s }
}

// WithLogger sets the lifecycle logger. The default discards.
func WithLogger(l Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// Host owns one surface. It fits the surface to a container box, paints the
// theme background, calls OnDraw with a fresh Frame, follows theme changes
// and optionally runs an animation loop.
//
// All methods are safe for concurrent use and redraws are serialised. OnDraw
// runs with the host locked, so of the Host's methods it may only call
// State.
type Host struct {
	theme ThemeObserver
	sched FrameScheduler
	log   Logger
	now   func() time.Time

	mu       sync.Mutex
	opts     Options
	surface  Surface
	mounted  bool
	state    atomic.Int32
	sized    bool
	boxW     float64
	boxH     float64
	w, h     int
	started  time.Time
	anim     *AnimationHandle
	ticker   *TickerScheduler
	cleanups []func()
}

// NewHost builds an unmounted Host.
func NewHost(opts Options, deps ...HostOption) *Host {
	h := &Host{
		theme: StaticTheme(false),
		log:   NopLogger(),
		now:   time.Now,
		opts:  opts,
	}
	for _, dep := range deps {
		dep(h)
	}
	return h
}

// Mount attaches the surface, subscribes to theme changes and starts the
// animation when Options.Animate is set. The host stays Idle until Resize.
func (h *Host) Mount(s Surface) error {
	if s == nil {
		return ErrNilSurface
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.mounted {
		return ErrAlreadyMounted
	}
	h.mounted = true
	h.surface = s
	h.setState(StateIdle)
	h.started = h.now()

	h.cleanups = append(h.cleanups,
		h.theme.OnChange(h.themeChanged),
		h.closeTicker,
		h.stopAnimation,
	)
	if h.opts.Animate {
		h.startAnimationLocked()
	}
	h.log.Debug("canvas mounted", "aspect", h.opts.AspectRatio, "animate", h.opts.Animate)
	return nil
}

// Unmount releases everything Mount acquired, in reverse order. When it
// returns no frame callback is running or will run. Calling it again does
// nothing.
func (h *Host) Unmount() {
	h.mu.Lock()
	if !h.mounted {
		h.mu.Unlock()
		return
	}
	h.mounted = false
	h.surface = nil
	h.sized = false
	h.setState(StateIdle)
	cleanups := h.cleanups
	h.cleanups = nil
	h.mu.Unlock()

	// Cleanups run unlocked so an in-flight frame can finish its redraw,
	// which sees the host unmounted and returns.
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	h.log.Debug("canvas unmounted")
}

// Resize fits the surface to a container box and redraws. Repeating the
// same box yields the same surface size.
func (h *Host) Resize(containerW, containerH float64) {
	h.mu.Lock()
	if !h.mounted {
		h.mu.Unlock()
		return
	}
	h.boxW, h.boxH = containerW, containerH
	h.fitLocked()
	h.mu.Unlock()
	h.Redraw()
}

func (h *Host) fitLocked() {
	w, ht := h.opts.AspectRatio.Fit(h.boxW, h.boxH)
	h.surface.SetSize(w, ht)
	h.w, h.h = w, ht
	h.sized = true
	h.setState(StateSized)
	h.log.Debug("canvas resized", "container_w", h.boxW, "container_h", h.boxH, "w", w, "h", ht)
}

// SetOnDraw replaces the draw callback and redraws.
func (h *Host) SetOnDraw(fn DrawFunc) {
	h.mu.Lock()
	h.opts.OnDraw = fn
	h.mu.Unlock()
	h.Redraw()
}

// SetBackgrounds replaces the per-theme backgrounds and redraws.
func (h *Host) SetBackgrounds(light, dark string) {
	h.mu.Lock()
	h.opts.LightBackground, h.opts.DarkBackground = light, dark
	h.mu.Unlock()
	h.Redraw()
}

// SetAspectRatio changes the policy, refits the last container box and
// redraws.
func (h *Host) SetAspectRatio(p AspectPolicy) {
	h.mu.Lock()
	h.opts.AspectRatio = p
	if h.mounted && h.sized {
		h.fitLocked()
	}
	h.mu.Unlock()
	h.Redraw()
}

// SetAnimate starts or cancels the animation loop and redraws.
func (h *Host) SetAnimate(on bool) {
	h.mu.Lock()
	h.opts.Animate = on
	if on && h.mounted {
		h.startAnimationLocked()
	}
	h.mu.Unlock()
	if !on {
		h.stopAnimation()
	}
	h.Redraw()
}

func (h *Host) startAnimationLocked() {
	if h.anim != nil {
		return
	}
	sched := h.sched
	if sched == nil {
		if h.ticker == nil {
			h.ticker = NewTickerScheduler(60)
		}
		sched = h.ticker
	}
	h.anim = NewAnimationHandle(sched, func(time.Time) { h.Redraw() })
	h.anim.Start()
	h.log.Debug("animation started")
}

func (h *Host) stopAnimation() {
	h.mu.Lock()
	a := h.anim
	h.anim = nil
	h.mu.Unlock()
	if a != nil {
		a.Cancel()
		h.log.Debug("animation stopped", "frames", a.Frames())
	}
}

func (h *Host) closeTicker() {
	h.mu.Lock()
	t := h.ticker
	h.ticker = nil
	h.mu.Unlock()
	if t != nil {
		t.Close()
	}
}

func (h *Host) themeChanged(dark bool) {
	h.log.Debug("theme changed", "dark", dark)
	h.Redraw()
}

// Redraw clears the surface, fills the theme background and calls OnDraw.
// It does nothing while unmounted, before the first Resize, or when the
// surface has no context. A panic in OnDraw propagates to the caller.
func (h *Host) Redraw() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.mounted || !h.sized || h.surface == nil {
		return
	}
	ctx := h.surface.Context()
	if ctx == nil {
		return
	}
	h.setState(StateDrawing)
	defer h.setState(StateSized)

	dark := h.theme.IsDark()
	fo := FrameOptions{
		ReferenceSize:   h.opts.ReferenceSize,
		LightBackground: h.opts.LightBackground,
		DarkBackground:  h.opts.DarkBackground,
		Dark:            dark,
		Rand:            h.opts.Rand,
		Elapsed:         h.now().Sub(h.started),
	}.withDefaults()

	w, ht := h.surface.Size()
	ctx.SetTransform(IdentityMatrix())
	ctx.ClearRect(0, 0, float64(w), float64(ht))
	bg := fo.LightBackground
	if dark {
		bg = fo.DarkBackground
	}
	ctx.SetFillColor(backgroundColor(bg, dark))
	ctx.FillRect(0, 0, float64(w), float64(ht))

	if h.opts.OnDraw != nil {
		h.opts.OnDraw(ctx, NewFrame(ctx, fo))
	}
}

func backgroundColor(s string, dark bool) color.NRGBA {
	if c, err := paint.ParseColor(s); err == nil {
		return c
	}
	if dark {
		return paint.MustParseColor(DefaultDarkBackground)
	}
	return paint.MustParseColor(DefaultLightBackground)
}

// DispatchMouse forwards ev to the matching handler. Events are dropped
// while unmounted.
func (h *Host) DispatchMouse(ev MouseEvent) {
	h.mu.Lock()
	mounted, m := h.mounted, h.opts.Mouse
	h.mu.Unlock()
	if !mounted {
		return
	}
	var fn func(MouseEvent)
	switch ev.Kind {
	case MouseMove:
		fn = m.OnMove
	case MouseLeave:
		fn = m.OnLeave
	case MouseClick:
		fn = m.OnClick
	case MouseDown:
		fn = m.OnDown
	case MouseUp:
		fn = m.OnUp
	}
	if fn != nil {
		fn(ev)
	}
}

// State returns the lifecycle state.
func (h *Host) State() HostState {
	return HostState(h.state.Load())
}

func (h *Host) setState(s HostState) {
	h.state.Store(int32(s))
}

// SurfaceSize returns the last fitted surface size.
func (h *Host) SurfaceSize() (w, ht int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.w, h.h
}

// Animating reports whether an animation loop is live.
func (h *Host) Animating() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.anim != nil && h.anim.Running()
}
