package render

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// ErrGameTerminated is returned from Update once the game's context is
// cancelled. ebiten.RunGame passes it back to the caller.
var ErrGameTerminated = errors.New("game terminated")

// Input is the slice of ebiten's input state a Game reads each tick.
type Input interface {
	CursorPosition() (x, y int)
	IsKeyJustPressed(k ebiten.Key) bool
	IsMouseButtonJustPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustReleased(b ebiten.MouseButton) bool
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) IsKeyJustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

func (ebitenInput) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenInput) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

var mouseButtons = [...]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
}

// Game implements ebiten.Game around a canvas Host. The window is the
// Host's container: Layout reports its size, Update refits the surface,
// pumps animation frames and forwards input, and Draw centres the surface
// in the window.
type Game struct {
	config  Config
	host    *canvas.Host
	surface *Surface
	queue   canvas.FrameQueue
	input   Input
	metrics *FrameMetrics
	log     canvas.Logger

	mu         sync.Mutex
	ctx        context.Context
	toggle     func()
	outW, outH int
	fitW, fitH int
	hover      bool
	lastX      float64
	lastY      float64
	pressed    [len(mouseButtons)]bool
	running    bool
}

// NewGame builds the Host, mounts it on a fresh Surface and returns the
// Game that drives it. Animation frames are scheduled on the game loop;
// a WithScheduler in deps overrides that.
func NewGame(config Config, opts canvas.Options, deps ...canvas.HostOption) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid window config: %w", err)
	}
	g := &Game{
		config:  config,
		surface: NewSurface(),
		input:   ebitenInput{},
		metrics: NewFrameMetrics(time.Second),
		log:     canvas.NopLogger(),
	}
	deps = append([]canvas.HostOption{canvas.WithScheduler(&g.queue)}, deps...)
	g.host = canvas.NewHost(opts, deps...)
	if err := g.host.Mount(g.surface); err != nil {
		return nil, fmt.Errorf("mount surface: %w", err)
	}
	return g, nil
}

// Host returns the Host the game drives.
func (g *Game) Host() *canvas.Host { return g.host }

// Surface returns the offscreen surface.
func (g *Game) Surface() *Surface { return g.surface }

// Metrics returns the redraw timing tracker.
func (g *Game) Metrics() *FrameMetrics { return g.metrics }

// SetInput replaces the input source. Tests use it to script events.
func (g *Game) SetInput(in Input) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.input = in
}

// SetLogger sets the logger for window events.
func (g *Game) SetLogger(l canvas.Logger) {
	if l == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.log = l
}

// SetContext makes Update return ErrGameTerminated once ctx is done.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// SetThemeToggle sets the action bound to the T key.
func (g *Game) SetThemeToggle(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.toggle = fn
}

// Update implements ebiten.Game.Update.
func (g *Game) Update() error {
	g.mu.Lock()
	ctx, in, toggle := g.ctx, g.input, g.toggle
	refit := g.outW != g.fitW || g.outH != g.fitH
	outW, outH := g.outW, g.outH
	if refit {
		g.fitW, g.fitH = outW, outH
	}
	g.mu.Unlock()

	if ctx != nil {
		select {
		case <-ctx.Done():
			return ErrGameTerminated
		default:
		}
	}

	if refit {
		start := time.Now()
		g.host.Resize(float64(outW), float64(outH))
		g.metrics.RecordFrame(time.Since(start))
	}
	if toggle != nil && in.IsKeyJustPressed(ebiten.KeyT) {
		toggle()
	}
	g.dispatchMouse(in)

	start := time.Now()
	if n := g.queue.Pump(start); n > 0 {
		g.metrics.RecordFrame(time.Since(start))
	}
	return nil
}

// offset is where the surface's top-left corner sits in the window.
func (g *Game) offset() (float64, float64) {
	w, h := g.surface.Size()
	g.mu.Lock()
	defer g.mu.Unlock()
	return float64(g.outW-w) / 2, float64(g.outH-h) / 2
}

func (g *Game) dispatchMouse(in Input) {
	sw, sh := g.surface.Size()
	ox, oy := g.offset()
	cx, cy := in.CursorPosition()
	x, y := float64(cx)-ox, float64(cy)-oy
	inside := x >= 0 && y >= 0 && x < float64(sw) && y < float64(sh)

	g.mu.Lock()
	wasInside, moved := g.hover, x != g.lastX || y != g.lastY
	g.hover, g.lastX, g.lastY = inside, x, y
	g.mu.Unlock()

	switch {
	case inside && moved:
		g.host.DispatchMouse(canvas.MouseEvent{Kind: canvas.MouseMove, X: x, Y: y})
	case !inside && wasInside:
		g.host.DispatchMouse(canvas.MouseEvent{Kind: canvas.MouseLeave, X: x, Y: y})
	}
	for i, b := range mouseButtons {
		ev := canvas.MouseEvent{X: x, Y: y, Button: i}
		if inside && in.IsMouseButtonJustPressed(b) {
			g.setPressed(i, true)
			ev.Kind = canvas.MouseDown
			g.host.DispatchMouse(ev)
		}
		if in.IsMouseButtonJustReleased(b) {
			wasPressed := g.setPressed(i, false)
			if !inside {
				continue
			}
			ev.Kind = canvas.MouseUp
			g.host.DispatchMouse(ev)
			if wasPressed {
				ev.Kind = canvas.MouseClick
				g.host.DispatchMouse(ev)
			}
		}
	}
}

func (g *Game) setPressed(i int, on bool) (was bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	was = g.pressed[i]
	g.pressed[i] = on
	return was
}

// Draw implements ebiten.Game.Draw.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.config.Letterbox)
	img := g.surface.Image()
	if img == nil {
		return
	}
	ox, oy := g.offset()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(ox, oy)
	screen.DrawImage(img, op)
}

// Layout implements ebiten.Game.Layout. The logical screen tracks the
// window so the surface is fitted in device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.outW, g.outH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it closes or the context set with
// SetContext is cancelled. The Host is unmounted on return.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.config.Width, g.config.Height)
	ebiten.SetWindowTitle(g.config.Title)
	if g.config.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g.mu.Lock()
	g.running = true
	log := g.log
	g.mu.Unlock()
	log.Info("window opened", "width", g.config.Width, "height", g.config.Height)

	err := ebiten.RunGame(g)

	g.mu.Lock()
	g.running = false
	g.mu.Unlock()
	g.host.Unmount()
	log.Info("window closed", "frames", g.metrics.Snapshot())
	return err
}

// IsRunning reports whether Run is in progress.
func (g *Game) IsRunning() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Close unmounts the Host without running the loop.
func (g *Game) Close() {
	g.host.Unmount()
}
