// Package main is canvas-demo, which renders the stock physics backdrop
// and an optional Lua draw script in a resizable window or to a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/opd-ai/go-canvas/internal/config"
	"github.com/opd-ai/go-canvas/internal/profiling"
	"github.com/opd-ai/go-canvas/internal/scene"
	"github.com/opd-ai/go-canvas/internal/script"
	"github.com/opd-ai/go-canvas/internal/theme"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// Version can be overridden at build time with
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

// Axis maxima for the stock scene, in world units.
const (
	sceneMaxHeight = 10
	sceneMaxRange  = 20
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	config     string
	script     string
	aspect     string
	animate    bool
	theme      string
	snapshot   string
	size       string
	width      int
	height     int
	debug      bool
	version    bool
	cpuProfile string
	memProfile string
	// set records which flags were given explicitly.
	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("canvas-demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.config, "c", "", "configuration file (Lua or TOML)")
	fs.StringVar(&o.script, "script", "", "Lua script defining draw(r, t)")
	fs.StringVar(&o.aspect, "aspect", "", "aspect ratio: horizontal, square, vertical or vertical-large")
	fs.BoolVar(&o.animate, "animate", false, "redraw every frame")
	fs.StringVar(&o.theme, "theme", "", "theme: light, dark, auto or file:<path>")
	fs.StringVar(&o.snapshot, "snapshot", "", "render one frame to this PNG file and exit")
	fs.StringVar(&o.size, "size", "", "window or snapshot size as WxH")
	fs.BoolVar(&o.debug, "debug", false, "log debug events, input and frame metrics")
	fs.BoolVar(&o.version, "v", false, "print version and exit")
	fs.StringVar(&o.cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	fs.StringVar(&o.memProfile, "memprofile", "", "write a heap profile to this file on exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	if o.set["size"] {
		var err error
		if o.width, o.height, err = parseSize(o.size); err != nil {
			return o, fmt.Errorf("-size: %w", err)
		}
	}
	if o.set["aspect"] {
		if _, err := canvas.ParseAspectPolicy(o.aspect); err != nil {
			return o, fmt.Errorf("-aspect: %w", err)
		}
	}
	return o, nil
}

// parseSize reads "WxH" with both sides positive.
func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: want two positive integers", s)
	}
	return w, h, nil
}

// loadConfig reads the -c file, or the defaults, and applies the flags
// over it.
func loadConfig(o options) (config.HostConfig, error) {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.ParseFile(o.config); err != nil {
			return cfg, err
		}
	}
	if o.set["script"] {
		cfg.Script = o.script
	}
	if o.set["aspect"] {
		cfg.AspectRatio = o.aspect
	}
	if o.set["animate"] {
		cfg.Animate = o.animate
	}
	if o.set["theme"] {
		cfg.Theme = o.theme
	}
	if o.set["size"] {
		cfg.Width, cfg.Height = o.width, o.height
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(debug bool, w io.Writer) canvas.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return canvas.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if o.version {
		fmt.Fprintf(stdout, "canvas-demo version %s\n", Version)
		return 0
	}
	log := newLogger(o.debug, stderr)

	cfg, err := loadConfig(o)
	if err != nil {
		return report(log, canvas.Categorize(err, canvas.CategoryConfig, canvas.SeverityCritical))
	}

	prof := profiling.Config{CPUPath: o.cpuProfile, HeapPath: o.memProfile}
	if prof.Enabled() {
		session, err := profiling.Start(prof)
		if err != nil {
			return report(log, canvas.Categorize(err, canvas.CategoryIO, canvas.SeverityCritical))
		}
		defer func() {
			if err := session.Stop(); err != nil {
				log.Warn("profiling stop failed", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runDemo(ctx, cfg, o, log); err != nil {
		return report(log, err)
	}
	return 0
}

// runDemo assembles the theme, scene and script, then renders either a
// snapshot or the window.
func runDemo(ctx context.Context, cfg config.HostConfig, o options, log canvas.Logger) error {
	th, err := theme.Open(cfg.Theme, log)
	if err != nil {
		return canvas.Categorize(err, canvas.CategoryTheme, canvas.SeverityCritical)
	}
	defer th.Close()

	var runner *script.Runner
	if cfg.Script != "" {
		runner = script.NewRunner(script.Options{Logger: log, Stdout: os.Stdout})
		defer runner.Close()
		if err := runner.LoadFile(cfg.Script); err != nil {
			return canvas.Categorize(err, canvas.CategoryScript, canvas.SeverityCritical).With("path", cfg.Script)
		}
	}

	draw, err := composeDraw(cfg.Scene, runner)
	if err != nil {
		return canvas.Categorize(err, canvas.CategoryConfig, canvas.SeverityCritical)
	}
	opts, err := cfg.HostOptions()
	if err != nil {
		return canvas.Categorize(err, canvas.CategoryConfig, canvas.SeverityCritical)
	}
	opts.OnDraw = draw
	opts.Mouse = mouseLogger(log)

	if o.snapshot != "" {
		opts.Animate = false
		if err := snapshot(o.snapshot, cfg.Width, cfg.Height, opts, th, log); err != nil {
			return canvas.Categorize(err, canvas.CategoryRender, canvas.SeverityCritical).With("path", o.snapshot)
		}
		log.Info("snapshot written", "path", o.snapshot)
		return nil
	}
	return window(ctx, cfg, opts, th, runner, log)
}

// composeDraw draws the scene layers and then the script on top.
func composeDraw(layers []string, runner *script.Runner) (canvas.DrawFunc, error) {
	base, err := scene.Layers(layers, sceneMaxHeight, sceneMaxRange)
	if err != nil {
		return nil, err
	}
	if runner == nil {
		return base, nil
	}
	user := runner.DrawFunc()
	return func(ctx canvas.Context, f *canvas.Frame) {
		base(ctx, f)
		user(ctx, f)
	}, nil
}

func mouseLogger(log canvas.Logger) canvas.MouseHandlers {
	ev := func(name string) func(canvas.MouseEvent) {
		return func(e canvas.MouseEvent) {
			log.Debug("mouse", "event", name, "x", e.X, "y", e.Y, "button", e.Button)
		}
	}
	return canvas.MouseHandlers{
		OnMove:  ev("move"),
		OnLeave: ev("leave"),
		OnClick: ev("click"),
		OnDown:  ev("down"),
		OnUp:    ev("up"),
	}
}

// report logs err by severity and returns the exit code. Warnings do not
// fail the run.
func report(log canvas.Logger, err error) int {
	if err == nil {
		return 0
	}
	args := []any{"error", err}
	var ce *canvas.CategorizedError
	if errors.As(err, &ce) {
		args = append(args, "category", ce.Category.String())
		for k, v := range ce.Fields {
			args = append(args, k, v)
		}
	}
	switch canvas.SeverityOf(err) {
	case canvas.SeverityInfo:
		log.Info("finished with notice", args...)
		return 0
	case canvas.SeverityWarning:
		log.Warn("finished with warning", args...)
		return 0
	}
	log.Error("canvas-demo failed", args...)
	return 1
}
