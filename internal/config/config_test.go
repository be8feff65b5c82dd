package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opd-ai/go-canvas/internal/scene"
	"github.com/opd-ai/go-canvas/pkg/canvas"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	opts, err := cfg.HostOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.AspectRatio != canvas.Horizontal || opts.ReferenceSize != canvas.DefaultReferenceSize {
		t.Errorf("HostOptions() = %+v", opts)
	}
}

func TestSceneNamesMatchLayers(t *testing.T) {
	cfg := Default()
	cfg.Scene = scene.Modules
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if _, err := scene.Layers(cfg.Scene, 10, 10); err != nil {
		t.Fatalf("Layers() = %v", err)
	}
	cfg.Scene = []string{"rockets"}
	if cfg.Validate() == nil {
		t.Error("Validate() accepted an unknown scene module")
	}
}

func TestLuaParser(t *testing.T) {
	src := `
local w = 640
canvas.config = {
    aspect_ratio = 'vertical-large',
    light_background = '#ffffff',
    dark_background = 'rgb(0, 0, 0)',
    animate = true,
    reference_size = 200,
    width = w,
    height = 480.9,
    title = 'demo',
    theme = 'dark',
    scene = { 'sky', 'axes' },
}
`
	p := NewLuaParser(nil)
	defer p.Close()
	got, err := p.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := HostConfig{
		AspectRatio:     "vertical-large",
		LightBackground: "#ffffff",
		DarkBackground:  "rgb(0, 0, 0)",
		Animate:         true,
		ReferenceSize:   200,
		Width:           640,
		Height:          480,
		Title:           "demo",
		Theme:           "dark",
		Scene:           []string{"sky", "axes"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestLuaParserOverlaysDefaults(t *testing.T) {
	p := NewLuaParser(nil)
	defer p.Close()
	got, err := p.Parse([]byte(`canvas.config = { animate = 'yes', scene = 'sky, base' }`))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Animate = true
	want.Scene = []string{"sky", "base"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestLuaParserErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `canvas.config = {`},
		{"runtime", `error('boom')`},
		{"config not a table", `canvas.config = 3`},
		{"canvas replaced", `canvas = nil`},
		{"scene entry", `canvas.config = { scene = { 'sky', 4 } }`},
		{"scene type", `canvas.config = { scene = true }`},
		{"cpu limit", `while true do end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLuaParser(nil)
			defer p.Close()
			if _, err := p.Parse([]byte(tt.src)); err == nil {
				t.Error("Parse() succeeded, want error")
			}
		})
	}
}

func TestParseTOML(t *testing.T) {
	src := `
aspect_ratio = "square"
animate = true
width = 300
scene = ["background", "base"]
`
	got, err := ParseTOML([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.AspectRatio = "square"
	want.Animate = true
	want.Width = 300
	want.Scene = []string{"background", "base"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseTOML() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTOMLRejectsUnknownKeys(t *testing.T) {
	if _, err := ParseTOML([]byte(`aspect = "square"`)); err == nil {
		t.Error("ParseTOML() accepted an unknown key")
	}
}

func TestEncodeTOMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Theme = "file:/tmp/theme"
	data, err := EncodeTOML(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseTOML(data)
	if err != nil {
		t.Fatalf("ParseTOML(EncodeTOML()) = %v\n%s", err, data)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    Format
	}{
		{"lua extension", "a.lua", "", FormatLua},
		{"toml extension", "a.TOML", "", FormatTOML},
		{"lua content", "conf", "-- comment\n  canvas.config = {}", FormatLua},
		{"toml content", "conf", "animate = true\n", FormatTOML},
		{"garbage", "conf", "{{{ not a config", FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.path, []byte(tt.content)); got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Setenv("CANVAS_TEST_TITLE", "from env")

	t.Run("unknown format", func(t *testing.T) {
		_, err := Parse("conf", []byte("{{{"))
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Parse() error = %v, want ErrUnknownFormat", err)
		}
	})

	t.Run("expands env and resolves script", func(t *testing.T) {
		src := "title = \"${CANVAS_TEST_TITLE}\"\nscript = \"draw.lua\"\n"
		cfg, err := Parse("/etc/canvas/host.toml", []byte(src))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Title != "from env" {
			t.Errorf("Title = %q", cfg.Title)
		}
		if cfg.Script != filepath.Join("/etc/canvas", "draw.lua") {
			t.Errorf("Script = %q", cfg.Script)
		}
	})

	t.Run("validates", func(t *testing.T) {
		_, err := Parse("host.toml", []byte(`aspect_ratio = "wide"`))
		if err == nil || !strings.Contains(err.Error(), "aspect_ratio") {
			t.Errorf("Parse() error = %v, want aspect_ratio error", err)
		}
	})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.lua")
	if err := os.WriteFile(path, []byte(`canvas.config = { aspect_ratio = 'square' }`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AspectRatio != "square" {
		t.Errorf("AspectRatio = %q", cfg.AspectRatio)
	}
	if _, err := ParseFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("ParseFile() on a missing file succeeded")
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("CANVAS_TEST_VAR", "value")
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "plain", "plain"},
		{"braced", "a ${CANVAS_TEST_VAR} b", "a value b"},
		{"bare", "a $CANVAS_TEST_VAR b", "a value b"},
		{"unset", "a ${CANVAS_UNSET_12345} b", "a  b"},
		{"default", "${CANVAS_UNSET_12345:-dflt}", "dflt"},
		{"set ignores default", "${CANVAS_TEST_VAR:-dflt}", "value"},
		{"empty default", "${CANVAS_UNSET_12345:-}", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnv(tt.input); got != tt.want {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HostConfig)
		fields []string
	}{
		{"valid", func(*HostConfig) {}, nil},
		{"aspect", func(c *HostConfig) { c.AspectRatio = "wide" }, []string{"aspect_ratio"}},
		{"reference", func(c *HostConfig) { c.ReferenceSize = 0 }, []string{"reference_size"}},
		{"colours", func(c *HostConfig) {
			c.LightBackground = "nope"
			c.DarkBackground = "#12"
		}, []string{"dark_background", "light_background"}},
		{"window", func(c *HostConfig) { c.Width, c.Height = 0, -1 }, []string{"height", "width"}},
		{"theme", func(c *HostConfig) { c.Theme = "file:" }, []string{"theme"}},
		{"theme file", func(c *HostConfig) { c.Theme = "file:/tmp/x" }, nil},
		{"scene", func(c *HostConfig) { c.Scene = []string{"sky", "moon"} }, []string{"scene"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			vr := cfg.Check()
			var got []string
			for _, e := range vr.Errors {
				got = append(got, e.Field)
			}
			if diff := cmp.Diff(tt.fields, got); diff != "" {
				t.Errorf("Check() fields mismatch (-want +got):\n%s", diff)
			}
			if (cfg.Validate() == nil) != (len(tt.fields) == 0) {
				t.Errorf("Validate() = %v", cfg.Validate())
			}
		})
	}
}
