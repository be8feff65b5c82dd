package config

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaParser reads settings from a Lua file that assigns a table to
// canvas.config.
type LuaParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaParser creates a parser with a fresh Lua runtime. Output from
// print goes to stdout, or is discarded when stdout is nil.
func NewLuaParser(stdout io.Writer) *LuaParser {
	if stdout == nil {
		stdout = io.Discard
	}
	r := rt.New(stdout)
	return &LuaParser{runtime: r, cleanup: lib.LoadAll(r)}
}

// Parse runs content under CPU and memory limits and returns Default
// overlaid with whatever canvas.config sets.
func (p *LuaParser) Parse(content []byte) (HostConfig, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ns := rt.NewTable()
	ns.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("canvas"), rt.TableValue(ns))

	closure, err := p.runtime.CompileAndLoadLuaChunk("config", content, rt.TableValue(p.runtime.GlobalEnv()))
	if err != nil {
		return HostConfig{}, fmt.Errorf("compile lua config: %w", err)
	}

	p.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    10_000_000,
			Memory: 50 * 1024 * 1024,
		},
	})
	defer p.runtime.PopContext()

	if err := run(p.runtime, closure); err != nil {
		return HostConfig{}, fmt.Errorf("run lua config: %w", err)
	}

	ns, ok := p.runtime.GlobalEnv().Get(rt.StringValue("canvas")).TryTable()
	if !ok {
		return HostConfig{}, fmt.Errorf("lua config: canvas is not a table")
	}
	table, ok := ns.Get(rt.StringValue("config")).TryTable()
	if !ok {
		return HostConfig{}, fmt.Errorf("lua config: canvas.config is not a table")
	}
	cfg := Default()
	if err := applyTable(&cfg, table); err != nil {
		return HostConfig{}, err
	}
	return cfg, nil
}

// run calls closure, turning the panic golua raises on an exceeded limit
// into an error.
func run(r *rt.Runtime, closure *rt.Closure) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("resource limit exceeded: %v", v)
		}
	}()
	_, err = rt.Call1(r.MainThread(), rt.FunctionValue(closure))
	return err
}

// Close releases the Lua runtime.
func (p *LuaParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

func applyTable(cfg *HostConfig, t *rt.Table) error {
	for key, dst := range map[string]*string{
		"aspect_ratio":     &cfg.AspectRatio,
		"light_background": &cfg.LightBackground,
		"dark_background":  &cfg.DarkBackground,
		"title":            &cfg.Title,
		"theme":            &cfg.Theme,
		"script":           &cfg.Script,
	} {
		if v := getTableString(t, key); v != nil {
			*dst = *v
		}
	}
	if v := getTableBool(t, "animate"); v != nil {
		cfg.Animate = *v
	}
	if v := getTableFloat(t, "reference_size"); v != nil {
		cfg.ReferenceSize = *v
	}
	if v := getTableInt(t, "width"); v != nil {
		cfg.Width = *v
	}
	if v := getTableInt(t, "height"); v != nil {
		cfg.Height = *v
	}

	v := t.Get(rt.StringValue("scene"))
	if v == rt.NilValue {
		return nil
	}
	if list, ok := v.TryTable(); ok {
		scene, err := stringArray(list)
		if err != nil {
			return fmt.Errorf("lua config: scene: %w", err)
		}
		cfg.Scene = scene
		return nil
	}
	s, ok := v.TryString()
	if !ok {
		return fmt.Errorf("lua config: scene must be a list of names")
	}
	cfg.Scene = splitList(s)
	return nil
}

// stringArray reads t[1..n] as strings.
func stringArray(t *rt.Table) ([]string, error) {
	out := []string{}
	for i := int64(1); ; i++ {
		v := t.Get(rt.IntValue(i))
		if v == rt.NilValue {
			return out, nil
		}
		s, ok := v.TryString()
		if !ok {
			return nil, fmt.Errorf("entry %d is not a string", i)
		}
		out = append(out, s)
	}
}

// splitList splits a comma or space separated list.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if b, ok := val.TryBool(); ok {
		return &b
	}
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}
	return nil
}

func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if s, ok := val.TryString(); ok {
		return &s
	}
	return nil
}

func getTableFloat(table *rt.Table, key string) *float64 {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if n, ok := val.TryFloat(); ok {
		return &n
	}
	if n, ok := val.TryInt(); ok {
		f := float64(n)
		return &f
	}
	return nil
}

func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	}
	return false
}
