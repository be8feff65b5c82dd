// Package script runs Lua draw scripts against a canvas Frame.
//
// A script defines a global draw(r, t). r is a table of drawing helpers
// bound to the current frame and t is the time since mount in seconds.
// Every load and every call runs under CPU and memory limits.
package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

var (
	// ErrNoDrawFunction is returned when a script does not define draw.
	ErrNoDrawFunction = errors.New("script: no draw function defined")
	// ErrNotLoaded is returned by Draw before a script has loaded.
	ErrNotLoaded = errors.New("script: nothing loaded")
)

// Limits caps the resources a single load or draw call may use. Zero
// means unlimited.
type Limits struct {
	CPU    uint64
	Memory uint64
}

// DefaultLimits allows ten million instructions and 50 MB per call.
func DefaultLimits() Limits {
	return Limits{CPU: 10_000_000, Memory: 50 * 1024 * 1024}
}

// env is one loaded script: its runtime, its draw function and the helper
// table passed to it.
type env struct {
	runtime *rt.Runtime
	cleanup func()
	draw    rt.Value
	api     *api
	limits  Limits
	// broken is set when a limit was exceeded; golua leaves the runtime
	// unusable afterwards.
	broken error
}

func newEnv(name string, src []byte, limits Limits, stdout io.Writer) (*env, error) {
	r := rt.New(stdout)
	e := &env{runtime: r, cleanup: lib.LoadAll(r), limits: limits}
	e.api = newAPI()

	closure, err := r.CompileAndLoadLuaChunk(name, src, rt.TableValue(r.GlobalEnv()))
	if err != nil {
		e.close()
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	if _, err := e.call(rt.FunctionValue(closure)); err != nil {
		e.close()
		return nil, fmt.Errorf("run %s: %w", name, err)
	}
	draw := r.GlobalEnv().Get(rt.StringValue("draw"))
	if draw.Type() != rt.FunctionType {
		e.close()
		return nil, fmt.Errorf("%s: %w", name, ErrNoDrawFunction)
	}
	e.draw = draw
	return e, nil
}

// call runs fn under the limits. A limit panic is returned as an error and
// marks the env broken.
func (e *env) call(fn rt.Value, args ...rt.Value) (v rt.Value, err error) {
	if e.broken != nil {
		return rt.NilValue, e.broken
	}
	e.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    e.limits.CPU,
			Memory: e.limits.Memory,
		},
	})
	defer e.runtime.PopContext()
	defer func() {
		if p := recover(); p != nil {
			e.broken = fmt.Errorf("resource limit exceeded: %v", p)
			err = e.broken
		}
	}()
	return rt.Call1(e.runtime.MainThread(), fn, args...)
}

func (e *env) close() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// goFunction wraps fn for registration in a table. Helpers are declared
// compliant so they can run inside a limited context.
func goFunction(name string, fn rt.GoFunctionFunc) rt.Value {
	f := rt.NewGoFunction(fn, name, 0, true)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, f)
	return rt.FunctionValue(f)
}
