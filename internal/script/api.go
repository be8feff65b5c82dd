package script

import (
	"fmt"
	"image/color"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-canvas/pkg/canvas"
)

// api is the r table handed to draw. Its functions read the frame and
// context set by bind, so the table is built once per script.
type api struct {
	table *rt.Table
	ctx   canvas.Context
	f     *canvas.Frame
}

func newAPI() *api {
	a := &api{table: rt.NewTable()}
	scaled := map[string]func(*canvas.Frame, float64) float64{
		"size":      (*canvas.Frame).Size,
		"radius":    (*canvas.Frame).Radius,
		"spacing":   (*canvas.Frame).Spacing,
		"margin":    (*canvas.Frame).Margin,
		"x":         (*canvas.Frame).X,
		"y":         (*canvas.Frame).Y,
		"percent_x": (*canvas.Frame).PercentX,
		"percent_y": (*canvas.Frame).PercentY,
	}
	for name, fn := range scaled {
		a.set(name, a.unary(name, fn))
	}
	for name, fn := range map[string]func(float64, float64, float64) float64{
		"clamp": canvas.Clamp,
		"lerp":  canvas.Lerp,
	} {
		a.set(name, numbers(name, 3, func(v []float64) float64 { return fn(v[0], v[1], v[2]) }))
	}
	a.set("map", numbers("map", 5, func(v []float64) float64 { return canvas.Map(v[0], v[1], v[2], v[3], v[4]) }))
	a.set("deg2rad", numbers("deg2rad", 1, func(v []float64) float64 { return canvas.Deg2Rad(v[0]) }))
	a.set("distance", numbers("distance", 4, func(v []float64) float64 { return canvas.Distance(v[0], v[1], v[2], v[3]) }))

	a.set("font_size", a.floored("font_size", (*canvas.Frame).FontSize))
	a.set("line_width", a.floored("line_width", (*canvas.Frame).LineWidth))
	a.set("circle", a.circle)
	a.set("rect", a.rect)
	a.set("line", a.line)
	a.set("arc", a.arc)
	a.set("rounded_rect", a.roundedRect)
	a.set("text", a.text)
	a.set("set_fill", a.colorSetter("set_fill", canvas.Context.SetFillColor))
	a.set("set_stroke", a.colorSetter("set_stroke", canvas.Context.SetStrokeColor))
	a.set("set_line_width", a.setLineWidth)
	a.set("label", a.label)
	a.set("hatch", a.hatch)
	a.set("grid", a.grid)
	a.set("relative", a.relative)
	return a
}

func (a *api) set(name string, fn rt.GoFunctionFunc) {
	a.table.Set(rt.StringValue(name), goFunction(name, fn))
}

// bind points the helpers at a new frame and refreshes the plain fields.
func (a *api) bind(ctx canvas.Context, f *canvas.Frame) {
	a.ctx, a.f = ctx, f
	for k, v := range map[string]rt.Value{
		"width":    rt.FloatValue(f.Width()),
		"height":   rt.FloatValue(f.Height()),
		"center_x": rt.FloatValue(f.CenterX()),
		"center_y": rt.FloatValue(f.CenterY()),
		"scale":    rt.FloatValue(f.Scale()),
		"dark":     rt.BoolValue(f.Dark()),
	} {
		a.table.Set(rt.StringValue(k), v)
	}
}

func args(c *rt.GoCont) []rt.Value {
	return append(c.Args(), c.Etc()...)
}

func floatArg(vs []rt.Value, i int) (float64, error) {
	if i >= len(vs) {
		return 0, fmt.Errorf("argument %d missing", i+1)
	}
	if f, ok := vs[i].TryFloat(); ok {
		return f, nil
	}
	if n, ok := vs[i].TryInt(); ok {
		return float64(n), nil
	}
	return 0, fmt.Errorf("argument %d is not a number", i+1)
}

func floatArgs(vs []rt.Value, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := floatArg(vs, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func stringArg(vs []rt.Value, i int) (string, error) {
	if i >= len(vs) {
		return "", fmt.Errorf("argument %d missing", i+1)
	}
	if s, ok := vs[i].TryString(); ok {
		return s, nil
	}
	return "", fmt.Errorf("argument %d is not a string", i+1)
}

// boolArg reads an optional flag; absent or nil is def.
func boolArg(vs []rt.Value, i int, def bool) bool {
	if i >= len(vs) || vs[i] == rt.NilValue {
		return def
	}
	return rt.Truth(vs[i])
}

func pushFloat(t *rt.Thread, c *rt.GoCont, v float64) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, rt.FloatValue(v)), nil
}

func numbers(name string, n int, fn func([]float64) float64) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		v, err := floatArgs(args(c), n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return pushFloat(t, c, fn(v))
	}
}

func (a *api) unary(name string, fn func(*canvas.Frame, float64) float64) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		v, err := floatArg(args(c), 0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return pushFloat(t, c, fn(a.f, v))
	}
}

func (a *api) floored(name string, fn func(*canvas.Frame, float64, ...float64) float64) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		vs := args(c)
		base, err := floatArg(vs, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(vs) > 1 && vs[1] != rt.NilValue {
			floor, err := floatArg(vs, 1)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			return pushFloat(t, c, fn(a.f, base, floor))
		}
		return pushFloat(t, c, fn(a.f, base))
	}
}

// circle(x, y, radius [, fill])
func (a *api) circle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	vs := args(c)
	v, err := floatArgs(vs, 3)
	if err != nil {
		return nil, fmt.Errorf("circle: %w", err)
	}
	a.f.Circle(v[0], v[1], v[2], boolArg(vs, 3, false))
	return c.Next(), nil
}

// rect(x, y, w, h [, fill])
func (a *api) rect(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	vs := args(c)
	v, err := floatArgs(vs, 4)
	if err != nil {
		return nil, fmt.Errorf("rect: %w", err)
	}
	a.f.Rect(v[0], v[1], v[2], v[3], boolArg(vs, 4, false))
	return c.Next(), nil
}

// line(x1, y1, x2, y2)
func (a *api) line(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(args(c), 4)
	if err != nil {
		return nil, fmt.Errorf("line: %w", err)
	}
	a.f.Line(v[0], v[1], v[2], v[3])
	return c.Next(), nil
}

// arc(x, y, radius, start, end [, fill])
func (a *api) arc(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	vs := args(c)
	v, err := floatArgs(vs, 5)
	if err != nil {
		return nil, fmt.Errorf("arc: %w", err)
	}
	a.f.Arc(v[0], v[1], v[2], v[3], v[4], boolArg(vs, 5, false))
	return c.Next(), nil
}

// rounded_rect(x, y, w, h, radius [, fill])
func (a *api) roundedRect(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	vs := args(c)
	v, err := floatArgs(vs, 5)
	if err != nil {
		return nil, fmt.Errorf("rounded_rect: %w", err)
	}
	a.f.RoundedRect(v[0], v[1], v[2], v[3], v[4], boolArg(vs, 5, false))
	return c.Next(), nil
}

var (
	alignNames = map[string]canvas.TextAlign{
		"left":   canvas.AlignLeft,
		"center": canvas.AlignCenter,
		"right":  canvas.AlignRight,
	}
	baselineNames = map[string]canvas.TextBaseline{
		"top":        canvas.BaselineTop,
		"middle":     canvas.BaselineMiddle,
		"alphabetic": canvas.BaselineAlphabetic,
		"bottom":     canvas.BaselineBottom,
	}
)

// text(s, x, y, size [, {align=, baseline=, max_width=}])
func (a *api) text(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	vs := args(c)
	s, err := stringArg(vs, 0)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	v, err := floatArgs(vs[1:], 3)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	style := canvas.TextStyle{Size: v[2], Baseline: canvas.BaselineAlphabetic}
	if len(vs) > 4 {
		if opts, ok := vs[4].TryTable(); ok {
			if err := textOptions(opts, &style); err != nil {
				return nil, fmt.Errorf("text: %w", err)
			}
		}
	}
	a.f.Text(s, v[0], v[1], style)
	return c.Next(), nil
}

func textOptions(t *rt.Table, style *canvas.TextStyle) error {
	if s, ok := t.Get(rt.StringValue("align")).TryString(); ok {
		al, known := alignNames[s]
		if !known {
			return fmt.Errorf("unknown align %q", s)
		}
		style.Align = al
	}
	if s, ok := t.Get(rt.StringValue("baseline")).TryString(); ok {
		bl, known := baselineNames[s]
		if !known {
			return fmt.Errorf("unknown baseline %q", s)
		}
		style.Baseline = bl
	}
	if w, err := floatArg([]rt.Value{t.Get(rt.StringValue("max_width"))}, 0); err == nil {
		style.MaxWidth = w
	}
	return nil
}

// colorSetter builds set_fill and set_stroke, which take a CSS colour.
func (a *api) colorSetter(name string, apply func(canvas.Context, color.Color)) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		s, err := stringArg(args(c), 0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		col, err := canvas.ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if a.ctx != nil {
			apply(a.ctx, col)
		}
		return c.Next(), nil
	}
}

// set_line_width(w)
func (a *api) setLineWidth(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	w, err := floatArg(args(c), 0)
	if err != nil {
		return nil, fmt.Errorf("set_line_width: %w", err)
	}
	if a.ctx != nil {
		a.ctx.SetLineWidth(w)
	}
	return c.Next(), nil
}

// label([variant]) returns a CSS colour that reads against the background.
// variant may be "light" or "dark" to force one side.
func (a *api) label(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	vs := args(c)
	col := a.f.Label()
	if s, err := stringArg(vs, 0); err == nil {
		switch s {
		case "light":
			col = a.f.LabelLight()
		case "dark":
			col = a.f.LabelDark()
		default:
			return nil, fmt.Errorf("label: unknown variant %q", s)
		}
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(canvas.CSS(col))), nil
}

// hatch(kind, spacing, line_width [, color]) installs a hatch pattern as
// the fill and reports whether it could be built.
func (a *api) hatch(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	vs := args(c)
	name, err := stringArg(vs, 0)
	if err != nil {
		return nil, fmt.Errorf("hatch: %w", err)
	}
	kind, err := canvas.ParseHatchKind(name)
	if err != nil {
		return nil, fmt.Errorf("hatch: %w", err)
	}
	v, err := floatArgs(vs[1:], 2)
	if err != nil {
		return nil, fmt.Errorf("hatch: %w", err)
	}
	var p canvas.Paint
	if s, err := stringArg(vs, 3); err == nil {
		col, err := canvas.ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("hatch: %w", err)
		}
		p = a.f.HatchPattern(kind, v[0], v[1], col)
	} else {
		p = a.f.HatchPattern(kind, v[0], v[1], nil)
	}
	if p != nil && a.ctx != nil {
		a.ctx.SetFillPaint(p)
	}
	return c.PushingNext1(t.Runtime, rt.BoolValue(p != nil)), nil
}

// grid(cols, rows, col, row) returns {x=, y=, width=, height=}.
func (a *api) grid(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(args(c), 4)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	if v[0] < 1 || v[1] < 1 {
		return nil, fmt.Errorf("grid: need at least one column and row")
	}
	cell := a.f.Grid(int(v[0]), int(v[1]), int(v[2]), int(v[3]))
	out := rt.NewTable()
	out.Set(rt.StringValue("x"), rt.FloatValue(cell.X))
	out.Set(rt.StringValue("y"), rt.FloatValue(cell.Y))
	out.Set(rt.StringValue("width"), rt.FloatValue(cell.Width))
	out.Set(rt.StringValue("height"), rt.FloatValue(cell.Height))
	return c.PushingNext1(t.Runtime, rt.TableValue(out)), nil
}

// relative(x, y, dx, dy) returns the offset point as two values.
func (a *api) relative(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(args(c), 4)
	if err != nil {
		return nil, fmt.Errorf("relative: %w", err)
	}
	x, y := a.f.Relative(v[0], v[1], v[2], v[3])
	return c.PushingNext(t.Runtime, rt.FloatValue(x), rt.FloatValue(y)), nil
}
