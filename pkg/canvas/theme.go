package canvas

import "sync"

// ThemeObserver reports the light/dark theme and announces changes. The
// returned unsubscribe func must be safe to call more than once.
type ThemeObserver interface {
	IsDark() bool
	OnChange(fn func(dark bool)) (unsubscribe func())
}

type staticTheme bool

// StaticTheme is a ThemeObserver that never changes.
func StaticTheme(dark bool) ThemeObserver { return staticTheme(dark) }

func (s staticTheme) IsDark() bool { return bool(s) }

func (staticTheme) OnChange(func(bool)) (unsubscribe func()) {
	return func() {}
}

// ManualTheme is a ThemeObserver driven by Set. It is safe for concurrent
// use. Subscribers run on the goroutine that calls Set, without locks held.
type ManualTheme struct {
	mu   sync.Mutex
	dark bool
	next int
	subs map[int]func(bool)
}

// NewManualTheme returns a ManualTheme starting at dark.
func NewManualTheme(dark bool) *ManualTheme {
	return &ManualTheme{dark: dark, subs: make(map[int]func(bool))}
}

func (m *ManualTheme) IsDark() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dark
}

func (m *ManualTheme) OnChange(fn func(bool)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subs == nil {
		m.subs = make(map[int]func(bool))
	}
	id := m.next
	m.next++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Set changes the theme and notifies subscribers when the value differs.
func (m *ManualTheme) Set(dark bool) {
	m.mu.Lock()
	if m.dark == dark {
		m.mu.Unlock()
		return
	}
	m.dark = dark
	fns := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

// Toggle flips the theme and returns the new value.
func (m *ManualTheme) Toggle() bool {
	dark := !m.IsDark()
	m.Set(dark)
	return dark
}
