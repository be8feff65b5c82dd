package canvas

import (
	"sync"
	"sync/atomic"
	"time"
)

// AnimationHandle is a running frame loop. Each tick requests the next
// frame only after it returns, so ticks never overlap.
type AnimationHandle struct {
	sched FrameScheduler
	tick  func(time.Time)

	mu        sync.Mutex
	id        FrameID
	started   bool
	cancelled bool

	// run is held for the duration of a tick so Cancel can wait it out.
	run    sync.Mutex
	frames atomic.Uint64
}

// NewAnimationHandle prepares a loop that calls tick once per frame of s.
// Nothing is scheduled until Start.
func NewAnimationHandle(s FrameScheduler, tick func(time.Time)) *AnimationHandle {
	return &AnimationHandle{sched: s, tick: tick}
}

// Start schedules the first frame. Later calls, and calls after Cancel, do
// nothing.
func (a *AnimationHandle) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started || a.cancelled {
		return
	}
	a.started = true
	a.id = a.sched.RequestFrame(a.frame)
}

func (a *AnimationHandle) frame(now time.Time) {
	a.run.Lock()
	defer a.run.Unlock()

	a.mu.Lock()
	stop := a.cancelled
	a.mu.Unlock()
	if stop {
		return
	}

	a.tick(now)
	a.frames.Add(1)

	a.mu.Lock()
	if !a.cancelled {
		a.id = a.sched.RequestFrame(a.frame)
	}
	a.mu.Unlock()
}

// Cancel stops the loop. When it returns no tick is running and none will
// run again. It must not be called from inside tick.
func (a *AnimationHandle) Cancel() {
	a.mu.Lock()
	if a.cancelled {
		a.mu.Unlock()
		return
	}
	a.cancelled = true
	if a.started {
		a.sched.CancelFrame(a.id)
	}
	a.mu.Unlock()

	// wait out a tick that was already running
	a.run.Lock()
	a.run.Unlock()
}

// Running reports whether the loop has started and not been cancelled.
func (a *AnimationHandle) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.started && !a.cancelled
}

// Frames counts completed ticks.
func (a *AnimationHandle) Frames() uint64 { return a.frames.Load() }
