package script

import (
	"errors"
	"sync"
	"time"
)

// ErrSuspended is returned by a Runner's draw callback while the script is
// being skipped after repeated failures.
var ErrSuspended = errors.New("script suspended after repeated draw failures")

// Breaker defaults.
const (
	DefaultFailureThreshold = 5
	DefaultCooldown         = 5 * time.Second
)

// BreakerState is the position of a Runner's draw breaker.
type BreakerState int

const (
	// BreakerClosed calls the script every frame.
	BreakerClosed BreakerState = iota
	// BreakerOpen skips the script until the cooldown elapses.
	BreakerOpen
	// BreakerHalfOpen lets one trial frame through.
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// breaker stops a script that fails every frame from being re-run at frame
// rate. After threshold consecutive failures it opens; once cooldown has
// passed a single trial draw decides whether it closes or opens again.
type breaker struct {
	threshold int
	cooldown  time.Duration
	now       func() time.Time
	onChange  func(from, to BreakerState, failures int)

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
	trial    bool
}

func newBreaker(threshold int, cooldown time.Duration) *breaker {
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &breaker{threshold: threshold, cooldown: cooldown, now: time.Now}
}

// do runs fn unless the breaker is open.
func (b *breaker) do(fn func() error) error {
	if !b.allow() {
		return ErrSuspended
	}
	err := fn()
	b.record(err)
	return err
}

func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case BreakerOpen:
		if b.now().Sub(b.openedAt) < b.cooldown {
			return false
		}
		b.transition(BreakerHalfOpen)
		b.trial = true
		return true
	case BreakerHalfOpen:
		if b.trial {
			return false
		}
		b.trial = true
	}
	return true
}

func (b *breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trial = false
	if err == nil {
		b.failures = 0
		b.transition(BreakerClosed)
		return
	}
	b.failures++
	if b.state == BreakerHalfOpen || b.failures >= b.threshold {
		b.openedAt = b.now()
		b.transition(BreakerOpen)
	}
}

// reset closes the breaker, as after a successful reload.
func (b *breaker) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.trial = false
	b.transition(BreakerClosed)
}

func (b *breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// transition must be called with mu held.
func (b *breaker) transition(to BreakerState) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	if b.onChange != nil {
		b.onChange(from, to, b.failures)
	}
}
