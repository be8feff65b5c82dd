package canvas

import (
	"slices"
	"sync"
	"time"
)

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// FrameScheduler delivers one-shot per-frame callbacks, like a browser's
// requestAnimationFrame.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

// FrameQueue is a FrameScheduler whose callbacks run when Pump is called.
// A game loop pumps it once per tick; tests pump it by hand.
type FrameQueue struct {
	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]func(time.Time)
}

func (q *FrameQueue) RequestFrame(fn func(time.Time)) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == nil {
		q.pending = make(map[FrameID]func(time.Time))
	}
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}

// Pending returns the number of callbacks waiting for the next Pump.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Pump runs every callback requested before the call, in request order,
// and returns how many ran. Callbacks requested while pumping wait for the
// next Pump, and a callback cancelled by an earlier one in the same pump
// does not run.
func (q *FrameQueue) Pump(now time.Time) int {
	q.mu.Lock()
	ids := make([]FrameID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	q.mu.Unlock()
	slices.Sort(ids)

	ran := 0
	for _, id := range ids {
		q.mu.Lock()
		fn, ok := q.pending[id]
		delete(q.pending, id)
		q.mu.Unlock()
		if ok {
			fn(now)
			ran++
		}
	}
	return ran
}

// TickerScheduler pumps a FrameQueue from its own goroutine at a fixed rate.
type TickerScheduler struct {
	FrameQueue
	ticker *time.Ticker
	stopCh chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewTickerScheduler starts a scheduler at fps frames per second; values
// below 1 select 60.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps < 1 {
		fps = 60
	}
	s := &TickerScheduler{
		ticker: time.NewTicker(time.Second / time.Duration(fps)),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *TickerScheduler) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.stopCh:
			return
		case now := <-s.ticker.C:
			s.Pump(now)
		}
	}
}

// Close stops the goroutine and waits for an in-flight pump to return.
// It must not be called from inside a frame callback.
func (s *TickerScheduler) Close() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.stopCh)
	})
	<-s.done
}
