package render

import (
	"log/slog"
	"sync"
	"time"
)

// FrameMetrics tracks how long redraws take and how many run per second.
// It is safe for concurrent use.
type FrameMetrics struct {
	mu     sync.Mutex
	period time.Duration

	total   uint64
	last    time.Duration
	min     time.Duration
	max     time.Duration
	sum     time.Duration
	fps     float64
	window  int
	started time.Time
	now     func() time.Time
}

// NewFrameMetrics returns a tracker that recomputes FPS every period,
// one second when period is not positive.
func NewFrameMetrics(period time.Duration) *FrameMetrics {
	if period <= 0 {
		period = time.Second
	}
	fm := &FrameMetrics{period: period, now: time.Now}
	fm.started = fm.now()
	return fm
}

// RecordFrame adds one redraw of duration d.
func (fm *FrameMetrics) RecordFrame(d time.Duration) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.total++
	fm.last = d
	fm.sum += d
	if fm.total == 1 || d < fm.min {
		fm.min = d
	}
	if d > fm.max {
		fm.max = d
	}

	fm.window++
	now := fm.now()
	if elapsed := now.Sub(fm.started); elapsed >= fm.period {
		fm.fps = float64(fm.window) / elapsed.Seconds()
		fm.window = 0
		fm.started = now
	}
}

// FPS is the redraw rate over the last completed period.
func (fm *FrameMetrics) FPS() float64 {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.fps
}

// Reset forgets every recorded frame.
func (fm *FrameMetrics) Reset() {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.total, fm.window = 0, 0
	fm.last, fm.min, fm.max, fm.sum = 0, 0, 0, 0
	fm.fps = 0
	fm.started = fm.now()
}

// MetricsSnapshot is a point-in-time copy of FrameMetrics.
type MetricsSnapshot struct {
	Frames  uint64
	FPS     float64
	Last    time.Duration
	Min     time.Duration
	Max     time.Duration
	Average time.Duration
}

// Snapshot copies the current figures.
func (fm *FrameMetrics) Snapshot() MetricsSnapshot {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	s := MetricsSnapshot{
		Frames: fm.total,
		FPS:    fm.fps,
		Last:   fm.last,
		Min:    fm.min,
		Max:    fm.max,
	}
	if fm.total > 0 {
		s.Average = fm.sum / time.Duration(fm.total)
	}
	return s
}

// LogValue groups the snapshot under one slog attribute.
func (s MetricsSnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frames", s.Frames),
		slog.Float64("fps", s.FPS),
		slog.Duration("last", s.Last),
		slog.Duration("min", s.Min),
		slog.Duration("max", s.Max),
		slog.Duration("avg", s.Average),
	)
}
