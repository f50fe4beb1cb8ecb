package utils

import (
	"time"

	"github.com/loov/hrtime"
)

// FrameStats summarizes the frames rendered during one stats interval
type FrameStats struct {
	Frames       int
	Elapsed      time.Duration
	FPS          float64
	AverageFrame time.Duration
}

// FrameTimer measures frame deltas on the high resolution clock
type FrameTimer struct {
	now      func() time.Duration
	interval time.Duration

	started     bool
	last        time.Duration
	windowStart time.Duration
	frames      int
}

func NewFrameTimer(cfg TimeConfiguration) *FrameTimer {
	return newFrameTimer(cfg.StatsInterval, hrtime.Now)
}

func newFrameTimer(interval time.Duration, now func() time.Duration) *FrameTimer {
	return &FrameTimer{
		now:      now,
		interval: interval,
	}
}

// Tick marks the end of a frame. It returns the time since the previous
// tick and, once per interval, the stats for that interval.
func (t *FrameTimer) Tick() (time.Duration, FrameStats, bool) {
	current := t.now()
	if !t.started {
		t.started = true
		t.last = current
		t.windowStart = current
		return 0, FrameStats{}, false
	}

	delta := current - t.last
	t.last = current
	t.frames++

	elapsed := current - t.windowStart
	if t.interval <= 0 || elapsed < t.interval {
		return delta, FrameStats{}, false
	}

	stats := FrameStats{
		Frames:       t.frames,
		Elapsed:      elapsed,
		FPS:          float64(t.frames) / elapsed.Seconds(),
		AverageFrame: elapsed / time.Duration(t.frames),
	}
	t.frames = 0
	t.windowStart = current

	return delta, stats, true
}
