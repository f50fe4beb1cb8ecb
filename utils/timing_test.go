package utils

import (
	"testing"
	"time"
)

type fakeClock struct {
	current time.Duration
}

func (c *fakeClock) now() time.Duration {
	return c.current
}

func TestFrameTimerDelta(t *testing.T) {
	clock := &fakeClock{current: time.Second}
	timer := newFrameTimer(0, clock.now)

	delta, _, ready := timer.Tick()
	if delta != 0 || ready {
		t.Errorf("first tick should be empty, got %s %v", delta, ready)
	}

	clock.current += 16 * time.Millisecond
	delta, _, ready = timer.Tick()
	if delta != 16*time.Millisecond {
		t.Errorf("expected 16ms delta, got %s", delta)
	}
	if ready {
		t.Error("stats should be disabled with a zero interval")
	}
}

func TestFrameTimerStats(t *testing.T) {
	clock := &fakeClock{}
	timer := newFrameTimer(time.Second, clock.now)
	timer.Tick()

	for i := 0; i < 3; i++ {
		clock.current += 250 * time.Millisecond
		if _, _, ready := timer.Tick(); ready {
			t.Fatalf("stats reported early at frame %d", i)
		}
	}

	clock.current += 250 * time.Millisecond
	_, stats, ready := timer.Tick()
	if !ready {
		t.Fatal("expected stats after one interval")
	}
	if stats.Frames != 4 {
		t.Errorf("expected 4 frames, got %d", stats.Frames)
	}
	if stats.FPS != 4 {
		t.Errorf("expected 4 fps, got %f", stats.FPS)
	}
	if stats.AverageFrame != 250*time.Millisecond {
		t.Errorf("expected 250ms average, got %s", stats.AverageFrame)
	}

	clock.current += 500 * time.Millisecond
	if _, _, ready := timer.Tick(); ready {
		t.Error("window should reset after reporting")
	}
}
