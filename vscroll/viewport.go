package vscroll

import (
	"sync"
	"time"
)

// Viewport readiness polling defaults. A scrollable container may not
// exist when the engine is constructed; AwaitViewport polls for it a
// bounded number of times and then gives up permanently for that mount.
const (
	DefaultPollInterval = 50 * time.Millisecond
	DefaultPollAttempts = 20
)

// AwaitViewport polls probe until it yields a viewport, sleeping interval
// between attempts. interval <= 0 and attempts <= 0 select the defaults.
// Returns (nil, false) once the attempt ceiling is exhausted; callers
// treat that as permanent for the session and fall back to whatever
// non-virtualized rendering they have.
func AwaitViewport(probe func() Viewport, interval time.Duration, attempts int) (Viewport, bool) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if attempts <= 0 {
		attempts = DefaultPollAttempts
	}
	for i := 0; i < attempts; i++ {
		if vp := probe(); vp != nil {
			return vp, true
		}
		time.Sleep(interval)
	}
	return nil, false
}

// DefaultFrameInterval approximates one animation frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameThrottle coalesces high-frequency events (scroll, resize) so a
// recompute callback fires at most once per frame interval. Trigger is
// safe to call from any goroutine; fn runs on a timer goroutine, so the
// callback should hand off to the render loop (send on a channel, post a
// message) rather than touch engine state directly.
//
// The mutex guards only the timer handle, mirroring how the reload
// watcher guards its debounce timers.
type FrameThrottle struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewFrameThrottle builds a throttle around fn. interval <= 0 selects
// DefaultFrameInterval.
func NewFrameThrottle(fn func(), interval time.Duration) *FrameThrottle {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameThrottle{interval: interval, fn: fn}
}

// Trigger requests a callback on the next frame boundary. Calls landing
// while one is already pending coalesce into it.
func (t *FrameThrottle) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.interval, func() {
		t.mu.Lock()
		t.timer = nil
		stopped := t.stopped
		t.mu.Unlock()
		if !stopped {
			t.fn()
		}
	})
}

// Stop cancels any pending callback and rejects future triggers.
func (t *FrameThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
