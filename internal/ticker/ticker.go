// Package ticker runs cancelable repeating tasks against a swappable clock,
// so held-key repeats and animation playback can be stepped in tests.
package ticker

import (
	"sync"
	"time"
)

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Clock schedules one-shot callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// System is the wall clock. Callbacks run on their own goroutine.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Handle controls a task started with Start.
type Handle struct {
	clock    Clock
	interval time.Duration
	tick     func() bool

	mu     sync.Mutex
	timer  Timer
	active bool
	ticks  int
}

// Start calls tick every interval until Cancel is called or tick returns
// false. The first call happens one interval after Start.
func Start(clock Clock, interval time.Duration, tick func() bool) *Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	h := &Handle{clock: clock, interval: interval, tick: tick, active: true}
	h.schedule()
	return h
}

func (h *Handle) schedule() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active {
		h.timer = h.clock.AfterFunc(h.interval, h.fire)
	}
}

func (h *Handle) fire() {
	h.mu.Lock()
	if !h.active {
		h.mu.Unlock()
		return
	}
	h.ticks++
	h.mu.Unlock()

	if !h.tick() {
		h.mu.Lock()
		h.active = false
		h.mu.Unlock()
		return
	}
	h.schedule()
}

// Cancel stops the task. It is safe to call more than once and from inside
// tick.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = false
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

func (h *Handle) Active() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// Ticks reports how many times tick has been called.
func (h *Handle) Ticks() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ticks
}
