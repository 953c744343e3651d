package ticker

import (
	"testing"
	"time"
)

func TestStartTicksEveryInterval(t *testing.T) {
	clock := NewFake()
	calls := 0
	h := Start(clock, 80*time.Millisecond, func() bool {
		calls++
		return true
	})

	clock.Advance(79 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("calls before first interval = %d", calls)
	}
	clock.Advance(time.Millisecond)
	if calls != 1 {
		t.Fatalf("calls after one interval = %d", calls)
	}
	clock.Advance(400 * time.Millisecond)
	if calls != 6 || h.Ticks() != 6 {
		t.Fatalf("calls = %d ticks = %d, want 6", calls, h.Ticks())
	}
	if !h.Active() {
		t.Fatal("handle should still be active")
	}
}

func TestCancelStopsTicks(t *testing.T) {
	clock := NewFake()
	calls := 0
	h := Start(clock, 10*time.Millisecond, func() bool {
		calls++
		return true
	})
	clock.Advance(25 * time.Millisecond)
	h.Cancel()
	h.Cancel()
	clock.Advance(time.Second)
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if h.Active() {
		t.Fatal("cancelled handle reports active")
	}
	if clock.Pending() != 0 {
		t.Fatalf("pending timers = %d", clock.Pending())
	}
}

func TestTickReturningFalseStops(t *testing.T) {
	clock := NewFake()
	calls := 0
	h := Start(clock, time.Second, func() bool {
		calls++
		return calls < 3
	})
	clock.Advance(10 * time.Second)
	if calls != 3 || h.Active() {
		t.Fatalf("calls = %d active = %v", calls, h.Active())
	}
}

func TestCancelFromInsideTick(t *testing.T) {
	clock := NewFake()
	var h *Handle
	calls := 0
	h = Start(clock, time.Second, func() bool {
		calls++
		h.Cancel()
		return true
	})
	clock.Advance(5 * time.Second)
	if calls != 1 || h.Active() {
		t.Fatalf("calls = %d active = %v", calls, h.Active())
	}
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	h.Cancel()
	if h.Active() || h.Ticks() != 0 {
		t.Fatal("nil handle should be inert")
	}
}

func TestSystemClockFires(t *testing.T) {
	done := make(chan struct{})
	h := Start(System(), time.Millisecond, func() bool {
		close(done)
		return false
	})
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("system clock never fired")
	}
	h.Cancel()
}
