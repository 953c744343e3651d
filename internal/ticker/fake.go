package ticker

import (
	"sync"
	"time"
)

// Fake is a manual clock. Callbacks only run inside Advance, on the
// caller's goroutine, in deadline order.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*fakeTimer
}

type fakeTimer struct {
	clock *Fake
	when  time.Time
	seq   int
	f     func()
}

func NewFake() *Fake {
	return &Fake{now: time.Unix(0, 0)}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, when: c.now.Add(d), seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

// Pending reports how many callbacks are scheduled.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Advance moves the clock forward by d, running every callback that falls
// due, including ones scheduled by callbacks during the advance.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := -1
		for i, t := range c.pending {
			if t.when.After(end) {
				continue
			}
			if next < 0 || t.when.Before(c.pending[next].when) ||
				(t.when.Equal(c.pending[next].when) && t.seq < c.pending[next].seq) {
				next = i
			}
		}
		if next < 0 {
			c.now = end
			c.mu.Unlock()
			return
		}
		t := c.pending[next]
		c.pending = append(c.pending[:next], c.pending[next+1:]...)
		c.now = t.when
		c.mu.Unlock()

		t.f()
	}
}

func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}
