package main

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pixelpainter/internal/ticker"
)

// teaClock schedules wall-clock timers whose callbacks run inside Update:
// when a timer fires it only posts a clockMsg to the program.
type teaClock struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func newTeaClock() *teaClock {
	return &teaClock{}
}

// attach connects the clock to a running program. Timers that fire before
// attach are dropped.
func (c *teaClock) attach(send func(tea.Msg)) {
	c.mu.Lock()
	c.send = send
	c.mu.Unlock()
}

func (c *teaClock) Now() time.Time {
	return time.Now()
}

func (c *teaClock) AfterFunc(d time.Duration, f func()) ticker.Timer {
	return time.AfterFunc(d, func() {
		c.mu.Lock()
		send := c.send
		c.mu.Unlock()
		if send != nil {
			send(clockMsg{fire: f})
		}
	})
}
