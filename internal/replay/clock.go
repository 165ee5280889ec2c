package replay

import (
	"sync"
	"time"

	"github.com/feral-file/genesis-ledger/internal/adapter"
)

// Clock wraps a real clock and can be pinned to a fixed instant. During
// journal replay it is pinned to each entry's recorded timestamp so that
// stage windows and leveling math resolve exactly as they did originally;
// once replay finishes it falls back to the wrapped clock.
type Clock struct {
	mu     sync.RWMutex
	real   adapter.Clock
	pinned *time.Time
}

// NewClock creates a replay clock delegating to real until pinned.
func NewClock(real adapter.Clock) *Clock {
	return &Clock{real: real}
}

// Pin fixes the clock at t.
func (c *Clock) Pin(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinned = &t
}

// Unpin restores live time.
func (c *Clock) Unpin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinned = nil
}

func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.pinned != nil {
		return *c.pinned
	}
	return c.real.Now()
}

func (c *Clock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *Clock) Sleep(d time.Duration) {
	c.real.Sleep(d)
}

func (c *Clock) Parse(layout, value string) (time.Time, error) {
	return c.real.Parse(layout, value)
}

func (c *Clock) Unix(sec int64, nsec int64) time.Time {
	return c.real.Unix(sec, nsec)
}

func (c *Clock) After(d time.Duration) <-chan time.Time {
	return c.real.After(d)
}
