// Package clock supplies the logical time read by the permission services.
//
// Monotonic follows the wall clock in whole seconds but never goes backwards, so
// expiry comparisons stay consistent across a clock step. Manual is the
// deterministic variant used by tests.
package clock

import (
	"sync"
	"time"

	"github.com/dtroode/healthperm-server/internal/model"
)

var (
	_ model.Clock = (*Monotonic)(nil)
	_ model.Clock = (*Manual)(nil)
)

// Monotonic is a wall-clock backed model.Clock that never decreases.
type Monotonic struct {
	mu   sync.Mutex
	last model.LogicalTime
	now  func() time.Time
}

// NewMonotonic creates a clock reading time.Now.
func NewMonotonic() *Monotonic {
	return &Monotonic{now: time.Now}
}

// Now returns the current unix second, or the last returned value if the wall
// clock has stepped back.
func (c *Monotonic) Now() model.LogicalTime {
	c.mu.Lock()
	defer c.mu.Unlock()

	sec := c.now().Unix()
	if sec < 0 {
		sec = 0
	}
	t := model.LogicalTime(sec)
	if t < c.last {
		return c.last
	}
	c.last = t
	return t
}

// Manual is a model.Clock whose time only moves when told to.
// It is safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now model.LogicalTime
}

// NewManual creates a Manual clock at initial.
func NewManual(initial model.LogicalTime) *Manual {
	return &Manual{now: initial}
}

func (c *Manual) Now() model.LogicalTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t. Moving backwards is ignored.
func (c *Manual) Set(t model.LogicalTime) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t > c.now {
		c.now = t
	}
}

// Advance moves the clock forward by d seconds.
func (c *Manual) Advance(d uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += model.LogicalTime(d)
}
