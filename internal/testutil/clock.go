package testutil

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"recmgr/internal/recorded"
)

var (
	_ recorded.Clock       = (*StubClock)(nil)
	_ recorded.IDGenerator = (*StubIDGenerator)(nil)
)

// StubClock is a clock that only moves when the test moves it.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewStubClock(now time.Time) *StubClock {
	return &StubClock{now: now}
}

// FixedClock starts at 2024-03-01 04:00 UTC (13:00 JST).
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC))
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *StubClock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// StubIDGenerator hands out "<prefix>-1", "<prefix>-2", ... in call order.
type StubIDGenerator struct {
	prefix string
	n      atomic.Int64
}

// NewStubIDGenerator produces "id-1", "id-2", ...
func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{prefix: "id"}
}

func (g *StubIDGenerator) New() string {
	return g.prefix + "-" + strconv.FormatInt(g.n.Add(1), 10)
}
