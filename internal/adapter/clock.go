package adapter

import "time"

// Clock defines an interface for time operations to enable mocking.
// Engine calls take `now` explicitly; binaries read it from a Clock.
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	After(d time.Duration) <-chan time.Time
	NewTicker(d time.Duration) *time.Ticker
}

// RealClock implements Clock using the standard time package
type RealClock struct{}

// NewClock creates a new real clock implementation
func NewClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (c *RealClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (c *RealClock) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}

// FixedClock is a Clock frozen at a settable instant, used by the dev mode and tests
type FixedClock struct {
	now time.Time
}

// NewFixedClock creates a clock frozen at now
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Set moves the clock to t
func (c *FixedClock) Set(t time.Time) {
	c.now = t
}

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func (c *FixedClock) Now() time.Time {
	return c.now
}

func (c *FixedClock) Since(t time.Time) time.Duration {
	return c.now.Sub(t)
}

func (c *FixedClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now.Add(d)
	return ch
}

func (c *FixedClock) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}
