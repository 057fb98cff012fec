package loop

import "time"

// Clock reports monotonic time since the session started.
type Clock interface {
	Now() time.Duration
}

type wallClock struct {
	start time.Time
}

// NewClock returns a Clock backed by the system monotonic clock.
func NewClock() Clock {
	return wallClock{start: time.Now()}
}

func (c wallClock) Now() time.Duration {
	return time.Since(c.start)
}

// Cooldown gates an action to at most once per Interval.
// The first attempt always passes.
type Cooldown struct {
	Interval time.Duration
	last     time.Duration
	used     bool
}

// Ready reports whether the action may happen at now and, if so, starts a new cooldown.
func (c *Cooldown) Ready(now time.Duration) bool {
	if c.used && now-c.last < c.Interval {
		return false
	}
	c.used = true
	c.last = now
	return true
}

// Reset makes the next attempt pass.
func (c *Cooldown) Reset() {
	c.used = false
	c.last = 0
}

// Interval fires at a fixed period relative to a start time.
type Interval struct {
	Every time.Duration
	next  time.Duration
}

// Start schedules the first firing one period after now.
func (i *Interval) Start(now time.Duration) {
	i.next = now + i.Every
}

// Due reports whether the interval elapsed at now and schedules the next firing.
// Missed periods are not replayed.
func (i *Interval) Due(now time.Duration) bool {
	if now < i.next {
		return false
	}
	i.next += i.Every
	if i.next <= now {
		i.next = now + i.Every
	}
	return true
}
