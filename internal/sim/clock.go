package sim

// Clock is the wall-clock countdown bounding a session. It is driven by
// whatever scheduler the host provides (a timer, an event-loop interval,
// or a test calling Tick directly); the clock itself never sleeps.
type Clock struct {
	duration  int
	remaining int
	started   bool
}

// Start arms the clock with the given budget in seconds.
func (c *Clock) Start(durationSeconds int) {
	c.duration = durationSeconds
	c.remaining = durationSeconds
	c.started = true
}

// Tick consumes elapsed seconds and returns the remaining budget.
// Remaining is monotonic with floor 0; ticking an expired clock is a
// no-op.
func (c *Clock) Tick(elapsedSeconds int) int {
	if !c.started || elapsedSeconds <= 0 {
		return c.remaining
	}
	c.remaining -= elapsedSeconds
	if c.remaining < 0 {
		c.remaining = 0
	}
	return c.remaining
}

// Remaining returns the seconds left on the clock.
func (c *Clock) Remaining() int { return c.remaining }

// Elapsed returns the seconds consumed so far.
func (c *Clock) Elapsed() int { return c.duration - c.remaining }

// Expired reports whether the budget is exhausted.
func (c *Clock) Expired() bool { return c.started && c.remaining == 0 }
