package sim

import "testing"

func TestClockCountsDown(t *testing.T) {
	var c Clock
	c.Start(60)

	if got := c.Tick(10); got != 50 {
		t.Errorf("Tick(10) = %d, want 50", got)
	}
	if got := c.Tick(20); got != 30 {
		t.Errorf("Tick(20) = %d, want 30", got)
	}
	if c.Elapsed() != 30 {
		t.Errorf("Elapsed() = %d, want 30", c.Elapsed())
	}
	if c.Expired() {
		t.Error("Expired() = true with 30s remaining")
	}
}

func TestClockFloorsAtZero(t *testing.T) {
	var c Clock
	c.Start(10)

	if got := c.Tick(25); got != 0 {
		t.Errorf("Tick(25) = %d, want 0", got)
	}
	if !c.Expired() {
		t.Error("Expired() = false after overshoot")
	}

	// Ticking an expired clock is a no-op.
	if got := c.Tick(5); got != 0 {
		t.Errorf("Tick(5) after expiry = %d, want 0", got)
	}
	if c.Elapsed() != 10 {
		t.Errorf("Elapsed() = %d, want 10", c.Elapsed())
	}
}

func TestClockIgnoresNonPositiveTicks(t *testing.T) {
	var c Clock
	c.Start(30)
	c.Tick(0)
	c.Tick(-5)
	if c.Remaining() != 30 {
		t.Errorf("Remaining() = %d, want 30", c.Remaining())
	}
}

func TestClockUnstartedTickIsNoop(t *testing.T) {
	var c Clock
	if got := c.Tick(10); got != 0 {
		t.Errorf("Tick on unstarted clock = %d, want 0", got)
	}
	if c.Expired() {
		t.Error("unstarted clock reports expired")
	}
}
