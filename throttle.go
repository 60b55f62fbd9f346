package main

import "time"

// Throttle is a time gate for pointer-driven updates. It does not queue: the
// caller keeps only the latest pending sample and retries it on Flush.
type Throttle struct {
	interval time.Duration
	last     time.Time
	primed   bool
}

func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Allow reports whether an update at the given time may be applied, and if
// so records it as the last applied update.
func (t *Throttle) Allow(at time.Time) bool {
	if t.primed && at.Sub(t.last) < t.interval {
		return false
	}
	t.last = at
	t.primed = true
	return true
}

// Remaining is the wait before an update at the given time would be allowed.
func (t *Throttle) Remaining(at time.Time) time.Duration {
	if !t.primed {
		return 0
	}
	wait := t.interval - at.Sub(t.last)
	if wait < 0 {
		return 0
	}
	return wait
}

// Mark records an update applied outside the gate, e.g. on pointer up.
func (t *Throttle) Mark(at time.Time) {
	t.last = at
	t.primed = true
}

func (t *Throttle) Reset() {
	t.last = time.Time{}
	t.primed = false
}

func (t *Throttle) Interval() time.Duration {
	return t.interval
}
