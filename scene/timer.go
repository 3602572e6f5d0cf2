package scene

import "time"

// Timer runs a function once the scene clock reaches its deadline.
type Timer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// Stop prevents the timer from firing. It reports whether the call stopped
// the timer, false if it had already fired or been stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Fired reports whether the timer function has run.
func (t *Timer) Fired() bool {
	return t.fired
}

// Deadline returns the scene time at which the timer fires.
func (t *Timer) Deadline() time.Duration {
	return t.at
}
