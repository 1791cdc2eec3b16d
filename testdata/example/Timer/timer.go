// Package timer hosts a single Timer type.
package timer

import "time"

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// Start resets the timer.
func (t *Timer) Start() {
	t.start = time.Now()
}
