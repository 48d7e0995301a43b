package core

import "time"

// Duration is the elapsed time reported by a TimeProvider
type Duration time.Duration

// Std converts to time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// TimeProvider is the clock the domain reads. Slot windows, order ids and
// operation latencies all come from it so tests can pin the time.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) Duration
}
