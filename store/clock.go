package store

import "time"

// Timer is a pending call scheduled by a Clock.
type Timer interface {
	Stop() bool
}

// Clock schedules the debounced cache writes.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the Clock backed by the standard library timers.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
