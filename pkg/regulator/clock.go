package regulator

import "time"

// Clock provides the current time and delayed callbacks. It can be mocked for testing.
type Clock interface {
	Now() time.Time

	// AfterFunc calls f on its own goroutine after d has elapsed. The
	// returned function stops the timer and reports whether it was still pending.
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f with time.AfterFunc.
func (SystemClock) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}
