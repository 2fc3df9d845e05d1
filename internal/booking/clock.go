package booking

import "time"

// Clock abstracts the current time so lifecycle rules (future-only cancel,
// lazy completion, past-window rejection) are testable with a fixed now.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock in UTC.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }
