package domain

import "time"

// Clock supplies the current time to the workflow.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC, truncated to whole seconds to
// match the store's timestamp precision.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
