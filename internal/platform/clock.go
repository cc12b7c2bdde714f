package platform

import "time"

// RealClock reports the wall clock in local time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
