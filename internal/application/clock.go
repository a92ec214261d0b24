package application

import "time"

// Clock interface so time is injectable in tests
type Clock interface {
	Now() time.Time
}

// SystemClock default implementation, backed by time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
