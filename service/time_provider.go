package service

import (
	"time"

	"instanceresponder/interfaces"
)

// timeProvider implements interfaces.TimeProvider over injected functions.
type timeProvider struct {
	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewTimeProvider creates a TimeProvider from now and after. Panics on nil arguments.
//
// In cmd/main: NewTimeProvider(func() time.Time { return time.Now().UTC() }, time.After).
func NewTimeProvider(now func() time.Time, after func(time.Duration) <-chan time.Time) interfaces.TimeProvider {
	return &timeProvider{
		now:   NilPanic(now, "service.time_provider.go: now is required"),
		after: NilPanic(after, "service.time_provider.go: after is required"),
	}
}

func (t *timeProvider) Now() time.Time {
	return t.now()
}

func (t *timeProvider) After(d time.Duration) <-chan time.Time {
	return t.after(d)
}
