package interfaces

import "time"

// TimeProvider is the clock used by handlers for timestamps, uptime and the
// artificial delay on /slow. Tests swap it for a fixed clock whose After fires immediately.
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns the current time (UTC in prod).
	Now() time.Time

	// After returns a channel that receives once d has elapsed.
	// Used by /slow so the wait parks only the calling goroutine.
	After(d time.Duration) <-chan time.Time
}
