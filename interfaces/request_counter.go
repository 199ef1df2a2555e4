package interfaces

// RequestCounter counts requests served by this process. Safe for concurrent use.
type RequestCounter interface {
	// Increment adds one and returns the new total.
	Increment() int64
	// Load returns the current total without changing it.
	Load() int64
}
