package service

import (
	"sync/atomic"

	"instanceresponder/interfaces"
)

// requestCounter implements interfaces.RequestCounter on an atomic int64.
// One value is created per process in cmd/main and shared by all handlers.
type requestCounter struct {
	n atomic.Int64
}

// NewRequestCounter creates a counter starting at zero.
func NewRequestCounter() interfaces.RequestCounter {
	return &requestCounter{}
}

func (c *requestCounter) Increment() int64 {
	return c.n.Add(1)
}

func (c *requestCounter) Load() int64 {
	return c.n.Load()
}
