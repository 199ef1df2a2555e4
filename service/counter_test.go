package service

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCounter_StartsAtZero(t *testing.T) {
	c := NewRequestCounter()
	assert.Equal(t, int64(0), c.Load())
	assert.Equal(t, int64(1), c.Increment())
	assert.Equal(t, int64(2), c.Increment())
	assert.Equal(t, int64(2), c.Load())
}

func TestRequestCounter_ConcurrentIncrementsObservedOnce(t *testing.T) {
	const workers, perWorker = 16, 500
	c := NewRequestCounter()

	results := make(chan int64, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results <- c.Increment()
			}
		}()
	}
	wg.Wait()
	close(results)

	got := make([]int, 0, workers*perWorker)
	for v := range results {
		got = append(got, int(v))
	}
	sort.Ints(got)
	require.Len(t, got, workers*perWorker)
	for i, v := range got {
		require.Equal(t, i+1, v)
	}
	assert.Equal(t, int64(workers*perWorker), c.Load())
}
