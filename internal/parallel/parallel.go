// Package parallel runs independent, fallible work items on a bounded number
// of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Config controls parallel execution behavior.
type Config struct {
	NumWorkers   int // Worker goroutines; 1 or less runs sequentially.
	MinChunkSize int // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns one worker per CPU.
func DefaultConfig() Config {
	return Config{
		NumWorkers:   runtime.NumCPU(),
		MinChunkSize: 8,
	}
}

// For executes f(i) for i in [0, n) and returns the error of the lowest
// failing index, or nil. The result does not depend on scheduling: a chunk
// stops early only once a chunk before it has failed.
func For(n int, f func(i int) error, cfg Config) error {
	if cfg.NumWorkers <= 1 || n <= cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
	numChunks := (n + chunkSize - 1) / chunkSize
	errs := make([]error, numChunks)

	var firstFailed atomic.Int64
	firstFailed.Store(int64(numChunks))

	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()
			end := min((c+1)*chunkSize, n)
			for i := c * chunkSize; i < end; i++ {
				if firstFailed.Load() < int64(c) {
					return
				}
				if err := f(i); err != nil {
					errs[c] = err
					for {
						cur := firstFailed.Load()
						if cur <= int64(c) || firstFailed.CompareAndSwap(cur, int64(c)) {
							break
						}
					}
					return
				}
			}
		}(c)
	}
	wg.Wait()

	if c := firstFailed.Load(); c < int64(numChunks) {
		return errs[c]
	}
	return nil
}
