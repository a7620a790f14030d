// Package parallel fans independent work items out over goroutines.
//
// The autodiff engine is single-threaded: a Graph must never be shared
// between the items of one call. Give each item its own Graph.
package parallel

import (
	"errors"
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count. Items are whole graph
// evaluations, so even small batches are worth splitting.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	workers := max(cfg.NumWorkers, 1)
	if !cfg.Enabled || workers == 1 || n < max(cfg.MinChunkSize, 1)*2 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+workers-1)/workers, cfg.MinChunkSize, 1)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Map runs f for every index and collects the results in index order.
// Every item runs even when some fail; the returned error joins all
// failures.
func Map[T any](n int, f func(i int) (T, error), cfg Config) ([]T, error) {
	results := make([]T, n)
	errs := make([]error, n)
	For(n, func(i int) {
		results[i], errs[i] = f(i)
	}, cfg)
	return results, errors.Join(errs...)
}
