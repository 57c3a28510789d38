package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	"realty/pkg/platform/sentinel"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes      int32
	Errors         int32
	NotInitialized int32
}

// Total returns the number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors + r.NotInitialized
}

// RunConcurrent runs fn in n goroutines and buckets the outcomes.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, errs, notInit atomic.Int32

	for i := range n {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrNotInitialized):
				notInit.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes:      successes.Load(),
		Errors:         errs.Load(),
		NotInitialized: notInit.Load(),
	}
}

// Collect runs fn in n goroutines and gathers each goroutine's value.
// Order of the returned slice is unspecified.
func Collect[T any](n int, fn func(idx int) (T, error)) ([]T, []error) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	values := make([]T, 0, n)
	var errs []error

	for i := range n {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			v, err := fn(idx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			values = append(values, v)
		}(i)
	}

	wg.Wait()
	return values, errs
}
