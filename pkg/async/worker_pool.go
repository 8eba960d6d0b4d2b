package async

import (
	"context"
	"sync"
	"sync/atomic"
)

// ForEach runs fn over items with at most concurrency goroutines and returns
// the first error once all started work has finished.
func ForEach[T any](ctx context.Context, items []T, concurrency int, fn func(ctx context.Context, item T) error) error {
	if concurrency < 1 {
		concurrency = 1
	}

	semaphore := make(chan struct{}, concurrency)
	firstErr := atomic.Pointer[error]{}

	var wg sync.WaitGroup
	for _, item := range items {
		if firstErr.Load() != nil {
			break
		}

		semaphore <- struct{}{}
		wg.Add(1)

		go func(item T) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			if err := fn(ctx, item); err != nil {
				firstErr.CompareAndSwap(nil, &err)
			}
		}(item)
	}
	wg.Wait()

	if err := firstErr.Load(); err != nil {
		return *err
	}
	return nil
}
