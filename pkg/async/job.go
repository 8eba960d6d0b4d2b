package async

import (
	"context"
	"sync/atomic"
)

// JobHandle tracks one background job started with Job.
type JobHandle[T any] struct {
	cancel func()
	done   chan Result[T]
	err    atomic.Pointer[error]
}

// Job starts fn in its own goroutine. The job owns a context detached from
// the caller and is only canceled through Stop.
func Job[T any](fn func(ctx context.Context) (T, error)) *JobHandle[T] {
	ctx, cancel := context.WithCancel(context.Background())
	handle := &JobHandle[T]{
		cancel: cancel,
		done:   make(chan Result[T], 1),
	}

	go func() {
		defer cancel()

		value, err := fn(ctx)

		handle.err.Store(&err)
		handle.done <- NewResult(value, err)
	}()

	return handle
}

func (j *JobHandle[T]) Stop() {
	j.cancel()
}

// Wait blocks until the job finishes and returns its result.
func (j *JobHandle[T]) Wait() (T, error) {
	return (<-j.done).Unpack()
}

func (j *JobHandle[T]) Error() error {
	err := j.err.Load()
	if err == nil {
		return nil
	}
	return *err
}
