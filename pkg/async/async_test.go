package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xtrack/pkg/async"
)

var errTest = errors.New("test error")

func TestJob(t *testing.T) {
	t.Parallel()

	t.Run("returns the result", func(t *testing.T) {
		t.Parallel()

		handle := async.Job(func(context.Context) (int, error) {
			return 42, nil
		})

		value, err := handle.Wait()
		require.NoError(t, err)
		require.Equal(t, 42, value)
		require.NoError(t, handle.Error())
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		handle := async.Job(func(context.Context) (int, error) {
			return 0, errTest
		})

		_, err := handle.Wait()
		require.ErrorIs(t, err, errTest)
		require.ErrorIs(t, handle.Error(), errTest)
	})

	t.Run("stop cancels the job context", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		handle := async.Job(func(ctx context.Context) (any, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		})

		<-started
		handle.Stop()

		_, err := handle.Wait()
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestForEach(t *testing.T) {
	t.Parallel()

	t.Run("visits every item", func(t *testing.T) {
		t.Parallel()

		var sum atomic.Int64
		err := async.ForEach(t.Context(), []int{1, 2, 3, 4}, 2, func(_ context.Context, item int) error {
			sum.Add(int64(item))
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, int64(10), sum.Load())
	})

	t.Run("returns the first error", func(t *testing.T) {
		t.Parallel()

		err := async.ForEach(t.Context(), []int{1, 2, 3}, 1, func(_ context.Context, item int) error {
			if item == 2 {
				return errTest
			}
			return nil
		})
		require.ErrorIs(t, err, errTest)
	})

	t.Run("bounds concurrency", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int64
		err := async.ForEach(t.Context(), make([]int, 16), 3, func(context.Context, int) error {
			n := current.Add(1)
			defer current.Add(-1)

			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			return nil
		})
		require.NoError(t, err)
		require.LessOrEqual(t, peak.Load(), int64(3))
	})
}

func TestGenerator(t *testing.T) {
	t.Parallel()

	t.Run("yields then closes", func(t *testing.T) {
		t.Parallel()

		ch := async.Generator(t.Context(), func(_ context.Context, y async.Yielder[int]) error {
			y(1, nil)
			y(2, nil)
			return nil
		})

		var values []int
		for d := range ch {
			value, err := d.Unpack()
			require.NoError(t, err)
			values = append(values, value)
		}
		require.Equal(t, []int{1, 2}, values)
	})

	t.Run("yields errors inline", func(t *testing.T) {
		t.Parallel()

		ch := async.Generator(t.Context(), func(_ context.Context, y async.Yielder[int]) error {
			y(1, nil)
			y(0, errTest)
			y(2, nil)
			return nil
		})

		var values []int
		var errs []error
		for d := range ch {
			value, err := d.Unpack()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			values = append(values, value)
		}
		require.Equal(t, []int{1, 2}, values)
		require.Len(t, errs, 1)
		require.ErrorIs(t, errs[0], errTest)
	})

	t.Run("delivers the final error", func(t *testing.T) {
		t.Parallel()

		ch := async.Generator(t.Context(), func(_ context.Context, y async.Yielder[int]) error {
			y(1, nil)
			return errTest
		})

		var last error
		for d := range ch {
			_, last = d.Unpack()
		}
		require.ErrorIs(t, last, errTest)
	})

	t.Run("stops generating on cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		ch := async.Generator(ctx, func(ctx context.Context, y async.Yielder[int]) error {
			for {
				select {
				case <-ctx.Done():
					return nil
				default:
					y(1, nil)
				}
			}
		})

		for range ch { //nolint:revive
		}
	})
}
