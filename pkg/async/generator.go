package async

import (
	"context"

	"github.com/zhulik/pips"
)

// Yielder delivers one generated value or error into the stream.
type Yielder[T any] func(T, error)

// Generator runs gen in a goroutine and exposes its yields as a
// pipeline-ready stream. The channel is closed when gen returns; a non-nil
// return error is delivered as the last element.
func Generator[T any](ctx context.Context, gen func(context.Context, Yielder[T]) error) <-chan pips.D[T] {
	ch := make(chan pips.D[T], 1)

	y := func(t T, err error) {
		ch <- pips.NewD(t, err)
	}

	go func() {
		defer close(ch)

		if err := gen(ctx, y); err != nil {
			ch <- pips.ErrD[T](err)
		}
	}()

	return ch
}
