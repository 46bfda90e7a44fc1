package loader

import "context"

// Future is the handle of one resolution, it completes exactly once
type Future[T any] struct {
	params ParameterSet

	done  chan struct{}
	value T
	err   error
}

func (f *Future[T]) complete(value T, err error) {
	f.value = value
	f.err = err

	close(f.done)
}

// Done is closed once the result is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Params returns the parameters the future was resolved for
func (f *Future[T]) Params() ParameterSet {
	return f.params.Clone()
}

// Result blocks until the future completes
func (f *Future[T]) Result() (T, error) {
	<-f.done

	return f.value, f.err
}

// Wait is Result bounded by ctx, the underlying fetch is not affected by ctx
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func newFuture[T any](params ParameterSet) *Future[T] {
	f := new(Future[T])

	f.params = params
	f.done = make(chan struct{})

	return f
}

func resolvedFuture[T any](params ParameterSet, value T) *Future[T] {
	f := newFuture[T](params)
	f.complete(value, nil)

	return f
}
