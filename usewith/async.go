package usewith

import "context"

// Future is the pending result of an [Async] invocation. It resolves
// exactly once; Wait and Done may be called from any goroutine.
type Future[U any] struct {
	done chan struct{}

	// Written once by the runner goroutine before done is closed.
	val      U
	err      error
	panicVal any
	panicked bool
}

// Wait blocks until the operation has completed and its resource has been
// released, then returns the operation's result unmodified. If the
// operation panicked, Wait re-panics with the original panic value.
// Wait is idempotent; every call observes the same outcome.
func (f *Future[U]) Wait() (U, error) {
	<-f.done
	if f.panicked {
		panic(f.panicVal)
	}
	return f.val, f.err
}

// WaitContext is Wait with a deadline: it returns ctx.Err() if ctx ends
// before the operation resolves. The operation keeps running and its
// resource is still released when it eventually completes; only the wait
// is abandoned.
func (f *Future[U]) WaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.Wait()
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the future resolves. By that point
// the resource has been released.
func (f *Future[U]) Done() <-chan struct{} { return f.done }

// Async invokes op with ownership of res on a new goroutine and returns a
// [Future] for its result. release(res) runs exactly once, after op has
// fully completed (returned, failed, or panicked) and strictly before the
// future resolves. The runner never touches res itself; it only keeps it
// in scope for the duration of the operation.
//
// Cancellation is the operation's business: op receives ctx and decides
// how to react to it. An op that returns early on ctx.Done() still has
// its resource released before the future resolves.
func Async[T, U any](ctx context.Context, res T, release func(T), op func(context.Context, T) (U, error), optFns ...Option) *Future[U] {
	if ctx == nil {
		ctx = context.Background()
	}
	o := applyOptions(optFns)
	f := &Future[U]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.panicked = true
				f.panicVal = r
			}
		}()
		f.val, f.err = run(ctx, res, release, func(t T) (U, error) {
			return op(ctx, t)
		}, o)
	}()
	return f
}
