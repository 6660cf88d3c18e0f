package usewith

import (
	"context"
	"time"
)

// Option configures a runner invocation.
type Option func(*Options)

// Options holds runner configuration. The zero value disables observation.
type Options struct {
	Observer Observer
}

func defaultOptions() Options { return Options{} }

// WithObserver attaches lifecycle hooks to a runner invocation.
func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

func applyOptions(optFns []Option) Options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Observer receives lifecycle events from a runner. Hooks must not alter
// control flow; the runner ignores anything they do.
type Observer interface {
	OpStarted(ctx context.Context)
	OpFinished(ctx context.Context, dur time.Duration, err error, panicked bool)
	Released(ctx context.Context)
}

// Use invokes op with ownership of res and returns op's result unmodified.
// release(res) runs exactly once after op completes, on every exit path:
// if op panics, release still runs before the panic reaches the caller.
//
// Use never catches, translates, or retries failures. The caller sees
// exactly what driving res and op by hand would have produced, with the
// single added guarantee that cleanup ran first.
//
// The caller must not retain res after Use returns; release has already
// run. Wrap res in an [Owned] cell when a fail-fast guard is wanted.
func Use[T, U any](res T, release func(T), op func(T) U, optFns ...Option) U {
	u, _ := run(context.Background(), res, release, func(t T) (U, error) {
		return op(t), nil
	}, applyOptions(optFns))
	return u
}

// UseErr is Use for operations that return an error. The error passes
// through verbatim; release runs whether or not it is nil.
func UseErr[T, U any](res T, release func(T), op func(T) (U, error), optFns ...Option) (U, error) {
	return run(context.Background(), res, release, op, applyOptions(optFns))
}

// Let binds res for the duration of block and releases it afterwards.
// It is Use without a result, for operations executed purely for effect.
func Let[T any](res T, release func(T), block func(T), optFns ...Option) {
	_, _ = run(context.Background(), res, release, func(t T) (struct{}, error) {
		block(t)
		return struct{}{}, nil
	}, applyOptions(optFns))
}

// run is the single code path shared by every runner. The deferred block
// is what makes the exactly-once release guarantee hold on panic.
func run[T, U any](ctx context.Context, res T, release func(T), op func(T) (U, error), o Options) (val U, err error) {
	obs := o.Observer
	var start time.Time
	if obs != nil {
		start = time.Now()
		obs.OpStarted(ctx)
	}
	done := false
	defer func() {
		if obs != nil && !done {
			obs.OpFinished(ctx, time.Since(start), nil, true)
		}
		if release != nil {
			release(res)
		}
		if obs != nil {
			obs.Released(ctx)
		}
	}()

	val, err = op(res)
	done = true
	if obs != nil {
		obs.OpFinished(ctx, time.Since(start), err, false)
	}
	return val, err
}
