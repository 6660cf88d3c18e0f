package usewith

import "sync/atomic"

// Owned is a one-shot ownership cell. It pairs a value with its release
// hook and fails fast if the value is consumed twice, turning a silent
// use-after-release into an immediate panic.
type Owned[T any] struct {
	used    atomic.Bool
	val     T
	release func(T)
}

// Own wraps val in an ownership cell. release may be nil when the value
// needs no cleanup and only the double-consumption guard is wanted.
func Own[T any](val T, release func(T)) *Owned[T] {
	return &Owned[T]{val: val, release: release}
}

// Take transfers the value out of the cell. It panics if the value was
// already taken or released.
func (o *Owned[T]) Take() T {
	if !o.used.CompareAndSwap(false, true) {
		panic("usewith: resource already consumed")
	}
	return o.val
}

// TryTake is the non-panicking variant of Take. It returns (zero, false)
// if the value was already consumed.
func (o *Owned[T]) TryTake() (T, bool) {
	if !o.used.CompareAndSwap(false, true) {
		var zero T
		return zero, false
	}
	return o.val, true
}

// Release runs the release hook if the value is still held. Releasing an
// already-consumed cell is a no-op.
func (o *Owned[T]) Release() {
	if o.used.CompareAndSwap(false, true) && o.release != nil {
		o.release(o.val)
	}
}

// Consumed reports whether the value has been taken or released.
func (o *Owned[T]) Consumed() bool { return o.used.Load() }

// UseOwned consumes the cell through [Use]: the value is taken (panicking
// if already consumed), handed to op, and released via the cell's hook
// when op completes.
func UseOwned[T, U any](o *Owned[T], op func(T) U, optFns ...Option) U {
	return Use(o.Take(), o.release, op, optFns...)
}
