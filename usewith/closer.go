package usewith

import "io"

// CloserFunc adapts a plain function to io.Closer.
type CloserFunc func() error

// Close implements io.Closer.
func (f CloserFunc) Close() error { return f() }

// UseCloser is [Use] for resources that clean up via io.Closer. The Close
// error is discarded; use [UseCloserErr] when it matters.
func UseCloser[T io.Closer, U any](res T, op func(T) U, optFns ...Option) U {
	return Use(res, func(t T) { _ = t.Close() }, op, optFns...)
}

// UseCloserErr is [UseErr] for io.Closer resources. A Close error is
// surfaced only when op itself succeeded; an op error always wins.
func UseCloserErr[T io.Closer, U any](res T, op func(T) (U, error), optFns ...Option) (U, error) {
	var cerr error
	val, err := UseErr(res, func(t T) { cerr = t.Close() }, op, optFns...)
	if err == nil {
		err = cerr
	}
	return val, err
}
