// Package errgroup bridges the usewith runners to
// golang.org/x/sync/errgroup, so scoped resource operations can run as
// group tasks with their release guarantee intact.
package errgroup

import (
	"context"

	xerrgroup "golang.org/x/sync/errgroup"

	"github.com/sunsided/use-with/usewith"
)

// Go submits a scoped resource operation to g. The resource is released
// exactly once when op completes, even if ctx is already cancelled by a
// sibling's failure or op panics (the panic propagates per errgroup
// semantics, after the release ran).
func Go[T any](g *xerrgroup.Group, ctx context.Context, res T, release func(T), op func(context.Context, T) error) {
	g.Go(func() error {
		_, err := usewith.UseErr(res, release, func(t T) (struct{}, error) {
			return struct{}{}, op(ctx, t)
		})
		return err
	})
}

// Collect submits a scoped resource operation that produces a value. The
// result can be read from the returned pointer after g.Wait returns nil.
func Collect[T, U any](g *xerrgroup.Group, ctx context.Context, res T, release func(T), op func(context.Context, T) (U, error)) *U {
	out := new(U)
	g.Go(func() error {
		v, err := usewith.UseErr(res, release, func(t T) (U, error) {
			return op(ctx, t)
		})
		if err != nil {
			return err
		}
		*out = v
		return nil
	})
	return out
}
