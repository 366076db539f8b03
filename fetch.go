package main

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// fetchAll runs every fetch concurrently; all must succeed. The first error
// cancels the others and is returned.
func fetchAll(ctx context.Context, fetches ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fetch := range fetches {
		g.Go(func() error {
			return fetch(gctx)
		})
	}
	return g.Wait()
}

// fetchEach runs every fetch concurrently to completion. Each degrades on its
// own: errs[i] is the error of fetches[i].
func fetchEach(ctx context.Context, fetches ...func(context.Context) error) []error {
	errs := make([]error, len(fetches))

	var g errgroup.Group
	for i, fetch := range fetches {
		g.Go(func() error {
			errs[i] = fetch(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return errs
}
