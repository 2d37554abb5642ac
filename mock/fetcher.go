package mock

import (
	"context"

	"github.com/alert-new/recipes"
)

var _ recipes.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of recipes.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, spec recipes.FetchSpec) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, spec recipes.FetchSpec) (string, error) {
	return f.FetchFn(ctx, spec)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
