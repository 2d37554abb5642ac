package mock

import "github.com/alert-new/recipes"

var _ recipes.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of recipes.Resolver.
type Resolver struct {
	ResolveFn          func(url string) *recipes.Recipe
	LookupByIdentityFn func(id string) (*recipes.Recipe, bool)
	ListAllFn          func() []*recipes.Recipe
}

func (r *Resolver) Resolve(url string) *recipes.Recipe {
	return r.ResolveFn(url)
}

func (r *Resolver) LookupByIdentity(id string) (*recipes.Recipe, bool) {
	return r.LookupByIdentityFn(id)
}

func (r *Resolver) ListAll() []*recipes.Recipe {
	return r.ListAllFn()
}
