package recipes

// Resolver resolves URLs and identities to Recipes. Implemented by Registry
// and by logging decorators that wrap it.
type Resolver interface {
	// Resolve returns the first registered Recipe whose ownership test
	// claims the URL, or the fallback Recipe when none does.
	Resolve(url string) *Recipe

	// LookupByIdentity returns the Recipe with the given identity,
	// including the fallback. The second return is false when absent.
	LookupByIdentity(id string) (*Recipe, bool)

	// ListAll returns every Recipe: site-specific ones in registration
	// order, then the fallback.
	ListAll() []*Recipe
}

// Ensure Registry implements Resolver at compile time.
var _ Resolver = (*Registry)(nil)

// Registry is an ordered collection of Recipes plus a designated fallback.
// Registration order is the dispatch tie-break: when two recipes both claim
// a URL, the earlier one wins. Overlap is allowed (the validator surfaces it
// as a warning) so dispatch stays deterministic and order-dependent.
//
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	specific []*Recipe
	fallback *Recipe
}

// NewRegistry builds a Registry from the fallback Recipe and the
// site-specific Recipes in priority order.
func NewRegistry(fallback *Recipe, specific ...*Recipe) *Registry {
	return &Registry{
		specific: append([]*Recipe(nil), specific...),
		fallback: fallback,
	}
}

// Resolve returns the first site-specific Recipe claiming the URL, or the
// fallback. The fallback is never consulted during ownership resolution
// except as last resort.
func (reg *Registry) Resolve(url string) *Recipe {
	for _, r := range reg.specific {
		if r.Ownership.Owns(url) {
			return r
		}
	}
	return reg.fallback
}

// LookupByIdentity scans the full registry, fallback included.
func (reg *Registry) LookupByIdentity(id string) (*Recipe, bool) {
	for _, r := range reg.ListAll() {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// ListAll returns site-specific Recipes in registration order followed by
// the fallback. The slice is a copy; the Registry itself never changes.
func (reg *Registry) ListAll() []*Recipe {
	all := make([]*Recipe, 0, len(reg.specific)+1)
	all = append(all, reg.specific...)
	if reg.fallback != nil {
		all = append(all, reg.fallback)
	}
	return all
}

// Specific returns the site-specific Recipes in registration order.
func (reg *Registry) Specific() []*Recipe {
	return append([]*Recipe(nil), reg.specific...)
}

// Fallback returns the designated fallback Recipe.
func (reg *Registry) Fallback() *Recipe { return reg.fallback }
