// Package catalog ships the built-in site recipes and assembles them into
// a registry. Recipes here are pure data riding on the engine: each file
// declares one site's identity, ownership, field schema, alert templates
// and extraction pipeline. Registration order is the dispatch tie-break,
// so more specific recipes go first.
package catalog

import (
	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/trafilatura"
)

// New builds the built-in registry: site recipes in priority order plus
// the generic fallback.
func New() *recipes.Registry {
	return recipes.NewRegistry(
		Generic(trafilatura.NewExtractor()),
		Amazon(),
		Ebay(),
		GitHub(),
		YouTube(),
		Twitter(),
		Feed(),
	)
}

// maintainer is the default contact for the built-in recipes.
const maintainer = "catalog@alert.new"
