package recipes

import "context"

// Category classifies a Recipe. The set is closed; the validator rejects
// members outside Categories().
type Category string

// Closed set of recipe categories.
const (
	CategoryShopping  Category = "shopping"
	CategoryVideo     Category = "video"
	CategorySocial    Category = "social"
	CategoryNews      Category = "news"
	CategoryDeveloper Category = "developer"
	CategoryFeeds     Category = "feeds"
	CategoryGeneric   Category = "generic"
)

// Categories returns the closed set of valid recipe categories.
func Categories() []Category {
	return []Category{
		CategoryShopping,
		CategoryVideo,
		CategorySocial,
		CategoryNews,
		CategoryDeveloper,
		CategoryFeeds,
		CategoryGeneric,
	}
}

// ValidCategory reports whether c is a member of the closed category set.
func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Example is a worked example URL a Recipe is known to handle. The validator
// uses examples to prove ownership and to surface dispatch ambiguity.
type Example struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image,omitempty"`
}

// AlertTemplate is a default alert definition shipped with a Recipe. When is
// an opaque condition expression handed verbatim to the downstream alert
// evaluator; the engine never parses it.
type AlertTemplate struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	When        string `json:"when"`
	Icon        string `json:"icon,omitempty"`
}

// ExtractFunc turns an already-fetched payload (HTML or JSON) and its
// subject URL into a partial field map. Routines may suspend on ctx but
// perform no network I/O themselves. Absent fields are simply omitted.
type ExtractFunc func(ctx context.Context, payload string, url string) (FieldMap, error)

// Recipe is a declarative extraction definition for one class of URL.
// Recipes are constructed once at catalog-load time and treated as
// immutable thereafter, which is what makes concurrent dispatch and
// extraction against a shared Registry safe.
type Recipe struct {
	// ID is the globally unique identity: lowercase alphanumerics and
	// hyphens. Uniqueness across the catalog is the validator's job.
	ID string

	Name        string
	Description string
	Icon        string
	Category    Category
	Tags        []string

	// Maintainers lists who to ping when the site changes markup.
	Maintainers []string

	// Examples are canonical URLs this recipe owns, with display metadata.
	Examples []Example

	// Ownership decides whether this recipe claims a URL.
	Ownership Ownership

	// Fields is the ordered, typed schema of what Extract may produce.
	Fields []Field

	// Alerts are the default alert templates offered for this recipe.
	Alerts []AlertTemplate

	// Extract populates the field map from (payload, url).
	Extract ExtractFunc

	// TransformURL optionally rewrites the subject URL into the URL the
	// external fetcher should request (e.g. an API data endpoint).
	TransformURL func(url string) string

	// Headers are static request headers for the external fetcher.
	Headers map[string]string

	// RequiresRendering flags pages whose payload must come from a
	// script-executing fetcher. The engine never renders; plain fetchers
	// skip such recipes.
	RequiresRendering bool
}

// FieldByKey returns the schema entry for key.
func (r *Recipe) FieldByKey(key string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// PrimaryField returns the first field marked primary.
func (r *Recipe) PrimaryField() (Field, bool) {
	for _, f := range r.Fields {
		if f.Primary {
			return f, true
		}
	}
	return Field{}, false
}
