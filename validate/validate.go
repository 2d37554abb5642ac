// Package validate checks recipe catalogs: per-recipe completeness,
// catalog-wide consistency (duplicate identities, ambiguous URL ownership)
// and extraction-routine behavior. It is a build-time/CI-time tool and
// never sits on the extraction hot path. Findings are returned as data;
// no failure crosses the package boundary as a raised error.
package validate

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/alert-new/recipes"
)

// Description length bounds. Out-of-bounds descriptions are a quality
// warning, not an error.
const (
	minDescription = 20
	maxDescription = 300
)

var identityRE = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Issue is one validation finding.
type Issue struct {
	// Recipe is the identity of the originating recipe.
	Recipe string `json:"recipe"`

	// Path locates the offending attribute, e.g. "fields[2].label".
	Path string `json:"path"`

	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Recipe, i.Path, i.Message)
}

// Result is the outcome of a validation run. Errors make the result
// invalid; warnings never do.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Valid reports whether the run produced no errors.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(recipe, path, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Recipe: recipe, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) warnf(recipe, path, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Recipe: recipe, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Recipe checks one recipe's internal completeness: presence and shape of
// every mandatory attribute. Soft-quality findings are warnings.
func Recipe(rec *recipes.Recipe) Result {
	var res Result
	id := rec.ID

	switch {
	case rec.ID == "":
		res.errorf(id, "identity", "identity is required")
	case !identityRE.MatchString(rec.ID):
		res.errorf(id, "identity", "identity %q must be lowercase alphanumerics and hyphens", rec.ID)
	}

	if rec.Name == "" {
		res.errorf(id, "name", "name is required")
	}

	switch n := utf8.RuneCountInString(rec.Description); {
	case n == 0:
		res.errorf(id, "description", "description is required")
	case n < minDescription:
		res.warnf(id, "description", "description is %d runes; aim for at least %d", n, minDescription)
	case n > maxDescription:
		res.warnf(id, "description", "description is %d runes; keep it under %d", n, maxDescription)
	}

	if !recipes.ValidCategory(rec.Category) {
		res.errorf(id, "category", "category %q is not one of %v", rec.Category, recipes.Categories())
	}

	if len(rec.Maintainers) == 0 {
		res.errorf(id, "maintainers", "at least one maintainer is required")
	}

	validateOwnership(&res, rec)
	validateFields(&res, rec)
	validateAlerts(&res, rec)

	if rec.Extract == nil {
		res.errorf(id, "extract", "extraction routine is required")
	}

	return res
}

func validateOwnership(res *Result, rec *recipes.Recipe) {
	id := rec.ID

	if rec.Ownership.IsZero() {
		res.errorf(id, "ownership", "ownership must be a URL pattern or a predicate")
		return
	}
	if err := rec.Ownership.Err(); err != nil {
		res.errorf(id, "ownership", "URL pattern does not compile: %v", err)
		return
	}

	if len(rec.Examples) == 0 {
		res.warnf(id, "examples", "no worked examples; ownership and extraction cannot be exercised")
		return
	}

	owned := false
	for i, ex := range rec.Examples {
		if ex.URL == "" {
			res.errorf(id, fmt.Sprintf("examples[%d].url", i), "example URL is required")
			continue
		}
		if rec.Ownership.Owns(ex.URL) {
			owned = true
		}
	}
	if !owned {
		res.errorf(id, "ownership", "no example URL is claimed by the ownership test")
	}
}

func validateFields(res *Result, rec *recipes.Recipe) {
	id := rec.ID

	if len(rec.Fields) == 0 {
		res.errorf(id, "fields", "field schema must not be empty")
		return
	}

	primary := false
	seen := make(map[string]bool, len(rec.Fields))
	for i, f := range rec.Fields {
		path := fmt.Sprintf("fields[%d]", i)
		if f.Key == "" {
			res.errorf(id, path+".key", "field key is required")
		} else if seen[f.Key] {
			res.errorf(id, path+".key", "field key %q is declared twice", f.Key)
		}
		seen[f.Key] = true

		if f.Label == "" {
			res.errorf(id, path+".label", "field label is required")
		}
		if !recipes.ValidValueType(f.Type) {
			res.errorf(id, path+".type", "unknown value type %q", f.Type)
		}
		if f.Type == recipes.TypeMoney && f.Currency == "" {
			res.warnf(id, path+".currency", "money field %q has no currency code", f.Key)
		}
		if f.Primary {
			primary = true
		}
	}

	if !primary {
		res.warnf(id, "fields", "no field is marked primary")
	}
}

func validateAlerts(res *Result, rec *recipes.Recipe) {
	id := rec.ID

	seen := make(map[string]bool, len(rec.Alerts))
	for i, a := range rec.Alerts {
		path := fmt.Sprintf("alerts[%d]", i)
		if a.ID == "" {
			res.errorf(id, path+".id", "alert id is required")
		} else if seen[a.ID] {
			res.errorf(id, path+".id", "alert id %q is declared twice", a.ID)
		}
		seen[a.ID] = true

		if a.Label == "" {
			res.errorf(id, path+".label", "alert label is required")
		}
		if a.When == "" {
			res.errorf(id, path+".when", "alert condition expression is required")
		}
	}
}

// Catalog runs the per-recipe check over the whole registry, fallback
// included, then the two cross-cutting checks: duplicate identities (an
// error) and ownership overlap between site-specific recipes (a warning;
// registration order already resolves overlap deterministically, so it is
// surfaced, not forbidden).
func Catalog(reg *recipes.Registry) Result {
	var res Result

	all := reg.ListAll()
	for _, rec := range all {
		res.merge(Recipe(rec))
	}

	// Duplicate-identity check.
	counts := make(map[string]int, len(all))
	for _, rec := range all {
		counts[rec.ID]++
	}
	for _, rec := range all {
		if n := counts[rec.ID]; n > 1 {
			res.errorf(rec.ID, "identity", "identity %q is used by %d recipes", rec.ID, n)
			counts[rec.ID] = 0 // report once per identity
		}
	}

	// Ownership-overlap check: earlier recipes' examples tested against
	// later recipes' ownership. Earlier registration wins at dispatch.
	specific := reg.Specific()
	for i, earlier := range specific {
		for _, later := range specific[i+1:] {
			for k, ex := range earlier.Examples {
				if ex.URL == "" || !later.Ownership.Owns(ex.URL) {
					continue
				}
				res.warnf(earlier.ID, fmt.Sprintf("examples[%d]", k),
					"example %q is also claimed by %q; registration order resolves it to %q",
					ex.URL, later.ID, earlier.ID)
			}
		}
	}

	return res
}
