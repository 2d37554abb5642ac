package validate

import (
	"context"

	"github.com/alert-new/recipes"
)

// ExtractionResult is the captured outcome of exercising an extraction
// routine against a sample payload.
type ExtractionResult struct {
	Success bool
	Fields  recipes.FieldMap
	Err     error
}

// Extraction invokes the recipe's routine over (payload, url) with
// capture-don't-propagate discipline: a raised failure, including a panic,
// becomes an error result, never an escaping fault, so one hostile
// payload cannot abort a batch of independent checks.
//
// A routine must either omit a field or give it a real value: a nil field
// map or any field carrying the explicit no-value sentinel is a failure.
func Extraction(ctx context.Context, rec *recipes.Recipe, payload string, url string) (res ExtractionResult) {
	defer func() {
		if p := recover(); p != nil {
			res = ExtractionResult{Err: recipes.Errorf(recipes.EINTERNAL, "extraction routine panicked: %v", p)}
		}
	}()

	if rec.Extract == nil {
		return ExtractionResult{Err: recipes.Errorf(recipes.EINVALID, "recipe %q has no extraction routine", rec.ID)}
	}

	fields, err := rec.Extract(ctx, payload, url)
	if err != nil {
		return ExtractionResult{Err: err}
	}
	if fields == nil {
		return ExtractionResult{Err: recipes.Errorf(recipes.EINVALID, "extraction routine returned no field map")}
	}
	for key, v := range fields {
		if v.IsNone() {
			return ExtractionResult{
				Fields: fields,
				Err:    recipes.Errorf(recipes.EINVALID, "field %q is present without a value", key),
			}
		}
	}

	return ExtractionResult{Success: true, Fields: fields}
}
