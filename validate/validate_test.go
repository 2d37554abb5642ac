package validate_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wellFormed returns a recipe that passes every check, for tests that break
// one attribute at a time.
func wellFormed(id string) *recipes.Recipe {
	return &recipes.Recipe{
		ID:          id,
		Name:        "Shop Test",
		Description: "Tracks product listings on shop.test storefronts.",
		Category:    recipes.CategoryShopping,
		Maintainers: []string{"a@example.com"},
		Examples: []recipes.Example{
			{URL: fmt.Sprintf("https://%s.test/item/9", id), Title: "Widget"},
		},
		Ownership: recipes.Pattern(fmt.Sprintf(`^https://%s\.test/`, id)),
		Fields: []recipes.Field{
			{Key: "title", Label: "Title", Type: recipes.TypeText, Primary: true},
			{Key: "price", Label: "Price", Type: recipes.TypeMoney, Currency: "USD"},
		},
		Alerts: []recipes.AlertTemplate{
			{ID: "price-below", Label: "Price drops below", When: "price < input"},
		},
		Extract: func(context.Context, string, string) (recipes.FieldMap, error) {
			return recipes.FieldMap{}, nil
		},
	}
}

// paths collects the Path of every issue for order-insensitive assertions.
func paths(issues []validate.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Path)
	}
	return out
}

func TestRecipe(t *testing.T) {
	t.Parallel()

	t.Run("well-formed recipe has no findings", func(t *testing.T) {
		t.Parallel()

		res := validate.Recipe(wellFormed("shop"))
		assert.True(t, res.Valid())
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Warnings)
	})

	t.Run("identity", func(t *testing.T) {
		t.Parallel()

		t.Run("missing", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.ID = ""
			res := validate.Recipe(rec)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, "identity", res.Errors[0].Path)
		})

		t.Run("bad format", func(t *testing.T) {
			t.Parallel()
			for _, id := range []string{"Shop", "shop_test", "-shop", "shop-", "shop--test"} {
				rec := wellFormed("shop")
				rec.ID = id
				res := validate.Recipe(rec)
				assert.Contains(t, paths(res.Errors), "identity", "id %q", id)
			}
		})

		t.Run("hyphenated is fine", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.ID = "shop-test-2"
			res := validate.Recipe(rec)
			assert.NotContains(t, paths(res.Errors), "identity")
		})
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		rec := wellFormed("shop")
		rec.Name = ""
		assert.Contains(t, paths(validate.Recipe(rec).Errors), "name")
	})

	t.Run("description", func(t *testing.T) {
		t.Parallel()

		t.Run("missing is an error", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Description = ""
			assert.Contains(t, paths(validate.Recipe(rec).Errors), "description")
		})

		t.Run("too short is only a warning", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Description = "Too short."
			res := validate.Recipe(rec)
			assert.True(t, res.Valid())
			assert.Contains(t, paths(res.Warnings), "description")
		})
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()
		rec := wellFormed("shop")
		rec.Category = "misc"
		assert.Contains(t, paths(validate.Recipe(rec).Errors), "category")
	})

	t.Run("no maintainers", func(t *testing.T) {
		t.Parallel()
		rec := wellFormed("shop")
		rec.Maintainers = nil
		assert.Contains(t, paths(validate.Recipe(rec).Errors), "maintainers")
	})

	t.Run("ownership", func(t *testing.T) {
		t.Parallel()

		t.Run("zero value is an error", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Ownership = recipes.Ownership{}
			assert.Contains(t, paths(validate.Recipe(rec).Errors), "ownership")
		})

		t.Run("non-compiling pattern is an error, not a panic", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Ownership = recipes.Pattern(`([`)
			res := validate.Recipe(rec)
			require.Contains(t, paths(res.Errors), "ownership")
		})

		t.Run("no examples is a warning", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Examples = nil
			res := validate.Recipe(rec)
			assert.True(t, res.Valid())
			assert.Contains(t, paths(res.Warnings), "examples")
		})

		t.Run("no owned example is an error", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Examples = []recipes.Example{{URL: "https://elsewhere.test/", Title: "Nope"}}
			assert.Contains(t, paths(validate.Recipe(rec).Errors), "ownership")
		})

		t.Run("empty example URL is an error", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Examples = append(rec.Examples, recipes.Example{Title: "No URL"})
			assert.Contains(t, paths(validate.Recipe(rec).Errors), "examples[1].url")
		})
	})

	t.Run("fields", func(t *testing.T) {
		t.Parallel()

		t.Run("empty schema", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Fields = nil
			assert.Contains(t, paths(validate.Recipe(rec).Errors), "fields")
		})

		t.Run("duplicate key", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Fields = append(rec.Fields, recipes.Field{Key: "title", Label: "Title Again", Type: recipes.TypeText})
			assert.Contains(t, paths(validate.Recipe(rec).Errors), "fields[2].key")
		})

		t.Run("unknown type", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Fields[1].Type = "decimal"
			assert.Contains(t, paths(validate.Recipe(rec).Errors), "fields[1].type")
		})

		t.Run("money without currency is a warning", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Fields[1].Currency = ""
			res := validate.Recipe(rec)
			assert.True(t, res.Valid())
			assert.Contains(t, paths(res.Warnings), "fields[1].currency")
		})

		t.Run("no primary field is a warning", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Fields[0].Primary = false
			res := validate.Recipe(rec)
			assert.True(t, res.Valid())
			assert.Contains(t, paths(res.Warnings), "fields")
		})
	})

	t.Run("alerts", func(t *testing.T) {
		t.Parallel()

		t.Run("duplicate id", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Alerts = append(rec.Alerts, recipes.AlertTemplate{ID: "price-below", Label: "Again", When: "x"})
			assert.Contains(t, paths(validate.Recipe(rec).Errors), "alerts[1].id")
		})

		t.Run("missing condition", func(t *testing.T) {
			t.Parallel()
			rec := wellFormed("shop")
			rec.Alerts[0].When = ""
			assert.Contains(t, paths(validate.Recipe(rec).Errors), "alerts[0].when")
		})
	})

	t.Run("missing extraction routine", func(t *testing.T) {
		t.Parallel()
		rec := wellFormed("shop")
		rec.Extract = nil
		assert.Contains(t, paths(validate.Recipe(rec).Errors), "extract")
	})
}

func fallbackFor(t *testing.T) *recipes.Recipe {
	t.Helper()
	rec := wellFormed("fallback")
	rec.Category = recipes.CategoryGeneric
	rec.Ownership = recipes.Predicate(func(string) bool { return true })
	rec.Examples = []recipes.Example{{URL: "https://anything.test/", Title: "Anything"}}
	return rec
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	t.Run("clean catalog", func(t *testing.T) {
		t.Parallel()

		reg := recipes.NewRegistry(fallbackFor(t), wellFormed("shop"), wellFormed("video"))
		res := validate.Catalog(reg)
		assert.True(t, res.Valid())
		assert.Empty(t, res.Warnings)
	})

	t.Run("duplicate identity reported once per identity", func(t *testing.T) {
		t.Parallel()

		reg := recipes.NewRegistry(fallbackFor(t), wellFormed("shop"), wellFormed("shop"))
		res := validate.Catalog(reg)
		require.False(t, res.Valid())

		var dupes []validate.Issue
		for _, e := range res.Errors {
			if e.Path == "identity" {
				dupes = append(dupes, e)
			}
		}
		require.Len(t, dupes, 1)
		assert.Equal(t, `identity "shop" is used by 2 recipes`, dupes[0].Message)
	})

	t.Run("ownership overlap is a warning resolved by registration order", func(t *testing.T) {
		t.Parallel()

		first := wellFormed("narrow")
		first.Examples = []recipes.Example{{URL: "https://narrow.test/item/9", Title: "Widget"}}
		first.Ownership = recipes.Pattern(`^https://narrow\.test/item/`)

		second := wellFormed("broad")
		second.Examples = []recipes.Example{{URL: "https://narrow.test/other", Title: "Other"}}
		second.Ownership = recipes.Pattern(`^https://narrow\.test/`)

		reg := recipes.NewRegistry(fallbackFor(t), first, second)
		res := validate.Catalog(reg)

		assert.True(t, res.Valid(), "overlap is permitted")
		require.Len(t, res.Warnings, 1)
		w := res.Warnings[0]
		assert.Equal(t, "narrow", w.Recipe)
		assert.Contains(t, w.Message, `also claimed by "broad"`)
		assert.Contains(t, w.Message, `resolves it to "narrow"`)
	})
}

func TestIssueString(t *testing.T) {
	t.Parallel()

	i := validate.Issue{Recipe: "shop", Path: "name", Message: "name is required"}
	assert.Equal(t, "shop: name: name is required", i.String())
}
