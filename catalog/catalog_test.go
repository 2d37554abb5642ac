package catalog_test

import (
	"testing"

	"github.com/alert-new/recipes/catalog"
	"github.com/alert-new/recipes/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("catalog passes validation", func(t *testing.T) {
		t.Parallel()

		res := validate.Catalog(catalog.New())
		assert.True(t, res.Valid(), "errors: %v", res.Errors)
	})

	t.Run("every example URL dispatches to its own recipe", func(t *testing.T) {
		t.Parallel()

		reg := catalog.New()
		for _, rec := range reg.ListAll() {
			for _, ex := range rec.Examples {
				got := reg.Resolve(ex.URL)
				require.NotNil(t, got, "no recipe claimed %q", ex.URL)
				assert.Equal(t, rec.ID, got.ID, "example %q", ex.URL)
			}
		}
	})

	t.Run("unknown URLs fall back to generic", func(t *testing.T) {
		t.Parallel()

		rec := catalog.New().Resolve("https://blog.example.org/post/1")
		require.NotNil(t, rec)
		assert.Equal(t, "generic", rec.ID)
	})
}
