package extract_test

import (
	"context"
	"net/url"
	"regexp"
	"testing"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productPage carries the same price in two places so precedence between
// stages is observable: the structured block says 29.99, the inline pattern
// says 19.99.
const productPage = `<html><head>
	<meta property="og:title" content="Widget &amp; Co">
	<meta property="og:image" content="https://img.test/w.jpg">
	<script type="application/ld+json">
		{"@type":"Product","name":"Widget","offers":{"price":"29.99"}}
	</script>
</head><body>
	<span class="price">$19.99</span>
</body></html>`

func productPipeline() *extract.Pipeline {
	return &extract.Pipeline{
		URLFields: func(u *url.URL, fields recipes.FieldMap) {
			fields.Fill("domain", recipes.Text(u.Hostname()))
		},
		Structured: []extract.StructuredRule{{
			Match: func(obj map[string]any) bool { return extract.IsType(obj, "Product") },
			Map: func(obj map[string]any, fields recipes.FieldMap) {
				if name := extract.Str(obj, "name"); name != "" {
					fields.Fill("title", recipes.Text(name))
				}
				if price, ok := extract.Num(obj, "offers", "price"); ok {
					fields.Fill("price", recipes.Money(price))
				}
			},
		}},
		Meta: []extract.MetaRule{
			{Field: "title", Names: []string{"og:title", "twitter:title"}},
			{Field: "image", Names: []string{"og:image"}, Parse: extract.URLValue},
		},
		Patterns: []extract.PatternRule{
			{
				Field:    "price",
				Patterns: []*regexp.Regexp{regexp.MustCompile(`class="price">\$([\d.,]+)<`)},
				Parse:    extract.MoneyValue,
			},
		},
		Derived: []extract.DerivedRule{{
			Field: "inStock",
			Derive: func(fields recipes.FieldMap) (recipes.Value, bool) {
				if fields.Has("price") {
					return recipes.Bool(true), true
				}
				return recipes.None, false
			},
		}},
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("earlier stages win over later ones", func(t *testing.T) {
		t.Parallel()

		fields, err := productPipeline().Run(context.Background(), productPage, "https://shop.test/item/9")
		require.NoError(t, err)

		// Structured data resolved the price first, so the pattern stage
		// must not replace it.
		assert.Equal(t, 29.99, fields["price"].Float())
		// Same for the title against the meta stage.
		assert.Equal(t, "Widget", fields["title"].String())
	})

	t.Run("later stages fill what earlier ones missed", func(t *testing.T) {
		t.Parallel()

		fields, err := productPipeline().Run(context.Background(), productPage, "https://shop.test/item/9")
		require.NoError(t, err)

		assert.Equal(t, "https://img.test/w.jpg", fields["image"].String())
		assert.Equal(t, true, fields["inStock"].Bool())
	})

	t.Run("URL fields are seeded before any payload stage", func(t *testing.T) {
		t.Parallel()

		fields, err := productPipeline().Run(context.Background(), productPage, "https://shop.test/item/9")
		require.NoError(t, err)
		assert.Equal(t, "shop.test", fields["domain"].String())
	})

	t.Run("a URL-seeded field survives conflicting payload signals", func(t *testing.T) {
		t.Parallel()

		p := &extract.Pipeline{
			URLFields: func(u *url.URL, fields recipes.FieldMap) {
				fields.Fill("title", recipes.Text("from-url"))
			},
			Meta: []extract.MetaRule{
				{Field: "title", Names: []string{"og:title"}},
			},
			Patterns: []extract.PatternRule{{
				Field:    "title",
				Patterns: []*regexp.Regexp{regexp.MustCompile(`<h1>([^<]+)</h1>`)},
			}},
		}
		page := `<html><head><meta property="og:title" content="from-meta"></head><body><h1>from-pattern</h1></body></html>`

		fields, err := p.Run(context.Background(), page, "https://site.test/x")
		require.NoError(t, err)
		assert.Equal(t, "from-url", fields["title"].String())
	})

	t.Run("pattern stage covers a page without structured data", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><span class="price">$19.99</span></body></html>`
		fields, err := productPipeline().Run(context.Background(), page, "https://shop.test/item/9")
		require.NoError(t, err)
		assert.Equal(t, 19.99, fields["price"].Float())
	})

	t.Run("meta alias priority follows declaration order", func(t *testing.T) {
		t.Parallel()

		page := `<html><head>
			<meta name="twitter:title" content="Twitter Title">
			<meta property="og:title" content="OG Title">
		</head></html>`
		fields, err := productPipeline().Run(context.Background(), page, "https://shop.test/")
		require.NoError(t, err)
		assert.Equal(t, "OG Title", fields["title"].String())
	})

	t.Run("none values never survive to the result", func(t *testing.T) {
		t.Parallel()

		p := &extract.Pipeline{
			Derived: []extract.DerivedRule{{
				Field:  "ghost",
				Derive: func(recipes.FieldMap) (recipes.Value, bool) { return recipes.None, true },
			}},
		}
		fields, err := p.Run(context.Background(), "<html></html>", "https://site.test/")
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		t.Parallel()

		fields, err := (&extract.Pipeline{}).Run(context.Background(), "<html></html>", "https://site.test/")
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("cancelled context stops the pipeline", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := productPipeline().Run(ctx, productPage, "https://shop.test/item/9")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("pattern default parse decodes entities", func(t *testing.T) {
		t.Parallel()

		p := &extract.Pipeline{
			Patterns: []extract.PatternRule{{
				Field:    "title",
				Patterns: []*regexp.Regexp{regexp.MustCompile(`<h1>([^<]+)</h1>`)},
			}},
		}
		fields, err := p.Run(context.Background(), "<html><body><h1>Tom &amp; Jerry</h1></body></html>", "https://site.test/")
		require.NoError(t, err)
		assert.Equal(t, "Tom & Jerry", fields["title"].String())
	})
}

func TestParseHooks(t *testing.T) {
	t.Parallel()

	t.Run("MoneyValue", func(t *testing.T) {
		t.Parallel()
		v, ok := extract.MoneyValue("$1,234.56")
		require.True(t, ok)
		assert.Equal(t, recipes.TypeMoney, v.Type())
		assert.Equal(t, 1234.56, v.Float())

		_, ok = extract.MoneyValue("sold out")
		assert.False(t, ok)
	})

	t.Run("CountValue", func(t *testing.T) {
		t.Parallel()
		v, ok := extract.CountValue("1.2k")
		require.True(t, ok)
		assert.Equal(t, 1200.0, v.Float())
	})

	t.Run("NumberValue", func(t *testing.T) {
		t.Parallel()
		v, ok := extract.NumberValue("3,421")
		require.True(t, ok)
		assert.Equal(t, 3421.0, v.Float())
	})

	t.Run("URLValue", func(t *testing.T) {
		t.Parallel()
		v, ok := extract.URLValue(" https://img.test/a.jpg ")
		require.True(t, ok)
		assert.Equal(t, recipes.TypeURL, v.Type())
		assert.Equal(t, "https://img.test/a.jpg", v.String())

		_, ok = extract.URLValue("  ")
		assert.False(t, ok)
	})
}
