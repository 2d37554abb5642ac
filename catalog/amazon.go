package catalog

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/extract"
	"github.com/alert-new/recipes/normalize"
)

var (
	amazonASINRE = regexp.MustCompile(`/(?:dp|gp/product)/([A-Z0-9]{10})(?:[/?]|$)`)

	amazonPriceJSONRE  = regexp.MustCompile(`"priceAmount"\s*:\s*([0-9][0-9.,]*)`)
	amazonPriceSpanRE  = regexp.MustCompile(`class="a-offscreen">\s*\$([0-9][0-9.,]*)`)
	amazonRatingRE     = regexp.MustCompile(`([0-9.]+) out of 5 stars`)
	amazonReviewsRE    = regexp.MustCompile(`([0-9][0-9.,]*[KkMm]?) global ratings`)
	amazonReviewsAltRE = regexp.MustCompile(`([0-9][0-9.,]*) ratings`)
)

// Amazon tracks price, availability and ratings of one product page.
func Amazon() *recipes.Recipe {
	pipeline := &extract.Pipeline{
		URLFields: func(u *url.URL, fields recipes.FieldMap) {
			if m := amazonASINRE.FindStringSubmatch(u.Path); m != nil {
				fields.Fill("asin", recipes.Text(m[1]))
			}
		},
		Structured: []extract.StructuredRule{{
			Match: func(obj map[string]any) bool { return extract.IsType(obj, "Product") },
			Map: func(obj map[string]any, fields recipes.FieldMap) {
				if name := extract.Str(obj, "name"); name != "" {
					fields.Fill("title", recipes.Text(normalize.Whitespace(name)))
				}
				if price, ok := extract.Num(obj, "offers", "price"); ok {
					fields.Fill("price", recipes.Money(price))
				}
				if avail := extract.Str(obj, "offers", "availability"); avail != "" {
					fields.Fill("inStock", recipes.Bool(strings.Contains(avail, "InStock")))
				}
				if img := extract.Str(obj, "image"); img != "" {
					fields.Fill("image", recipes.URL(img))
				}
				if rating, ok := extract.Num(obj, "aggregateRating", "ratingValue"); ok {
					fields.Fill("rating", recipes.Number(rating))
				}
			},
		}},
		Meta: []extract.MetaRule{
			{Field: "title", Names: []string{"og:title", "twitter:title", "title"}},
			{Field: "image", Names: []string{"og:image", "twitter:image"}, Parse: extract.URLValue},
		},
		Patterns: []extract.PatternRule{
			{Field: "price", Patterns: []*regexp.Regexp{amazonPriceJSONRE, amazonPriceSpanRE}, Parse: extract.MoneyValue},
			{Field: "rating", Patterns: []*regexp.Regexp{amazonRatingRE}, Parse: extract.NumberValue},
			{Field: "reviews", Patterns: []*regexp.Regexp{amazonReviewsRE, amazonReviewsAltRE}, Parse: extract.CountValue},
		},
		Derived: []extract.DerivedRule{{
			// No explicit availability signal: a listed price means the
			// item is orderable.
			Field: "inStock",
			Derive: func(fields recipes.FieldMap) (recipes.Value, bool) {
				if fields.Has("price") {
					return recipes.Bool(true), true
				}
				return recipes.None, false
			},
		}},
	}

	return &recipes.Recipe{
		ID:          "amazon",
		Name:        "Amazon product",
		Description: "Tracks the price, availability and customer rating of an Amazon product page.",
		Icon:        "cart",
		Category:    recipes.CategoryShopping,
		Tags:        []string{"shopping", "price"},
		Maintainers: []string{maintainer},
		Examples: []recipes.Example{
			{
				URL:      "https://www.amazon.com/dp/B09B8V1LZ3",
				Title:    "Echo Dot (5th Gen)",
				Subtitle: "Smart speaker with Alexa",
			},
			{
				URL:   "https://www.amazon.co.uk/gp/product/B08N5WRWNW",
				Title: "Echo Show 8",
			},
		},
		Ownership: recipes.Pattern(`^https?://(www\.)?amazon\.[a-z.]+/`),
		Fields: []recipes.Field{
			{Key: "title", Label: "Title", Type: recipes.TypeText, Primary: true},
			{Key: "price", Label: "Price", Type: recipes.TypeMoney, Currency: "USD"},
			{Key: "inStock", Label: "In stock", Type: recipes.TypeBoolean},
			{Key: "rating", Label: "Rating", Type: recipes.TypeNumber},
			{Key: "reviews", Label: "Review count", Type: recipes.TypeNumber, Noisy: true},
			{Key: "image", Label: "Image", Type: recipes.TypeURL},
			{Key: "asin", Label: "ASIN", Type: recipes.TypeText},
		},
		Alerts: []recipes.AlertTemplate{
			{
				ID:          "price-below",
				Label:       "Price drops below…",
				Description: "Notify when the price falls under a target amount.",
				When:        "price < input",
				Icon:        "trending-down",
			},
			{
				ID:          "back-in-stock",
				Label:       "Back in stock",
				Description: "Notify when the item becomes orderable again.",
				When:        "inStock == true",
				Icon:        "package",
			},
		},
		Extract: pipeline.Run,
	}
}
