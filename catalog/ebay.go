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
	ebayItemRE = regexp.MustCompile(`/itm/(?:[^/]+/)?(\d+)`)

	ebayPriceUSRE   = regexp.MustCompile(`US \$([0-9][0-9.,]*)`)
	ebayPriceJSONRE = regexp.MustCompile(`"price"\s*:\s*"?([0-9][0-9.,]*)`)
	ebayBidsRE      = regexp.MustCompile(`(\d+)\s+bids?\b`)
)

// Ebay tracks the price and bid activity of one eBay listing.
func Ebay() *recipes.Recipe {
	pipeline := &extract.Pipeline{
		URLFields: func(u *url.URL, fields recipes.FieldMap) {
			if m := ebayItemRE.FindStringSubmatch(u.Path); m != nil {
				fields.Fill("itemId", recipes.Text(m[1]))
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
			},
		}},
		Meta: []extract.MetaRule{
			{Field: "title", Names: []string{"og:title", "twitter:title"}},
			{Field: "image", Names: []string{"og:image"}, Parse: extract.URLValue},
		},
		Patterns: []extract.PatternRule{
			{Field: "price", Patterns: []*regexp.Regexp{ebayPriceUSRE, ebayPriceJSONRE}, Parse: extract.MoneyValue},
			{Field: "bids", Patterns: []*regexp.Regexp{ebayBidsRE}, Parse: extract.NumberValue},
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

	return &recipes.Recipe{
		ID:          "ebay",
		Name:        "eBay listing",
		Description: "Tracks the price, availability and bid count of an eBay listing.",
		Icon:        "gavel",
		Category:    recipes.CategoryShopping,
		Tags:        []string{"shopping", "price", "auction"},
		Maintainers: []string{maintainer},
		Examples: []recipes.Example{
			{
				URL:   "https://www.ebay.com/itm/195912345678",
				Title: "ThinkPad X1 Carbon Gen 9",
			},
		},
		Ownership: recipes.Pattern(`^https?://(www\.)?ebay\.[a-z.]+/itm/`),
		Fields: []recipes.Field{
			{Key: "title", Label: "Title", Type: recipes.TypeText, Primary: true},
			{Key: "price", Label: "Price", Type: recipes.TypeMoney, Currency: "USD"},
			{Key: "bids", Label: "Bids", Type: recipes.TypeNumber, Noisy: true},
			{Key: "inStock", Label: "Available", Type: recipes.TypeBoolean},
			{Key: "image", Label: "Image", Type: recipes.TypeURL},
			{Key: "itemId", Label: "Item ID", Type: recipes.TypeText},
		},
		Alerts: []recipes.AlertTemplate{
			{
				ID:          "price-below",
				Label:       "Price drops below…",
				Description: "Notify when the listing price falls under a target amount.",
				When:        "price < input",
				Icon:        "trending-down",
			},
			{
				ID:          "new-bid",
				Label:       "New bid placed",
				Description: "Notify whenever the bid count increases.",
				When:        "bids > previous.bids",
				Icon:        "gavel",
			},
		},
		Extract: pipeline.Run,
	}
}
