package catalog

import (
	"context"
	"net/url"
	"regexp"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/extract"
	"github.com/alert-new/recipes/normalize"
)

var canonicalLinkRE = regexp.MustCompile(`<link[^>]+rel="canonical"[^>]+href="([^"]+)"`)

// Generic is the catalog fallback: it owns every URL and extracts the
// descriptive fields almost any page declares. When the page's own
// structured data and meta tags come up short, the content-level metadata
// extractor backfills the gaps.
func Generic(mx recipes.MetadataExtractor) *recipes.Recipe {
	pipeline := &extract.Pipeline{
		URLFields: func(u *url.URL, fields recipes.FieldMap) {
			if domain := normalize.Domain(u.String()); domain != "" {
				fields.Fill("domain", recipes.Text(domain))
			}
		},
		Structured: []extract.StructuredRule{{
			Map: func(obj map[string]any, fields recipes.FieldMap) {
				if headline := extract.Str(obj, "headline"); headline != "" {
					fields.Fill("title", recipes.Text(normalize.Whitespace(headline)))
				}
				if desc := extract.Str(obj, "description"); desc != "" {
					fields.Fill("description", recipes.Text(normalize.Whitespace(desc)))
				}
				if author := extract.Str(obj, "author", "name"); author != "" {
					fields.Fill("author", recipes.Text(author))
				}
				if img := extract.Str(obj, "image"); img != "" {
					fields.Fill("image", recipes.URL(img))
				}
			},
		}},
		Meta: []extract.MetaRule{
			{Field: "title", Names: []string{"og:title", "twitter:title", "title"}},
			{Field: "description", Names: []string{"og:description", "twitter:description", "description"}},
			{Field: "image", Names: []string{"og:image", "twitter:image"}, Parse: extract.URLValue},
			{Field: "site", Names: []string{"og:site_name", "application-name"}},
			{Field: "author", Names: []string{"author", "article:author"}},
		},
		Patterns: []extract.PatternRule{
			{Field: "canonical", Patterns: []*regexp.Regexp{canonicalLinkRE}, Parse: extract.URLValue},
		},
	}

	extractFn := func(ctx context.Context, payload string, rawURL string) (recipes.FieldMap, error) {
		doc, err := extract.NewDocument(payload, rawURL)
		if err != nil {
			return nil, err
		}

		fields, err := pipeline.RunDocument(ctx, doc)
		if err != nil {
			return nil, err
		}

		// Backfill from content-level metadata, still additively: pages
		// with their own signals keep them.
		if mx != nil && !doc.IsJSON() {
			if meta, err := mx.Metadata(payload); err == nil {
				fillMeta(fields, meta)
			}
		}

		return fields, nil
	}

	return &recipes.Recipe{
		ID:          "generic",
		Name:        "Any web page",
		Description: "Tracks the descriptive metadata that nearly every web page declares.",
		Icon:        "globe",
		Category:    recipes.CategoryGeneric,
		Tags:        []string{"generic"},
		Maintainers: []string{maintainer},
		Examples: []recipes.Example{
			{
				URL:   "https://example.com/",
				Title: "Example Domain",
			},
		},
		Ownership: recipes.Predicate(func(string) bool { return true }),
		Fields: []recipes.Field{
			{Key: "title", Label: "Title", Type: recipes.TypeText, Primary: true},
			{Key: "description", Label: "Description", Type: recipes.TypeText},
			{Key: "author", Label: "Author", Type: recipes.TypeText},
			{Key: "site", Label: "Site name", Type: recipes.TypeText},
			{Key: "domain", Label: "Domain", Type: recipes.TypeText},
			{Key: "image", Label: "Image", Type: recipes.TypeURL},
			{Key: "canonical", Label: "Canonical URL", Type: recipes.TypeURL},
		},
		Alerts: []recipes.AlertTemplate{
			{
				ID:          "title-changes",
				Label:       "Title changes",
				Description: "Notify when the page title changes.",
				When:        "title != previous.title",
				Icon:        "file-text",
			},
		},
		Extract: extractFn,
	}
}

func fillMeta(fields recipes.FieldMap, meta *recipes.PageMetadata) {
	if meta.Title != "" {
		fields.Fill("title", recipes.Text(normalize.Whitespace(meta.Title)))
	}
	if meta.Description != "" {
		fields.Fill("description", recipes.Text(normalize.Whitespace(meta.Description)))
	} else if meta.Excerpt != "" {
		fields.Fill("description", recipes.Text(meta.Excerpt))
	}
	if meta.Author != "" {
		fields.Fill("author", recipes.Text(meta.Author))
	}
	if meta.SiteName != "" {
		fields.Fill("site", recipes.Text(meta.SiteName))
	}
	if meta.Image != "" {
		fields.Fill("image", recipes.URL(meta.Image))
	}
	if meta.URL != "" {
		fields.Fill("canonical", recipes.URL(meta.URL))
	}
}
