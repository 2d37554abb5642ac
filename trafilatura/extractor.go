// Package trafilatura adapts go-trafilatura as a recipes.MetadataExtractor.
// The fallback recipe uses it to fill generic fields on pages that carry no
// site-specific signals.
package trafilatura

import (
	"strings"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/normalize"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Extracted excerpts are capped so a description-less page doesn't dump its
// whole body into one field.
const maxExcerpt = 280

// Ensure Extractor implements recipes.MetadataExtractor at compile time.
var _ recipes.MetadataExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to read page metadata and a content
// excerpt out of raw HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Metadata extracts generic page metadata from raw HTML.
func (e *Extractor) Metadata(rawHTML string) (*recipes.PageMetadata, error) {
	if rawHTML == "" {
		return nil, recipes.Errorf(recipes.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	meta := &recipes.PageMetadata{
		Title:       result.Metadata.Title,
		Description: result.Metadata.Description,
		Author:      result.Metadata.Author,
		SiteName:    result.Metadata.Sitename,
		Image:       result.Metadata.Image,
		URL:         result.Metadata.URL,
	}

	if result.ContentNode != nil {
		meta.Excerpt = excerpt(result.ContentNode)
	}

	return meta, nil
}

// excerpt walks the content tree and returns its opening text.
func excerpt(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if b.Len() >= maxExcerpt {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	text := normalize.Whitespace(b.String())
	if len(text) > maxExcerpt {
		cut := strings.LastIndexByte(text[:maxExcerpt], ' ')
		if cut <= 0 {
			cut = maxExcerpt
		}
		text = text[:cut] + "…"
	}
	return text
}
