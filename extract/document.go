// Package extract implements the fallback extraction pipeline shared by
// every recipe, plus the generic structured-data readers the pipeline is
// composed from: a meta-tag reader, an embedded JSON-LD reader, and
// first/all pattern-match readers.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alert-new/recipes"
)

// Document is a payload paired with its subject URL. The HTML parse is
// lazy and happens at most once, so routines that never touch the DOM
// (raw-JSON payloads, pure pattern matching) never pay for it.
type Document struct {
	raw string
	url *url.URL

	parsed  bool
	doc     *goquery.Document
	htmlErr error
}

// NewDocument wraps a payload and its subject URL.
func NewDocument(payload string, rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, recipes.Errorf(recipes.EINVALID, "invalid subject URL %q: %v", rawURL, err)
	}
	return &Document{raw: payload, url: u}, nil
}

// Raw returns the payload as fetched.
func (d *Document) Raw() string { return d.raw }

// URL returns the parsed subject URL.
func (d *Document) URL() *url.URL { return d.url }

// IsJSON reports whether the payload looks like a raw JSON document rather
// than HTML.
func (d *Document) IsJSON() bool {
	trimmed := strings.TrimLeft(d.raw, " \t\r\n")
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// HTML parses the payload as HTML, once.
func (d *Document) HTML() (*goquery.Document, error) {
	if !d.parsed {
		d.parsed = true
		d.doc, d.htmlErr = goquery.NewDocumentFromReader(strings.NewReader(d.raw))
		if d.htmlErr != nil {
			d.htmlErr = recipes.Errorf(recipes.EINVALID, "failed to parse HTML: %v", d.htmlErr)
		}
	}
	return d.doc, d.htmlErr
}
