package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StructuredObjects returns the embedded structured objects of a payload.
// For HTML this is every JSON-LD script block; for raw JSON payloads it is
// the document itself. Top-level arrays and @graph containers are
// flattened, preserving document order. Malformed blocks are skipped: one
// broken script must not hide the rest.
func StructuredObjects(d *Document) []map[string]any {
	var objs []map[string]any

	if d.IsJSON() {
		var root any
		if err := json.Unmarshal([]byte(d.Raw()), &root); err == nil {
			objs = appendStructured(objs, root)
		}
		return objs
	}

	doc, err := d.HTML()
	if err != nil {
		return nil
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var root any
		if err := json.Unmarshal([]byte(sel.Text()), &root); err != nil {
			return
		}
		objs = appendStructured(objs, root)
	})

	return objs
}

// appendStructured flattens root into objs: objects first, then their
// @graph members, and array elements in document order.
func appendStructured(objs []map[string]any, root any) []map[string]any {
	switch v := root.(type) {
	case map[string]any:
		objs = append(objs, v)
		if graph, ok := v["@graph"].([]any); ok {
			for _, g := range graph {
				if obj, ok := g.(map[string]any); ok {
					objs = append(objs, obj)
				}
			}
		}
	case []any:
		for _, e := range v {
			objs = appendStructured(objs, e)
		}
	}
	return objs
}

// MetaTags reads the page-level descriptive tags into a map keyed by the
// tag's name or property attribute. The first occurrence of a key wins,
// matching the document order the meta-tag stage relies on.
func MetaTags(d *Document) map[string]string {
	tags := make(map[string]string)

	doc, err := d.HTML()
	if err != nil {
		return tags
	}

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		key, ok := sel.Attr("name")
		if !ok {
			key, ok = sel.Attr("property")
		}
		if !ok || key == "" {
			return
		}
		content, ok := sel.Attr("content")
		if !ok {
			return
		}
		if _, seen := tags[key]; !seen {
			tags[key] = content
		}
	})

	return tags
}

// FirstMatch returns the first match of re in the payload. When the pattern
// has a capture group the first group is returned, otherwise the whole
// match.
func FirstMatch(re *regexp.Regexp, payload string) (string, bool) {
	m := re.FindStringSubmatch(payload)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}

// AllMatches returns every match of re in the payload, first capture group
// when present.
func AllMatches(re *regexp.Regexp, payload string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(payload, -1) {
		if len(m) > 1 {
			out = append(out, m[1])
		} else {
			out = append(out, m[0])
		}
	}
	return out
}

// Text returns the trimmed text of the first element matching the selector,
// or "" when absent. A convenience for routines reaching past the pipeline.
func Text(d *Document, selector string) string {
	doc, err := d.HTML()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find(selector).First().Text())
}
