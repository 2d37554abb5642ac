package extract

import (
	"context"
	"net/url"
	"regexp"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/normalize"
)

// StructuredRule maps one recognized shape of embedded structured object
// onto the field schema.
type StructuredRule struct {
	// Match reports whether this rule understands the object, e.g. its
	// @type is "Product". A nil Match accepts every object.
	Match func(obj map[string]any) bool

	// Map fills schema fields from the object. Writes must go through
	// FieldMap.Fill, so later objects only populate fields still absent.
	Map func(obj map[string]any, fields recipes.FieldMap)
}

// MetaRule assigns one field from page-level meta tags. Names are tag
// aliases in priority order: the first alias present in the page wins.
type MetaRule struct {
	Field string
	Names []string

	// Parse converts the tag content into a Value. Nil defaults to
	// whitespace-collapsed text.
	Parse func(content string) (recipes.Value, bool)
}

// PatternRule assigns one field from an ordered list of alternative
// patterns; the first pattern that matches wins. Each pattern's first
// capture group (or whole match) is handed to Parse.
type PatternRule struct {
	Field    string
	Patterns []*regexp.Regexp

	// Parse converts the matched substring into a Value. Nil defaults to
	// entity-decoded, whitespace-collapsed text.
	Parse func(match string) (recipes.Value, bool)
}

// DerivedRule computes a field from fields resolved by earlier stages.
type DerivedRule struct {
	Field  string
	Derive func(fields recipes.FieldMap) (recipes.Value, bool)
}

// Pipeline is the fixed-order fallback pipeline every recipe's extraction
// routine follows. Stage order never changes and stages are strictly
// additive: a later stage only fills gaps, never replaces a value set by an
// earlier one. Within a stage, earlier-declared aliases and patterns win.
type Pipeline struct {
	// URLFields seeds fields computable from the URL alone. They are set
	// first and never overwritten by payload-derived stages.
	URLFields func(u *url.URL, fields recipes.FieldMap)

	// Structured maps embedded structured objects onto the schema.
	Structured []StructuredRule

	// Meta reads page-level descriptive tags.
	Meta []MetaRule

	// Patterns are the per-field pattern alternatives.
	Patterns []PatternRule

	// Derived computes fields from already-resolved ones.
	Derived []DerivedRule
}

// Run executes the pipeline over (payload, url) and returns the extracted
// field map. An empty result is not an error. The context is consulted at
// stage boundaries; routines never block on shared resources.
func (p *Pipeline) Run(ctx context.Context, payload string, rawURL string) (recipes.FieldMap, error) {
	doc, err := NewDocument(payload, rawURL)
	if err != nil {
		return nil, err
	}
	return p.RunDocument(ctx, doc)
}

// RunDocument is Run over an already-wrapped Document, for routines that
// combine the pipeline with their own readers.
func (p *Pipeline) RunDocument(ctx context.Context, doc *Document) (recipes.FieldMap, error) {
	fields := recipes.FieldMap{}

	// Stage 1: URL-derived fields.
	if p.URLFields != nil {
		p.URLFields(doc.URL(), fields)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: embedded structured data. Later objects only fill fields
	// still absent.
	if len(p.Structured) > 0 {
		for _, obj := range StructuredObjects(doc) {
			for _, rule := range p.Structured {
				if rule.Match != nil && !rule.Match(obj) {
					continue
				}
				rule.Map(obj, fields)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: meta tags, alias priority within each rule.
	if len(p.Meta) > 0 {
		tags := MetaTags(doc)
		for _, rule := range p.Meta {
			if fields.Has(rule.Field) {
				continue
			}
			for _, name := range rule.Names {
				content, ok := tags[name]
				if !ok {
					continue
				}
				if v, ok := parseMeta(rule.Parse, content); ok {
					fields.Fill(rule.Field, v)
					break
				}
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: pattern matching, first successful pattern wins.
	for _, rule := range p.Patterns {
		if fields.Has(rule.Field) {
			continue
		}
		for _, re := range rule.Patterns {
			match, ok := FirstMatch(re, doc.Raw())
			if !ok {
				continue
			}
			if v, ok := parsePattern(rule.Parse, match); ok {
				fields.Fill(rule.Field, v)
				break
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 5: derived defaults.
	for _, rule := range p.Derived {
		if fields.Has(rule.Field) {
			continue
		}
		if v, ok := rule.Derive(fields); ok {
			fields.Fill(rule.Field, v)
		}
	}

	// Cleanup: a field is either present with a real value or absent.
	fields.Clean()

	return fields, nil
}

func parseMeta(parse func(string) (recipes.Value, bool), content string) (recipes.Value, bool) {
	if parse != nil {
		return parse(content)
	}
	text := normalize.Whitespace(content)
	if text == "" {
		return recipes.None, false
	}
	return recipes.Text(text), true
}

func parsePattern(parse func(string) (recipes.Value, bool), match string) (recipes.Value, bool) {
	if parse != nil {
		return parse(match)
	}
	text := normalize.Whitespace(normalize.DecodeEntities(match))
	if text == "" {
		return recipes.None, false
	}
	return recipes.Text(text), true
}

// MoneyValue is a Parse hook turning a raw money string into a money Value
// via the normalization helpers.
func MoneyValue(match string) (recipes.Value, bool) {
	amount, ok := normalize.Money(match)
	if !ok {
		return recipes.None, false
	}
	return recipes.Money(amount), true
}

// NumberValue is a Parse hook for plain numbers, accepting grouping
// punctuation ("1,234.56").
func NumberValue(match string) (recipes.Value, bool) {
	n, ok := normalize.Money(match)
	if !ok {
		return recipes.None, false
	}
	return recipes.Number(n), true
}

// CountValue is a Parse hook for abbreviated counts ("1.2k", "3M").
func CountValue(match string) (recipes.Value, bool) {
	n, ok := normalize.Magnitude(match)
	if !ok {
		return recipes.None, false
	}
	return recipes.Number(float64(n)), true
}

// URLValue is a Parse hook for url fields.
func URLValue(match string) (recipes.Value, bool) {
	text := normalize.Whitespace(normalize.DecodeEntities(match))
	if text == "" {
		return recipes.None, false
	}
	return recipes.URL(text), true
}
