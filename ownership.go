package recipes

import "regexp"

// Ownership is the tagged variant deciding whether a Recipe claims a URL:
// either a regular expression the URL must match, or an arbitrary predicate
// over the URL. Exactly one form is present; the zero Ownership claims
// nothing and is rejected by the validator.
type Ownership struct {
	source string
	re     *regexp.Regexp
	err    error
	test   func(url string) bool
}

// Pattern returns pattern-form Ownership. A malformed expression is not a
// panic: the compile error is retained for the validator and Owns reports
// false, so a bad catalog entry surfaces as a validation error rather than
// a load-time crash.
func Pattern(expr string) Ownership {
	re, err := regexp.Compile(expr)
	return Ownership{source: expr, re: re, err: err}
}

// Predicate returns predicate-form Ownership.
func Predicate(test func(url string) bool) Ownership {
	return Ownership{test: test}
}

// Owns reports whether the recipe claims the URL.
func (o Ownership) Owns(url string) bool {
	switch {
	case o.test != nil:
		return o.test(url)
	case o.re != nil:
		return o.re.MatchString(url)
	}
	return false
}

// IsZero reports whether neither form is present.
func (o Ownership) IsZero() bool {
	return o.test == nil && o.re == nil && o.err == nil
}

// Source returns the pattern's source text. The second return is false for
// predicate-form Ownership, which has no serializable source.
func (o Ownership) Source() (string, bool) {
	if o.test != nil || (o.re == nil && o.err == nil) {
		return "", false
	}
	return o.source, true
}

// Err returns the pattern compile error, if any.
func (o Ownership) Err() error { return o.err }
