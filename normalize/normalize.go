// Package normalize provides pure helpers converting raw extracted
// substrings into typed values. Every function is total: unparseable input
// yields an explicit not-ok result, never a panic.
package normalize

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Money parses a money string into a plain amount: currency symbols, codes
// and grouping punctuation are stripped and the decimal separator is
// normalized, so "$1,234.56", "1.234,56 €" and "USD 1234.56" all yield
// 1234.56.
func Money(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if !strings.ContainsAny(cleaned, "0123456789") {
		return 0, false
	}

	lastDot := strings.LastIndexByte(cleaned, '.')
	lastComma := strings.LastIndexByte(cleaned, ',')

	switch {
	case lastComma > lastDot && decimalish(cleaned[lastComma+1:]):
		// Decimal comma: drop grouping dots, promote the comma.
		cleaned = strings.ReplaceAll(cleaned[:lastComma], ".", "") + "." + strings.ReplaceAll(cleaned[lastComma+1:], ",", "")
	default:
		// Decimal dot (or integer): commas are grouping.
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		if n := strings.Count(cleaned, "."); n > 1 {
			// Dots were grouping separators ("1.234.567").
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// decimalish reports whether the digits after a separator look like a
// decimal fraction rather than a thousands group.
func decimalish(frac string) bool {
	return len(frac) >= 1 && len(frac) <= 2
}

// Magnitude parses an abbreviated count like "1.2k", "3M" or "870" into an
// integer. Suffix multipliers are case-insensitive; the result is rounded
// to the nearest integer.
func Magnitude(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	mult := 1.0
	switch s[len(s)-1] {
	case 'k', 'K':
		mult, s = 1e3, s[:len(s)-1]
	case 'm', 'M':
		mult, s = 1e6, s[:len(s)-1]
	case 'b', 'B':
		mult, s = 1e9, s[:len(s)-1]
	}

	base, ok := Money(strings.TrimSpace(s))
	if !ok {
		return 0, false
	}
	return int64(math.Round(base * mult)), true
}

// entities is the fixed named-entity table. Pages lean on a small set of
// named entities in practice; numeric references cover the rest.
var entities = map[string]rune{
	"amp":    '&',
	"lt":     '<',
	"gt":     '>',
	"quot":   '"',
	"apos":   '\'',
	"nbsp":   ' ',
	"copy":   '©',
	"reg":    '®',
	"trade":  '™',
	"hellip": '…',
	"mdash":  '—',
	"ndash":  '–',
	"lsquo":  '‘',
	"rsquo":  '’',
	"ldquo":  '“',
	"rdquo":  '”',
}

// DecodeEntities decodes named entities from a fixed table plus decimal and
// hexadecimal numeric character references. Unknown or malformed references
// pass through untouched.
func DecodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}

		end := strings.IndexByte(s[i:], ';')
		// Entity names are short; a distant semicolon means a bare ampersand.
		if end < 2 || end > 10 {
			b.WriteByte(s[i])
			i++
			continue
		}

		name := s[i+1 : i+end]
		if r, ok := decodeEntity(name); ok {
			b.WriteRune(r)
			i += end + 1
			continue
		}

		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func decodeEntity(name string) (rune, bool) {
	if r, ok := entities[name]; ok {
		return r, true
	}
	if len(name) < 2 || name[0] != '#' {
		return 0, false
	}

	digits, base := name[1:], 10
	if digits[0] == 'x' || digits[0] == 'X' {
		digits, base = digits[1:], 16
	}
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil || n <= 0 {
		return 0, false
	}
	return rune(n), true
}

// Whitespace collapses every run of whitespace to a single space and trims
// the ends.
func Whitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Domain extracts the host from a URL, lowercased, with a leading "www."
// label stripped. Unparseable URLs yield "".
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
