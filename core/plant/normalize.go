package plant

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var separators = regexp.MustCompile(`(?i)\s+(?:e|y)\s+|,`)

// Normalize trims the token, strips a leading run of apostrophes, upper-cases
// it and collapses internal whitespace to single spaces.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "'’")
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// Fold removes diacritics: "VIÇOSO" becomes "VICOSO".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Compact removes every whitespace rune from s.
func Compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// SplitTokens splits a field listing several plants ("RIO MAIOR e TORRE BELA",
// "A, B y C") and returns the normalized, non-empty names in order.
func SplitTokens(field string) []string {
	parts := separators.Split(field, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := Normalize(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}
