// Package numeric extracts MW values from loosely formatted cells. Both '.'
// and ',' are accepted as decimal separators.
package numeric

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	token   = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)
	leading = regexp.MustCompile(`^[-+]?(?:\d+(?:[.,]\d*)?|[.,]\d+)`)
	unit    = regexp.MustCompile(`(?i)\s*mw\b`)
)

// First returns the first numeric token found anywhere in s.
func First(s string) (decimal.Decimal, bool) {
	m := token.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}
	return parse(m)
}

// Leading parses the numeric prefix of a cell after removing an "MW" unit, the
// way a spreadsheet value such as "12,5 MW" is read. Cells without a leading
// number are rejected, and so are cells where more digits or separators follow
// the prefix, such as "1.234,5".
func Leading(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(unit.ReplaceAllString(s, ""))
	m := leading.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}
	if rest := s[len(m):]; rest != "" && strings.ContainsRune("0123456789.,", rune(rest[0])) {
		return decimal.Zero, false
	}
	return parse(m)
}

func parse(m string) (decimal.Decimal, bool) {
	m = strings.Replace(m, ",", ".", 1)
	m = strings.TrimSuffix(m, ".")
	if strings.HasPrefix(m, ".") {
		m = "0" + m
	} else if strings.HasPrefix(m, "-.") || strings.HasPrefix(m, "+.") {
		m = m[:1] + "0" + m[1:]
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
