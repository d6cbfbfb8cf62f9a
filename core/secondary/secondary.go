// Package secondary sums the active power of PV- and SAT- sites from a pasted
// SCADA overview, where each site label is followed by its power on the next
// line.
package secondary

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kilianp07/curtail/core/numeric"
)

var siteLabel = regexp.MustCompile(`(?i)^(PV-|SAT-)`)

// Pair is the active power read for one site.
type Pair struct {
	Site    string          `json:"site"`
	PowerMW decimal.Decimal `json:"power_mw"`
}

// Result lists the pairs in input order with their sum.
type Result struct {
	Pairs   []Pair
	TotalMW decimal.Decimal
}

// Extract scans raw for site labels and reads the first number of the
// following line. Labels without a number on the next line, and labels
// containing ';', are skipped.
func Extract(raw string) Result {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	res := Result{Pairs: []Pair{}, TotalMW: decimal.Zero}
	for i, l := range lines {
		site := strings.TrimSpace(l)
		if !siteLabel.MatchString(site) || strings.ContainsRune(site, ';') || i+1 >= len(lines) {
			continue
		}
		v, ok := numeric.First(lines[i+1])
		if !ok {
			continue
		}
		res.Pairs = append(res.Pairs, Pair{Site: site, PowerMW: v})
		res.TotalMW = res.TotalMW.Add(v)
	}
	return res
}
