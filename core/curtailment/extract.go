package curtailment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kilianp07/curtail/core/numeric"
	"github.com/kilianp07/curtail/core/plant"
)

const (
	// email block records start after a five line header and span six lines
	emailHeaderLines = 5
	emailRecordLines = 6
	emailStartOffset = 2
	emailEndOffset   = 3
	emailPowerOffset = 5
)

// vertical reads "plants, market hour, start, end, setpoint" rows separated by
// tabs or wide spaces.
func (b *builder) vertical(lines []string, day time.Time) {
	for i := 1; i < len(lines); i++ {
		cols := splitWide(lines[i])
		if len(cols) < 5 {
			b.skip(i, "too few columns")
			continue
		}
		b.record(i, cols[0], cols[2], cols[3], cols[4], day)
	}
}

// tabular reads one tab-separated record per line with the power value at
// powerIdx.
func (b *builder) tabular(lines []string, day time.Time, powerIdx int) {
	for i := 1; i < len(lines); i++ {
		cols := splitTabs(lines[i])
		if len(cols) <= powerIdx {
			b.skip(i, "too few columns")
			continue
		}
		b.record(i, cols[0], cols[2], cols[3], cols[powerIdx], day)
	}
}

// emailBlock reads records spread over six lines each, starting after the
// header block.
func (b *builder) emailBlock(lines []string, day time.Time) {
	for i := emailHeaderLines; i < len(lines); i += emailRecordLines {
		if i+emailPowerOffset >= len(lines) {
			b.skip(i, "incomplete record")
			break
		}
		b.record(i,
			lines[i],
			lines[i+emailStartOffset],
			lines[i+emailEndOffset],
			lines[i+emailPowerOffset],
			day,
		)
	}
}

func (b *builder) record(line int, plants, startCell, endCell, powerCell string, day time.Time) {
	start, end, err := interval(day, startCell, endCell)
	if err != nil {
		b.skip(line, err.Error())
		return
	}
	power, ok := numeric.Leading(powerCell)
	if !ok {
		b.skip(line, "invalid power "+strings.TrimSpace(powerCell))
		return
	}
	b.emit(record{line: line, tokens: plant.SplitTokens(plants), start: start, end: end, power: power})
}

// matrix reads one plant per row and one value per quarter-hour column. Line 0
// holds the hour bands and line 1 the quarter labels. The quarter row may or
// may not carry a leading label cell above the plant column; value column j
// of a data row maps to quarter label j either way.
func (b *builder) matrix(lines []string, day time.Time) {
	bands := splitTabs(lines[0])
	quarters := splitTabs(lines[1])
	if len(quarters) > 0 {
		if _, err := parseQuarter(quarters[0]); err != nil {
			quarters = quarters[1:]
		}
	}
	slots := quarterSlots(tail(bands), quarters)

	for i := 2; i < len(lines); i++ {
		cols := splitTabs(lines[i])
		token := cols[0]
		if plant.Normalize(token) == "" {
			b.skip(i, "no plant name")
			continue
		}
		values := tail(cols)

		composite, isComposite := b.p.resolver.Composite(token)
		site := ""
		if !isComposite {
			var ok bool
			if site, ok = b.p.resolver.Resolve(token, b.opts.fallback()); !ok {
				b.drop(i, token, "unresolved")
				continue
			}
			if !validSite(site) {
				b.skip(i, "site contains ';'")
				continue
			}
		}

		for j, cell := range values {
			if j >= len(slots) || !slots[j].ok {
				if strings.TrimSpace(cell) != "" {
					b.skip(i, "value outside quarter columns")
				}
				continue
			}
			power, ok := numeric.Leading(cell)
			if !ok {
				if strings.TrimSpace(cell) != "" {
					b.skip(i, "invalid power "+cell)
				}
				continue
			}
			start := at(day, slots[j].hour, slots[j].minute)
			end := start.Add(QuarterLength)
			if !isComposite {
				b.add(site, start, end, power)
				continue
			}
			for _, sh := range composite.Shares {
				b.add(string(sh.Site), start, end, power.Mul(decimal.NewFromFloat(sh.Fraction)))
			}
		}
	}
}

func tail(cols []string) []string {
	if len(cols) == 0 {
		return nil
	}
	return cols[1:]
}
