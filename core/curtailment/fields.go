package curtailment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	wideSpace = regexp.MustCompile(`\t| {2,}`)
	clock     = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// splitLines returns the non-blank lines of raw. Lines are not trimmed so that
// leading empty cells keep their column position.
func splitLines(raw string) []string {
	var out []string
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// splitWide splits on tabs or runs of two or more spaces.
func splitWide(line string) []string {
	return trimAll(wideSpace.Split(strings.TrimSpace(line), -1))
}

func splitTabs(line string) []string {
	return trimAll(strings.Split(line, "\t"))
}

func trimAll(cols []string) []string {
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols
}

// midnight returns the calendar day of ref at 00:00 in ref's location.
func midnight(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
}

// at builds a new timestamp for the day of ref. Hour 24 rolls over to the next day.
func at(ref time.Time, hour, minute int) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location())
}

// parseClock reads the last HH:MM token of a cell, so "28/07/2025 10:15"
// and "10:15" give the same result.
func parseClock(cell string) (int, int, error) {
	all := clock.FindAllStringSubmatch(cell, -1)
	if len(all) == 0 {
		return 0, 0, fmt.Errorf("no time in %q", cell)
	}
	m := all[len(all)-1]
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if h > 24 || mins > 59 || (h == 24 && mins != 0) {
		return 0, 0, fmt.Errorf("invalid time %q", m[0])
	}
	return h, mins, nil
}

// interval reads a start and end cell on the reference day.
func interval(ref time.Time, startCell, endCell string) (time.Time, time.Time, error) {
	sh, sm, err := parseClock(startCell)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	eh, em, err := parseClock(endCell)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	return at(ref, sh, sm), at(ref, eh, em), nil
}
