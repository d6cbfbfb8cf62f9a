package curtailment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuarterLength is the interval covered by one matrix cell.
const QuarterLength = 15 * time.Minute

// slot is the start of one matrix column.
type slot struct {
	hour   int
	minute int
	ok     bool
}

// parseHourBand reads the start hour of an "H-H+1" band.
func parseHourBand(cell string) (int, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(cell), "-")
	h, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour band %q", cell)
	}
	return h, nil
}

// parseQuarter reads "Qn" with n in 1..4.
func parseQuarter(cell string) (int, error) {
	c := strings.ToUpper(strings.TrimSpace(cell))
	if !strings.HasPrefix(c, "Q") {
		return 0, fmt.Errorf("invalid quarter %q", cell)
	}
	n, err := strconv.Atoi(c[1:])
	if err != nil || n < 1 || n > 4 {
		return 0, fmt.Errorf("invalid quarter %q", cell)
	}
	return n, nil
}

// quarterSlots maps each quarter column to its start time. Hour bands are read
// from the non-empty cells of bandCells; the band index advances each time the
// quarter number wraps (Q4 back to Q1).
func quarterSlots(bandCells, quarterCells []string) []slot {
	var bands []string
	for _, b := range bandCells {
		if strings.TrimSpace(b) != "" {
			bands = append(bands, b)
		}
	}
	slots := make([]slot, len(quarterCells))
	band, prev := 0, 0
	for i, qc := range quarterCells {
		q, err := parseQuarter(qc)
		if err != nil {
			continue
		}
		if prev != 0 && q <= prev {
			band++
		}
		prev = q
		if band >= len(bands) {
			continue
		}
		h, err := parseHourBand(bands[band])
		if err != nil {
			continue
		}
		slots[i] = slot{hour: h, minute: (q - 1) * 15, ok: true}
	}
	return slots
}
