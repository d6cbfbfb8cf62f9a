package curtailment

import (
	"strings"

	"github.com/kilianp07/curtail/core/plant"
)

// Layout identifies a known table format.
type Layout int

const (
	LayoutUnknown Layout = iota
	// LayoutVertical has one (plants, market hour, start, end, setpoint) record per line.
	LayoutVertical
	// LayoutMatrix has one plant per row and one column per quarter hour.
	LayoutMatrix
	// LayoutEmailBlock spreads each record over six physical lines.
	LayoutEmailBlock
	// LayoutTabular has one tab-separated record per line.
	LayoutTabular
	// LayoutTabularES is the Spanish "instalación" variant of LayoutTabular
	// with an extra column before the power value.
	LayoutTabularES
)

// String returns a human-readable representation of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutVertical:
		return "vertical"
	case LayoutMatrix:
		return "matrix"
	case LayoutEmailBlock:
		return "email_block"
	case LayoutTabular:
		return "tabular"
	case LayoutTabularES:
		return "tabular_es"
	default:
		return "unknown"
	}
}

// headerKey lower-cases and strips accents so "Instalación" and "INSTALACION"
// compare equal.
func headerKey(line string) string {
	return strings.ToLower(plant.Fold(line))
}

func containsAll(s string, needles ...string) bool {
	for _, n := range needles {
		if !strings.Contains(s, n) {
			return false
		}
	}
	return true
}

// Detect classifies non-blank lines using the header line, and the second line
// for the matrix and email block layouts. Data rows are never inspected.
func Detect(lines []string) Layout {
	if len(lines) == 0 {
		return LayoutUnknown
	}
	h := headerKey(lines[0])
	second := ""
	if len(lines) > 1 {
		second = headerKey(lines[1])
	}
	switch {
	case containsAll(h, "activo", "market hour", "start", "end"):
		return LayoutVertical
	case strings.Contains(h, "instalacion") && strings.Contains(second, "q1"):
		return LayoutMatrix
	case containsAll(h, "activo", "setpoint") && strings.Contains(second, "market"):
		return LayoutEmailBlock
	case containsAll(h, "instalacion", "inicio", "setpoint"):
		return LayoutTabularES
	case containsAll(h, "activo", "setpoint"):
		return LayoutTabular
	default:
		return LayoutUnknown
	}
}
