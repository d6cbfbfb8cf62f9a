// Package export renders parse, extraction and allocation results for
// downstream tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/curtail/core/model"
	"github.com/kilianp07/curtail/core/secondary"
)

// TimeLayout is the minute-resolution timestamp format of the schedule CSV.
const TimeLayout = "2006/01/02 15:04"

// ScheduleHeader is the first line of the schedule CSV.
var ScheduleHeader = []string{
	"site",
	"startsAt (yyyy/mm/dd hh:mm)",
	"endAt (yyyy/mm/dd hh:mm)",
	"power (mw)",
}

// PairsHeader is the first line of the secondary extraction CSV.
var PairsHeader = []string{"site", "activePower (MW)"}

// writeLine writes fields joined by ';' without quoting or escaping. The
// parser never emits a site containing ';'.
func writeLine(w io.Writer, fields ...string) error {
	_, err := io.WriteString(w, strings.Join(fields, ";")+"\n")
	return err
}

// WriteScheduleCSV writes rows as semicolon separated values with two-decimal
// power. Fields are written verbatim.
func WriteScheduleCSV(w io.Writer, rows []model.ScheduleRow) error {
	if err := writeLine(w, ScheduleHeader...); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeLine(w,
			r.Site,
			r.StartsAt.Format(TimeLayout),
			r.EndsAt.Format(TimeLayout),
			r.PowerMW.StringFixed(2),
		); err != nil {
			return err
		}
	}
	return nil
}

type scheduleEntry struct {
	Site     string      `json:"site"`
	StartsAt string      `json:"starts_at"`
	EndsAt   string      `json:"ends_at"`
	Minutes  int         `json:"minutes"`
	PowerMW  json.Number `json:"power_mw"`
}

// WriteScheduleJSON writes rows as a JSON array with RFC 3339 timestamps and
// the interval length in minutes.
func WriteScheduleJSON(w io.Writer, rows []model.ScheduleRow) error {
	out := make([]scheduleEntry, len(rows))
	for i, r := range rows {
		out[i] = scheduleEntry{
			Site:     r.Site,
			StartsAt: r.StartsAt.Format(time.RFC3339),
			EndsAt:   r.EndsAt.Format(time.RFC3339),
			Minutes:  int(r.Duration().Minutes()),
			PowerMW:  json.Number(r.PowerMW.StringFixed(2)),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WritePairsCSV writes the extracted site powers as they were read.
func WritePairsCSV(w io.Writer, pairs []secondary.Pair) error {
	if err := writeLine(w, PairsHeader...); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := writeLine(w, p.Site, p.PowerMW.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteAllocationCSV writes one line per park.
func WriteAllocationCSV(w io.Writer, res []model.AllocationResult) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write([]string{"park", "kind", "value (mw)"}); err != nil {
		return err
	}
	for _, r := range res {
		if err := cw.Write([]string{r.Park, r.Kind.String(), strconv.FormatFloat(r.ValueMW, 'f', 2, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAllocationJSON writes the results as a JSON array.
func WriteAllocationJSON(w io.Writer, res []model.AllocationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteAllocationYAML writes the results as a YAML sequence.
func WriteAllocationYAML(w io.Writer, res []model.AllocationResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return err
	}
	return enc.Close()
}

// WriteAllocationTable writes an aligned, human-readable table.
func WriteAllocationTable(w io.Writer, res []model.AllocationResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "PARK\tKIND\tMW"); err != nil {
		return err
	}
	for _, r := range res {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.2f\n", r.Park, r.Kind, r.ValueMW); err != nil {
			return err
		}
	}
	return tw.Flush()
}
