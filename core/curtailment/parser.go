package curtailment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kilianp07/curtail/core/cluster"
	"github.com/kilianp07/curtail/core/logger"
	"github.com/kilianp07/curtail/core/model"
	"github.com/kilianp07/curtail/core/plant"
)

// Schedule is the result of one successful parse.
type Schedule struct {
	Layout Layout
	Rows   []model.ScheduleRow
	// Skipped counts malformed rows and cells.
	Skipped int
	// Dropped counts plants left out by the unresolved policy and records of
	// zero-capacity clusters.
	Dropped int
}

// Parser converts pasted tables into schedule rows. It holds only read-only
// reference data, so one Parser may serve any number of calls.
type Parser struct {
	catalog  model.Catalog
	resolver *plant.Resolver
	cfg      Config
	log      logger.Logger
}

// NewParser returns a parser over the given catalog. Unset options in cfg take
// their defaults.
func NewParser(cat model.Catalog, cfg Config, log logger.Logger) *Parser {
	cfg.SetDefaults()
	return &Parser{
		catalog:  cat,
		resolver: plant.NewResolver(cat),
		cfg:      cfg,
		log:      logger.OrNop(log),
	}
}

// Parse detects the layout of raw and extracts its rows for the calendar day of
// ref. Only ErrInvalidInput and ErrUnknownFormat are returned; malformed rows
// are skipped and counted in the schedule.
func (p *Parser) Parse(raw string, ref time.Time) (*Schedule, error) {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, ErrInvalidInput
	}
	layout := Detect(lines)
	if layout == LayoutUnknown {
		p.log.Warnf("unrecognized header %q", lines[0])
		return nil, ErrUnknownFormat
	}

	b := &builder{
		p:     p,
		opts:  p.cfg.options(layout),
		sched: &Schedule{Layout: layout, Rows: []model.ScheduleRow{}},
	}
	day := midnight(ref)
	switch layout {
	case LayoutVertical:
		b.vertical(lines, day)
	case LayoutMatrix:
		b.matrix(lines, day)
	case LayoutEmailBlock:
		b.emailBlock(lines, day)
	case LayoutTabular:
		b.tabular(lines, day, 4)
	case LayoutTabularES:
		b.tabular(lines, day, 5)
	}
	p.log.Debugw("parsed curtailment table", map[string]any{
		"layout":  layout.String(),
		"rows":    len(b.sched.Rows),
		"skipped": b.sched.Skipped,
		"dropped": b.sched.Dropped,
	})
	return b.sched, nil
}

// record is one setpoint applying to one or more plants over an interval.
type record struct {
	line   int
	tokens []string
	start  time.Time
	end    time.Time
	power  decimal.Decimal
}

// builder accumulates the rows of a single Parse call.
type builder struct {
	p     *Parser
	opts  Options
	sched *Schedule
}

func (b *builder) skip(line int, reason string) {
	b.sched.Skipped++
	b.p.log.Debugw("skipping row", map[string]any{"line": line + 1, "reason": reason})
}

func (b *builder) drop(line int, token, reason string) {
	b.sched.Dropped++
	b.p.log.Debugw("dropping plant", map[string]any{"line": line + 1, "plant": token, "reason": reason})
}

func (b *builder) add(site string, start, end time.Time, power decimal.Decimal) {
	b.sched.Rows = append(b.sched.Rows, model.ScheduleRow{
		Site:     site,
		StartsAt: start,
		EndsAt:   end,
		PowerMW:  power.Round(2),
	})
}

// emit resolves the plants of a record. A record naming members of a cluster
// is split across them; otherwise every plant gets the full setpoint.
func (b *builder) emit(rec record) {
	if len(rec.tokens) == 0 {
		b.skip(rec.line, "no plant name")
		return
	}
	c, members, ok := cluster.Match(b.p.catalog.Clusters, rec.tokens, b.opts.Match)
	if !ok {
		for _, tok := range rec.tokens {
			site, ok := b.p.resolver.Resolve(tok, b.opts.fallback())
			if !ok {
				b.drop(rec.line, tok, "unresolved")
				continue
			}
			if !validSite(site) {
				b.skip(rec.line, "site contains ';'")
				continue
			}
			b.add(site, rec.start, rec.end, rec.power)
		}
		return
	}

	shares, err := cluster.Split(c, members, rec.power)
	if err != nil {
		b.drop(rec.line, c.Name, err.Error())
		return
	}
	for _, sh := range shares {
		site := string(sh.Member.Site)
		if site == "" {
			var ok bool
			if site, ok = b.p.resolver.Resolve(sh.Member.Name, b.opts.fallback()); !ok {
				b.drop(rec.line, sh.Member.Name, "unresolved cluster member")
				continue
			}
		}
		if !validSite(site) {
			b.skip(rec.line, "site contains ';'")
			continue
		}
		b.add(site, rec.start, rec.end, sh.PowerMW)
	}
}

// validSite reports whether site can be written as a schedule CSV field.
// Configured sites are checked by Catalog.Validate; this catches tokens that
// were passed through unresolved.
func validSite(site string) bool {
	return !strings.ContainsRune(site, ';')
}
