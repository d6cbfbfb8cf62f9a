package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Site is a canonical site identifier such as "PV-PEREA".
type Site string

// ScheduleRow is one curtailment interval for a site. Rows are built once by the
// parser and never modified afterwards.
type ScheduleRow struct {
	Site     string          // canonical site, or the raw token when passed through unresolved
	StartsAt time.Time       // minute resolution
	EndsAt   time.Time       // minute resolution
	PowerMW  decimal.Decimal // setpoint rounded to 2 decimals
}

// Duration returns the length of the interval.
func (r ScheduleRow) Duration() time.Duration {
	return r.EndsAt.Sub(r.StartsAt)
}
