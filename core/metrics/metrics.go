package metrics

import (
	"time"

	"github.com/kilianp07/curtail/core/model"
)

// ParseEvent summarizes one curtailment table parse.
type ParseEvent struct {
	RunID   string
	Layout  string
	Rows    int
	Skipped int
	Dropped int
	// Err is empty on success.
	Err      string
	Duration time.Duration
	Time     time.Time
}

// AllocationEvent summarizes one interactive allocation.
type AllocationEvent struct {
	RunID          string
	Cluster        string
	SetpointMW     float64
	MaxOutputMW    float64
	CompensationMW float64
	GuardTripped   bool
	Results        []model.AllocationResult
	Time           time.Time
}

// ExtractionEvent summarizes one secondary power extraction.
type ExtractionEvent struct {
	RunID   string
	Pairs   int
	TotalMW float64
	Time    time.Time
}

// Sink records events for observability purposes.
type Sink interface {
	RecordParse(ev ParseEvent) error
	RecordAllocation(ev AllocationEvent) error
	RecordExtraction(ev ExtractionEvent) error
}

// Flusher is implemented by sinks holding state that must be written out
// before the process exits.
type Flusher interface {
	Flush() error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordParse(ParseEvent) error           { return nil }
func (NopSink) RecordAllocation(AllocationEvent) error { return nil }
func (NopSink) RecordExtraction(ExtractionEvent) error { return nil }
