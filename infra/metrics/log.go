package metrics

import (
	corelogger "github.com/kilianp07/curtail/core/logger"
	coremetrics "github.com/kilianp07/curtail/core/metrics"
)

// LogSink writes every event as a structured debug entry.
type LogSink struct {
	log corelogger.Logger
}

// NewLogSink returns a LogSink writing to l.
func NewLogSink(l corelogger.Logger) *LogSink {
	return &LogSink{log: corelogger.OrNop(l)}
}

func (s *LogSink) RecordParse(ev coremetrics.ParseEvent) error {
	s.log.Debugw("parse", map[string]any{
		"run_id":   ev.RunID,
		"layout":   ev.Layout,
		"rows":     ev.Rows,
		"skipped":  ev.Skipped,
		"dropped":  ev.Dropped,
		"error":    ev.Err,
		"duration": ev.Duration.String(),
	})
	return nil
}

func (s *LogSink) RecordAllocation(ev coremetrics.AllocationEvent) error {
	s.log.Debugw("allocation", map[string]any{
		"run_id":          ev.RunID,
		"cluster":         ev.Cluster,
		"setpoint_mw":     ev.SetpointMW,
		"max_output_mw":   ev.MaxOutputMW,
		"compensation_mw": ev.CompensationMW,
		"guard":           ev.GuardTripped,
		"results":         len(ev.Results),
	})
	return nil
}

func (s *LogSink) RecordExtraction(ev coremetrics.ExtractionEvent) error {
	s.log.Debugw("extraction", map[string]any{
		"run_id":   ev.RunID,
		"pairs":    ev.Pairs,
		"total_mw": ev.TotalMW,
	})
	return nil
}
