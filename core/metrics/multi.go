package metrics

import "errors"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordParse forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordParse(ev ParseEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordParse(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordAllocation forwards allocation events.
func (m *MultiSink) RecordAllocation(ev AllocationEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAllocation(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordExtraction forwards extraction events.
func (m *MultiSink) RecordExtraction(ev ExtractionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordExtraction(ev); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every sink that supports it and joins the errors.
func (m *MultiSink) Flush() error {
	var errs []error
	for _, s := range m.Sinks {
		if f, ok := s.(Flusher); ok {
			errs = append(errs, f.Flush())
		}
	}
	return errors.Join(errs...)
}
