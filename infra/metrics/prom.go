package metrics

import (
	"errors"
	"strconv"
	"sync"

	coremetrics "github.com/kilianp07/curtail/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records events in Prometheus collectors. When a textfile path is
// set, Flush writes the registry in the text exposition format so that a node
// exporter textfile collector can pick it up.
type PromSink struct {
	gatherer prometheus.Gatherer
	textfile string

	parses      *prometheus.CounterVec
	rows        *prometheus.CounterVec
	parseTime   prometheus.Histogram
	allocations *prometheus.CounterVec
	allocated   *prometheus.GaugeVec
	extractions prometheus.Counter
	extracted   prometheus.Gauge

	mu sync.Mutex
}

// NewPromSink registers the collectors on a fresh registry.
func NewPromSink(textfile string) (*PromSink, error) {
	reg := prometheus.NewRegistry()
	return NewPromSinkWithRegistry(reg, reg, textfile)
}

// NewPromSinkWithRegistry registers the collectors on reg and gathers from g
// when flushing. A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer, textfile string) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	s := &PromSink{gatherer: g, textfile: textfile}

	parses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "curtail_parses_total",
		Help: "Curtailment table parses by detected layout and outcome",
	}, []string{"layout", "outcome"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "curtail_schedule_rows_total",
		Help: "Schedule rows by fate: emitted, skipped or dropped",
	}, []string{"layout", "fate"})
	parseTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "curtail_parse_duration_seconds",
		Help:    "Time spent parsing a pasted table",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
	allocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "curtail_allocations_total",
		Help: "Interactive allocations by cluster and guard outcome",
	}, []string{"cluster", "guard"})
	allocated := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "curtail_allocated_power_mw",
		Help: "Last allocated value per park",
	}, []string{"cluster", "park", "kind"})
	extractions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "curtail_extractions_total",
		Help: "Secondary power extractions",
	})
	extracted := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "curtail_extracted_power_mw",
		Help: "Total power of the last secondary extraction",
	})

	var err error
	if s.parses, err = register(reg, parses); err != nil {
		return nil, err
	}
	if s.rows, err = register(reg, rows); err != nil {
		return nil, err
	}
	if s.parseTime, err = register(reg, parseTime); err != nil {
		return nil, err
	}
	if s.allocations, err = register(reg, allocations); err != nil {
		return nil, err
	}
	if s.allocated, err = register(reg, allocated); err != nil {
		return nil, err
	}
	if s.extractions, err = register(reg, extractions); err != nil {
		return nil, err
	}
	if s.extracted, err = register(reg, extracted); err != nil {
		return nil, err
	}
	return s, nil
}

// register returns the already registered collector when c was registered before.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordParse counts the parse and its rows.
func (s *PromSink) RecordParse(ev coremetrics.ParseEvent) error {
	outcome := "ok"
	if ev.Err != "" {
		outcome = "error"
	}
	s.parses.WithLabelValues(ev.Layout, outcome).Inc()
	s.rows.WithLabelValues(ev.Layout, "emitted").Add(float64(ev.Rows))
	s.rows.WithLabelValues(ev.Layout, "skipped").Add(float64(ev.Skipped))
	s.rows.WithLabelValues(ev.Layout, "dropped").Add(float64(ev.Dropped))
	s.parseTime.Observe(ev.Duration.Seconds())
	return nil
}

// RecordAllocation counts the allocation and sets the per-park gauges.
func (s *PromSink) RecordAllocation(ev coremetrics.AllocationEvent) error {
	s.allocations.WithLabelValues(ev.Cluster, strconv.FormatBool(ev.GuardTripped)).Inc()
	for _, r := range ev.Results {
		s.allocated.WithLabelValues(ev.Cluster, r.Park, r.Kind.String()).Set(r.ValueMW)
	}
	return nil
}

// RecordExtraction counts the extraction and keeps its total.
func (s *PromSink) RecordExtraction(ev coremetrics.ExtractionEvent) error {
	s.extractions.Inc()
	s.extracted.Set(ev.TotalMW)
	return nil
}

// Flush writes the gathered metrics to the textfile, if one is configured.
func (s *PromSink) Flush() error {
	if s.textfile == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return prometheus.WriteToTextfile(s.textfile, s.gatherer)
}
