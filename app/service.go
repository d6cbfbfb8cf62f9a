package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/curtail/config"
	"github.com/kilianp07/curtail/core/allocator"
	"github.com/kilianp07/curtail/core/curtailment"
	coremetrics "github.com/kilianp07/curtail/core/metrics"
	"github.com/kilianp07/curtail/core/model"
	"github.com/kilianp07/curtail/core/secondary"
	"github.com/kilianp07/curtail/infra/logger"
	_ "github.com/kilianp07/curtail/infra/metrics"
)

var (
	// ErrUnknownCluster is returned when an allocation names a cluster absent
	// from the catalog.
	ErrUnknownCluster = errors.New("unknown cluster")
	// ErrDirectCluster is returned when an interactive allocation targets a
	// cluster that forwards its setpoint unchanged.
	ErrDirectCluster = errors.New("cluster applies its setpoint directly")
)

// Service wires the catalog, the parser, the allocator and the metrics sink
// behind the operations exposed by the command line.
type Service struct {
	catalog model.Catalog
	parser  *curtailment.Parser
	sink    coremetrics.Sink
	log     logger.Logger
	now     func() time.Time
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.Configure(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	cat, err := config.LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	return NewWithCatalog(cat, cfg.Parser, sink, logger.New("service")), nil
}

// NewWithCatalog builds a Service from already loaded parts. A nil sink
// records nothing.
func NewWithCatalog(cat model.Catalog, parser curtailment.Config, sink coremetrics.Sink, log logger.Logger) *Service {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		catalog: cat,
		parser:  curtailment.NewParser(cat, parser, logger.New("parser")),
		sink:    sink,
		log:     log,
		now:     time.Now,
	}
}

// Catalog returns the reference data the service was built with.
func (s *Service) Catalog() model.Catalog { return s.catalog }

// Parse converts a pasted curtailment table into schedule rows for the day of ref.
func (s *Service) Parse(raw string, ref time.Time) (*curtailment.Schedule, error) {
	start := s.now()
	sched, err := s.parser.Parse(raw, ref)
	ev := coremetrics.ParseEvent{RunID: uuid.NewString(), Time: start}
	if err != nil {
		ev.Layout = curtailment.LayoutUnknown.String()
		ev.Err = err.Error()
	} else {
		ev.Layout = sched.Layout.String()
		ev.Rows = len(sched.Rows)
		ev.Skipped = sched.Skipped
		ev.Dropped = sched.Dropped
	}
	ev.Duration = s.now().Sub(start)
	s.record(s.sink.RecordParse(ev))
	if err != nil {
		return nil, err
	}
	s.log.Infof("parsed %s table: %d rows, %d skipped, %d dropped", ev.Layout, ev.Rows, ev.Skipped, ev.Dropped)
	return sched, nil
}

// Allocate distributes a setpoint over the parks of the named cluster.
func (s *Service) Allocate(clusterName string, req allocator.Request) (allocator.Outcome, error) {
	c, ok := s.catalog.Cluster(clusterName)
	if !ok {
		return allocator.Outcome{}, fmt.Errorf("%w: %s", ErrUnknownCluster, clusterName)
	}
	if c.Direct {
		return allocator.Outcome{}, fmt.Errorf("%w: %s", ErrDirectCluster, c.Name)
	}
	out, err := allocator.Allocate(c, req)
	if err != nil {
		return allocator.Outcome{}, err
	}
	if out.Guard != nil {
		s.log.Warnf("cluster %s: %v", c.Name, out.Guard)
	}
	s.record(s.sink.RecordAllocation(coremetrics.AllocationEvent{
		RunID:          uuid.NewString(),
		Cluster:        c.Name,
		SetpointMW:     req.SetpointMW,
		MaxOutputMW:    out.MaxOutputMW,
		CompensationMW: out.CompensationMW,
		GuardTripped:   out.Guard != nil,
		Results:        out.Results,
		Time:           s.now(),
	}))
	return out, nil
}

// Extract reads the secondary PV- and SAT- site powers from raw.
func (s *Service) Extract(raw string) secondary.Result {
	res := secondary.Extract(raw)
	total, _ := res.TotalMW.Float64()
	s.record(s.sink.RecordExtraction(coremetrics.ExtractionEvent{
		RunID:   uuid.NewString(),
		Pairs:   len(res.Pairs),
		TotalMW: total,
		Time:    s.now(),
	}))
	return res
}

// Close flushes sinks that buffer their output.
func (s *Service) Close() error {
	if f, ok := s.sink.(coremetrics.Flusher); ok {
		return f.Flush()
	}
	return nil
}

func (s *Service) record(err error) {
	if err != nil {
		s.log.Errorf("metrics: %v", err)
	}
}
