// Package metrics defines the events emitted by the parser, the allocator and
// the secondary extractor, and the Sink interface that records them. Sinks are
// built from configuration through a factory registry; implementations live in
// infra/metrics and register themselves on import. NewSink returns a MultiSink
// when more than one sink is configured.
package metrics
