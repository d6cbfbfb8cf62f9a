package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	coremetrics "github.com/kilianp07/curtail/core/metrics"
)

type captureLogger struct {
	msgs   []string
	fields []map[string]any
}

func (c *captureLogger) Debugf(string, ...any) {}
func (c *captureLogger) Debugw(msg string, f map[string]any) {
	c.msgs = append(c.msgs, msg)
	c.fields = append(c.fields, f)
}
func (c *captureLogger) Infof(string, ...any)  {}
func (c *captureLogger) Warnf(string, ...any)  {}
func (c *captureLogger) Errorf(string, ...any) {}

func TestLogSink(t *testing.T) {
	l := &captureLogger{}
	s := NewLogSink(l)
	assert.NoError(t, s.RecordParse(coremetrics.ParseEvent{RunID: "r1", Layout: "vertical", Rows: 2}))
	assert.NoError(t, s.RecordAllocation(coremetrics.AllocationEvent{RunID: "r2", Cluster: "NEOEN"}))
	assert.NoError(t, s.RecordExtraction(coremetrics.ExtractionEvent{RunID: "r3", Pairs: 2}))

	assert.Equal(t, []string{"parse", "allocation", "extraction"}, l.msgs)
	assert.Equal(t, "vertical", l.fields[0]["layout"])
	assert.Equal(t, "NEOEN", l.fields[1]["cluster"])
	assert.Equal(t, 2, l.fields[2]["pairs"])
}

func TestLogSinkNilLogger(t *testing.T) {
	s := NewLogSink(nil)
	assert.NoError(t, s.RecordParse(coremetrics.ParseEvent{}))
}
