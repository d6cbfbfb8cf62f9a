package curtailment

import (
	"fmt"

	"github.com/kilianp07/curtail/core/cluster"
	"github.com/kilianp07/curtail/core/plant"
)

// Options tune how one layout resolves plant names.
type Options struct {
	// Match selects the cluster membership test.
	Match cluster.MatchStrategy `json:"match"`
	// OnUnresolved decides whether unknown plants are emitted or dropped.
	OnUnresolved plant.UnresolvedPolicy `json:"on_unresolved"`
	// GuessPrefix synthesizes a site id for passed-through tokens.
	GuessPrefix string `json:"guess_prefix"`
}

func (o Options) fallback() plant.Fallback {
	return plant.Fallback{Policy: o.OnUnresolved, GuessPrefix: o.GuessPrefix}
}

func (o *Options) setDefaults(d Options) {
	if o.Match == "" {
		o.Match = d.Match
	}
	if o.OnUnresolved == "" {
		o.OnUnresolved = d.OnUnresolved
	}
}

func (o Options) validate() error {
	if err := o.Match.Validate(); err != nil {
		return err
	}
	return o.OnUnresolved.Validate()
}

// Config holds per-layout options. Both tabular variants share Tabular.
type Config struct {
	Vertical   Options `json:"vertical"`
	Matrix     Options `json:"matrix"`
	EmailBlock Options `json:"email_block"`
	Tabular    Options `json:"tabular"`
}

// DefaultConfig returns the historical behaviour of each entry point:
// interactive layouts keep unknown plants visible, bulk layouts drop them, and
// the email block layout matches cluster members by substring.
func DefaultConfig() Config {
	return Config{
		Vertical:   Options{Match: cluster.Exact, OnUnresolved: plant.Passthrough},
		Matrix:     Options{Match: cluster.Exact, OnUnresolved: plant.Passthrough},
		EmailBlock: Options{Match: cluster.Substring, OnUnresolved: plant.Drop},
		Tabular:    Options{Match: cluster.Exact, OnUnresolved: plant.Drop},
	}
}

// SetDefaults fills unset fields from DefaultConfig.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	c.Vertical.setDefaults(d.Vertical)
	c.Matrix.setDefaults(d.Matrix)
	c.EmailBlock.setDefaults(d.EmailBlock)
	c.Tabular.setDefaults(d.Tabular)
}

// Validate checks every layout section.
func (c Config) Validate() error {
	sections := []struct {
		name string
		opts Options
	}{
		{"vertical", c.Vertical},
		{"matrix", c.Matrix},
		{"email_block", c.EmailBlock},
		{"tabular", c.Tabular},
	}
	for _, s := range sections {
		if err := s.opts.validate(); err != nil {
			return fmt.Errorf("parser.%s: %w", s.name, err)
		}
	}
	return nil
}

func (c Config) options(l Layout) Options {
	switch l {
	case LayoutVertical:
		return c.Vertical
	case LayoutMatrix:
		return c.Matrix
	case LayoutEmailBlock:
		return c.EmailBlock
	default:
		return c.Tabular
	}
}
