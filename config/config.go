package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/curtail/core/curtailment"
	"github.com/kilianp07/curtail/core/metrics"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore: CURTAIL_PARSER__MATRIX__ON_UNRESOLVED=drop.
const EnvPrefix = "CURTAIL_"

type Config struct {
	// Catalog is the path of the plant and cluster catalog. Empty selects the
	// embedded default catalog.
	Catalog string             `json:"catalog"`
	Logging LoggingConfig      `json:"logging"`
	Parser  curtailment.Config `json:"parser"`
	Metrics metrics.Config     `json:"metrics"`
}

// SetDefaults fills every section with its defaults.
func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()
	c.Parser.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Parser.Validate(); err != nil {
		return err
	}
	for i, s := range c.Metrics.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics.sinks[%d]: type is required", i)
		}
	}
	return nil
}

// Load reads the configuration file at path, applies CURTAIL_ environment
// overrides and defaults, and validates the result. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config format: %s", ext)
	}
	return k.Load(file.Provider(path), parser)
}
