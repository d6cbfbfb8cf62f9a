package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/curtail/core/cluster"
	"github.com/kilianp07/curtail/core/plant"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `catalog: "plants.yaml"
logging:
  level: debug
  format: console
parser:
  matrix:
    on_unresolved: drop
  email_block:
    match: exact
metrics:
  sinks:
    - type: prometheus
      conf:
        textfile: /tmp/curtail.prom
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"catalog", cfg.Catalog, "plants.yaml"},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.format", cfg.Logging.Format, "console"},
		{"parser.matrix.on_unresolved", cfg.Parser.Matrix.OnUnresolved, plant.Drop},
		{"parser.matrix.match", cfg.Parser.Matrix.Match, cluster.Exact},
		{"parser.email_block.match", cfg.Parser.EmailBlock.Match, cluster.Exact},
		{"parser.email_block.on_unresolved", cfg.Parser.EmailBlock.OnUnresolved, plant.Drop},
		{"parser.vertical.on_unresolved", cfg.Parser.Vertical.OnUnresolved, plant.Passthrough},
		{"metrics.sinks", len(cfg.Metrics.Sinks), 1},
		{"metrics.sinks.type", cfg.Metrics.Sinks[0].Type, "prometheus"},
		{"metrics.sinks.conf", cfg.Metrics.Sinks[0].Conf["textfile"], "/tmp/curtail.prom"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"parser":{"tabular":{"on_unresolved":"passthrough","guess_prefix":"PV-"}}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, plant.Passthrough, cfg.Parser.Tabular.OnUnresolved)
	assert.Equal(t, "PV-", cfg.Parser.Tabular.GuessPrefix)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "", cfg.Catalog)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, cluster.Substring, cfg.Parser.EmailBlock.Match)
		assert.Empty(t, cfg.Metrics.Sinks)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CURTAIL_LOGGING__LEVEL", "warn")
	t.Setenv("CURTAIL_PARSER__VERTICAL__ON_UNRESOLVED", "drop")
	path := writeFile(t, "config.yaml", "logging:\n  level: debug\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, plant.Drop, cfg.Parser.Vertical.OnUnresolved)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", "a = 1"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "config.yaml", "logging:\n  level: loud\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "config.yaml", "parser:\n  matrix:\n    match: fuzzy\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "config.yaml", "metrics:\n  sinks:\n    - conf: {}\n"))
	assert.Error(t, err)
}

func TestLoggingConfig(t *testing.T) {
	var c LoggingConfig
	c.SetDefaults()
	assert.NoError(t, c.Validate())
	c.Format = "xml"
	assert.Error(t, c.Validate())
}
