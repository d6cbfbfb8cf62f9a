package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/curtail/core/model"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// DefaultCatalog returns the embedded plant table and cluster definitions.
func DefaultCatalog() (model.Catalog, error) {
	return decodeCatalog(defaultCatalog, ".yaml")
}

// LoadCatalog reads a YAML or JSON catalog. An empty path returns the
// embedded default.
func LoadCatalog(path string) (model.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := decodeCatalog(data, filepath.Ext(path))
	if err != nil {
		return model.Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

func decodeCatalog(data []byte, ext string) (model.Catalog, error) {
	var cat model.Catalog
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return model.Catalog{}, err
		}
	case ".json":
		if err := json.Unmarshal(data, &cat); err != nil {
			return model.Catalog{}, err
		}
	default:
		return model.Catalog{}, fmt.Errorf("unsupported catalog format: %s", ext)
	}
	if err := cat.Validate(); err != nil {
		return model.Catalog{}, err
	}
	return cat, nil
}
