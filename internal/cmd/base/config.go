package base

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp-forge/docmap/internal/config"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
	"github.com/hashicorp-forge/docmap/pkg/mapping/adapters/jsonfile"
	"github.com/hashicorp-forge/docmap/pkg/mapping/adapters/sqlite"
)

// ConfigEnvVar names the environment variable read when -config is unset.
const ConfigEnvVar = "DOCMAP_CONFIG"

// ConfigPath returns flagValue, or the value of ConfigEnvVar if it is empty.
func ConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(ConfigEnvVar)
}

// LoadConfig parses the configuration file and applies its log level to the
// command logger.
func (c *Command) LoadConfig(path string) (*config.Config, error) {
	path = ConfigPath(path)
	if path == "" {
		return nil, fmt.Errorf("config flag is required (-config or %s)", ConfigEnvVar)
	}

	cfg, err := config.NewConfig(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	c.Log.SetLevel(cfg.Level())
	c.Log.Debug("loaded configuration", "path", path)
	return cfg, nil
}

// JSONStore returns the JSON file store for the configured mapping paths.
func (c *Command) JSONStore(cfg *config.Config) *jsonfile.Store {
	return jsonfile.New(jsonfile.Config{
		Paths:  cfg.MappingPaths(),
		Logger: c.Log,
	})
}

// OpenCatalog opens the configured catalog. It returns nil when no
// catalog is configured.
func (c *Command) OpenCatalog(cfg *config.Config) (*sqlite.Catalog, error) {
	if cfg.Output.Catalog == "" {
		return nil, nil
	}
	catalog, err := sqlite.Open(sqlite.Config{
		Driver: cfg.Output.CatalogDriver,
		Path:   cfg.Output.Catalog,
		Logger: c.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening catalog: %w", err)
	}
	return catalog, nil
}

// ReadStore returns the store mappings are read from: the catalog when one
// is configured, otherwise the JSON files. The returned function releases
// the store.
func (c *Command) ReadStore(cfg *config.Config) (mapping.Store, func(), error) {
	catalog, err := c.OpenCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	if catalog == nil {
		return c.JSONStore(cfg), func() {}, nil
	}
	return catalog, func() {
		if err := catalog.Close(); err != nil {
			c.Log.Warn("error closing catalog", "error", err)
		}
	}, nil
}

// SaveMappings writes a mapping to the JSON files and, when configured, the
// catalog. It returns the identifiers the catalog holds for more than one
// key, which is always empty without a catalog.
func (c *Command) SaveMappings(ctx context.Context, cfg *config.Config, res *mapping.Result) ([]string, error) {
	if err := c.JSONStore(cfg).Save(ctx, res.Kind, res.Forward, res.Reverse); err != nil {
		return nil, fmt.Errorf("error saving %s mapping: %w", res.Kind, err)
	}

	catalog, err := c.OpenCatalog(cfg)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, nil
	}
	defer func() {
		if err := catalog.Close(); err != nil {
			c.Log.Warn("error closing catalog", "error", err)
		}
	}()

	if err := catalog.Save(ctx, res.Kind, res.Forward, res.Reverse); err != nil {
		return nil, fmt.Errorf("error saving %s catalog: %w", res.Kind, err)
	}

	shared, err := catalog.Collisions(ctx, res.Kind)
	if err != nil {
		return nil, fmt.Errorf("error checking %s catalog: %w", res.Kind, err)
	}
	return shared, nil
}
