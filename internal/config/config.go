package config

import (
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/hashicorp-forge/docmap/pkg/database"
	"github.com/hashicorp-forge/docmap/pkg/docid"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
	"github.com/hashicorp-forge/docmap/pkg/mapping/adapters/jsonfile"
)

// Config contains the docmap configuration.
type Config struct {
	// LogLevel is the hclog level name (default: "info").
	LogLevel string `hcl:"log_level,optional"`

	// DocumentIDLength is the number of hex characters in a document ID.
	DocumentIDLength int `hcl:"document_id_length,optional"`

	// QueryIDLength is the number of hex characters in a query ID.
	QueryIDLength int `hcl:"query_id_length,optional"`

	// StrictCollisions fails a build when two keys share an identifier.
	StrictCollisions bool `hcl:"strict_collisions,optional"`

	// Corpus configures the source documents.
	Corpus *Corpus `hcl:"corpus,block"`

	// Output configures where mappings are written.
	Output *Output `hcl:"output,block"`
}

// Corpus configures the source document folder.
type Corpus struct {
	Dir       string `hcl:"dir,optional"`
	Extension string `hcl:"extension,optional"`
}

// Output configures the mapping files, catalog, and search index.
type Output struct {
	DocumentMapping        string `hcl:"document_mapping,optional"`
	DocumentReverseMapping string `hcl:"document_reverse_mapping,optional"`
	QueryMapping           string `hcl:"query_mapping,optional"`
	QueryReverseMapping    string `hcl:"query_reverse_mapping,optional"`

	// Catalog is the SQLite catalog path, or the PostgreSQL DSN when
	// CatalogDriver is "postgres". Empty disables the catalog.
	Catalog string `hcl:"catalog,optional"`

	// CatalogDriver is "sqlite" (default) or "postgres".
	CatalogDriver string `hcl:"catalog_driver,optional"`

	// SearchIndex is the Bleve index path. Empty keeps the index in memory.
	SearchIndex string `hcl:"search_index,optional"`
}

// NewConfig parses an HCL configuration file, applies defaults, and
// validates the result. Relative paths are resolved against the directory
// of the configuration file.
func NewConfig(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	var cfg Config
	if err := hclsimple.DecodeFile(filename, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	cfg.setDefaults()
	cfg.resolvePaths(filepath.Dir(filename))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied, rooted at the
// current directory.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DocumentIDLength == 0 {
		c.DocumentIDLength = docid.DefaultDocumentIDLength
	}
	if c.QueryIDLength == 0 {
		c.QueryIDLength = docid.DefaultQueryIDLength
	}

	if c.Corpus == nil {
		c.Corpus = &Corpus{}
	}
	if c.Corpus.Dir == "" {
		c.Corpus.Dir = "pdfs"
	}
	if c.Corpus.Extension == "" {
		c.Corpus.Extension = docid.PDFExtension
	}

	if c.Output == nil {
		c.Output = &Output{}
	}
	if c.Output.DocumentMapping == "" {
		c.Output.DocumentMapping = "doc_mapping.json"
	}
	if c.Output.DocumentReverseMapping == "" {
		c.Output.DocumentReverseMapping = "doc_reverse_mapping.json"
	}
	if c.Output.QueryMapping == "" {
		c.Output.QueryMapping = "query_mapping.json"
	}
	if c.Output.QueryReverseMapping == "" {
		c.Output.QueryReverseMapping = "query_reverse_mapping.json"
	}
	if c.Output.CatalogDriver == "" {
		c.Output.CatalogDriver = database.DriverSQLite
	}
}

func (c *Config) resolvePaths(base string) {
	paths := []*string{
		&c.Corpus.Dir,
		&c.Output.DocumentMapping,
		&c.Output.DocumentReverseMapping,
		&c.Output.QueryMapping,
		&c.Output.QueryReverseMapping,
		&c.Output.SearchIndex,
	}
	if c.Output.CatalogDriver == database.DriverSQLite {
		paths = append(paths, &c.Output.Catalog)
	}

	for _, p := range paths {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.By(validateLogLevel)),
	); err != nil {
		result = multierror.Append(result, err)
	}

	if err := c.Generator().Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Corpus != nil {
		if err := validation.ValidateStruct(c.Corpus,
			validation.Field(&c.Corpus.Dir, validation.Required),
			validation.Field(&c.Corpus.Extension, validation.Required),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("corpus: %w", err))
		}
	}

	if c.Output != nil {
		if err := validation.ValidateStruct(c.Output,
			validation.Field(&c.Output.DocumentMapping, validation.Required),
			validation.Field(&c.Output.DocumentReverseMapping, validation.Required),
			validation.Field(&c.Output.QueryMapping, validation.Required),
			validation.Field(&c.Output.QueryReverseMapping, validation.Required),
			validation.Field(&c.Output.CatalogDriver,
				validation.In(database.DriverSQLite, database.DriverPostgres)),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("output: %w", err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func validateLogLevel(value interface{}) error {
	s, _ := value.(string)
	if hclog.LevelFromString(s) == hclog.NoLevel {
		return fmt.Errorf("unknown log level %q", s)
	}
	return nil
}

// Generator returns the identifier generator for the configured lengths.
func (c *Config) Generator() docid.Generator {
	return docid.Generator{
		DocumentLength: c.DocumentIDLength,
		QueryLength:    c.QueryIDLength,
	}
}

// Level returns the configured log level.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}

// MappingPaths returns the JSON file pair of each mapping kind.
func (c *Config) MappingPaths() map[mapping.Kind]jsonfile.Paths {
	return map[mapping.Kind]jsonfile.Paths{
		mapping.KindDocument: {
			Mapping:        c.Output.DocumentMapping,
			ReverseMapping: c.Output.DocumentReverseMapping,
		},
		mapping.KindQuery: {
			Mapping:        c.Output.QueryMapping,
			ReverseMapping: c.Output.QueryReverseMapping,
		},
	}
}
