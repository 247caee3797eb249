// Package jsonfile persists mapping tables as one JSON object per file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/docmap/pkg/mapping"
)

// Paths names the two files holding one mapping.
type Paths struct {
	Mapping        string
	ReverseMapping string
}

// Config contains JSON file store configuration.
type Config struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs

	// Paths holds the file pair for each kind. Only needed when the store
	// is used through the mapping.Store interface.
	Paths map[mapping.Kind]Paths

	Logger hclog.Logger
}

// Store reads and writes mapping tables as indented JSON objects.
type Store struct {
	fs     afero.Fs
	paths  map[mapping.Kind]Paths
	logger hclog.Logger
}

var _ mapping.Store = (*Store)(nil)

// New creates a new JSON file store.
func New(cfg Config) *Store {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	return &Store{
		fs:     cfg.Fs,
		paths:  cfg.Paths,
		logger: cfg.Logger.Named("jsonfile"),
	}
}

// Name returns the store name.
func (s *Store) Name() string {
	return "jsonfile"
}

// Save writes the tables of kind to their configured paths.
func (s *Store) Save(ctx context.Context, kind mapping.Kind, forward, reverse mapping.Table) error {
	p, err := s.pathsFor(kind)
	if err != nil {
		return err
	}
	return s.SaveFiles(ctx, forward, reverse, p.Mapping, p.ReverseMapping)
}

// Load reads the tables of kind from their configured paths.
func (s *Store) Load(ctx context.Context, kind mapping.Kind) (mapping.Table, mapping.Table, error) {
	p, err := s.pathsFor(kind)
	if err != nil {
		return nil, nil, err
	}
	return s.LoadFiles(ctx, p.Mapping, p.ReverseMapping)
}

// SaveFiles writes forward to mappingPath and reverse to reversePath,
// overwriting existing files.
func (s *Store) SaveFiles(ctx context.Context, forward, reverse mapping.Table, mappingPath, reversePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.writeTable(mappingPath, forward); err != nil {
		return err
	}
	if err := s.writeTable(reversePath, reverse); err != nil {
		return err
	}

	s.logger.Info("mappings saved",
		"mapping", mappingPath,
		"reverse_mapping", reversePath,
		"entries", len(forward),
	)
	return nil
}

// LoadFiles reads the forward table from mappingPath and the reverse
// table from reversePath.
func (s *Store) LoadFiles(ctx context.Context, mappingPath, reversePath string) (mapping.Table, mapping.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	forward, err := s.readTable(mappingPath)
	if err != nil {
		return nil, nil, err
	}
	reverse, err := s.readTable(reversePath)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("mappings loaded",
		"mapping", mappingPath,
		"reverse_mapping", reversePath,
		"entries", len(forward),
	)
	return forward, reverse, nil
}

func (s *Store) pathsFor(kind mapping.Kind) (Paths, error) {
	p, ok := s.paths[kind]
	if !ok || p.Mapping == "" || p.ReverseMapping == "" {
		return Paths{}, fmt.Errorf("no mapping paths configured for kind %q", kind)
	}
	return p, nil
}

func (s *Store) writeTable(path string, t mapping.Table) (err error) {
	if t == nil {
		t = mapping.Table{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("error encoding mapping for %s: %w", path, err)
	}

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("error opening mapping file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing mapping file %s: %w", path, cerr)
		}
	}()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("error writing mapping file %s: %w", path, err)
	}
	return nil
}

func (s *Store) readTable(path string) (mapping.Table, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading mapping file: %w", err)
	}

	// Pointer values tell a JSON null apart from an empty string.
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing mapping file %s: %w", path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("error parsing mapping file %s: not a JSON object", path)
	}

	t := make(mapping.Table, len(raw))
	for k, v := range raw {
		if v == nil {
			return nil, fmt.Errorf("error parsing mapping file %s: value of %q is null, want a string", path, k)
		}
		t[k] = *v
	}
	return t, nil
}

// Save writes both tables using the OS filesystem.
func Save(forward, reverse mapping.Table, mappingPath, reversePath string, logger hclog.Logger) error {
	return New(Config{Logger: logger}).
		SaveFiles(context.Background(), forward, reverse, mappingPath, reversePath)
}

// Load reads both tables using the OS filesystem.
func Load(mappingPath, reversePath string, logger hclog.Logger) (mapping.Table, mapping.Table, error) {
	return New(Config{Logger: logger}).
		LoadFiles(context.Background(), mappingPath, reversePath)
}
