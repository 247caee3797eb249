package queries

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/docmap/internal/cmd/base"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
	"github.com/hashicorp-forge/docmap/pkg/qrels"
	"github.com/hashicorp-forge/docmap/pkg/search/adapters/bleve"
)

type Command struct {
	*base.Command

	// Fs overrides the filesystem queries are read from.
	Fs afero.Fs

	flagConfig  string
	flagTopics  string
	flagLines   bool
	flagVerbose bool
}

func (c *Command) Synopsis() string {
	return "Build the query ID mapping for a set of queries"
}

func (c *Command) Help() string {
	return `Usage: docmap queries [options]

  This command assigns each query a short query ID. Queries are read from a
  topics file (a JSON or YAML object of topic ID to query text) or, with
  -lines, from a file holding one query per line.

  The mappings are written to the configured JSON files and, if configured,
  the catalog and the search index.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("queries", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"[DOCMAP_CONFIG] (Required) Path to docmap config file",
	)
	f.StringVar(
		&c.flagTopics, "topics", "",
		"(Required) Path to the topics file",
	)
	f.BoolVar(
		&c.flagLines, "lines", false,
		"Read one query per line instead of a topics object.",
	)
	f.BoolVar(
		&c.flagVerbose, "verbose", false,
		"Print every query and its query ID.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	logger, ui := c.Log, c.UI

	// Parse flags.
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	// Validate flags.
	if c.flagTopics == "" {
		ui.Error("topics flag is required")
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx, stop := base.Context()
	defer stop()

	texts, err := c.readQueries()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	// Build mapping.
	builder, err := mapping.NewBuilder(mapping.BuilderConfig{
		Generator: cfg.Generator(),
		Strict:    cfg.StrictCollisions,
		Logger:    logger,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error creating mapping builder: %v", err))
		return 1
	}

	res, err := builder.BuildQueries(texts)
	if err != nil {
		ui.Error(fmt.Sprintf("error building query mapping: %v", err))
		return 1
	}
	for _, coll := range res.Collisions {
		ui.Warn(fmt.Sprintf("Collision: %v", coll))
	}

	if c.flagVerbose {
		for _, text := range res.Forward.Keys() {
			ui.Output(fmt.Sprintf("%s\t%s", res.Forward[text], text))
		}
	}

	shared, err := c.SaveMappings(ctx, cfg, res)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ui.Info(fmt.Sprintf("Mapped %d queries", len(res.Forward)))
	ui.Info(fmt.Sprintf("Wrote %s and %s",
		cfg.Output.QueryMapping, cfg.Output.QueryReverseMapping))
	if len(shared) > 0 {
		ui.Warn(fmt.Sprintf("Catalog holds %d shared query IDs: %s",
			len(shared), strings.Join(shared, ", ")))
	}

	// An in-memory index would not outlive the command.
	if cfg.Output.SearchIndex == "" {
		return 0
	}

	idx, err := bleve.NewAdapter(bleve.Config{
		Path:   cfg.Output.SearchIndex,
		Logger: logger,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error opening search index: %v", err))
		return 1
	}
	defer idx.Close()

	if err := idx.IndexQueries(ctx, res.Forward); err != nil {
		ui.Error(fmt.Sprintf("error indexing queries: %v", err))
		return 1
	}
	ui.Info(fmt.Sprintf("Updated search index %s", cfg.Output.SearchIndex))

	return 0
}

func (c *Command) readQueries() ([]string, error) {
	fs := c.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if !c.flagLines {
		topics, err := qrels.LoadTopics(fs, c.flagTopics)
		if err != nil {
			return nil, err
		}
		return qrels.Texts(topics), nil
	}

	data, err := afero.ReadFile(fs, c.flagTopics)
	if err != nil {
		return nil, fmt.Errorf("error reading queries file: %w", err)
	}

	var texts []string
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("error reading queries file: %w", err)
	}
	return texts, nil
}
