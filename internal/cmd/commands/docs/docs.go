package docs

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/docmap/internal/cmd/base"
	"github.com/hashicorp-forge/docmap/pkg/corpus"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
)

type Command struct {
	*base.Command

	// Counter overrides the PDF page counter.
	Counter corpus.PageCounter

	flagConfig  string
	flagDir     string
	flagVerbose bool
}

func (c *Command) Synopsis() string {
	return "Build the document ID mapping for a folder of PDFs"
}

func (c *Command) Help() string {
	return `Usage: docmap docs [options]

  This command counts the pages of every document in the corpus folder and
  assigns each page a short document ID. The forward and reverse mappings
  are written to the configured JSON files and, if configured, the catalog.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("docs", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"[DOCMAP_CONFIG] (Required) Path to docmap config file",
	)
	f.StringVar(
		&c.flagDir, "dir", "",
		"Corpus folder. Overrides the configured corpus dir.",
	)
	f.BoolVar(
		&c.flagVerbose, "verbose", false,
		"Print every page key and its document ID.",
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

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	dir := cfg.Corpus.Dir
	if c.flagDir != "" {
		dir = c.flagDir
	}

	ctx, stop := base.Context()
	defer stop()

	// Count pages.
	scanner := corpus.NewScanner(corpus.ScannerConfig{
		Counter: c.Counter,
		Logger:  logger,
	})
	scan, err := scanner.Scan(dir, cfg.Corpus.Extension)
	if err != nil {
		ui.Error(fmt.Sprintf("error scanning corpus: %v", err))
		return 1
	}
	for _, path := range scan.Skipped {
		ui.Warn(fmt.Sprintf("Skipped %s: page count unavailable", path))
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

	res, err := builder.BuildDocuments(scan.Pages)
	if err != nil {
		ui.Error(fmt.Sprintf("error building document mapping: %v", err))
		return 1
	}
	for _, coll := range res.Collisions {
		ui.Warn(fmt.Sprintf("Collision: %v", coll))
	}

	if c.flagVerbose {
		for _, key := range res.Forward.Keys() {
			ui.Output(fmt.Sprintf("%s\t%s", res.Forward[key], key))
		}
	}

	shared, err := c.SaveMappings(ctx, cfg, res)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ui.Info(fmt.Sprintf("Mapped %d pages from %d documents",
		len(res.Forward), len(scan.Pages)))
	ui.Info(fmt.Sprintf("Wrote %s and %s",
		cfg.Output.DocumentMapping, cfg.Output.DocumentReverseMapping))
	if cfg.Output.Catalog != "" {
		ui.Info(fmt.Sprintf("Updated catalog %s", cfg.Output.Catalog))
	}
	if len(shared) > 0 {
		ui.Warn(fmt.Sprintf("Catalog holds %d shared document IDs: %s",
			len(shared), strings.Join(shared, ", ")))
	}

	return 0
}
