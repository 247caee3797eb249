package search

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/docmap/internal/cmd/base"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
	"github.com/hashicorp-forge/docmap/pkg/search"
	"github.com/hashicorp-forge/docmap/pkg/search/adapters/bleve"
)

type Command struct {
	*base.Command

	flagConfig  string
	flagLimit   int
	flagReindex bool
}

func (c *Command) Synopsis() string {
	return "Find query IDs by query text"
}

func (c *Command) Help() string {
	return `Usage: docmap search [options] TEXT

  This command searches the query text of the saved query mapping and prints
  matching query IDs, best match first.

  Without a configured search index, an in-memory index is built from the
  saved mapping for every search.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("search", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"[DOCMAP_CONFIG] (Required) Path to docmap config file",
	)
	f.IntVar(
		&c.flagLimit, "limit", search.DefaultLimit,
		"Maximum number of results.",
	)
	f.BoolVar(
		&c.flagReindex, "reindex", false,
		"Rebuild the search index from the saved mapping before searching.",
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

	text := strings.Join(flags.Args(), " ")
	if strings.TrimSpace(text) == "" {
		ui.Error("search text is required")
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx, stop := base.Context()
	defer stop()

	idx, err := bleve.NewAdapter(bleve.Config{
		Path:   cfg.Output.SearchIndex,
		Logger: logger,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error opening search index: %v", err))
		return 1
	}
	defer idx.Close()

	count, err := idx.Count()
	if err != nil {
		ui.Error(fmt.Sprintf("error reading search index: %v", err))
		return 1
	}

	if count == 0 || c.flagReindex {
		store, closeStore, err := c.ReadStore(cfg)
		if err != nil {
			ui.Error(err.Error())
			return 1
		}
		forward, _, err := store.Load(ctx, mapping.KindQuery)
		closeStore()
		if err != nil {
			ui.Error(fmt.Sprintf("error loading query mapping: %v", err))
			return 1
		}
		if err := idx.IndexQueries(ctx, forward); err != nil {
			ui.Error(fmt.Sprintf("error indexing queries: %v", err))
			return 1
		}
	}

	hits, err := idx.Search(ctx, text, c.flagLimit)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	if len(hits) == 0 {
		ui.Warn("No matching queries")
		return 0
	}
	for _, h := range hits {
		ui.Output(fmt.Sprintf("%s\t%.3f\t%s", h.QueryID, h.Score, h.Query))
	}

	return 0
}
