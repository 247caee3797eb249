package resolve

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp-forge/docmap/internal/cmd/base"
	"github.com/hashicorp-forge/docmap/internal/config"
	"github.com/hashicorp-forge/docmap/pkg/docid"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
	"github.com/hashicorp-forge/docmap/pkg/mapping/adapters/sqlite"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "Look up document and query IDs"
}

func (c *Command) Help() string {
	return `Usage: docmap resolve [options] ID|KEY...

  This command resolves each argument in turn:

    - a document ID prints its filename and page,
    - a query ID prints its query text,
    - a combined key such as "manual.pdf-3" prints its document ID.

  IDs are looked up in the catalog if one is configured, otherwise in the
  saved mapping files.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("resolve", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"[DOCMAP_CONFIG] (Required) Path to docmap config file",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	// Parse flags.
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() == 0 {
		ui.Error("at least one ID or key is required")
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx, stop := base.Context()
	defer stop()

	lookup, closeLookup, err := c.newLookup(ctx, cfg)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	defer closeLookup()

	gen := cfg.Generator()
	failed := false
	for _, arg := range flags.Args() {
		key, ok, err := lookup(mapping.KindDocument, arg)
		if err != nil {
			ui.Error(fmt.Sprintf("%s: %v", arg, err))
			failed = true
			continue
		}
		if ok {
			pk, err := docid.ParsePageKey(key)
			if err != nil {
				ui.Error(fmt.Sprintf("%s: %v", arg, err))
				failed = true
				continue
			}
			ui.Output(fmt.Sprintf("%s\tdocument\t%s\tpage %d", arg, pk.Filename(), pk.Page()))
			continue
		}

		query, ok, err := lookup(mapping.KindQuery, arg)
		if err != nil {
			ui.Error(fmt.Sprintf("%s: %v", arg, err))
			failed = true
			continue
		}
		if ok {
			ui.Output(fmt.Sprintf("%s\tquery\t%s", arg, query))
			continue
		}

		if pk, err := docid.ParsePageKey(arg); err == nil {
			// Keys typed without the extension are canonicalized first.
			key, id, err := gen.DocumentID(pk.Filename(), pk.Page())
			if err != nil {
				ui.Error(fmt.Sprintf("%s: %v", arg, err))
				failed = true
				continue
			}
			ui.Output(fmt.Sprintf("%s\tkey\t%s", id, key))
			continue
		}

		ui.Error(fmt.Sprintf("%s: not a known ID or a combined key", arg))
		failed = true
	}

	if failed {
		return 1
	}
	return 0
}

// lookupFunc returns the reverse lookup of an identifier and whether it is
// known.
type lookupFunc func(kind mapping.Kind, id string) (string, bool, error)

// newLookup queries the catalog entry by entry when one is configured,
// otherwise it loads both reverse tables from the JSON files.
func (c *Command) newLookup(ctx context.Context, cfg *config.Config) (lookupFunc, func(), error) {
	catalog, err := c.OpenCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	if catalog != nil {
		closeCatalog := func() {
			if err := catalog.Close(); err != nil {
				c.Log.Warn("error closing catalog", "error", err)
			}
		}
		return func(kind mapping.Kind, id string) (string, bool, error) {
			e, err := catalog.Lookup(ctx, kind, id)
			if errors.Is(err, sqlite.ErrNotFound) {
				return "", false, nil
			}
			if err != nil {
				return "", false, err
			}
			return e.Key, true, nil
		}, closeCatalog, nil
	}

	store := c.JSONStore(cfg)
	reverse := make(map[mapping.Kind]mapping.Table)
	for _, kind := range []mapping.Kind{mapping.KindDocument, mapping.KindQuery} {
		_, rev, err := store.Load(ctx, kind)
		switch {
		case errors.Is(err, os.ErrNotExist):
			c.Log.Debug("no saved mapping", "kind", kind, "store", store.Name())
			rev = mapping.Table{}
		case err != nil:
			return nil, nil, fmt.Errorf("error loading %s mapping: %w", kind, err)
		}
		reverse[kind] = rev
	}
	return func(kind mapping.Kind, id string) (string, bool, error) {
		key, ok := reverse[kind][id]
		return key, ok, nil
	}, func() {}, nil
}
