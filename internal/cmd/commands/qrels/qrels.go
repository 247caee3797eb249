package qrels

import (
	"flag"
	"fmt"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/docmap/internal/cmd/base"
	"github.com/hashicorp-forge/docmap/pkg/mapping"
	"github.com/hashicorp-forge/docmap/pkg/qrels"
)

type Command struct {
	*base.Command

	// Fs overrides the filesystem the qrels and topics files are read from.
	Fs afero.Fs

	flagConfig string
	flagQrels  string
	flagTopics string
	flagOut    string
}

func (c *Command) Synopsis() string {
	return "List judged documents as filename and page"
}

func (c *Command) Help() string {
	return `Usage: docmap qrels [options]

  This command reads a TREC qrels file and resolves every judged document ID
  to the filename and page it was assigned from. With -topics, judgments are
  listed per topic, ordered by topic group, and topics without judgments are
  left out.

  With -out, the judgments are also written back out in normalized form:
  single spaces, iteration "0" where it was empty, comments kept.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("qrels", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"[DOCMAP_CONFIG] (Required) Path to docmap config file",
	)
	f.StringVar(
		&c.flagQrels, "qrels", "",
		"(Required) Path to the qrels file",
	)
	f.StringVar(
		&c.flagTopics, "topics", "",
		"Path to the topics file",
	)
	f.StringVar(
		&c.flagOut, "out", "",
		"Path to write the normalized qrels file to",
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

	// Validate flags.
	if c.flagQrels == "" {
		ui.Error("qrels flag is required")
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx, stop := base.Context()
	defer stop()

	fs := c.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	// Read judgments.
	f, err := fs.Open(c.flagQrels)
	if err != nil {
		ui.Error(fmt.Sprintf("error opening qrels file: %v", err))
		return 1
	}
	judgments, err := qrels.Parse(f)
	f.Close()
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing qrels file: %v", err))
		return 1
	}
	pool := qrels.NewPool(judgments)

	if c.flagOut != "" {
		if err := writeJudgments(fs, c.flagOut, judgments); err != nil {
			ui.Error(err.Error())
			return 1
		}
		ui.Info(fmt.Sprintf("Wrote %d judgments to %s", len(judgments), c.flagOut))
	}

	// Resolve document IDs.
	store, closeStore, err := c.ReadStore(cfg)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	defer closeStore()

	_, reverse, err := store.Load(ctx, mapping.KindDocument)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading document mapping: %v", err))
		return 1
	}

	assessments, resolveErr := qrels.Resolve(pool, reverse)
	byQuery := make(map[string][]qrels.Assessment)
	for _, a := range assessments {
		byQuery[a.QueryID] = append(byQuery[a.QueryID], a)
	}

	// Print per topic, or per query in qrels order.
	if c.flagTopics != "" {
		topics, err := qrels.LoadTopics(fs, c.flagTopics)
		if err != nil {
			ui.Error(err.Error())
			return 1
		}
		for _, t := range qrels.FilterJudged(topics, pool) {
			header := fmt.Sprintf("%s: %s", t.ID, t.Text)
			if t.Group != "" {
				header = fmt.Sprintf("[%s] %s", t.Group, header)
			}
			ui.Output(header)
			c.printAssessments(byQuery[t.ID])
		}
	} else {
		for _, qid := range pool.QueryIDs() {
			ui.Output(qid)
			c.printAssessments(byQuery[qid])
		}
	}

	if resolveErr != nil {
		ui.Error(fmt.Sprintf("error resolving judged documents: %v", resolveErr))
		return 1
	}
	return 0
}

func (c *Command) printAssessments(assessments []qrels.Assessment) {
	for _, a := range assessments {
		c.UI.Output(fmt.Sprintf("  %s\t%s\tpage %d", a.DocID, a.Key.Filename(), a.Key.Page()))
	}
}

func writeJudgments(fs afero.Fs, path string, judgments []qrels.Judgment) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("error creating qrels file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing qrels file: %w", cerr)
		}
	}()
	return qrels.Write(f, judgments)
}
