package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/docmap/internal/cmd/base"
	"github.com/hashicorp-forge/docmap/internal/cmd/commands/docs"
	"github.com/hashicorp-forge/docmap/internal/cmd/commands/qrels"
	"github.com/hashicorp-forge/docmap/internal/cmd/commands/queries"
	"github.com/hashicorp-forge/docmap/internal/cmd/commands/resolve"
	"github.com/hashicorp-forge/docmap/internal/cmd/commands/search"
	"github.com/hashicorp-forge/docmap/internal/cmd/commands/version"
)

// Commands is the mapping of all available docmap commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"docs": func() (cli.Command, error) {
			return &docs.Command{Command: b}, nil
		},
		"queries": func() (cli.Command, error) {
			return &queries.Command{Command: b}, nil
		},
		"resolve": func() (cli.Command, error) {
			return &resolve.Command{Command: b}, nil
		},
		"qrels": func() (cli.Command, error) {
			return &qrels.Command{Command: b}, nil
		},
		"search": func() (cli.Command, error) {
			return &search.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
