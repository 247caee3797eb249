package version

import (
	"github.com/hashicorp-forge/docmap/internal/cmd/base"
	"github.com/hashicorp-forge/docmap/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the docmap version"
}

func (c *Command) Help() string {
	return `Usage: docmap version

  This command prints the docmap version.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("docmap " + version.Version)
	return 0
}
