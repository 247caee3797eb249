package base

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"
)

// FlagSet wraps flag.FlagSet to render flag help in the style of the
// command help text.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet creates a FlagSet that prints nothing on its own; commands
// report parse errors through their UI.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	f.Usage = func() {}
	return &FlagSet{FlagSet: f}
}

// Help returns the formatted options section of a command's help.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	count := 0

	f.VisitAll(func(fl *flag.Flag) {
		if count == 0 {
			buf.WriteString("\n\nOptions:\n")
		}
		count++

		fmt.Fprintf(&buf, "\n  -%s", fl.Name)
		if name, _ := flag.UnquoteUsage(fl); name != "" {
			fmt.Fprintf(&buf, "=<%s>", name)
		}
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&buf, " (default: %s)", fl.DefValue)
		}
		buf.WriteString("\n")

		_, usage := flag.UnquoteUsage(fl)
		for _, line := range strings.Split(usage, "\n") {
			fmt.Fprintf(&buf, "      %s\n", line)
		}
	})

	return strings.TrimRight(buf.String(), "\n")
}
