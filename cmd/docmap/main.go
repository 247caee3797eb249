package main

import (
	"os"

	"github.com/hashicorp-forge/docmap/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
