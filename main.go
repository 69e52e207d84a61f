package main

import (
	"os"

	"github.com/sidneyroberto/generator-lp-3/internal/cli"
	"github.com/sidneyroberto/generator-lp-3/internal/errors"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
