package main

import (
	"os"

	"github.com/namewta/forge/internal/cli"
	"github.com/namewta/forge/internal/errs"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(errs.ExitCode(err))
	}
}
