package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// BuildTag and BuildCommit are set by the linker on release builds.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

func (a *App) versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show the build version",
		Action: func(ctx *cli.Context) error {
			_, err := fmt.Fprintf(a.ui.Out, "relex version %s (commit: %s)\n", BuildTag, BuildCommit)
			return err
		},
	}
}
