package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func (a *App) labelsCommand() *cli.Command {
	return &cli.Command{
		Name:      "labels",
		Usage:     "List the labels of the corpus docs",
		ArgsUsage: "[match]",
		Flags: []cli.Flag{
			docPathFlag(),
		},
		Action: func(ctx *cli.Context) error {
			repo, err := a.docRepo(ctx)
			if err != nil {
				return err
			}

			labels, err := repo.Labels(ctx.Args().First())
			if err != nil {
				return err
			}

			if len(labels) > 0 {
				fmt.Fprintln(a.ui.Out, strings.Join(labels, ", "))
			}

			return nil
		},
	}
}
