package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

func (a *App) patternCommand() *cli.Command {
	return &cli.Command{
		Name:      "pattern",
		Usage:     "List the patterns of the library or show the sequences of one",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			patternPathFlag(),
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() > 1 {
				return errors.New("pattern accepts at most one argument")
			}

			lib, err := a.library(ctx)
			if err != nil {
				return err
			}

			name := ctx.Args().First()
			if name == "" {
				for i, n := range lib.Names() {
					fmt.Fprintf(a.ui.Out, "🔖 %d %s\n", i, n)
				}

				return nil
			}

			p, ok := lib.Find(name)
			if !ok {
				return fmt.Errorf("pattern not found: %s", name)
			}

			r := a.termRenderer(ctx)
			r.Sequences(p.Seqs)
			return nil
		},
	}
}
