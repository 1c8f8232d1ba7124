package main

import (
	"fmt"
	"os"

	"github.com/revelaction/relex/storage/filesystem"
	"github.com/revelaction/relex/storage/sqlite/zombiezen"

	"github.com/urfave/cli/v2"
)

func (a *App) exportPatternCommand() *cli.Command {
	return &cli.Command{
		Name:  "export-pattern",
		Usage: "Copy patterns from a sqlite database into a JSON directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "source sqlite database file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target directory for the pattern JSON files",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			pool, err := zombiezen.NewPool(ctx.String("from"))
			if err != nil {
				return err
			}
			defer pool.Close()
			src := zombiezen.NewPatternStore(pool)

			if err := os.MkdirAll(ctx.String("to"), 0755); err != nil {
				return fmt.Errorf("failed to create target directory: %w", err)
			}

			dst := filesystem.NewPatternStore(ctx.String("to"))

			patterns, err := src.ReadAll()
			if err != nil {
				return err
			}

			for _, p := range patterns {
				if err := dst.Write(p); err != nil {
					return fmt.Errorf("failed to export pattern %s: %w", p.Name, err)
				}
			}

			fmt.Fprintf(a.ui.Out, "Successfully exported %d patterns from %s to %s\n", len(patterns), ctx.String("from"), ctx.String("to"))
			return nil
		},
	}
}
