package main

import (
	"fmt"

	"github.com/revelaction/relex/storage/filesystem"
	"github.com/revelaction/relex/storage/sqlite/zombiezen"

	"github.com/urfave/cli/v2"
)

func (a *App) importPatternCommand() *cli.Command {
	return &cli.Command{
		Name:  "import-pattern",
		Usage: "Copy patterns from a JSON directory into a sqlite database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "source directory of pattern JSON files",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target sqlite database file",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			src := filesystem.NewPatternStore(ctx.String("from"))

			pool, err := zombiezen.NewPool(ctx.String("to"))
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := zombiezen.CreateSchemas(pool, "patterns.sql"); err != nil {
				return fmt.Errorf("failed to setup pattern tables: %w", err)
			}

			dst := zombiezen.NewPatternStore(pool)

			patterns, err := src.ReadAll()
			if err != nil {
				return err
			}

			for _, p := range patterns {
				if err := dst.Write(p); err != nil {
					return fmt.Errorf("failed to import pattern %s: %w", p.Name, err)
				}
			}

			fmt.Fprintf(a.ui.Out, "Successfully imported %d patterns from %s to %s\n", len(patterns), ctx.String("from"), ctx.String("to"))
			return nil
		},
	}
}
