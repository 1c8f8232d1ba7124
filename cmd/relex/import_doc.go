package main

import (
	"fmt"

	"github.com/revelaction/relex/storage/filesystem"
	"github.com/revelaction/relex/storage/sqlite/zombiezen"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

func (a *App) importDocCommand() *cli.Command {
	return &cli.Command{
		Name:  "import-doc",
		Usage: "Copy docs from a JSON directory into a sqlite database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "source directory of provider JSON docs",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target sqlite database file",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			src, err := filesystem.NewDocStore(ctx.String("from"))
			if err != nil {
				return err
			}

			pool, err := zombiezen.NewPool(ctx.String("to"))
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := zombiezen.CreateSchemas(pool, "docs.sql"); err != nil {
				return fmt.Errorf("failed to setup doc tables: %w", err)
			}

			dst := zombiezen.NewDocStore(pool)

			metas, err := src.List("")
			if err != nil {
				return err
			}

			uiprogress.Start()
			bar := uiprogress.AddBar(len(metas))
			bar.AppendCompleted()
			bar.PrependElapsed()

			count := 0
			for _, meta := range metas {
				doc, err := src.Read(meta.Id)
				if err != nil {
					uiprogress.Stop()
					return fmt.Errorf("failed to read doc %s: %w", meta.Title, err)
				}

				if err := dst.Write(doc); err != nil {
					uiprogress.Stop()
					return fmt.Errorf("failed to write doc %s: %w", meta.Title, err)
				}

				count++
				bar.Incr()
			}
			uiprogress.Stop()

			fmt.Fprintf(a.ui.Out, "Successfully imported %d docs from %s to %s\n", count, ctx.String("from"), ctx.String("to"))
			return nil
		},
	}
}
