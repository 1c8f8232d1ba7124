package main

import (
	"fmt"
	"os"

	"github.com/revelaction/relex/storage/filesystem"
	"github.com/revelaction/relex/storage/sqlite/zombiezen"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

func (a *App) exportDocCommand() *cli.Command {
	return &cli.Command{
		Name:  "export-doc",
		Usage: "Copy docs from a sqlite database into a JSON directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "source sqlite database file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target directory for the JSON docs",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			pool, err := zombiezen.NewPool(ctx.String("from"))
			if err != nil {
				return err
			}
			defer pool.Close()
			src := zombiezen.NewDocStore(pool)

			if err := os.MkdirAll(ctx.String("to"), 0755); err != nil {
				return fmt.Errorf("failed to create target directory: %w", err)
			}

			dst, err := filesystem.NewDocStore(ctx.String("to"))
			if err != nil {
				return err
			}

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
					return fmt.Errorf("failed to read doc %s (id %d): %w", meta.Title, meta.Id, err)
				}

				doc.Title = meta.Title
				if err := dst.Write(doc); err != nil {
					uiprogress.Stop()
					return fmt.Errorf("failed to write doc %s: %w", meta.Title, err)
				}

				count++
				bar.Incr()
			}
			uiprogress.Stop()

			fmt.Fprintf(a.ui.Out, "Successfully exported %d docs from %s to %s\n", count, ctx.String("from"), ctx.String("to"))
			return nil
		},
	}
}
