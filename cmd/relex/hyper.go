package main

import (
	"github.com/revelaction/relex/extract"
	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/render"

	"github.com/urfave/cli/v2"
)

func (a *App) hyperCommand() *cli.Command {
	return &cli.Command{
		Name:  "hyper",
		Usage: "Extract hypernym spans with the Hearst pattern library",
		Description: "Runs every pattern of the library (the builtin Hearst patterns,\n" +
			"or the stored ones when a pattern path is given) over the whole\n" +
			"corpus. The aggr format counts the extracted spans.",
		Flags: []cli.Flag{
			docPathFlag(),
			patternPathFlag(),
			labelFlag(),
			noColorFlag(),
			noPrefixFlag(),
			formatFlag(),
			nmatchesFlag(),
			jsonFlag(),
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Number of docs matched concurrently, 0 for one per CPU",
			},
		},
		Action: func(ctx *cli.Context) error {
			repo, err := a.docRepo(ctx)
			if err != nil {
				return err
			}

			lib, err := a.library(ctx)
			if err != nil {
				return err
			}

			labels := ctx.StringSlice("label")
			if err := preload(repo, labels); err != nil {
				return err
			}

			var results []*match.SentenceMatch
			err = extract.Docs(ctx.Context, repo, lib, labels, ctx.Int("workers"), func(sm *match.SentenceMatch) error {
				results = append(results, sm)
				return nil
			})
			if err != nil {
				return err
			}

			extract.Sort(results)

			var r render.Renderer
			if ctx.Bool("json") {
				r = render.NewJSONRenderer(a.ui.Out)
			} else {
				tr, err := a.namedRenderer(ctx, repo)
				if err != nil {
					return err
				}

				r = tr
			}

			r.Render(results)
			return nil
		},
	}
}
