package main

import (
	"github.com/revelaction/relex/extract"
	"github.com/revelaction/relex/render"

	"github.com/urfave/cli/v2"
)

func (a *App) relCommand() *cli.Command {
	return &cli.Command{
		Name:      "rel",
		Usage:     "Extract subject/object relation pairs from the corpus",
		ArgsUsage: "[verb]...",
		Description: "Scans the sentences containing one of the verbs (as lemma or\n" +
			"lowercase form) and extracts the acting and acted-on side of\n" +
			"each, honoring passive voice. Without arguments the configured\n" +
			"relation verbs apply.",
		Flags: []cli.Flag{
			docPathFlag(),
			labelFlag(),
			noColorFlag(),
			noPrefixFlag(),
			formatFlag(),
			jsonFlag(),
			&cli.IntFlag{
				Name:  "doc",
				Usage: "Only scan the doc with this id",
			},
		},
		Action: func(ctx *cli.Context) error {
			repo, err := a.docRepo(ctx)
			if err != nil {
				return err
			}

			verbs := ctx.Args().Slice()
			if len(verbs) == 0 {
				verbs = a.cfg.RelationVerbs
			}

			var docID *int
			if ctx.IsSet("doc") {
				id := ctx.Int("doc")
				docID = &id
			}

			var pairs []extract.PairMatch
			err = extract.Relations(repo, verbs, docID, ctx.StringSlice("label"), 0, func(pm extract.PairMatch) error {
				pairs = append(pairs, pm)
				return nil
			})
			if err != nil {
				return err
			}

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

			r.RenderPairs(pairs)
			return nil
		},
	}
}
