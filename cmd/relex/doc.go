package main

import (
	"errors"
	"fmt"

	sent "github.com/revelaction/relex/sentence"

	"github.com/urfave/cli/v2"
)

func (a *App) docCommand() *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "List the docs of the corpus or show the sentences of one",
		ArgsUsage: "[source]",
		Flags: []cli.Flag{
			docPathFlag(),
			labelFlag(),
			&cli.IntFlag{
				Name:  "start",
				Usage: "Index of the first sentence to show",
			},
			&cli.IntFlag{
				Name:  "count",
				Value: -1,
				Usage: "Number of sentences to show, -1 for all",
			},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() > 1 {
				return errors.New("doc accepts at most one argument")
			}

			source := ctx.Args().First()
			if source == "" {
				return a.listDocs(ctx)
			}

			doc, err := a.resolveDoc(ctx, source)
			if err != nil {
				return err
			}

			a.renderDoc(doc, ctx.Int("start"), ctx.Int("count"))
			return nil
		},
	}
}

func (a *App) listDocs(ctx *cli.Context) error {
	repo, err := a.docRepo(ctx)
	if err != nil {
		return err
	}

	labels := ctx.StringSlice("label")

	var labelMatch string
	if len(labels) > 0 {
		labelMatch = labels[0]
	}

	docs, err := repo.List(labelMatch)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(a.ui.Out, "📖 %d %s\n", doc.Id, doc.Title)
	}

	return nil
}

func (a *App) renderDoc(doc sent.Doc, start, count int) {
	if start < 0 {
		start = 0
	}

	if start >= len(doc.Sentences) {
		return
	}

	sentences := doc.Sentences[start:]
	if count >= 0 && count < len(sentences) {
		sentences = sentences[:count]
	}

	for i, s := range sentences {
		prefix := fmt.Sprintf("✍  %d ", start+i)
		fmt.Fprintf(a.ui.Out, "%s%s\n", prefix, s.Text())
	}
}
