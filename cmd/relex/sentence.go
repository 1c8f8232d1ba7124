package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

func (a *App) sentenceCommand() *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "Show the token annotations of one sentence",
		ArgsUsage: "<source> <sentId>",
		Flags: []cli.Flag{
			docPathFlag(),
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 2 {
				return errors.New("sentence needs two arguments: <source> <sentId>")
			}

			sentId, err := strconv.Atoi(ctx.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid sentence id: %w", err)
			}

			doc, err := a.resolveDoc(ctx, ctx.Args().First())
			if err != nil {
				return err
			}

			if sentId < 0 || sentId >= len(doc.Sentences) {
				return fmt.Errorf("sentence id %d out of range (0-%d)", sentId, len(doc.Sentences)-1)
			}

			s := doc.Sentences[sentId]
			fmt.Fprintf(a.ui.Out, "✍  %d %s\n\n", sentId, s.Text())

			for _, token := range s.Tokens {
				fmt.Fprintf(a.ui.Out, "%20q %15q %8s %6d %6d %10s %s\n", token.Text, token.Lemma, token.Pos, token.Id, token.Head, token.Dep, token.Tag)
			}

			return nil
		},
	}
}
