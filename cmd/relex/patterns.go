package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/render"

	"github.com/urfave/cli/v2"
)

func (a *App) patternsCommand() *cli.Command {
	return &cli.Command{
		Name:      "patterns",
		Usage:     "Show which library patterns match a sentence",
		ArgsUsage: "<source> <sentId>",
		Flags: []cli.Flag{
			docPathFlag(),
			patternPathFlag(),
			formatFlag(),
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 2 {
				return errors.New("patterns needs two arguments: <source> <sentId>")
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

			lib, err := a.library(ctx)
			if err != nil {
				return err
			}

			s := doc.Sentences[sentId]
			fmt.Fprintf(a.ui.Out, "✍  %s\n\n", s.Text())

			r := a.termRenderer(ctx)
			r.HasColor = true
			r.HasPrefix = true
			r.PrefixDocFunc = render.PrefixFuncEmpty

			for _, p := range lib {
				m := match.NewMatcher(p)

				sm := m.MatchSentence(s)
				if sm == nil {
					continue
				}

				r.Render([]*match.SentenceMatch{sm})
			}

			return nil
		},
	}
}
