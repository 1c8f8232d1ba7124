package main

import (
	"github.com/revelaction/relex/query"

	"github.com/urfave/cli/v2"
)

func (a *App) queryCommand() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Interactive pattern query prompt",
		Description: "Input is an optional pattern name followed by constraints, both\n" +
			"must match (AND). The rel keyword extracts relation pairs\n" +
			"instead. Ctrl+F cycles the format, Ctrl+X toggles the prefix.",
		Flags: []cli.Flag{
			docPathFlag(),
			patternPathFlag(),
			labelFlag(),
			noColorFlag(),
			noPrefixFlag(),
			formatFlag(),
			nmatchesFlag(),
		},
		Action: func(ctx *cli.Context) error {
			repo, err := a.docRepo(ctx)
			if err != nil {
				return err
			}

			// load the corpus up front, the prompt must not stall
			if err := preload(repo, ctx.StringSlice("label")); err != nil {
				return err
			}

			lib, err := a.library(ctx)
			if err != nil {
				return err
			}

			h := query.NewHandler(repo, lib, a.termRenderer(ctx))
			h.RelationVerbs = a.cfg.RelationVerbs
			return h.Run()
		},
	}
}
