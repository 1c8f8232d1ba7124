package main

import (
	"github.com/revelaction/relex/edit"

	"github.com/urfave/cli/v2"
)

func (a *App) editCommand() *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Interactive pattern editing prompt",
		Description: "Input is a pattern name followed by a constraint sequence. An\n" +
			"unknown name creates the pattern, a trailing / on the last\n" +
			"constraint deletes the sequence.",
		Flags: []cli.Flag{
			patternPathFlag(),
		},
		Action: func(ctx *cli.Context) error {
			repo, err := a.patternRepo(ctx)
			if err != nil {
				return err
			}

			lib, err := repo.ReadAll()
			if err != nil {
				return err
			}

			h := edit.NewHandler(lib, repo, repo)
			return h.Run()
		},
	}
}
