package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	sent "github.com/revelaction/relex/sentence"

	"github.com/urfave/cli/v2"
)

// legacyDoc mirrors the old JSON structure: tokens: [][]Token
type legacyDoc struct {
	Labels []string       `json:"labels"`
	Tokens [][]sent.Token `json:"tokens"`
}

func (a *App) migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Rewrite legacy token-matrix JSON docs to the sentence format",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "source directory of legacy JSON docs",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target directory for the migrated docs",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			files, err := os.ReadDir(ctx.String("from"))
			if err != nil {
				return fmt.Errorf("failed to read source directory: %w", err)
			}

			if err := os.MkdirAll(ctx.String("to"), 0755); err != nil {
				return fmt.Errorf("failed to create target directory: %w", err)
			}

			for _, file := range files {
				if filepath.Ext(file.Name()) != ".json" {
					continue
				}

				path := filepath.Join(ctx.String("from"), file.Name())
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read file %s: %w", file.Name(), err)
				}

				var old legacyDoc
				if err := json.Unmarshal(data, &old); err != nil {
					return fmt.Errorf("failed to unmarshal legacy doc %s: %w", file.Name(), err)
				}

				newDoc := sent.Doc{
					Title:  file.Name(),
					Labels: old.Labels,
				}

				for i, tokens := range old.Tokens {
					newDoc.Sentences = append(newDoc.Sentences, sent.Sentence{
						Id:     i,
						Tokens: tokens,
					})
				}

				newData, err := json.MarshalIndent(newDoc, "", "  ")
				if err != nil {
					return err
				}

				targetPath := filepath.Join(ctx.String("to"), file.Name())
				if err := os.WriteFile(targetPath, newData, 0644); err != nil {
					return fmt.Errorf("failed to write file %s: %w", targetPath, err)
				}

				fmt.Fprintf(a.ui.Err, "Migrated %s to %s\n", file.Name(), targetPath)
			}

			return nil
		},
	}
}
