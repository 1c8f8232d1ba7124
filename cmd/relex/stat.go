package main

import (
	"fmt"
	"sort"
	"strconv"

	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/stat"

	"github.com/urfave/cli/v2"
)

func (a *App) statCommand() *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "Show token statistics of a doc or a single sentence",
		ArgsUsage: "<file|docId> [sentId]",
		Flags: []cli.Flag{
			docPathFlag(),
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() < 1 {
				return fmt.Errorf("stat needs a doc file or a doc id")
			}

			doc, err := a.resolveDoc(ctx, ctx.Args().Get(0))
			if err != nil {
				return err
			}

			if ctx.NArg() > 1 {
				sentId, err := strconv.Atoi(ctx.Args().Get(1))
				if err != nil {
					return fmt.Errorf("sentence id is not a number: %s", ctx.Args().Get(1))
				}

				if sentId < 0 || sentId >= len(doc.Sentences) {
					return fmt.Errorf("sentence index %d out of bounds (doc has %d sentences)", sentId, len(doc.Sentences))
				}

				doc = sent.Doc{Sentences: []sent.Sentence{doc.Sentences[sentId]}}
			}

			h := stat.NewHandler()
			h.Aggregate(doc)

			stats := h.Get()
			fmt.Fprintf(a.ui.Out, "Num sentences %d, num tokens %d, num tokens per sentence %d\n",
				stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean)

			fmt.Fprintln(a.ui.Out, "🏷  POS")
			printDist(a, stats.PosDist)

			fmt.Fprintln(a.ui.Out, "🏷  Dep")
			printDist(a, stats.DepDist)

			return nil
		},
	}
}

// printDist prints a tag count map, most frequent first.
func printDist(a *App, dist map[string]int) {
	tags := make([]string, 0, len(dist))
	for tag := range dist {
		tags = append(tags, tag)
	}

	sort.Slice(tags, func(i, j int) bool {
		if dist[tags[i]] != dist[tags[j]] {
			return dist[tags[i]] > dist[tags[j]]
		}

		return tags[i] < tags[j]
	})

	for _, tag := range tags {
		fmt.Fprintf(a.ui.Out, "%15s %6d\n", tag, dist[tag])
	}
}
