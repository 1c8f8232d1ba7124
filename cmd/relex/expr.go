package main

import (
	"errors"

	"github.com/revelaction/relex/extract"
	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/pattern"
	"github.com/revelaction/relex/render"

	"github.com/urfave/cli/v2"
)

func (a *App) exprCommand() *cli.Command {
	return &cli.Command{
		Name:      "expr",
		Usage:     "Match a constraint sequence against the corpus",
		ArgsUsage: "<constraint>...",
		Description: "Constraints: UPPERCASE word matches the POS tag, dep:LABEL the\n" +
			"dependency label, punct a punctuation token, anything else the\n" +
			"lowercase form. A leading ? marks the constraint optional.\n\n" +
			"   relex expr -d corpus/ ?dep:amod NOUN such as PROPN",
		Flags: []cli.Flag{
			docPathFlag(),
			labelFlag(),
			noColorFlag(),
			noPrefixFlag(),
			formatFlag(),
			nmatchesFlag(),
			jsonFlag(),
			&cli.IntFlag{
				Name:  "doc",
				Usage: "Only scan the doc with this id",
			},
			&cli.IntFlag{
				Name:    "sent",
				Aliases: []string{"s"},
				Usage:   "Only scan this sentence, needs --doc",
			},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() < 1 {
				return errors.New("expr needs at least one constraint")
			}

			seq, err := pattern.Parse(ctx.Args().Slice())
			if err != nil {
				return err
			}

			if ctx.IsSet("sent") && !ctx.IsSet("doc") {
				return errors.New("--sent needs --doc")
			}

			repo, err := a.docRepo(ctx)
			if err != nil {
				return err
			}

			var results []*match.SentenceMatch
			onMatch := func(sm *match.SentenceMatch) error {
				results = append(results, sm)
				return nil
			}

			scan := extract.New(pattern.Pattern{}, repo).WithLabels(ctx.StringSlice("label"))
			if ctx.IsSet("doc") {
				scan = scan.WithDocID(ctx.Int("doc"))
			}

			err = scan.Sentences(seq, 0, onMatch)
			if errors.Is(err, extract.ErrNoTerms) {
				// no literal word to drive the index: full scan
				p := pattern.Pattern{Seqs: []pattern.Sequence{seq}}
				err = extract.Docs(ctx.Context, repo, pattern.Library{p}, ctx.StringSlice("label"), 0, onMatch)
			}
			if err != nil {
				return err
			}

			if ctx.IsSet("sent") {
				results = keepSentence(results, ctx.Int("doc"), ctx.Int("sent"))
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

func keepSentence(results []*match.SentenceMatch, docId, sentId int) []*match.SentenceMatch {
	kept := results[:0]
	for _, sm := range results {
		if sm.Sentence.DocId == docId && sm.Sentence.Id == sentId {
			kept = append(kept, sm)
		}
	}

	return kept
}
