package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/revelaction/relex/extract"
	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/pattern"
	"github.com/revelaction/relex/render"
	"github.com/revelaction/relex/storage"

	"github.com/c-bata/go-prompt"
)

const (
	// candidateLimit caps the candidates per term set to avoid hang
	candidateLimit = 2000

	// relKeyword switches the input line to relation pair extraction
	relKeyword = "rel"
)

type Handler struct {
	DocRepo        storage.DocReader
	PatternLibrary pattern.Library
	Renderer       *render.TermRenderer

	// RelationVerbs are the verbs used by the rel keyword when the
	// input line gives none.
	RelationVerbs []string
}

func NewHandler(dr storage.DocReader, pl pattern.Library, r *render.TermRenderer) *Handler {
	return &Handler{
		DocRepo:        dr,
		PatternLibrary: pl,
		Renderer:       r,
	}
}

func (h *Handler) Run() error {

	fmt.Println("🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")
	// Get all patterns from the library directly
	patternNames := h.PatternLibrary.Names()

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(patternNames),
			prompt.OptionTitle("relex query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Println("Format set to: " + h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Println("Prefix set to " + fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		fields := strings.Fields(in)
		if len(fields) > 0 && fields[0] == relKeyword {
			h.relations(fields[1:])
			continue
		}

		p, seq, err := h.parse(in)
		if err != nil {
			continue
		}

		// Fetch doc names for rendering
		docList, err := h.DocRepo.List("")
		if err != nil {
			fmt.Printf("Error listing docs: %v\n", err)
			continue
		}
		docNames := make(map[int]string)
		for _, d := range docList {
			docNames[d.Id] = d.Title
		}

		// The term index retrieves the candidates, the matcher does the
		// fine-grained constraint matching on them.
		var results []*match.SentenceMatch

		scan := extract.New(p, h.DocRepo)
		err = scan.Sentences(seq, candidateLimit, func(sm *match.SentenceMatch) error {
			h.Renderer.AddDocName(sm.Sentence.DocId, docNames[sm.Sentence.DocId])
			results = append(results, sm)
			return nil
		})
		if err != nil {
			fmt.Printf("Error fetching candidates: %v\n", err)
			continue
		}

		// Relevance > DocID > SentenceID
		extract.Sort(results)

		h.Renderer.Render(results)
	}
}

// relations extracts subject/object pairs for the given verbs, falling
// back to the configured ones.
func (h *Handler) relations(verbs []string) {
	if len(verbs) == 0 {
		verbs = h.RelationVerbs
	}

	var pairs []extract.PairMatch
	err := extract.Relations(h.DocRepo, verbs, nil, nil, candidateLimit, func(pm extract.PairMatch) error {
		pairs = append(pairs, pm)
		return nil
	})
	if err != nil {
		fmt.Printf("Error fetching relations: %v\n", err)
		return
	}

	h.Renderer.RenderPairs(pairs)
}

func (h *Handler) completer(patternNames []string) func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		// Only one character in line
		if "" == befCursor {
			return s
		}

		tokens := strings.Split(befCursor, " ")
		firstToken := tokens[0]

		if len(tokens) == 1 {
			s = append(s, h.completePattern(firstToken)...)
			s = append(s, h.completeConstraint(firstToken)...)
			return s
		}

		// len > 1
		isFirstPattern := false
		for _, p := range h.PatternLibrary {
			if p.Name == firstToken {
				isFirstPattern = true
				break
			}
		}

		// len = 2 and first is pattern
		if len(tokens) == 2 {
			if isFirstPattern {
				s = append(s, h.completeConstraint(tokens[1])...)
			}

			return s
		}

		// len > 2, complete as sequence string
		rest := befCursor

		if isFirstPattern {
			rest = befCursor[len(firstToken)+1:]
		}

		for _, p := range h.PatternLibrary {
			for _, seq := range p.Seqs {
				if len(rest) > len(seq.String()) {
					continue
				}

				if strings.HasPrefix(seq.String(), rest) {
					wordBeforeLen := len(in.GetWordBeforeCursor())

					start := len(rest) - wordBeforeLen
					restSeq := seq.String()[start:]
					s = append(s, prompt.Suggest{Text: restSeq, Description: p.Name})
					continue
				}
			}
		}

		return s
	}
}

func (h *Handler) completePattern(token string) (s []prompt.Suggest) {
	if strings.HasPrefix(relKeyword, token) {
		s = append(s, prompt.Suggest{Text: relKeyword, Description: "⚖  relation pairs"})
	}

	for _, p := range h.PatternLibrary {
		if strings.HasPrefix(p.Name, token) {
			s = append(s, prompt.Suggest{Text: p.Name, Description: "🔖 " + p.Name})
		}
	}

	return s
}

func (h *Handler) completeConstraint(token string) (s []prompt.Suggest) {
	for _, p := range h.PatternLibrary {
		for _, seq := range p.Seqs {
			for _, c := range seq {
				// Lower
				if c.Lower != "" && strings.HasPrefix(c.Lower, token) {
					s = append(s, prompt.Suggest{Text: seq.String(), Description: p.Name})
					continue
				}

				// Pos
				if c.Pos != "" && strings.HasPrefix(c.Pos, token) {
					s = append(s, prompt.Suggest{Text: seq.String(), Description: p.Name})
				}
			}
		}
	}

	return s
}

// parse splits the input line in an optional leading pattern name and
// a constraint sequence.
func (h *Handler) parse(in string) (pattern.Pattern, pattern.Sequence, error) {

	p := pattern.Pattern{}

	tokens := strings.Fields(in)

	if len(tokens) == 0 {
		return p, nil, errors.New("no pattern given to refine")
	}

	args := tokens

	// First token may be a pattern of the library
	if found, ok := h.PatternLibrary.Find(tokens[0]); ok {
		p = found
		args = tokens[1:]
	}

	if len(args) == 0 {
		if p.Name == "" {
			return p, nil, errors.New("there are no pattern and no sequence")
		}

		return p, nil, nil
	}

	seq, parseErr := pattern.Parse(args)
	if parseErr != nil {
		return p, nil, parseErr
	}

	return p, seq, nil
}
