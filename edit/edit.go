package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/revelaction/relex/pattern"
	"github.com/revelaction/relex/storage"

	prompt "github.com/c-bata/go-prompt"
)

const (
	actionAdd    = 1
	actionDelete = 0
)

type Handler struct {
	Library pattern.Library

	PatternReader storage.PatternReader
	PatternWriter storage.PatternWriter
}

func NewHandler(l pattern.Library, r storage.PatternReader, w storage.PatternWriter) *Handler {
	return &Handler{
		Library:       l,
		PatternReader: r,
		PatternWriter: w,
	}
}

func (h *Handler) Run() error {

	fmt.Println("🔑 trailing / deletes the sequence, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("relex edit"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)
		p, seq, action, err := h.parse(in)
		if err != nil {
			fmt.Printf("❌ %s\n", err)
			continue
		}

		if action == actionAdd {
			if seqExistInPattern(p, seq) {
				fmt.Printf("❌ %s\n", "Sequence already exist.")
				continue
			}

			p.Seqs = append(p.Seqs, seq)

		} else {

			if !seqExistInPattern(p, seq) {
				fmt.Printf("❌ %s\n", "Sequence does not exist.")
				continue
			}

			if len(p.Seqs) == 1 {
				fmt.Printf("❌ %s\n", "Cannot delete the last sequence.")
				continue
			}

			p = removeSeqFromPattern(p, seq)
		}

		werr := h.PatternWriter.Write(p)
		if werr != nil {
			return werr
		}

		// reload the pattern after write
		newP, rerr := h.PatternReader.Read(p.Name)
		if rerr != nil {
			return rerr
		}

		replaced := false
		for i, t := range h.Library {
			if t.Name == p.Name {
				h.Library[i] = newP
				replaced = true
				break
			}
		}

		if !replaced {
			h.Library = append(h.Library, newP)
		}
	}
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		// Only one character in line
		if "" == befCursor {
			return s
		}

		tokens := strings.Split(befCursor, " ")

		if len(tokens) == 1 {
			for _, p := range h.Library {
				if strings.HasPrefix(p.Name, befCursor) {
					s = append(s, prompt.Suggest{Text: p.Name, Description: ""})
				}
			}

			return s
		}

		patternName := tokens[0]

		p, ok := h.Library.Find(patternName)

		// First token must be the pattern
		if !ok {
			return s
		}

		rest := strings.Join(tokens[1:], " ")

		if rest == "" {
			return s
		}

		for _, seq := range p.Seqs {
			if strings.HasPrefix(seq.String(), rest) {
				// Do not show sugestion at the end of the text
				if len(rest) < len(seq.String()) {
					s = append(s, prompt.Suggest{Text: seq.String(), Description: ""})
				}
			}
		}

		return s
	}
}

// parse splits the input line in the pattern, the sequence and the
// action. A trailing / on the last constraint marks a delete. An
// unknown pattern name creates a new pattern on add.
func (h *Handler) parse(in string) (pattern.Pattern, pattern.Sequence, int, error) {

	p := pattern.Pattern{}

	tokens := strings.Fields(in)

	action := actionAdd
	if len(tokens) == 0 {
		return p, nil, action, errors.New("No pattern given to edit.")
	}

	lastToken := tokens[len(tokens)-1]
	if strings.HasSuffix(lastToken, "/") {
		action = actionDelete
		tokens[len(tokens)-1] = lastToken[:len(lastToken)-1]
	}

	// exact name first, then prefix convenience
	if found, ok := h.Library.Find(tokens[0]); ok {
		p = found
	} else {
		for _, t := range h.Library {
			if strings.HasPrefix(t.Name, tokens[0]) {
				p = t
				break
			}
		}
	}

	if p.Name == "" {
		if action == actionDelete {
			return p, nil, action, errors.New("There is no such pattern: " + tokens[0] + ".")
		}

		p = pattern.Pattern{Name: tokens[0]}
	}

	args := tokens[1:]
	if len(args) == 0 {
		return p, nil, action, errors.New("No sequence given.")
	}

	seq, parseErr := pattern.Parse(args)
	if parseErr != nil {
		return p, nil, action, parseErr
	}

	return p, seq, action, nil
}

func seqExistInPattern(p pattern.Pattern, seq pattern.Sequence) bool {
	for _, q := range p.Seqs {
		if pattern.EqualSeq(q, seq) {
			return true
		}
	}

	return false
}

func removeSeqFromPattern(p pattern.Pattern, seq pattern.Sequence) pattern.Pattern {

	seqs := make([]pattern.Sequence, 0)

	for index, q := range p.Seqs {
		if !pattern.EqualSeq(q, seq) {
			continue
		}

		// Equal: append till index and after index
		seqs = append(seqs, p.Seqs[:index]...)
		seqs = append(seqs, p.Seqs[index+1:]...)
		break
	}

	return pattern.Pattern{Name: p.Name, Seqs: seqs}
}
