package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/revelaction/relex/extract"
	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/pattern"
	sent "github.com/revelaction/relex/sentence"
)

const (
	partialOffset = 6
	Defaultformat = "all"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

func SupportedFormats() []string {
	return []string{"all", "part", "span", "aggr"}
}

// Renderer writes match results to an output.
type Renderer interface {
	Render(results []*match.SentenceMatch)
	RenderPairs(pairs []extract.PairMatch)
}

// TermRenderer writes results as text lines for the terminal.
type TermRenderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	PrefixDocFunc     func(*match.SentenceMatch) string
	PrefixPatternFunc func(*match.SentenceMatch) string

	// Format determines the format of the sentence
	//
	// all: print all sentence
	// part: print the sorrounding of the spans in the sentence, cut the rest.
	// span: print only the matched spans of the sentence
	Format string

	// Show only sentences with this amount of spans
	NumSpans int

	DocNames map[int]string
}

var _ Renderer = (*TermRenderer)(nil)

func NewTermRenderer(w io.Writer) *TermRenderer {
	return &TermRenderer{
		W:        w,
		Format:   Defaultformat,
		DocNames: map[int]string{},
	}
}

func (r *TermRenderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

// Render prints the sentence matches, one line per sentence. It
// expects results sorted by span count, the NumSpans cut relies on it.
func (r *TermRenderer) Render(results []*match.SentenceMatch) {

	// if aggr format, we collect the aggr lemmas here
	aggregated := map[string]int{}

	for _, sm := range results {
		if r.NumSpans > 0 && sm.NumSpans < r.NumSpans {
			break
		}

		prefixDoc := r.buildPrefixDoc(sm)
		prefixPattern := r.buildPrefixPattern(sm)

		var text string
		switch r.Format {
		case "part":
			text = r.part(sm)
		case "span":
			text = strings.Join(sm.Texts(), " | ")
		case "aggr":
			r.aggregateSpans(sm, aggregated)

			continue
		default:
			text = r.sentence(sm.Sentence.Tokens, sm.Covers)
		}

		fmt.Fprintf(r.W, "%s%s%s\n", prefixDoc, prefixPattern, strings.ReplaceAll(text, "\n", " "))
	}

	if r.Format == "aggr" {
		r.aggrSpans(aggregated)
	}
}

// RenderPairs prints one extracted relation per line. The all format
// appends the source sentence.
func (r *TermRenderer) RenderPairs(pairs []extract.PairMatch) {
	for _, pm := range pairs {
		var prefix string
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%37s %2d %5d %7s] ✍  ", r.title(pm.Sentence.DocId), pm.Sentence.DocId, pm.Sentence.Id, pm.Voice)
		}

		subject := pm.Pair.Subject
		if subject == "" {
			subject = "-"
		}

		object := pm.Pair.Object
		if object == "" {
			object = "-"
		}

		if r.HasColor {
			subject = Green256 + subject + Off
			object = Yellow256 + object + Off
		}

		text := fmt.Sprintf("%s ⟶ %s", subject, object)
		if r.Format == "all" {
			text = text + "  " + strings.ReplaceAll(r.sentence(pm.Sentence.Tokens, nil), "\n", " ")
		}

		fmt.Fprintf(r.W, "%s%s\n", prefix, text)
	}
}

// Sentence prints the reconstructed sentence text without highlights.
func (r *TermRenderer) Sentence(tokens []sent.Token, prefix string) {
	text := r.sentence(tokens, nil)
	fmt.Fprintf(r.W, "%s%s\n", prefix, strings.ReplaceAll(text, "\n", " "))
}

// Sequences prints pattern sequences in a mode compatible with the
// sequence parser. This sequence
//
//	[{"pos":"NOUN"},{"lower":"such"},{"lower":"as"},{"pos":"PROPN"}]
//
// will be rendered as:
//
//	NOUN such as PROPN
func (r *TermRenderer) Sequences(seqs []pattern.Sequence) {
	for _, q := range seqs {
		fmt.Fprintf(r.W, "%s\n", q.String())
	}
}

// sentence reconstructs the source text of the tokens. covered marks
// token positions to highlight, nil disables highlighting.
//
// Both (or more) parts of a multi token word carry the same text and
// the same idx:
//
//	{
//	  "id": 455,
//	  "pos": "VERB",
//	  "text": "envolverse",
//	  "idx": 2431,
//	  "lemma": "envolver"
//	},
//	{
//	  "id": 456,
//	  "pos": "PRON",
//	  "text": "envolverse",
//	  "idx": 2431,
//	  "lemma": "él"
//	},
//
// The idx field is the rune offset of the token in the original txt
// source. By having both tokens the same idx, we avoid rendering the
// token text again.
func (r *TermRenderer) sentence(tokens []sent.Token, covered func(int) bool) string {
	var str strings.Builder
	var lastIdx, lastLen int
	for i, token := range tokens {
		l := utf8.RuneCountInString(token.Text)
		if i == 0 {
			str.WriteString(r.colorToken(token, i, covered))
			lastIdx = token.Idx
			lastLen = l
			continue
		}

		diff := token.Idx - lastIdx
		if diff > 0 {
			if pad := diff - lastLen; pad > 0 {
				str.WriteString(strings.Repeat(" ", pad))
			}

			str.WriteString(r.colorToken(token, i, covered))
		}

		lastIdx = token.Idx
		lastLen = l
	}

	return str.String()
}

// part renders the surrounding of the spans, cutting the rest of the
// sentence.
func (r *TermRenderer) part(sm *match.SentenceMatch) string {
	if len(sm.Spans) == 0 {
		return r.sentence(sm.Sentence.Tokens, sm.Covers)
	}

	// spans are ordered by start
	first := sm.Spans[0].Start

	last := 0
	for _, sp := range sm.Spans {
		if sp.End > last {
			last = sp.End
		}
	}

	start := 0
	if first > partialOffset {
		start = first - partialOffset
	}

	end := len(sm.Sentence.Tokens) - 1
	if end-(last-1) > partialOffset {
		end = last - 1 + partialOffset
	}

	window := sm.Sentence.Tokens[start : end+1]
	return r.sentence(window, func(i int) bool { return sm.Covers(start + i) })
}

// aggregateSpans counts the lemma form of each span across all
// rendered sentences.
func (r *TermRenderer) aggregateSpans(sm *match.SentenceMatch, aggregated map[string]int) {
	for _, sp := range sm.Spans {
		var lemmas []string
		for _, t := range sm.Sentence.Tokens[sp.Start:sp.End] {
			lemmas = append(lemmas, t.Lemma)
		}

		aggregated[strings.Join(lemmas, " ")]++
	}
}

func (r *TermRenderer) colorToken(token sent.Token, i int, covered func(int) bool) string {
	if !r.HasColor || covered == nil {
		return token.Text
	}

	if covered(i) {
		return Green256 + token.Text + Off
	}

	return token.Text
}

func (r *TermRenderer) buildPrefixDoc(sm *match.SentenceMatch) string {

	if !r.HasPrefix {
		return PrefixFuncEmpty(sm)
	}

	if r.PrefixDocFunc != nil {
		return r.PrefixDocFunc(sm)
	}

	// Default
	return fmt.Sprintf("[%37s %2d %5d:%2d] ✍  ", r.title(sm.Sentence.DocId), sm.Sentence.DocId, sm.Sentence.Id, sm.NumSpans)
}

func PrefixFuncEmpty(sm *match.SentenceMatch) string {
	return ""
}

func PrefixFuncIconHand(sm *match.SentenceMatch) string {
	return fmt.Sprintf("%2d ✍  ", sm.Sentence.Id)
}

func PrefixFuncIconLabel(sm *match.SentenceMatch) string {
	return fmt.Sprintf("%2d 🔖 ", sm.Sentence.Id)
}

func (r *TermRenderer) buildPrefixPattern(sm *match.SentenceMatch) string {

	if !r.HasPrefix {
		return PrefixFuncEmpty(sm)
	}

	if r.PrefixPatternFunc != nil {
		return r.PrefixPatternFunc(sm)
	}

	patternPrefix := "🏷  " + Yellow256 + sm.PatternName + Off
	return fmt.Sprintf("[%-50s] ✍  ", patternPrefix)
}

func (r *TermRenderer) title(docId int) string {
	title := r.DocNames[docId]
	l := len(title)
	var part string
	if l <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = title[:20]
	}

	return Grey256 + part + Off
}

// NextFormat sets the TermRenderer Format option to a different one,
// following the SupportedFormats() order.
func (r *TermRenderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			switch i {
			case len(supported) - 1:
				r.Format = supported[0]
			default:
				r.Format = supported[i+1]
			}

			break
		}
	}
}

func (r *TermRenderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}

func (r *TermRenderer) aggrSpans(aggregated map[string]int) {
	// flatten map to use sortSlice
	sl := []struct {
		NumSent int
		SpanStr string
	}{}

	for spanStr, count := range aggregated {
		sl = append(sl, struct {
			NumSent int
			SpanStr string
		}{count, spanStr})
	}

	// Sort
	sort.SliceStable(sl, func(i, j int) bool {

		// first by num sentences
		if sl[i].NumSent > sl[j].NumSent {
			return true
		}

		if sl[i].NumSent < sl[j].NumSent {
			return false
		}

		// len of span string
		if len(sl[i].SpanStr) < len(sl[j].SpanStr) {
			return true
		}

		return false
	})

	var prefix string
	for _, s := range sl {
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%5d] ✍  ", s.NumSent)
		}

		fmt.Fprintf(r.W, "%s%s\n", prefix, s.SpanStr)
	}
}
