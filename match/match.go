package match

import (
	"sort"

	"github.com/revelaction/relex/pattern"
	sent "github.com/revelaction/relex/sentence"
)

// Span is one contiguous token run matched by a sequence. Start and
// End delimit the run [Start, End) in sentence token positions. Seq is
// the index of the sequence inside its pattern, -1 when the span comes
// from the command line sequence.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Seq   int `json:"seq"`
}

// Spans returns every match of seq in s, anchoring one attempt at each
// token position. Anchors are not consumed by earlier matches: a span
// may start inside the previous one, so overlapping spans are all
// reported, in anchor order.
//
// At an anchor the constraints consume tokens in order. An optional
// constraint takes the current token when it matches and is skipped
// otherwise; it never gives a taken token back to let a later
// constraint succeed (greedy, no backtracking).
func Spans(s sent.Sentence, seq pattern.Sequence) []Span {
	var spans []Span
	for offset := range s.Tokens {
		if end, ok := walk(s.Tokens, offset, seq); ok {
			spans = append(spans, Span{Start: offset, End: end})
		}
	}

	return spans
}

// walk consumes seq anchored at offset and returns the position after
// the last consumed token.
func walk(tokens []sent.Token, offset int, seq pattern.Sequence) (int, bool) {
	cursor := offset
	for _, c := range seq {
		if c.Optional {
			if cursor < len(tokens) && isTokenMatch(tokens[cursor], c) {
				cursor++
			}

			continue
		}

		if cursor >= len(tokens) {
			return 0, false
		}

		if !isTokenMatch(tokens[cursor], c) {
			return 0, false
		}

		cursor++
	}

	// an all-optional sequence that consumed nothing is no match
	if cursor == offset {
		return 0, false
	}

	return cursor, true
}

func isTokenMatch(t sent.Token, c pattern.Constraint) bool {
	if len(c.Lower) > 0 {
		if c.Lower != t.Low() {
			return false
		}
	}

	if len(c.Pos) > 0 {
		if c.Pos != t.Pos {
			return false
		}
	}

	if len(c.Dep) > 0 {
		if c.Dep != t.Dep {
			return false
		}
	}

	if c.Punct && !t.IsPunct() {
		return false
	}

	return true
}

// Matcher matches sentences against a Pattern (+ ArgSeq).
// A set of sentences can be matched by repeated MatchSentence calls.
type Matcher struct {
	Pattern pattern.Pattern

	// ArgSeq is an additional sequence passed as argument to the
	// command line.
	// ArgSeq has an AND semantic, it must match the sentence in
	// addition to one or more sequences of the Pattern.
	//
	// So if this is not empty, the match is: sentences that match one
	// of the pattern sequences AND this sequence.
	ArgSeq pattern.Sequence
}

func NewMatcher(p pattern.Pattern) *Matcher {
	return &Matcher{
		Pattern: p,
	}
}

func (m *Matcher) AddSequence(seq pattern.Sequence) {
	m.ArgSeq = seq
}

// SentenceMatch represents a sentence matched by "one or more"
// sequences, holding every span of every sequence that matched.
type SentenceMatch struct {

	// PatternName is the pattern that has some sequence matching this
	// sentence. Empty for bare command line sequence matches.
	PatternName string `json:"pattern,omitempty"`

	// Spans of all matched sequences, ordered by (Start, End).
	Spans []Span `json:"spans"`

	// NumSpans is the number of spans matched. Used to sort the
	// sentences by relevance.
	NumSpans int `json:"num_spans"`

	// The matched sentence. The output text is created using this.
	Sentence sent.Sentence `json:"sentence"`
}

// Texts returns the reconstructed source text of each span.
func (sm *SentenceMatch) Texts() []string {
	texts := make([]string, 0, len(sm.Spans))
	for _, sp := range sm.Spans {
		texts = append(texts, sm.Sentence.Span(sp.Start, sp.End))
	}

	return texts
}

// Covers reports whether the token position i falls inside some span.
// Used to highlight the matched words.
func (sm *SentenceMatch) Covers(i int) bool {
	for _, sp := range sm.Spans {
		if i >= sp.Start && i < sp.End {
			return true
		}
	}

	return false
}

// MatchSentence matches a possible Pattern AND a possible extra
// sequence for a given sentence.
//
// The semantic is as follows:
//
//   - If there are both a Pattern and an ArgSeq, a sentence match only
//     happens if the ArgSeq matches AND 'one or more' of the pattern
//     sequences also match.
//
//   - If there is only a Pattern, a sentence match only happens if
//     'one or more' of the pattern sequences match.
//
//   - If there is only an ArgSeq, a sentence match only happens if the
//     ArgSeq matches.
//
// A sentence without matches yields nil, never an empty SentenceMatch.
func (m *Matcher) MatchSentence(s sent.Sentence) *SentenceMatch {
	hasPattern := len(m.Pattern.Seqs) > 0
	hasSeq := len(m.ArgSeq) > 0

	var spans []Span

	if hasSeq {
		argSpans := Spans(s, m.ArgSeq)
		if len(argSpans) == 0 {
			return nil
		}

		for _, sp := range argSpans {
			sp.Seq = -1
			spans = append(spans, sp)
		}
	}

	numSeqs := 0
	for i, seq := range m.Pattern.Seqs {
		seqSpans := Spans(s, seq)
		if len(seqSpans) == 0 {
			continue
		}

		numSeqs++
		for _, sp := range seqSpans {
			sp.Seq = i
			spans = append(spans, sp)
		}
	}

	if hasPattern && numSeqs == 0 {
		return nil
	}

	if len(spans) == 0 {
		return nil
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}

		return spans[i].End < spans[j].End
	})

	return &SentenceMatch{
		PatternName: m.Pattern.Name,
		Spans:       spans,
		NumSpans:    len(spans),
		Sentence:    s,
	}
}
