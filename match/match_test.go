package match

import (
	"reflect"
	"testing"

	"github.com/revelaction/relex/pattern"
	sent "github.com/revelaction/relex/sentence"
)

func tk(text string, idx int, pos, dep string) sent.Token {
	return sent.Token{Text: text, Idx: idx, Pos: pos, Dep: dep}
}

func gdpSentence() sent.Sentence {
	return sent.Sentence{
		Tokens: []sent.Token{
			tk("GDP", 0, "NOUN", "nsubj"),
			tk("in", 4, "ADP", "prep"),
			tk("developing", 7, "VERB", "amod"),
			tk("countries", 18, "NOUN", "pobj"),
			tk("such", 28, "ADJ", "amod"),
			tk("as", 33, "SCONJ", "prep"),
			tk("Vietnam", 36, "PROPN", "pobj"),
			tk("will", 44, "AUX", "aux"),
			tk("continue", 49, "VERB", "ROOT"),
			tk("growing", 58, "VERB", "xcomp"),
			tk("at", 66, "ADP", "prep"),
			tk("a", 69, "DET", "det"),
			tk("high", 71, "ADJ", "amod"),
			tk("rate", 76, "NOUN", "pobj"),
			tk(".", 80, "PUNCT", "punct"),
		},
	}
}

func carSentence() sent.Sentence {
	return sent.Sentence{
		Tokens: []sent.Token{
			tk("Here", 0, "ADV", "advmod"),
			tk("is", 5, "AUX", "ROOT"),
			tk("how", 8, "SCONJ", "advmod"),
			tk("you", 12, "PRON", "nsubj"),
			tk("can", 16, "AUX", "aux"),
			tk("keep", 20, "VERB", "ccomp"),
			tk("your", 25, "PRON", "poss"),
			tk("car", 30, "NOUN", "dobj"),
			tk("and", 34, "CCONJ", "cc"),
			tk("other", 38, "ADJ", "amod"),
			tk("vehicles", 44, "NOUN", "conj"),
			tk("clean", 53, "ADJ", "oprd"),
			tk(".", 58, "PUNCT", "punct"),
		},
	}
}

func injuredSentence() sent.Sentence {
	return sent.Sentence{
		Tokens: []sent.Token{
			tk("Eight", 0, "NUM", "nummod"),
			tk("people", 6, "NOUN", "nsubjpass"),
			tk(",", 12, "PUNCT", "punct"),
			tk("including", 14, "VERB", "prep"),
			tk("two", 24, "NUM", "nummod"),
			tk("children", 28, "NOUN", "pobj"),
			tk(",", 36, "PUNCT", "punct"),
			tk("were", 38, "AUX", "auxpass"),
			tk("injured", 43, "VERB", "ROOT"),
			tk("in", 51, "ADP", "prep"),
			tk("the", 54, "DET", "det"),
			tk("explosion", 58, "NOUN", "pobj"),
		},
	}
}

func fruitsSentence() sent.Sentence {
	return sent.Sentence{
		Tokens: []sent.Token{
			tk("A", 0, "DET", "det"),
			tk("healthy", 2, "ADJ", "amod"),
			tk("eating", 10, "NOUN", "compound"),
			tk("pattern", 17, "NOUN", "nsubj"),
			tk("includes", 25, "VERB", "ROOT"),
			tk("fruits", 34, "NOUN", "dobj"),
			tk(",", 40, "PUNCT", "punct"),
			tk("especially", 42, "ADV", "advmod"),
			tk("whole", 53, "ADJ", "amod"),
			tk("fruits", 59, "NOUN", "appos"),
			tk(".", 65, "PUNCT", "punct"),
		},
	}
}

func builtinSeq(t *testing.T, name string) pattern.Sequence {
	t.Helper()
	p, ok := pattern.Builtin().Find(name)
	if !ok {
		t.Fatalf("builtin pattern %s not found", name)
	}
	return p.Seqs[0]
}

func TestSpansSuchAs(t *testing.T) {
	s := gdpSentence()
	spans := Spans(s, builtinSeq(t, "such-as"))

	// the anchor walk reports the overlapping shorter match too
	want := []Span{{Start: 2, End: 7}, {Start: 3, End: 7}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %+v, want %+v", spans, want)
	}

	if got := s.Span(spans[0].Start, spans[0].End); got != "developing countries such as Vietnam" {
		t.Errorf("got %q, want %q", got, "developing countries such as Vietnam")
	}

	if got := s.Span(spans[1].Start, spans[1].End); got != "countries such as Vietnam" {
		t.Errorf("got %q, want %q", got, "countries such as Vietnam")
	}
}

func TestSpansAndOther(t *testing.T) {
	s := carSentence()
	spans := Spans(s, builtinSeq(t, "and-other"))

	want := []Span{{Start: 7, End: 11}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %+v, want %+v", spans, want)
	}

	if got := s.Span(spans[0].Start, spans[0].End); got != "car and other vehicles" {
		t.Errorf("got %q, want %q", got, "car and other vehicles")
	}
}

func TestSpansIncluding(t *testing.T) {
	s := injuredSentence()
	spans := Spans(s, builtinSeq(t, "including"))

	want := []Span{{Start: 0, End: 6}, {Start: 1, End: 6}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %+v, want %+v", spans, want)
	}

	if got := s.Span(spans[0].Start, spans[0].End); got != "Eight people, including two children" {
		t.Errorf("got %q, want %q", got, "Eight people, including two children")
	}
}

func TestSpansEspecially(t *testing.T) {
	s := fruitsSentence()
	spans := Spans(s, builtinSeq(t, "especially"))

	want := []Span{{Start: 5, End: 10}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %+v, want %+v", spans, want)
	}

	if got := s.Span(spans[0].Start, spans[0].End); got != "fruits, especially whole fruits" {
		t.Errorf("got %q, want %q", got, "fruits, especially whole fruits")
	}
}

func TestSpansNoBacktrack(t *testing.T) {
	seq := pattern.Sequence{
		{Pos: "NOUN", Optional: true},
		{Pos: "NOUN"},
	}

	// the optional constraint greedily takes the only noun and the
	// mandatory one is left without; the walk does not retry
	s := sent.Sentence{Tokens: []sent.Token{
		tk("cat", 0, "NOUN", "nsubj"),
		tk("runs", 4, "VERB", "ROOT"),
	}}

	if spans := Spans(s, seq); spans != nil {
		t.Fatalf("got %+v, want none", spans)
	}

	// with two nouns only the anchor at 0 survives: at anchor 1 the
	// optional takes the last noun and starves the mandatory one
	s = sent.Sentence{Tokens: []sent.Token{
		tk("cat", 0, "NOUN", "compound"),
		tk("dog", 4, "NOUN", "nsubj"),
	}}

	want := []Span{{Start: 0, End: 2}}
	if spans := Spans(s, seq); !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %+v, want %+v", spans, want)
	}
}

func TestSpansOptionalAtEnd(t *testing.T) {
	seq := pattern.Sequence{
		{Pos: "NOUN"},
		{Pos: "NOUN", Optional: true},
	}

	s := sent.Sentence{Tokens: []sent.Token{
		tk("cat", 0, "NOUN", "nsubj"),
	}}

	want := []Span{{Start: 0, End: 1}}
	if spans := Spans(s, seq); !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %+v, want %+v", spans, want)
	}
}

func TestSpansEmptySentence(t *testing.T) {
	if spans := Spans(sent.Sentence{}, builtinSeq(t, "such-as")); spans != nil {
		t.Fatalf("got %+v, want none", spans)
	}
}

func TestSpansZeroWidth(t *testing.T) {
	// all-optional sequences never match on zero consumed tokens
	seq := pattern.Sequence{
		{Lower: "and", Optional: true},
	}

	s := sent.Sentence{Tokens: []sent.Token{
		tk("cat", 0, "NOUN", "nsubj"),
	}}

	if spans := Spans(s, seq); spans != nil {
		t.Fatalf("got %+v, want none", spans)
	}
}

func TestMatchSentence(t *testing.T) {
	p, _ := pattern.Builtin().Find("such-as")
	m := NewMatcher(p)

	sm := m.MatchSentence(gdpSentence())
	if sm == nil {
		t.Fatal("expected a match")
	}

	if sm.PatternName != "such-as" {
		t.Errorf("got %q, want such-as", sm.PatternName)
	}

	if sm.NumSpans != 2 {
		t.Errorf("got %d spans, want 2", sm.NumSpans)
	}

	texts := sm.Texts()
	if texts[0] != "developing countries such as Vietnam" {
		t.Errorf("got %q", texts[0])
	}

	if sm := m.MatchSentence(carSentence()); sm != nil {
		t.Errorf("got %+v, want nil", sm)
	}
}

func TestMatchSentenceArgSeq(t *testing.T) {
	p, _ := pattern.Builtin().Find("such-as")
	m := NewMatcher(p)
	m.AddSequence(pattern.Sequence{{Lower: "gdp"}})

	sm := m.MatchSentence(gdpSentence())
	if sm == nil {
		t.Fatal("expected a match")
	}

	// the arg spans join the result, flagged with Seq -1
	if sm.NumSpans != 3 {
		t.Fatalf("got %d spans, want 3", sm.NumSpans)
	}

	if sm.Spans[0].Seq != -1 || sm.Spans[0].Start != 0 {
		t.Errorf("got %+v, want arg span at 0", sm.Spans[0])
	}

	// AND semantic: pattern matches but the arg sequence does not
	m.AddSequence(pattern.Sequence{{Lower: "bicycle"}})
	if sm := m.MatchSentence(gdpSentence()); sm != nil {
		t.Errorf("got %+v, want nil", sm)
	}
}

func TestMatchSentenceSeqOnly(t *testing.T) {
	m := NewMatcher(pattern.Pattern{})
	m.AddSequence(pattern.Sequence{{Lower: "vietnam"}})

	sm := m.MatchSentence(gdpSentence())
	if sm == nil {
		t.Fatal("expected a match")
	}

	if sm.PatternName != "" {
		t.Errorf("got %q, want empty pattern name", sm.PatternName)
	}

	if sm.NumSpans != 1 || sm.Spans[0].Start != 6 {
		t.Errorf("got %+v", sm.Spans)
	}
}

func TestMatchSentenceRepeatable(t *testing.T) {
	p, _ := pattern.Builtin().Find("including")
	m := NewMatcher(p)

	first := m.MatchSentence(injuredSentence())
	second := m.MatchSentence(injuredSentence())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between calls: %+v vs %+v", first, second)
	}
}

func TestCovers(t *testing.T) {
	p, _ := pattern.Builtin().Find("especially")
	m := NewMatcher(p)

	sm := m.MatchSentence(fruitsSentence())
	if sm == nil {
		t.Fatal("expected a match")
	}

	for i := 5; i < 10; i++ {
		if !sm.Covers(i) {
			t.Errorf("position %d not covered", i)
		}
	}

	for _, i := range []int{0, 4, 10} {
		if sm.Covers(i) {
			t.Errorf("position %d covered", i)
		}
	}
}

func BenchmarkMatchSentence(b *testing.B) {
	p, _ := pattern.Builtin().Find("including")
	m := NewMatcher(p)
	s := injuredSentence()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if sm := m.MatchSentence(s); sm == nil {
			b.Fatal("expected a match")
		}
	}
}
