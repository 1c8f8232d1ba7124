package render

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/revelaction/relex/extract"
	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/relation"
	sent "github.com/revelaction/relex/sentence"
)

// tokens builds space separated tokens with consistent idx offsets.
func tokens(words ...string) []sent.Token {
	var ts []sent.Token
	idx := 0
	for i, w := range words {
		ts = append(ts, sent.Token{
			Id:    i,
			Index: i,
			Text:  w,
			Lemma: strings.ToLower(w),
			Idx:   idx,
		})

		idx += utf8.RuneCountInString(w) + 1
	}

	return ts
}

func suchAsMatch() *match.SentenceMatch {
	return &match.SentenceMatch{
		PatternName: "such-as",
		Spans:       []match.Span{{Start: 0, End: 4, Seq: 0}},
		NumSpans:    1,
		Sentence: sent.Sentence{
			Id:     3,
			DocId:  0,
			Tokens: tokens("Cities", "such", "as", "Berlin", "grow"),
		},
	}
}

func TestRenderAll(t *testing.T) {
	var buf bytes.Buffer
	r := NewTermRenderer(&buf)

	r.Render([]*match.SentenceMatch{suchAsMatch()})

	want := "Cities such as Berlin grow\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRenderAllColor(t *testing.T) {
	var buf bytes.Buffer
	r := NewTermRenderer(&buf)
	r.HasColor = true

	r.Render([]*match.SentenceMatch{suchAsMatch()})

	out := buf.String()
	if !strings.Contains(out, Green256+"Berlin"+Off) {
		t.Errorf("covered token not highlighted: %q", out)
	}

	if strings.Contains(out, Green256+"grow"+Off) {
		t.Errorf("uncovered token highlighted: %q", out)
	}
}

func TestRenderSpanFormat(t *testing.T) {
	var buf bytes.Buffer
	r := NewTermRenderer(&buf)
	r.Format = "span"

	r.Render([]*match.SentenceMatch{suchAsMatch()})

	want := "Cities such as Berlin\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRenderPartFormat(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", "f", "g", "h", "cities", "Berlin"}

	sm := &match.SentenceMatch{
		PatternName: "such-as",
		Spans:       []match.Span{{Start: 8, End: 10, Seq: 0}},
		NumSpans:    1,
		Sentence:    sent.Sentence{Tokens: tokens(words...)},
	}

	var buf bytes.Buffer
	r := NewTermRenderer(&buf)
	r.Format = "part"

	r.Render([]*match.SentenceMatch{sm})

	// six tokens of context before the span, nothing cut after
	want := strings.Join(words[2:], " ") + "\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRenderAggrFormat(t *testing.T) {
	var buf bytes.Buffer
	r := NewTermRenderer(&buf)
	r.Format = "aggr"

	r.Render([]*match.SentenceMatch{suchAsMatch(), suchAsMatch()})

	want := "cities such as berlin\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRenderNumSpansCut(t *testing.T) {
	one := suchAsMatch()

	two := suchAsMatch()
	two.Spans = append(two.Spans, match.Span{Start: 1, End: 4, Seq: 0})
	two.NumSpans = 2

	var buf bytes.Buffer
	r := NewTermRenderer(&buf)
	r.NumSpans = 2

	// sorted by relevance, the cut stops at the first below
	r.Render([]*match.SentenceMatch{two, one})

	lines := strings.Count(buf.String(), "\n")
	if lines != 1 {
		t.Errorf("got %d lines, want 1", lines)
	}
}

func TestRenderPrefix(t *testing.T) {
	var buf bytes.Buffer
	r := NewTermRenderer(&buf)
	r.HasPrefix = true
	r.AddDocName(0, "cities.json")

	r.Render([]*match.SentenceMatch{suchAsMatch()})

	out := buf.String()
	if !strings.Contains(out, "cities.json") {
		t.Errorf("doc name missing from prefix: %q", out)
	}

	if !strings.Contains(out, "such-as") {
		t.Errorf("pattern name missing from prefix: %q", out)
	}
}

func TestRenderPairs(t *testing.T) {
	pairs := []extract.PairMatch{
		{
			Sentence: sent.Sentence{Tokens: tokens("Initrode", "was", "acquired", "by", "Initech")},
			Voice:    "passive",
			Pair:     relation.Pair{Subject: "Initech", Object: "Initrode"},
		},
		{
			Sentence: sent.Sentence{Tokens: tokens("Nothing", "happened")},
			Voice:    "active",
			Pair:     relation.Pair{},
		},
	}

	var buf bytes.Buffer
	r := NewTermRenderer(&buf)
	r.Format = "span"

	r.RenderPairs(pairs)

	want := "Initech ⟶ Initrode\n- ⟶ -\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRenderPairsAllFormat(t *testing.T) {
	pairs := []extract.PairMatch{
		{
			Sentence: sent.Sentence{Tokens: tokens("Initech", "acquired", "Initrode")},
			Voice:    "active",
			Pair:     relation.Pair{Subject: "Initech", Object: "Initrode"},
		},
	}

	var buf bytes.Buffer
	r := NewTermRenderer(&buf)

	r.RenderPairs(pairs)

	out := buf.String()
	if !strings.Contains(out, "Initech acquired Initrode") {
		t.Errorf("source sentence missing: %q", out)
	}
}

func TestSentence(t *testing.T) {
	var buf bytes.Buffer
	r := NewTermRenderer(&buf)

	r.Sentence(tokens("The", "weather", "is", "mild"), "> ")

	want := "> The weather is mild\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestNextFormat(t *testing.T) {
	r := NewTermRenderer(&bytes.Buffer{})

	want := []string{"part", "span", "aggr", "all"}
	for _, w := range want {
		r.NextFormat()
		if r.Format != w {
			t.Fatalf("got format %q, want %q", r.Format, w)
		}
	}
}

func TestNextPrefix(t *testing.T) {
	r := NewTermRenderer(&bytes.Buffer{})

	r.NextPrefix()
	if !r.HasPrefix {
		t.Error("prefix not toggled on")
	}

	r.NextPrefix()
	if r.HasPrefix {
		t.Error("prefix not toggled off")
	}
}
