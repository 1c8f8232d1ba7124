package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/revelaction/relex/extract"
	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/relation"
	sent "github.com/revelaction/relex/sentence"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	r.Render(nil)

	var results []*match.SentenceMatch
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestJSONRendererRenderOneResult(t *testing.T) {
	sm := &match.SentenceMatch{
		PatternName: "such-as",
		NumSpans:    1,
		Spans: []match.Span{
			{Start: 0, End: 2, Seq: 0},
		},
		Sentence: sent.Sentence{
			Id:    5,
			DocId: 1,
			Tokens: []sent.Token{
				{Index: 0, Lemma: "cat", Text: "cat"},
				{Index: 1, Lemma: "dog", Text: "dog", Idx: 4},
			},
		},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	r.Render([]*match.SentenceMatch{sm})

	var results []match.SentenceMatch
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].PatternName != "such-as" {
		t.Errorf("expected pattern 'such-as', got %q", results[0].PatternName)
	}

	if results[0].NumSpans != 1 {
		t.Errorf("expected num_spans 1, got %d", results[0].NumSpans)
	}

	if len(results[0].Spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(results[0].Spans))
	}
}

func TestJSONRendererRenderPairs(t *testing.T) {
	pairs := []extract.PairMatch{
		{
			Sentence: sent.Sentence{Id: 2, DocId: 0},
			Voice:    "passive",
			Pair:     relation.Pair{Subject: "Initech", Object: "Initrode"},
		},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	r.RenderPairs(pairs)

	var got []extract.PairMatch
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(got))
	}

	if got[0].Voice != "passive" {
		t.Errorf("expected voice 'passive', got %q", got[0].Voice)
	}

	if got[0].Pair.Subject != "Initech" {
		t.Errorf("expected subject 'Initech', got %q", got[0].Pair.Subject)
	}
}
