package query

import (
	"testing"

	"github.com/revelaction/relex/pattern"
)

func testHandler() *Handler {
	lib := pattern.Library{
		{
			Name: "such-as",
			Seqs: []pattern.Sequence{
				{
					{Pos: "NOUN"},
					{Lower: "such"},
					{Lower: "as"},
					{Pos: "PROPN"},
				},
			},
		},
	}

	return NewHandler(nil, lib, nil)
}

func TestParsePatternOnly(t *testing.T) {
	h := testHandler()

	p, seq, err := h.parse("such-as")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if p.Name != "such-as" {
		t.Errorf("got pattern %q, want such-as", p.Name)
	}

	if seq != nil {
		t.Errorf("got sequence %v, want none", seq)
	}
}

func TestParsePatternAndSequence(t *testing.T) {
	h := testHandler()

	p, seq, err := h.parse("such-as ?dep:amod NOUN")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if p.Name != "such-as" {
		t.Errorf("got pattern %q, want such-as", p.Name)
	}

	if len(seq) != 2 {
		t.Fatalf("got %d constraints, want 2", len(seq))
	}

	if !seq[0].Optional || seq[0].Dep != "amod" {
		t.Errorf("got first constraint %+v", seq[0])
	}
}

func TestParseSequenceOnly(t *testing.T) {
	h := testHandler()

	p, seq, err := h.parse("cities such as PROPN")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if p.Name != "" {
		t.Errorf("got pattern %q, want none", p.Name)
	}

	if len(seq) != 4 {
		t.Fatalf("got %d constraints, want 4", len(seq))
	}
}

func TestParseEmpty(t *testing.T) {
	h := testHandler()

	if _, _, err := h.parse("   "); err == nil {
		t.Fatal("want an error for empty input")
	}
}

func TestParseBadConstraint(t *testing.T) {
	h := testHandler()

	if _, _, err := h.parse("such-as dep:"); err == nil {
		t.Fatal("want an error for a dep constraint without label")
	}
}
