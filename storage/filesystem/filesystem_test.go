package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revelaction/relex/pattern"
	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/storage"
)

const docOne = `{
  "title": "one.json",
  "labels": ["news", "tech"],
  "sentences": [
    {"id": 0, "tokens": [
      {"text": "Salesforce", "lemma": "Salesforce", "pos": "PROPN", "dep": "nsubj", "idx": 0},
      {"text": "acquired", "lemma": "acquire", "pos": "VERB", "dep": "ROOT", "idx": 11},
      {"text": "Tableau", "lemma": "Tableau", "pos": "PROPN", "dep": "dobj", "idx": 20}
    ]},
    {"id": 1, "tokens": [
      {"text": "Nothing", "lemma": "nothing", "pos": "NOUN", "dep": "nsubj", "idx": 0},
      {"text": "happened", "lemma": "happen", "pos": "VERB", "dep": "ROOT", "idx": 8}
    ]}
  ]
}`

const docTwo = `{
  "title": "two.json",
  "labels": ["blog"],
  "sentences": [
    {"id": 0, "tokens": [
      {"text": "They", "lemma": "they", "pos": "PRON", "dep": "nsubj", "idx": 0},
      {"text": "acquire", "lemma": "acquire", "pos": "VERB", "dep": "ROOT", "idx": 5},
      {"text": "companies", "lemma": "company", "pos": "NOUN", "dep": "dobj", "idx": 13}
    ]}
  ]
}`

func docDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "one.json"), []byte(docOne), 0644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "two.json"), []byte(docTwo), 0644); err != nil {
		t.Fatal(err)
	}

	// non-json files must be ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	return dir
}

func TestDocStoreList(t *testing.T) {
	h, err := NewDocStore(docDir(t))
	if err != nil {
		t.Fatal(err)
	}

	docs, err := h.List("")
	if err != nil {
		t.Fatal(err)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}

	if docs[0].Title != "one.json" || docs[1].Title != "two.json" {
		t.Errorf("got %q, %q", docs[0].Title, docs[1].Title)
	}

	news, err := h.List("news")
	if err != nil {
		t.Fatal(err)
	}

	if len(news) != 1 || news[0].Title != "one.json" {
		t.Errorf("got %+v, want one.json only", news)
	}
}

func TestDocStoreRead(t *testing.T) {
	h, err := NewDocStore(docDir(t))
	if err != nil {
		t.Fatal(err)
	}

	doc, err := h.Read(0)
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(doc.Sentences))
	}

	s := doc.Sentences[0]
	if s.Id != 0 || s.DocId != 0 {
		t.Errorf("sentence not stamped: %+v", s)
	}

	if got := s.Text(); got != "Salesforce acquired Tableau" {
		t.Errorf("got %q", got)
	}

	if _, err := h.Read(5); err == nil {
		t.Error("expected out of range error")
	}
}

func TestDocStoreFindCandidates(t *testing.T) {
	h, err := NewDocStore(docDir(t))
	if err != nil {
		t.Fatal(err)
	}

	var got []sent.Sentence
	collect := func(s sent.Sentence) error {
		got = append(got, s)
		return nil
	}

	cursor, err := h.FindCandidates([]string{"acquire"}, nil, 0, 10, collect)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}

	if got[0].DocId != 0 || got[1].DocId != 1 {
		t.Errorf("got doc ids %d, %d", got[0].DocId, got[1].DocId)
	}

	if cursor == 0 {
		t.Error("cursor not advanced")
	}
}

func TestDocStoreFindCandidatesPaged(t *testing.T) {
	h, err := NewDocStore(docDir(t))
	if err != nil {
		t.Fatal(err)
	}

	var got []sent.Sentence
	collect := func(s sent.Sentence) error {
		got = append(got, s)
		return nil
	}

	var cursor storage.Cursor
	for i := 0; i < 5; i++ {
		before := len(got)
		next, err := h.FindCandidates([]string{"acquire"}, nil, cursor, 1, collect)
		if err != nil {
			t.Fatal(err)
		}

		if len(got) == before {
			break
		}

		cursor = next
	}

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
}

func TestDocStoreFindCandidatesLabels(t *testing.T) {
	h, err := NewDocStore(docDir(t))
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	_, err = h.FindCandidates([]string{"acquire"}, []string{"news"}, 0, 10, func(s sent.Sentence) error {
		count++
		if s.DocId != 0 {
			t.Errorf("got doc %d, want 0", s.DocId)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if count != 1 {
		t.Errorf("got %d candidates, want 1", count)
	}
}

func TestDocStoreFindCandidatesLowerTerm(t *testing.T) {
	h, err := NewDocStore(docDir(t))
	if err != nil {
		t.Fatal(err)
	}

	// the term resolves through the derived lowercase form, the lemma
	// keeps the original casing
	count := 0
	_, err = h.FindCandidates([]string{"salesforce"}, nil, 0, 10, func(s sent.Sentence) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if count != 1 {
		t.Errorf("got %d candidates, want 1", count)
	}
}

func TestDocStoreLabels(t *testing.T) {
	h, err := NewDocStore(docDir(t))
	if err != nil {
		t.Fatal(err)
	}

	labels, err := h.Labels("")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"blog", "news", "tech"}
	if len(labels) != len(want) {
		t.Fatalf("got %q, want %q", labels, want)
	}

	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("got %q, want %q", labels, want)
			break
		}
	}

	te, err := h.Labels("te")
	if err != nil {
		t.Fatal(err)
	}

	if len(te) != 1 || te[0] != "tech" {
		t.Errorf("got %q, want [tech]", te)
	}
}

func TestDocStoreWrite(t *testing.T) {
	h, err := NewDocStore(docDir(t))
	if err != nil {
		t.Fatal(err)
	}

	doc := sent.Doc{
		Title:  "three.json",
		Labels: []string{"new"},
		Sentences: []sent.Sentence{
			{Tokens: []sent.Token{{Text: "Hi", Idx: 0, Pos: "INTJ"}}},
		},
	}

	if err := h.Write(doc); err != nil {
		t.Fatal(err)
	}

	got, err := h.Read(2)
	if err != nil {
		t.Fatal(err)
	}

	if got.Title != "three.json" || len(got.Sentences) != 1 {
		t.Errorf("got %+v", got)
	}

	if err := h.Write(sent.Doc{}); err == nil {
		t.Error("expected error for untitled doc")
	}
}

func TestPatternStoreRoundTrip(t *testing.T) {
	ph := NewPatternStore(t.TempDir())

	p, _ := pattern.Builtin().Find("such-as")
	if err := ph.Write(p); err != nil {
		t.Fatal(err)
	}

	got, err := ph.Read("such-as")
	if err != nil {
		t.Fatal(err)
	}

	if got.Name != "such-as" {
		t.Errorf("got %q", got.Name)
	}

	if len(got.Seqs) != 1 || !pattern.EqualSeq(got.Seqs[0], p.Seqs[0]) {
		t.Errorf("got %+v, want %+v", got.Seqs, p.Seqs)
	}
}

func TestPatternStoreReadAll(t *testing.T) {
	ph := NewPatternStore(t.TempDir())

	for _, p := range pattern.Builtin() {
		if err := ph.Write(p); err != nil {
			t.Fatal(err)
		}
	}

	lib, err := ph.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(lib) != 4 {
		t.Fatalf("got %d patterns, want 4", len(lib))
	}
}

func TestPatternStoreRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := `[[{"lower":"and","optional":true}]]`
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	ph := NewPatternStore(dir)
	if _, err := ph.Read("bad"); err == nil {
		t.Error("expected validation error")
	}
}
