package filesystem

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/storage"
)

// DocStore reads annotated docs from a directory of provider JSON
// exports, one file per doc. Contents are cached in memory on first
// use. Safe for concurrent use.
type DocStore struct {
	docDir string

	// mu guards the cache, reads may fill it lazily
	mu     sync.Mutex
	docs   []sent.Doc
	loaded bool

	logger *slog.Logger
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. Doc ids are the
// position of the file in the lexical directory order.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	docs := []sent.Doc{}
	idx := 0
	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}

		docs = append(docs, sent.Doc{Id: idx, Title: file.Name()})
		idx++
	}

	return &DocStore{
		docDir: docDir,
		docs:   docs,
		logger: slog.Default().With("component", "doc-store"),
	}, nil
}

// Preload loads all doc contents into memory. The labels argument is
// accepted for interface parity; labels live inside the files, so the
// files are read either way.
func (h *DocStore) Preload(labels []string, cb func(current, total int, name string)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.preloadLocked(cb)
}

func (h *DocStore) preloadLocked(cb func(current, total int, name string)) error {
	if h.loaded {
		return nil
	}

	total := len(h.docs)
	for i := range h.docs {
		doc := &h.docs[i]

		if cb != nil {
			cb(i+1, total, doc.Title)
		}

		full, err := ReadDoc(filepath.Join(h.docDir, doc.Title))
		if err != nil {
			return err
		}

		doc.Labels = full.Labels
		doc.Sentences = stamp(full.Sentences, doc.Id)
	}

	h.loaded = true
	h.logger.Debug("docs loaded", "count", total)

	return nil
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if labelMatch != "" {
		if err := h.preloadLocked(nil); err != nil {
			return nil, err
		}
	}

	var metas []sent.Doc
	for _, d := range h.docs {
		if labelMatch != "" && !hasLabels(d.Labels, []string{labelMatch}) {
			continue
		}

		metas = append(metas, sent.Doc{Id: d.Id, Title: d.Title, Labels: d.Labels})
	}

	return metas, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}

	// load just this file if the cache is cold
	if !h.loaded && h.docs[id].Sentences == nil {
		full, err := ReadDoc(filepath.Join(h.docDir, h.docs[id].Title))
		if err != nil {
			return sent.Doc{}, err
		}

		h.docs[id].Labels = full.Labels
		h.docs[id].Sentences = stamp(full.Sentences, id)
	}

	return h.docs[id], nil
}

// FindCandidates scans the in-memory corpus. The cursor is the global
// ordinal of the last returned sentence, 0 meaning start. An empty
// terms slice makes every sentence a candidate.
func (h *DocStore) FindCandidates(terms []string, labels []string, after storage.Cursor, limit int, onCandidate func(sent.Sentence) error) (storage.Cursor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.preloadLocked(nil); err != nil {
		return after, err
	}

	cursor := after
	count := 0
	var ordinal storage.Cursor

	for _, doc := range h.docs {
		labelsOk := hasLabels(doc.Labels, labels)

		for _, s := range doc.Sentences {
			ordinal++
			if ordinal <= after {
				continue
			}

			if count >= limit {
				return cursor, nil
			}

			if !labelsOk || !hasTerms(s, terms) {
				continue
			}

			if err := onCandidate(s); err != nil {
				return cursor, err
			}

			cursor = ordinal
			count++
		}
	}

	return cursor, nil
}

func (h *DocStore) Labels(match string) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.preloadLocked(nil); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, doc := range h.docs {
		for _, l := range doc.Labels {
			if match != "" && !strings.Contains(l, match) {
				continue
			}

			seen[l] = true
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}

	sort.Strings(labels)
	return labels, nil
}

// Write stores the doc as a JSON file named after its title.
func (h *DocStore) Write(doc sent.Doc) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if doc.Title == "" {
		return fmt.Errorf("doc needs a title")
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(h.docDir, doc.Title)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	doc.Id = len(h.docs)
	doc.Sentences = stamp(doc.Sentences, doc.Id)
	h.docs = append(h.docs, doc)

	return nil
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}

// stamp fills the position ids the provider export leaves implicit.
func stamp(sentences []sent.Sentence, docId int) []sent.Sentence {
	for i := range sentences {
		sentences[i].Id = i
		sentences[i].DocId = docId
	}

	return sentences
}

// hasLabels reports whether every wanted label is contained in some
// doc label. An empty want slice always matches.
func hasLabels(docLabels, want []string) bool {
	for _, w := range want {
		found := false
		for _, l := range docLabels {
			if strings.Contains(l, w) {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// hasTerms reports whether the sentence contains every term as lemma
// or lowercase form.
func hasTerms(s sent.Sentence, terms []string) bool {
	for _, term := range terms {
		found := false
		for _, t := range s.Tokens {
			if t.Lemma == term || t.Low() == term {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}
