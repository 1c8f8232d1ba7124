package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/pattern"
	"github.com/revelaction/relex/relation"
	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/storage"
)

// batchSize is the number of candidates fetched per storage page.
const batchSize = 500

// ErrNoTerms marks a pattern that the term index cannot retrieve
// candidates for. Callers may fall back to a full corpus scan.
var ErrNoTerms = errors.New("pattern must contain at least one literal word for indexing")

// Scan orchestrates the strategy selection for finding sentences that
// match a pattern against a document repository.
type Scan struct {
	pat    pattern.Pattern
	repo   storage.DocReader
	docID  *int
	labels []string
	logger *slog.Logger
}

// New creates a new Scan with the given pattern and repository.
// The pattern is used to construct the internal Matcher for evaluating sentences.
func New(p pattern.Pattern, dr storage.DocReader) *Scan {
	return &Scan{
		pat:    p,
		repo:   dr,
		logger: slog.Default().With("component", "extract"),
	}
}

// WithDocID restricts the scan to a single document ID.
// If set, the single-document strategy (Read) will be favored over
// the indexed strategy (FindCandidates).
func (s *Scan) WithDocID(id int) *Scan {
	s.docID = &id
	return s
}

// WithLabels restricts the indexed strategy to docs carrying all labels.
func (s *Scan) WithLabels(labels []string) *Scan {
	s.labels = labels
	return s
}

// Sentences streams every matched sentence to onMatch, unsorted.
//
// With a doc ID set the doc is read and matched directly. Otherwise
// candidates come from the term index: one query per term set (the
// pattern sequences plus the extra sequence, OR across sets, AND
// inside one), deduplicated across sets. limit bounds the candidates
// fetched per term set, <= 0 meaning no bound.
func (s *Scan) Sentences(seq pattern.Sequence, limit int, onMatch func(*match.SentenceMatch) error) error {
	matcher := match.NewMatcher(s.pat)
	matcher.AddSequence(seq)

	// Strategy 1: Single Document (No Index)
	if s.docID != nil {
		doc, err := s.repo.Read(*s.docID)
		if err != nil {
			return err
		}

		for _, stc := range doc.Sentences {
			sm := matcher.MatchSentence(stc)
			if sm == nil {
				continue
			}

			if err := onMatch(sm); err != nil {
				return err
			}
		}

		return nil
	}

	// Strategy 2: indexed retrieval
	termSets := s.pat.TermSets()
	if terms := seq.Terms(); len(terms) > 0 {
		termSets = append(termSets, terms)
	}

	if len(termSets) == 0 {
		return ErrNoTerms
	}

	// A sentence can be a candidate of several term sets; visit once.
	seen := make(map[[2]int]bool)

	for _, terms := range termSets {
		cursor := storage.Cursor(0)
		fetched := 0

		for {
			newCursor, err := s.repo.FindCandidates(terms, s.labels, cursor, page(limit, fetched), func(stc sent.Sentence) error {
				fetched++

				key := [2]int{stc.DocId, stc.Id}
				if seen[key] {
					return nil
				}
				seen[key] = true

				if sm := matcher.MatchSentence(stc); sm != nil {
					return onMatch(sm)
				}

				return nil
			})
			if err != nil {
				return err
			}

			if newCursor == cursor {
				break
			}

			if limit > 0 && fetched >= limit {
				s.logger.Debug("candidate limit reached", "terms", strings.Join(terms, " "), "limit", limit)
				break
			}

			cursor = newCursor
		}
	}

	return nil
}

// page caps the batch size by the candidates still owed to the limit.
func page(limit, fetched int) int {
	if limit <= 0 {
		return batchSize
	}

	if left := limit - fetched; left < batchSize {
		return left
	}

	return batchSize
}

// PairMatch is one extracted relation with the sentence it came from.
type PairMatch struct {
	Sentence sent.Sentence `json:"sentence"`
	Voice    string        `json:"voice"`
	Pair     relation.Pair `json:"pair"`
}

// Relations streams the subject/object pair of every sentence
// containing one of the verbs (as lemma or lowercase form) to onPair.
//
// With a doc ID the doc is scanned directly and an empty verbs slice
// extracts from every sentence. Without one the verbs drive indexed
// retrieval, one query per verb, so at least one verb is required.
func Relations(repo storage.DocReader, verbs []string, docID *int, labels []string, limit int, onPair func(PairMatch) error) error {
	emit := func(stc sent.Sentence) error {
		return onPair(PairMatch{
			Sentence: stc,
			Voice:    relation.Classify(stc).String(),
			Pair:     relation.Extract(stc),
		})
	}

	if docID != nil {
		doc, err := repo.Read(*docID)
		if err != nil {
			return err
		}

		for _, stc := range doc.Sentences {
			if len(verbs) > 0 && !containsVerb(stc, verbs) {
				continue
			}

			if err := emit(stc); err != nil {
				return err
			}
		}

		return nil
	}

	if len(verbs) == 0 {
		return errors.New("relation scan needs at least one verb or a doc id")
	}

	seen := make(map[[2]int]bool)

	for _, verb := range verbs {
		cursor := storage.Cursor(0)
		fetched := 0

		for {
			newCursor, err := repo.FindCandidates([]string{verb}, labels, cursor, page(limit, fetched), func(stc sent.Sentence) error {
				fetched++

				key := [2]int{stc.DocId, stc.Id}
				if seen[key] {
					return nil
				}
				seen[key] = true

				return emit(stc)
			})
			if err != nil {
				return err
			}

			if newCursor == cursor {
				break
			}

			if limit > 0 && fetched >= limit {
				break
			}

			cursor = newCursor
		}
	}

	return nil
}

func containsVerb(stc sent.Sentence, verbs []string) bool {
	for _, v := range verbs {
		for _, t := range stc.Tokens {
			if t.Lemma == v || t.Low() == v {
				return true
			}
		}
	}

	return false
}

// Docs matches every doc of the repository against every pattern of
// the library, reading and matching docs concurrently with up to
// workers goroutines. Results are delivered to onMatch sequentially
// after all docs finished, ordered by (doc, sentence, pattern).
func Docs(ctx context.Context, repo storage.DocReader, lib pattern.Library, labels []string, workers int, onMatch func(*match.SentenceMatch) error) error {
	metas, err := repo.List("")
	if err != nil {
		return fmt.Errorf("failed to list docs: %w", err)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var mu sync.Mutex
	byDoc := make(map[int][]*match.SentenceMatch)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	kept := metas[:0]
	for _, meta := range metas {
		if !hasLabels(meta.Labels, labels) {
			continue
		}

		kept = append(kept, meta)
	}

	for _, meta := range kept {
		meta := meta
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			doc, err := repo.Read(meta.Id)
			if err != nil {
				return err
			}

			matchers := make([]*match.Matcher, 0, len(lib))
			for _, p := range lib {
				matchers = append(matchers, match.NewMatcher(p))
			}

			var matches []*match.SentenceMatch
			for _, stc := range doc.Sentences {
				for _, matcher := range matchers {
					if sm := matcher.MatchSentence(stc); sm != nil {
						matches = append(matches, sm)
					}
				}
			}

			if len(matches) == 0 {
				return nil
			}

			mu.Lock()
			byDoc[meta.Id] = matches
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, meta := range kept {
		for _, sm := range byDoc[meta.Id] {
			if err := onMatch(sm); err != nil {
				return err
			}
		}
	}

	return nil
}

// Sort orders results by relevance (span count) first, then doc and
// sentence position.
func Sort(results []*match.SentenceMatch) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].NumSpans != results[j].NumSpans {
			return results[i].NumSpans > results[j].NumSpans
		}

		if results[i].Sentence.DocId != results[j].Sentence.DocId {
			return results[i].Sentence.DocId < results[j].Sentence.DocId
		}

		return results[i].Sentence.Id < results[j].Sentence.Id
	})
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
