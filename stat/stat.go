package stat

import (
	sent "github.com/revelaction/relex/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// distribution of the universal POS tags
	PosDist map[string]int

	// distribution of the dependency labels
	DepDist map[string]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		PosDist:              map[string]int{},
		DepDist:              map[string]int{},
	}

	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the doc to the stats. It can be called once per doc
// to aggregate a whole corpus.
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumSentences += len(doc.Sentences)

	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += len(sentence.Tokens)
		h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++

		for _, t := range sentence.Tokens {
			h.stats.PosDist[t.Pos]++
			h.stats.DepDist[t.Dep]++
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}
