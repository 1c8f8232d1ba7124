package sentence

import (
	"strings"
	"unicode/utf8"
)

// Doc is one annotated document of the corpus, as exported by the
// annotation provider (spacy, stanza).
type Doc struct {
	Id int `json:"-"`

	Title string `json:"title,omitempty"`

	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is one sentence of a Doc. Id is the position of the
// sentence inside the doc, starting at 0.
type Sentence struct {
	Id     int     `json:"id"`
	DocId  int     `json:"doc,omitempty"`
	Tokens []Token `json:"tokens"`
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	Id         int    `json:"id"`
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// A string containing detailed POS data
	Tag string `json:"tag"`

	// the index of the start character of the token in the original doc (set by spacy, stanza)
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// The lowercase form of the word. Older exports lack it, see Low.
	Lower string `json:"lower,omitempty"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// True if the token is punctuation. Older exports lack it, see IsPunct.
	Punct bool `json:"punct,omitempty"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Low returns the lowercase form of the token, deriving it from Text
// for exports that lack the field.
func (t Token) Low() string {
	if t.Lower != "" {
		return t.Lower
	}

	return strings.ToLower(t.Text)
}

// IsPunct reports whether the token is punctuation. The universal POS
// tag covers exports without the punct field.
func (t Token) IsPunct() bool {
	return t.Punct || t.Pos == "PUNCT"
}

// Text reconstructs the sentence text from the token char offsets.
func (s Sentence) Text() string {
	return s.Span(0, len(s.Tokens))
}

// Span reconstructs the original text of the tokens [start, end).
//
// The char offset (Idx) of each token places it relative to the
// previous one, so the inter-token spacing of the source text is
// preserved. Multi-part tokens (contractions split by the provider)
// share Text and Idx and are rendered once.
func (s Sentence) Span(start, end int) string {
	if start < 0 {
		start = 0
	}

	if end > len(s.Tokens) {
		end = len(s.Tokens)
	}

	if start >= end {
		return ""
	}

	var str strings.Builder

	lastIdx := 0
	lastLen := 0
	for i, token := range s.Tokens[start:end] {
		if i == 0 {
			str.WriteString(token.Text)
			lastIdx = token.Idx
			lastLen = utf8.RuneCountInString(token.Text)
			continue
		}

		diff := token.Idx - lastIdx
		if diff > 0 {
			if pad := diff - lastLen; pad > 0 {
				str.WriteString(strings.Repeat(" ", pad))
			}

			str.WriteString(token.Text)
		}

		lastIdx = token.Idx
		lastLen = utf8.RuneCountInString(token.Text)
	}

	return str.String()
}
