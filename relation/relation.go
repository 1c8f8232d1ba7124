package relation

import (
	"strings"

	sent "github.com/revelaction/relex/sentence"
)

// Voice is the grammatical voice of a sentence.
type Voice int

const (
	Active Voice = iota
	Passive
)

func (v Voice) String() string {
	if v == Passive {
		return "passive"
	}

	return "active"
}

// Pair is the subject/object relation extracted from one sentence. For
// acquisition style verbs Subject is the acquirer and Object the
// acquiree regardless of voice. A slot without a qualifying token
// stays empty, it is never an error.
type Pair struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
}

// Incomplete reports whether some slot stayed empty.
func (p Pair) Incomplete() bool {
	return p.Subject == "" || p.Object == ""
}

// slot is the relation slot a dependency label can fill.
type slot int

const (
	slotNone slot = iota
	slotSubject
	slotPassiveSubject
	slotObject
)

// slots lists the labels the providers are known to emit. Labels not
// listed fall back to the suffix tests of categorize.
var slots = map[string]slot{
	"nsubj":     slotSubject,
	"csubj":     slotSubject,
	"nsubjpass": slotPassiveSubject,
	"csubjpass": slotPassiveSubject,
	"obj":       slotObject,
	"dobj":      slotObject,
	"iobj":      slotObject,
	"pobj":      slotObject,
}

// categorize maps a dependency label to the slot it can fill. Unknown
// labels keep the provider-tolerant substring behavior: anything
// ending in subj or obj still fills a slot.
func categorize(dep string) slot {
	if s, ok := slots[dep]; ok {
		return s
	}

	if strings.Contains(dep, "subjpass") {
		return slotPassiveSubject
	}

	if strings.HasSuffix(dep, "subj") {
		return slotSubject
	}

	if strings.HasSuffix(dep, "obj") {
		return slotObject
	}

	return slotNone
}

// Classify returns the voice of the sentence. A sentence is passive if
// any token carries a passive subject label.
func Classify(s sent.Sentence) Voice {
	for _, t := range s.Tokens {
		if categorize(t.Dep) == slotPassiveSubject {
			return Passive
		}
	}

	return Active
}

// Extract scans the sentence once and returns the relation pair. The
// scan runs left to right over all tokens; when several tokens qualify
// for the same slot the last one silently wins.
func Extract(s sent.Sentence) Pair {
	var p Pair

	if Classify(s) == Passive {
		// the agent-like object is the acting side, the passive
		// subject the acted-on side
		for _, t := range s.Tokens {
			switch categorize(t.Dep) {
			case slotObject:
				p.Subject = t.Text
			case slotPassiveSubject:
				p.Object = t.Text
			}
		}

		return p
	}

	for _, t := range s.Tokens {
		switch categorize(t.Dep) {
		case slotSubject:
			p.Subject = t.Text
		case slotObject:
			p.Object = t.Text
		}
	}

	return p
}
