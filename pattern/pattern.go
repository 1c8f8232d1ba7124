package pattern

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Pattern is a named set of alternative constraint sequences. A
// sentence matches the pattern when at least one sequence matches.
type Pattern struct {

	// the pattern name
	Name string

	// the alternative sequences of the pattern
	Seqs []Sequence
}

// Sequence is an ordered list of token constraints. It matches a
// contiguous token run where every mandatory constraint matches one
// token in order and every optional constraint matches one token or is
// skipped.
type Sequence []Constraint

// Constraint restricts a single token position. Zero fields do not
// restrict; all set fields must hold on the same token.
type Constraint struct {

	// Lower matches the lowercase form of the token exactly.
	Lower string `json:"lower,omitempty"`

	// Pos matches the universal POS tag (NOUN, PROPN, ...).
	Pos string `json:"pos,omitempty"`

	// Dep matches the dependency label (amod, nummod, ...).
	Dep string `json:"dep,omitempty"`

	// Punct requires a punctuation token.
	Punct bool `json:"punct,omitempty"`

	// Optional marks the constraint as zero-or-one.
	Optional bool `json:"optional,omitempty"`
}

func (c Constraint) String() string {
	var s string
	switch {
	case c.Lower != "":
		s = c.Lower
	case c.Pos != "":
		s = c.Pos
	case c.Dep != "":
		s = "dep:" + c.Dep
	case c.Punct:
		s = "punct"
	}

	if c.Optional {
		return "?" + s
	}

	return s
}

func (q Sequence) String() string {
	sl := []string{}
	for _, c := range q {
		sl = append(sl, c.String())
	}

	return strings.Join(sl, " ")
}

// Terms returns the unique mandatory literal words of the sequence.
// Only words present in every match can drive indexed candidate
// retrieval in storage; optional words and the POS, dep and punct
// constraints are handled later by the matcher.
func (q Sequence) Terms() []string {
	seen := make(map[string]bool)
	var terms []string
	for _, c := range q {
		if c.Lower == "" || c.Optional {
			continue
		}

		if !seen[c.Lower] {
			seen[c.Lower] = true
			terms = append(terms, c.Lower)
		}
	}
	return terms
}

// Validate rejects sequences a matcher could satisfy on zero tokens.
func (q Sequence) Validate() error {
	if len(q) == 0 {
		return errors.New("empty sequence")
	}

	for _, c := range q {
		if !c.Optional {
			return nil
		}
	}

	return errors.New("sequence needs at least one mandatory constraint")
}

// TermSets returns one term set per sequence, skipping sequences
// without literal words.
func (p Pattern) TermSets() [][]string {
	var sets [][]string
	for _, q := range p.Seqs {
		terms := q.Terms()
		if len(terms) > 0 {
			sets = append(sets, terms)
		}
	}
	return sets
}

func (p Pattern) Validate() error {
	if p.Name == "" {
		return errors.New("pattern needs a name")
	}

	if len(p.Seqs) == 0 {
		return fmt.Errorf("pattern %s has no sequences", p.Name)
	}

	for _, q := range p.Seqs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("pattern %s: %w", p.Name, err)
		}
	}

	return nil
}

// Library is a collection of patterns
type Library []Pattern

// Names returns a list of all pattern names in the library
func (l Library) Names() []string {
	var names []string
	for _, p := range l {
		names = append(names, p.Name)
	}
	return names
}

// Find returns the pattern with the given name.
func (l Library) Find(name string) (Pattern, bool) {
	for _, p := range l {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}

// Parse parses the user input and converts it to a Sequence.
//
//	?dep:amod NOUN such as PROPN
//
// A leading ? marks the constraint optional. A dep: prefix matches the
// dependency label, an uppercase word the universal POS tag and the
// word punct a punctuation token. Everything else matches the
// lowercase form of the token.
func Parse(args []string) (Sequence, error) {

	var seq Sequence
	for _, arg := range args {
		c, err := parseConstraint(arg)
		if err != nil {
			return nil, err
		}

		seq = append(seq, c)
	}

	if err := seq.Validate(); err != nil {
		return nil, err
	}

	return seq, nil
}

func parseConstraint(arg string) (Constraint, error) {

	var c Constraint
	if strings.HasPrefix(arg, "?") {
		c.Optional = true
		arg = strings.TrimPrefix(arg, "?")
	}

	if arg == "" {
		return c, errors.New("empty constraint")
	}

	if strings.HasPrefix(arg, "dep:") {
		c.Dep = strings.TrimPrefix(arg, "dep:")
		if c.Dep == "" {
			return c, errors.New("dep constraint needs a label")
		}

		return c, nil
	}

	if arg == "punct" {
		c.Punct = true
		return c, nil
	}

	firstChar := []rune(arg)[0]
	if unicode.IsUpper(firstChar) && unicode.IsLetter(firstChar) {
		c.Pos = arg
		return c, nil
	}

	c.Lower = strings.ToLower(arg)
	return c, nil
}

// EqualSeq determines if two sequences are the same. Equality requires
// slice order. It does not support conmutativity:
//
//	itemA, itemB != itemB, itemA
func EqualSeq(a, b Sequence) bool {
	if len(a) != len(b) {
		return false
	}

	for i, v := range a {
		if !EqualConstraint(v, b[i]) {
			return false
		}
	}
	return true
}

// EqualConstraint determines if two constraints are the same.
func EqualConstraint(a, b Constraint) bool {
	return a == b
}
