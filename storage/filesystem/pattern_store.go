package filesystem

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/relex/pattern"
	"github.com/revelaction/relex/storage"
)

// PatternStore reads and writes patterns as JSON files, one file per
// pattern named <name>.json, each holding the sequence array.
type PatternStore struct {
	root string
}

var _ storage.PatternRepository = (*PatternStore)(nil)

func NewPatternStore(root string) *PatternStore {
	return &PatternStore{root: root}
}

func (ph *PatternStore) ReadAll() (pattern.Library, error) {
	names, err := ph.names()
	if err != nil {
		return nil, err
	}

	patterns := pattern.Library{}
	for _, n := range names {
		p, err := ph.Read(n)
		if err != nil {
			return nil, err
		}

		patterns = append(patterns, p)
	}

	return patterns, nil
}

func (ph *PatternStore) names() ([]string, error) {
	files, err := os.ReadDir(ph.root)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}

		names = append(names, strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))
	}

	return names, nil
}

func (ph *PatternStore) Read(name string) (pattern.Pattern, error) {
	pf, err := os.ReadFile(filepath.Join(ph.root, name+".json"))
	if err != nil {
		return pattern.Pattern{}, err
	}

	seqs := []pattern.Sequence{}
	err = json.Unmarshal(pf, &seqs)
	if err != nil {
		return pattern.Pattern{}, err
	}

	p := pattern.Pattern{Name: name, Seqs: seqs}
	if err := p.Validate(); err != nil {
		return pattern.Pattern{}, err
	}

	return p, nil
}

func (ph *PatternStore) Write(p pattern.Pattern) error {
	jsonData, err := json.Marshal(p.Seqs)
	if err != nil {
		return err
	}

	// Format the json with each line containing a sequence
	// Remove the first [
	jsonFmt := bytes.TrimPrefix(jsonData, []byte("["))
	// replace the rest with indent
	jsonFmt = bytes.ReplaceAll(jsonFmt, []byte("],"), []byte("],\n\t"))
	// remove the last
	jsonFmt = bytes.TrimSuffix(jsonFmt, []byte("]"))
	jsonFmt = append([]byte("[\n\t"), jsonFmt...)
	jsonFmt = append(jsonFmt, []byte("\n]")...)

	err = os.WriteFile(filepath.Join(ph.root, p.Name+".json"), jsonFmt, 0644)
	if err != nil {
		return err
	}

	return nil
}
