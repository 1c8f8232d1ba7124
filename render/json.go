package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/relex/extract"
	"github.com/revelaction/relex/match"
)

// JSONRenderer writes results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes sentence match results as a JSON array.
func (r *JSONRenderer) Render(results []*match.SentenceMatch) {
	json.NewEncoder(r.W).Encode(results)
}

// RenderPairs serializes extracted relations as a JSON array.
func (r *JSONRenderer) RenderPairs(pairs []extract.PairMatch) {
	json.NewEncoder(r.W).Encode(pairs)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
