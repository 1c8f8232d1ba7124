package storage

import (
	"github.com/revelaction/relex/pattern"
	sent "github.com/revelaction/relex/sentence"
)

// PatternReader defines read operations for pattern storage
type PatternReader interface {
	// ReadAll returns all patterns from storage
	ReadAll() (pattern.Library, error)

	// Read returns a single pattern by name
	Read(name string) (pattern.Pattern, error)
}

// PatternWriter defines write operations for pattern storage
type PatternWriter interface {
	// Write persists a pattern to storage
	Write(p pattern.Pattern) error
}

// PatternRepository combines read and write operations
type PatternRepository interface {
	PatternReader
	PatternWriter
}

// Cursor for paginated term-based queries
type Cursor int64

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Sentences) is not loaded.
	List(labelMatch string) ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// FindCandidates returns sentence candidates containing ALL given terms (as
	// lemma or lowercase form) in documents carrying ALL labels, resuming after
	// the given cursor. It calls onCandidate for each result.
	// Returns the new cursor and any error.
	FindCandidates(terms []string, labels []string, after Cursor, limit int, onCandidate func(sent.Sentence) error) (Cursor, error)

	// Labels returns all unique labels found across all documents, sorted alphabetically.
	// If match is not empty, it returns labels that contain the match string.
	Labels(match string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences/terms to storage
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(labels []string, cb func(current, total int, name string)) error
}
