package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revelaction/relex/pattern"
	"github.com/revelaction/relex/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// PatternStore persists patterns in sqlite, the sequences of each
// pattern as one JSON document.
type PatternStore struct {
	pool *sqlitex.Pool
}

var _ storage.PatternRepository = (*PatternStore)(nil)

func NewPatternStore(pool *sqlitex.Pool) *PatternStore {
	return &PatternStore{pool: pool}
}

func (h *PatternStore) ReadAll() (pattern.Library, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var patterns pattern.Library
	err = sqlitex.Execute(conn, "SELECT name, seqs FROM patterns ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			p, err := assemblePattern(stmt.ColumnText(0), stmt.ColumnText(1))
			if err != nil {
				return err
			}

			patterns = append(patterns, p)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return patterns, nil
}

func (h *PatternStore) Read(name string) (pattern.Pattern, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return pattern.Pattern{}, err
	}
	defer h.pool.Put(conn)

	var p pattern.Pattern
	found := false

	err = sqlitex.Execute(conn, "SELECT seqs FROM patterns WHERE name = ?", &sqlitex.ExecOptions{
		Args: []interface{}{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true

			var assembleErr error
			p, assembleErr = assemblePattern(name, stmt.ColumnText(0))
			return assembleErr
		},
	})
	if err != nil {
		return pattern.Pattern{}, err
	}
	if !found {
		return pattern.Pattern{}, fmt.Errorf("pattern not found: %s", name)
	}

	return p, nil
}

func (h *PatternStore) Write(p pattern.Pattern) error {
	data, err := json.Marshal(p.Seqs)
	if err != nil {
		return err
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	err = sqlitex.Execute(conn, "INSERT INTO patterns (name, seqs) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET seqs = excluded.seqs, updated_at = datetime('now')", &sqlitex.ExecOptions{
		Args: []interface{}{p.Name, string(data)},
	})
	if err != nil {
		return fmt.Errorf("failed to write pattern %s: %w", p.Name, err)
	}

	return nil
}

func assemblePattern(name, seqsJSON string) (pattern.Pattern, error) {
	var seqs []pattern.Sequence
	if err := json.Unmarshal([]byte(seqsJSON), &seqs); err != nil {
		return pattern.Pattern{}, err
	}

	p := pattern.Pattern{Name: name, Seqs: seqs}
	if err := p.Validate(); err != nil {
		return pattern.Pattern{}, err
	}

	return p, nil
}
