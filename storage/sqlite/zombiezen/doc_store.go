package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DocStore persists docs in sqlite. Each sentence row holds the
// provider token JSON plus rows in the term index (lemma and lowercase
// form of every token) for candidate retrieval.
type DocStore struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{
		pool:   pool,
		logger: slog.Default().With("component", "doc-store"),
	}
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY title", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sent.Doc{
				Id:    stmt.ColumnInt(0),
				Title: stmt.ColumnText(1),
			}

			labelsStr := stmt.ColumnText(2)
			if labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}

			if labelMatch != "" && !hasLabels(doc.Labels, []string{labelMatch}) {
				return nil
			}

			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)

			labelsStr := stmt.ColumnText(1)
			if labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc not found: %d", id)
	}

	err = sqlitex.Execute(conn, "SELECT sent_id, data FROM sentences WHERE doc_id = ? ORDER BY sent_id", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s := sent.Sentence{
				Id:    stmt.ColumnInt(0),
				DocId: id,
			}

			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &s.Tokens); err != nil {
				return err
			}

			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

// FindCandidates pages through the term index. One select per term,
// glued with INTERSECT, so only sentences containing ALL terms qualify
// (INTERSECT also keeps the rowids unique). With no terms it pages
// through the sentences table directly.
//
// The returned cursor advances past every row the page inspected,
// including rows the label filter discarded, so callers can keep
// paging as long as the cursor moves.
func (h *DocStore) FindCandidates(terms []string, labels []string, after storage.Cursor, limit int, onCandidate func(sent.Sentence) error) (storage.Cursor, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	var queryBuilder strings.Builder
	var args []interface{}

	if len(terms) == 0 {
		queryBuilder.WriteString("SELECT rowid FROM sentences WHERE rowid > ?")
		args = append(args, after)
	} else {
		for i, term := range terms {
			if i > 0 {
				queryBuilder.WriteString(" INTERSECT ")
			}
			queryBuilder.WriteString("SELECT sentence_rowid FROM sentence_terms WHERE term = ? AND sentence_rowid > ?")
			args = append(args, term, after)
		}
	}
	queryBuilder.WriteString(" LIMIT ?")
	args = append(args, limit)

	// We need to fetch the rowIDs first
	var rowIDs []int64
	err = sqlitex.Execute(conn, queryBuilder.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rowIDs = append(rowIDs, stmt.ColumnInt64(0))
			return nil
		},
	})
	if err != nil {
		return after, err
	}

	if len(rowIDs) == 0 {
		return after, nil
	}

	newCursor := after
	for _, rowID := range rowIDs {
		if storage.Cursor(rowID) > newCursor {
			newCursor = storage.Cursor(rowID)
		}
	}

	// TODO: Consolidate into a single query using a subquery for better performance.
	// For now, we use a second bulk query to fetch the sentence data.
	idStrings := make([]string, len(rowIDs))
	for i, rowID := range rowIDs {
		idStrings[i] = strconv.FormatInt(rowID, 10)
	}
	idList := strings.Join(idStrings, ",")

	query := fmt.Sprintf("SELECT s.doc_id, s.sent_id, s.data, d.labels FROM sentences s JOIN docs d ON s.doc_id = d.id WHERE s.rowid IN (%s) ORDER BY s.rowid", idList)

	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var docLabels []string
			if l := stmt.ColumnText(3); l != "" {
				docLabels = strings.Split(l, ",")
			}

			if !hasLabels(docLabels, labels) {
				return nil
			}

			s := sent.Sentence{
				DocId: stmt.ColumnInt(0),
				Id:    stmt.ColumnInt(1),
			}

			if err := json.Unmarshal([]byte(stmt.ColumnText(2)), &s.Tokens); err != nil {
				return err
			}

			return onCandidate(s)
		},
	})
	if err != nil {
		return after, err
	}

	return newCursor, nil
}

func (h *DocStore) Labels(match string) ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	seen := make(map[string]bool)
	err = sqlitex.Execute(conn, "SELECT labels FROM docs", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			for _, l := range strings.Split(stmt.ColumnText(0), ",") {
				if l == "" {
					continue
				}

				if match != "" && !strings.Contains(l, match) {
					continue
				}

				seen[l] = true
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}

	sort.Strings(labels)
	return labels, nil
}

func (h *DocStore) Write(doc sent.Doc) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	labels := strings.Join(doc.Labels, ",")
	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Title, labels},
	})
	if err != nil {
		return fmt.Errorf("failed to insert doc: %w", err)
	}
	docID := conn.LastInsertRowID()

	for i, s := range doc.Sentences {
		data, marshalErr := json.Marshal(s.Tokens)
		if marshalErr != nil {
			err = marshalErr
			return err
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, sent_id, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docID, i, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		// Index the lemma AND the lowercase form: pattern literals
		// query by lowercase word, relation verbs by lemma.
		uniqueTerms := make(map[string]bool)
		for _, token := range s.Tokens {
			if token.Lemma != "" {
				uniqueTerms[token.Lemma] = true
			}

			if low := token.Low(); low != "" {
				uniqueTerms[low] = true
			}
		}

		for term := range uniqueTerms {
			err = sqlitex.Execute(conn, "INSERT INTO sentence_terms (term, sentence_rowid) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{term, sentRowID},
			})
			if err != nil {
				return fmt.Errorf("failed to insert term: %w", err)
			}
		}
	}

	return nil
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
