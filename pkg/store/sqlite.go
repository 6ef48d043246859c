package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements TripleStore using SQLite as the backend, for
// graphs too large to hold comfortably in memory. Set semantics come
// from a primary key over all term columns plus INSERT OR IGNORE.
//
// Subjects and predicates are stored and reconstructed as IRI terms:
// only the object column carries a kind and datatype. RDF permits no
// literal in subject or predicate position, so a literal-kind term
// there would round-trip as an IRI.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed triple store. The dbPath can be
// a file path or ":memory:" for an in-memory database. Creates the
// schema if it doesn't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS triples (
		subj TEXT NOT NULL,
		pred TEXT NOT NULL,
		obj_kind INTEGER NOT NULL,
		obj TEXT NOT NULL,
		obj_datatype TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (subj, pred, obj_kind, obj, obj_datatype)
	);
	CREATE INDEX IF NOT EXISTS idx_triples_pred_obj ON triples(pred, obj);
	`
	_, err := s.db.Exec(schema)
	return err
}

// DB exposes the underlying database handle for tests.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Add inserts one triple. Duplicate inserts are ignored.
func (s *SQLiteStore) Add(ctx context.Context, t Triple) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO triples (subj, pred, obj_kind, obj, obj_datatype) VALUES (?, ?, ?, ?, ?)`,
		t.Subj.Value, t.Pred.Value, int(t.Obj.Kind), t.Obj.Value, t.Obj.DataType)
	if err != nil {
		return fmt.Errorf("failed to add triple: %w", err)
	}
	return nil
}

// Match returns all triples consistent with the pattern; nil positions
// are wildcards.
func (s *SQLiteStore) Match(ctx context.Context, subj, pred, obj *Term) ([]Triple, error) {
	query := `SELECT subj, pred, obj_kind, obj, obj_datatype FROM triples`
	where, args := patternWhere(subj, pred, obj)
	if where != "" {
		query += " WHERE " + where
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to match triples: %w", err)
	}
	defer rows.Close()

	var out []Triple
	for rows.Next() {
		var t Triple
		var kind int
		if err := rows.Scan(&t.Subj.Value, &t.Pred.Value, &kind, &t.Obj.Value, &t.Obj.DataType); err != nil {
			return nil, fmt.Errorf("failed to scan triple: %w", err)
		}
		t.Obj.Kind = TermKind(kind)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate triples: %w", err)
	}
	return out, nil
}

// Remove deletes all triples matching the pattern.
func (s *SQLiteStore) Remove(ctx context.Context, subj, pred, obj *Term) (int, error) {
	query := `DELETE FROM triples`
	where, args := patternWhere(subj, pred, obj)
	if where != "" {
		query += " WHERE " + where
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to remove triples: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed triples: %w", err)
	}
	return int(n), nil
}

// Len returns the number of stored triples.
func (s *SQLiteStore) Len(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM triples`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count triples: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func patternWhere(subj, pred, obj *Term) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if subj != nil {
		conds = append(conds, "subj = ?")
		args = append(args, subj.Value)
	}
	if pred != nil {
		conds = append(conds, "pred = ?")
		args = append(args, pred.Value)
	}
	if obj != nil {
		conds = append(conds, "obj_kind = ? AND obj = ? AND obj_datatype = ?")
		args = append(args, int(obj.Kind), obj.Value, obj.DataType)
	}
	return strings.Join(conds, " AND "), args
}
