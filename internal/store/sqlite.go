package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	data       TEXT NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents (collection, user_id);
`

// SQLiteStore implements Store on an embedded SQLite database. Each record is
// kept as a JSON blob; BatchWrite runs inside a single transaction, which is
// what gives the importer its per-phase atomicity.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// QueryByOwner reads all records in a collection scoped to a user.
func (s *SQLiteStore) QueryByOwner(ctx context.Context, collection, userID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, data FROM documents WHERE collection = ? AND user_id = ? ORDER BY id`,
		collection, userID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var data string
		if err := rows.Scan(&r.ID, &r.UserID, &data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		r.Data = []byte(data)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return records, nil
}

// Get retrieves a single record by collection and id.
func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (*Record, error) {
	r := Record{ID: id}
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, data FROM documents WHERE collection = ? AND id = ?`,
		collection, id).Scan(&r.UserID, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	r.Data = []byte(data)
	return &r, nil
}

// BatchWrite atomically applies a list of mutations in one transaction.
func (s *SQLiteStore) BatchWrite(ctx context.Context, ops []WriteOp) error {
	if len(ops) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	for _, op := range ops {
		switch op.Kind {
		case WriteSet:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO documents (collection, id, user_id, data) VALUES (?, ?, ?, ?)
				 ON CONFLICT (collection, id) DO UPDATE SET user_id = excluded.user_id, data = excluded.data`,
				op.Collection, op.ID, op.UserID, string(op.Data))
		case WriteDelete:
			_, err = tx.ExecContext(ctx,
				`DELETE FROM documents WHERE collection = ? AND id = ?`,
				op.Collection, op.ID)
		default:
			err = fmt.Errorf("unknown write kind %q", op.Kind)
		}
		if err != nil {
			return fmt.Errorf("batch write %s/%s: %w", op.Collection, op.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Ping reports whether the store is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
