package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY,
	path TEXT UNIQUE NOT NULL,
	uid TEXT NOT NULL,
	content TEXT NOT NULL,
	mtime_unix INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_mtime ON documents(mtime_unix);
`

// DB is a sqlite-backed store, useful for embedded snapshots and tests where
// a vault directory is not available. Each document carries a stable uid
// assigned on first write.
type DB struct {
	db *sql.DB
}

func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &DB{db: db}
	if err := s.init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *DB) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	var v int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = s.db.ExecContext(ctx, "INSERT INTO schema_version(version) VALUES(?)", schemaVersion)
		return err
	}
	if err != nil {
		return err
	}
	if v != schemaVersion {
		return fmt.Errorf("unsupported schema version %d", v)
	}
	return nil
}

func (s *DB) Close() error {
	return s.db.Close()
}

func (s *DB) ReadDocument(ctx context.Context, path string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx, "SELECT content FROM documents WHERE path=?", path).Scan(&content)
	if err != nil {
		return "", err
	}
	return content, nil
}

func (s *DB) WriteDocument(ctx context.Context, path, text string) error {
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents(path, uid, content, mtime_unix) VALUES(?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET content=excluded.content, mtime_unix=excluded.mtime_unix`,
		path, uuid.NewString(), text, now)
	return err
}

func (s *DB) ListDocuments(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path FROM documents ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// DocumentUID returns the stable uid assigned to a document on first write.
func (s *DB) DocumentUID(ctx context.Context, path string) (string, error) {
	var uid string
	err := s.db.QueryRowContext(ctx, "SELECT uid FROM documents WHERE path=?", path).Scan(&uid)
	if err != nil {
		return "", err
	}
	return uid, nil
}
