package pref

import (
	"context"
	"database/sql"
	"errors"
	"time"

	lerrors "github.com/hoi-launcher/shell/internal/errors"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists preferences in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and migrates
// the prefs table.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, lerrors.New(lerrors.CodeStorageOpen).WithDetail(path).Wrap(err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, lerrors.New(lerrors.CodeStorageOpen).WithDetail(path).Wrap(err)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS prefs (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, lerrors.New(lerrors.CodeStorageOpen).WithDetail(path).Wrap(err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM prefs WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", lerrors.New(lerrors.CodeStorageQuery).WithDetail(key).Wrap(err)
	}
	return v, nil
}

// Set implements Store.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prefs (k, v, updated_at_unixms) VALUES (?, ?, ?)
		 ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at_unixms = excluded.updated_at_unixms`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return lerrors.New(lerrors.CodeStorageQuery).WithDetail(key).Wrap(err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM prefs WHERE k = ?`, key); err != nil {
		return lerrors.New(lerrors.CodeStorageQuery).WithDetail(key).Wrap(err)
	}
	return nil
}

// Entry returns a stored preference with its last write time.
func (s *SQLiteStore) Entry(ctx context.Context, key string) (Entry, error) {
	var (
		v  string
		ms int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT v, updated_at_unixms FROM prefs WHERE k = ?`, key).Scan(&v, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, lerrors.New(lerrors.CodeStorageQuery).WithDetail(key).Wrap(err)
	}
	return Entry{Key: key, Value: v, UpdatedAt: time.UnixMilli(ms)}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
