// Package store keeps a library of plasmid map definitions in DuckDB.
// Each import replaces the stored copy of a map by name, so the library
// always reflects the most recently imported file.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no map is stored under the requested name.
var ErrNotFound = errors.New("plasmid not found in store")

// Store manages a DuckDB connection holding map definitions.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path, logger: zap.NewNop()}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// SetLogger sets the logger for import messages.
func (s *Store) SetLogger(l *zap.Logger) { s.logger = l }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file, or "" for an in-memory store.
func (s *Store) Path() string { return s.path }

// ensureSchema creates tables if they don't exist. Names are kept unique by
// Save rather than by key constraints: DuckDB rejects re-inserting a deleted
// key inside the same transaction.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS plasmids (
		name VARCHAR,
		base_pairs BIGINT,
		style VARCHAR,
		source_path VARCHAR,
		source_size BIGINT,
		source_mtime TIMESTAMP,
		imported_at TIMESTAMP
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS features (
		plasmid VARCHAR,
		idx BIGINT,
		kind VARCHAR,
		name VARCHAR,
		start_pos BIGINT,
		end_pos BIGINT,
		position BIGINT,
		direction BIGINT,
		definition VARCHAR
	)`)
	return err
}
