// Package baseline stores accepted violations in SQLite so that existing
// code can adopt the checks without fixing every file first.
package baseline

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mvp-joe/fndecl/internal/runner"
)

const schema = `
CREATE TABLE IF NOT EXISTS baseline (
	file_path  TEXT    NOT NULL,
	code       TEXT    NOT NULL,
	line       INTEGER NOT NULL,
	message    TEXT    NOT NULL,
	created_at TEXT    NOT NULL,
	PRIMARY KEY (file_path, code, line, message)
);
`

// Entry identifies one accepted violation.
type Entry struct {
	FilePath string
	Code     string
	Line     int
	Message  string
}

// Store is a baseline database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the baseline database at path.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create baseline directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open baseline: %w", err)
	}
	// A single connection keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create baseline schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Replace swaps the stored entries for entries in one transaction.
func (s *Store) Replace(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := sq.Delete("baseline").RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to clear baseline: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		_, err := sq.Insert("baseline").
			Options("OR IGNORE").
			Columns("file_path", "code", "line", "message", "created_at").
			Values(e.FilePath, e.Code, e.Line, e.Message, now).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("failed to insert baseline entry: %w", err)
		}
	}

	return tx.Commit()
}

// Load returns the stored entries as a set.
func (s *Store) Load() (map[Entry]bool, error) {
	rows, err := sq.Select("file_path", "code", "line", "message").
		From("baseline").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query baseline: %w", err)
	}
	defer rows.Close()

	entries := make(map[Entry]bool)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.FilePath, &e.Code, &e.Line, &e.Message); err != nil {
			return nil, fmt.Errorf("failed to scan baseline entry: %w", err)
		}
		entries[e] = true
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	var count int
	err := sq.Select("COUNT(*)").From("baseline").RunWith(s.db).QueryRow().Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count baseline: %w", err)
	}
	return count, nil
}

// Entries converts a result into baseline entries with paths relative to rootDir.
func Entries(result *runner.Result, rootDir string) []Entry {
	var entries []Entry
	for _, f := range result.Files {
		rel := relPath(rootDir, f.Path)
		for _, v := range f.Violations {
			entries = append(entries, Entry{FilePath: rel, Code: v.Code, Line: v.Line, Message: v.Text()})
		}
	}
	return entries
}

// Filter removes baselined violations from result and returns the number
// suppressed.
func (s *Store) Filter(result *runner.Result, rootDir string) (int, error) {
	known, err := s.Load()
	if err != nil {
		return 0, err
	}

	suppressed := 0
	for i, f := range result.Files {
		rel := relPath(rootDir, f.Path)
		kept := f.Violations[:0:0]
		for _, v := range f.Violations {
			if known[Entry{FilePath: rel, Code: v.Code, Line: v.Line, Message: v.Text()}] {
				suppressed++
				continue
			}
			kept = append(kept, v)
		}
		result.Files[i].Violations = kept
	}
	return suppressed, nil
}

func relPath(rootDir, path string) string {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
