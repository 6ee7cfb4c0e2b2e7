package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists the catalog to SQLite.
// It is suitable for single-process use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens or creates a catalog database.
// The path should be a file path (e.g., "./templates.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			template TEXT NOT NULL,
			properties TEXT NOT NULL,
			dialect TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			seen_at TEXT NOT NULL,
			UNIQUE (source, template)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_templates_source
		ON templates(source, sequence)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Entry{}, ErrStoreClosed
	}

	if e.Properties == nil {
		e.Properties = []string{}
	}
	props, err := json.Marshal(e.Properties)
	if err != nil {
		return Entry{}, fmt.Errorf("encode properties: %w", err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	} else if err := s.claimID(&e); err != nil {
		return Entry{}, err
	}
	e.SeenAt = time.Now().UTC()

	// Sequence is max + 1 for the source; an existing row keeps its id.
	err = s.db.QueryRow(`
		INSERT INTO templates (id, source, template, properties, dialect, sequence, seen_at)
		VALUES (
			?, ?, ?, ?, ?,
			COALESCE((SELECT MAX(sequence) FROM templates WHERE source = ?), 0) + 1,
			?
		)
		ON CONFLICT(source, template) DO UPDATE SET
			properties = excluded.properties,
			dialect = excluded.dialect,
			sequence = (SELECT MAX(sequence) FROM templates WHERE source = excluded.source) + 1,
			seen_at = excluded.seen_at
		RETURNING id, sequence
	`, e.ID, e.Source, e.Template, string(props), e.Dialect, e.Source,
		e.SeenAt.Format(time.RFC3339Nano)).Scan(&e.ID, &e.Sequence)
	if err != nil {
		return Entry{}, fmt.Errorf("save entry: %w", err)
	}
	return copyEntry(e), nil
}

// claimID resolves a caller-supplied ID. An existing row for the same
// (source, template) keeps its own ID; an ID held by any other row is a
// conflict. Callers hold s.mu.
func (s *SQLiteStore) claimID(e *Entry) error {
	var existing string
	err := s.db.QueryRow(`SELECT id FROM templates WHERE source = ? AND template = ?`,
		e.Source, e.Template).Scan(&existing)
	switch {
	case err == nil:
		e.ID = existing
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("lookup entry: %w", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM templates WHERE id = ?`, e.ID).Scan(&n); err != nil {
		return fmt.Errorf("lookup entry id: %w", err)
	}
	if n > 0 {
		return ErrIDConflict
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Entry{}, ErrStoreClosed
	}

	row := s.db.QueryRow(`
		SELECT id, source, template, properties, dialect, sequence, seen_at
		FROM templates
		WHERE id = ?
	`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// List implements Store.
func (s *SQLiteStore) List(source string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT id, source, template, properties, dialect, sequence, seen_at
		FROM templates
		WHERE source = ?
		ORDER BY sequence
	`, source)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// DeleteSource implements Store.
func (s *SQLiteStore) DeleteSource(source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM templates WHERE source = ?`, source); err != nil {
		return fmt.Errorf("delete source entries: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var props, seenAt string
	if err := row.Scan(&e.ID, &e.Source, &e.Template, &props, &e.Dialect, &e.Sequence, &seenAt); err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(props), &e.Properties); err != nil {
		return Entry{}, fmt.Errorf("decode properties: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, seenAt)
	if err != nil {
		return Entry{}, fmt.Errorf("decode seen_at: %w", err)
	}
	e.SeenAt = t
	return e, nil
}

// Compile-time interface checks.
var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
