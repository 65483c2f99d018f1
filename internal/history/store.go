// Package history persists committed searches so recent queries can be
// recalled from an empty input.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/utcofficial/sophon-search/internal/domain"
)

// Store records committed queries in SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the history database at dbPath
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		committed_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_searches_committed_at ON searches(committed_at DESC);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a committed query. Blank queries are ignored; a query
// identical to the most recent entry is not duplicated.
func (s *Store) Record(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var last string
	err := s.db.QueryRow(`SELECT query FROM searches ORDER BY committed_at DESC, id DESC LIMIT 1`).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("reading last history entry: %w", err)
	}
	if last == query {
		return nil
	}

	_, err = s.db.Exec(`INSERT INTO searches (query, committed_at) VALUES (?, ?)`,
		query, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns up to limit most recent distinct queries, newest first
func (s *Store) Recent(limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	// Order by insertion id, not timestamp: several commits can land in
	// the same second
	rows, err := s.db.Query(`SELECT query, MAX(committed_at) AS at, MAX(id) AS mid
		FROM searches GROUP BY query ORDER BY mid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var id int64
		if err := rows.Scan(&e.Query, &e.CommittedAt, &id); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
