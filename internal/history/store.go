package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Outcome classifies how a recorded search ended.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeTruncated Outcome = "truncated"
	OutcomeFailed    Outcome = "failed"
)

// Entry is one served search.
type Entry struct {
	ID        int64
	RequestID string
	File      string
	Total     int64
	Keywords  []string
	Matches   int64
	Outcome   Outcome
	Duration  time.Duration
	CreatedAt time.Time
}

// Store manages search history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS search_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    request_id TEXT NOT NULL,
    file TEXT NOT NULL,
    total INTEGER NOT NULL,
    keywords TEXT NOT NULL DEFAULT '',
    matches INTEGER NOT NULL DEFAULT 0,
    outcome TEXT NOT NULL,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_search_history_created_at
    ON search_history (created_at DESC);
`

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Record inserts one entry. CreatedAt defaults to now when unset.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO search_history (
            request_id, file, total, keywords, matches, outcome, duration_ms, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RequestID,
		entry.File,
		entry.Total,
		strings.Join(entry.Keywords, " "),
		entry.Matches,
		string(entry.Outcome),
		entry.Duration.Milliseconds(),
		created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert history entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, request_id, file, total, keywords, matches, outcome, duration_ms, created_at
         FROM search_history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			keywords   string
			durationMS int64
			created    string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&entry.File,
			&entry.Total,
			&keywords,
			&entry.Matches,
			(*string)(&entry.Outcome),
			&durationMS,
			&created,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if keywords != "" {
			entry.Keywords = strings.Fields(keywords)
		}
		entry.Duration = time.Duration(durationMS) * time.Millisecond
		if parsed, parseErr := time.Parse(time.RFC3339Nano, created); parseErr == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Clear deletes every entry and reports how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM search_history`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}
