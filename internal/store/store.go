// Package store persists the best score. SQLite backs the desktop build;
// the in-memory store covers tests and the fallback when the database
// cannot be opened.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const bestScoreKey = "best_score"

// Memory is a process-local score store.
type Memory struct {
	mu   sync.RWMutex
	best int
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) LoadBest(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.best, nil
}

func (m *Memory) SaveBest(ctx context.Context, score int) error {
	if score < 0 {
		return fmt.Errorf("negative score %d", score)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = score
	return nil
}

// SQLite keeps the best score in a single key/value table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value INTEGER NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) LoadBest(ctx context.Context) (int, error) {
	var best int
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, bestScoreKey).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load best score: %w", err)
	}
	return best, nil
}

func (s *SQLite) SaveBest(ctx context.Context, score int) error {
	if score < 0 {
		return fmt.Errorf("negative score %d", score)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		bestScoreKey, score)
	if err != nil {
		return fmt.Errorf("save best score: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }
