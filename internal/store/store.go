// Package store persists the set of liked map images.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"mapgallery/internal/errors"
	"mapgallery/internal/log"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Likes is the set of liked image paths.
type Likes interface {
	Like(path string) error
	Unlike(path string) error
	Toggle(path string) (bool, error)
	IsLiked(path string) (bool, error)
	Liked() (map[string]bool, error)
	Close() error
}

// DB is a Likes backed by SQLite.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the likes database at dbPath.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.NewDatabaseError("cannot create database directory", err).
			WithOperation("open").
			WithContext("path", dbPath)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("cannot open database", err).
			WithOperation("open").
			WithContext("path", dbPath)
	}

	// WAL lets the watcher driven refresh read while a like is written
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, errors.NewDatabaseError("cannot configure database", err).
				WithOperation("open").
				WithContext("pragma", p)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS likes (
		path TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, errors.NewDatabaseError("cannot create schema", err).WithOperation("open")
	}

	log.LogWithFields(log.F("path", dbPath)).Debug("Opened likes database")
	return &DB{conn: conn, path: dbPath}, nil
}

// Path returns the database file location
func (d *DB) Path() string {
	return d.path
}

// Like marks path as liked. Liking twice is a no-op.
func (d *DB) Like(path string) error {
	// INSERT OR IGNORE keeps the original created_at on repeated likes
	if _, err := d.conn.Exec("INSERT OR IGNORE INTO likes (path) VALUES (?)", path); err != nil {
		return errors.NewDatabaseError("failed to like map", err).
			WithOperation("like").
			WithContext("path", path)
	}
	return nil
}

// Unlike removes the liked mark of path.
func (d *DB) Unlike(path string) error {
	if _, err := d.conn.Exec("DELETE FROM likes WHERE path = ?", path); err != nil {
		return errors.NewDatabaseError("failed to unlike map", err).
			WithOperation("unlike").
			WithContext("path", path)
	}
	return nil
}

// Toggle flips the liked state of path and returns the new state.
func (d *DB) Toggle(path string) (bool, error) {
	liked, err := d.IsLiked(path)
	if err != nil {
		return false, err
	}
	if liked {
		return false, d.Unlike(path)
	}
	return true, d.Like(path)
}

// IsLiked reports whether path is liked.
func (d *DB) IsLiked(path string) (bool, error) {
	var n int
	err := d.conn.QueryRow("SELECT COUNT(*) FROM likes WHERE path = ?", path).Scan(&n)
	if err != nil {
		return false, errors.NewDatabaseError("failed to query like", err).
			WithOperation("is_liked").
			WithContext("path", path)
	}
	return n > 0, nil
}

// Liked returns every liked path.
func (d *DB) Liked() (map[string]bool, error) {
	rows, err := d.conn.Query("SELECT path FROM likes ORDER BY created_at ASC")
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list likes", err).WithOperation("liked")
	}
	defer rows.Close()

	liked := make(map[string]bool)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, errors.NewDatabaseError("failed to read like", err).WithOperation("liked")
		}
		liked[path] = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("failed to list likes", err).WithOperation("liked")
	}
	return liked, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

// Memory is a Likes kept in process memory only.
type Memory struct {
	mu    sync.Mutex
	liked map[string]bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{liked: make(map[string]bool)}
}

// Like marks path as liked.
func (m *Memory) Like(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liked[path] = true
	return nil
}

// Unlike removes the liked mark of path.
func (m *Memory) Unlike(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.liked, path)
	return nil
}

// Toggle flips the liked state of path and returns the new state.
func (m *Memory) Toggle(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.liked[path] {
		delete(m.liked, path)
		return false, nil
	}
	m.liked[path] = true
	return true, nil
}

// IsLiked reports whether path is liked.
func (m *Memory) IsLiked(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.liked[path], nil
}

// Liked returns a copy of the liked set.
func (m *Memory) Liked() (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]bool, len(m.liked))
	for p := range m.liked {
		out[p] = true
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }

// OpenOrMemory opens the database at dbPath, falling back to an in-memory
// store with a warning when that fails. An empty path selects memory.
func OpenOrMemory(dbPath string) Likes {
	if dbPath == "" {
		return NewMemory()
	}
	db, err := Open(dbPath)
	if err != nil {
		log.LogWithError(err).Warn("Likes will not be saved between sessions")
		return NewMemory()
	}
	return db
}

// Sorted returns the liked paths of l in lexical order.
func Sorted(l Likes) ([]string, error) {
	liked, err := l.Liked()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(liked))
	for p := range liked {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}
