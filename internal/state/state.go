package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS servers (
    name        TEXT PRIMARY KEY,
    executable  TEXT NOT NULL DEFAULT '',
    vimrc       TEXT NOT NULL DEFAULT '',
    running     INTEGER NOT NULL DEFAULT 0,
    started_at  TIMESTAMP,
    stopped_at  TIMESTAMP,
    updated_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const timeLayout = "2006-01-02 15:04:05"

// Store records the vim servers started by vimdrive so later invocations
// only address names they created.
type Store struct {
	db *sql.DB
}

// DefaultPath returns $XDG_STATE_HOME/vimdrive/state.db.
func DefaultPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "vimdrive", "state.db"), nil
}

// Open creates or opens the state database at path, or DefaultPath when
// path is empty.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL mode for safe concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordStart marks name as started by vimdrive.
func (s *Store) RecordStart(name, executable, vimrc string) error {
	_, err := s.db.Exec(`
		INSERT INTO servers (name, executable, vimrc, running, started_at, stopped_at, updated_at)
		VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP, NULL, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			executable = excluded.executable,
			vimrc = excluded.vimrc,
			running = 1,
			started_at = CURRENT_TIMESTAMP,
			stopped_at = NULL,
			updated_at = CURRENT_TIMESTAMP
	`, name, executable, vimrc)
	return err
}

// RecordStop marks name as stopped. Unknown names are ignored.
func (s *Store) RecordStop(name string) error {
	_, err := s.db.Exec(`
		UPDATE servers SET
			running = 0,
			stopped_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, name)
	return err
}

// Known reports whether vimdrive ever started name.
func (s *Store) Known(name string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM servers WHERE name = ?", name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Server is a registry entry.
type Server struct {
	Name       string
	Executable string
	Vimrc      string
	Running    bool // as last recorded; the live server list is authoritative
	StartedAt  time.Time
	StoppedAt  time.Time
}

// List returns registered servers, most recently started first.
func (s *Store) List(limit int) ([]Server, error) {
	rows, err := s.db.Query(`
		SELECT name, executable, vimrc, running,
			COALESCE(started_at, ''), COALESCE(stopped_at, '')
		FROM servers
		ORDER BY started_at DESC, name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Server
	for rows.Next() {
		var srv Server
		var running int
		var started, stopped string
		if err := rows.Scan(&srv.Name, &srv.Executable, &srv.Vimrc, &running, &started, &stopped); err != nil {
			return nil, err
		}
		srv.Running = running == 1
		srv.StartedAt, _ = time.Parse(timeLayout, started)
		srv.StoppedAt, _ = time.Parse(timeLayout, stopped)
		result = append(result, srv)
	}
	return result, rows.Err()
}

// Forget removes name from the registry.
func (s *Store) Forget(name string) error {
	_, err := s.db.Exec("DELETE FROM servers WHERE name = ?", name)
	return err
}
