// Package storage provides SQLite-based persistence for the map library.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// ErrNotFound is returned when a map ID is not in the library.
var ErrNotFound = errors.New("storage: map not found")

// Store manages the SQLite database connection for the map library.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// MapRecord is one stored map. Body holds the map in YAML map-file form.
type MapRecord struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Width     int    `db:"width"`
	Height    int    `db:"height"`
	Body      string `db:"body"`
	CreatedAt int64  `db:"created_at"` // unix seconds
	UpdatedAt int64  `db:"updated_at"` // unix seconds
}

// MapSummary is a library listing entry.
type MapSummary struct {
	ID        string
	Name      string
	Width     int
	Height    int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMap inserts m or replaces the stored map with the same ID.
func (s *Store) SaveMap(m *world.Map) error {
	body, err := m.EncodeYAML()
	if err != nil {
		return fmt.Errorf("storage: cannot encode map %q: %w", m.ID, err)
	}

	now := s.now().Unix()
	_, err = s.db.NamedExec(
		`INSERT INTO maps (id, name, width, height, body, created_at, updated_at)
		 VALUES (:id, :name, :width, :height, :body, :created_at, :updated_at)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   width = excluded.width,
		   height = excluded.height,
		   body = excluded.body,
		   updated_at = excluded.updated_at`,
		MapRecord{
			ID:        m.ID,
			Name:      m.Name,
			Width:     m.Grid.Width(),
			Height:    m.Grid.Height(),
			Body:      string(body),
			CreatedAt: now,
			UpdatedAt: now,
		},
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save map %q: %w", m.ID, err)
	}
	return nil
}

// GetMap loads and validates a stored map.
func (s *Store) GetMap(id string) (*world.Map, error) {
	var rec MapRecord
	err := s.db.Get(&rec, "SELECT * FROM maps WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query map %q: %w", id, err)
	}

	m, err := world.ParseMapYAML([]byte(rec.Body))
	if err != nil {
		return nil, fmt.Errorf("storage: stored map %q is invalid: %w", id, err)
	}
	return m, nil
}

// HasMap reports whether id is in the library.
func (s *Store) HasMap(id string) (bool, error) {
	var n int
	if err := s.db.Get(&n, "SELECT COUNT(*) FROM maps WHERE id = ?", id); err != nil {
		return false, fmt.Errorf("storage: cannot query map %q: %w", id, err)
	}
	return n > 0, nil
}

// ListMaps returns all stored maps ordered by ID.
func (s *Store) ListMaps() ([]MapSummary, error) {
	var recs []MapRecord
	err := s.db.Select(&recs,
		`SELECT id, name, width, height, '' AS body, created_at, updated_at
		 FROM maps
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list maps: %w", err)
	}

	out := make([]MapSummary, 0, len(recs))
	for _, r := range recs {
		out = append(out, MapSummary{
			ID:        r.ID,
			Name:      r.Name,
			Width:     r.Width,
			Height:    r.Height,
			UpdatedAt: time.Unix(r.UpdatedAt, 0),
		})
	}
	return out, nil
}

// DeleteMap removes a stored map.
func (s *Store) DeleteMap(id string) error {
	res, err := s.db.Exec("DELETE FROM maps WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete map %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete map %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}
