package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a preset does not exist.
var ErrNotFound = errors.New("preset not found")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite preset store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database. Use ":memory:" for an
// in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreset inserts or replaces a preset for the model/name pair.
func (s *SQLiteStore) SavePreset(model, name string, values map[string]string) (*Preset, error) {
	if name == "" {
		return nil, fmt.Errorf("preset name is required")
	}

	payload, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode values: %w", err)
	}

	now := time.Now().UTC()
	existing, err := s.GetPreset(model, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	p := &Preset{Model: model, Name: name, Values: values, UpdatedAt: now}
	if existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		_, err = s.db.Exec(
			`UPDATE presets SET params = ?, updated_at = ? WHERE id = ?`,
			string(payload), now.Format(time.RFC3339), p.ID,
		)
	} else {
		p.ID = uuid.New().String()
		p.CreatedAt = now
		_, err = s.db.Exec(
			`INSERT INTO presets (id, model, name, params, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, model, name, string(payload),
			now.Format(time.RFC3339), now.Format(time.RFC3339),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}
	return p, nil
}

// GetPreset fetches one preset by model and name.
func (s *SQLiteStore) GetPreset(model, name string) (*Preset, error) {
	row := s.db.QueryRow(
		`SELECT id, model, name, params, created_at, updated_at
		 FROM presets WHERE model = ? AND name = ?`, model, name,
	)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// ListPresets returns all presets for a model, newest first.
func (s *SQLiteStore) ListPresets(model string) ([]*Preset, error) {
	rows, err := s.db.Query(
		`SELECT id, model, name, params, created_at, updated_at
		 FROM presets WHERE model = ? ORDER BY updated_at DESC, name`, model,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	var presets []*Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// DeletePreset removes a preset. Deleting a missing preset returns
// ErrNotFound.
func (s *SQLiteStore) DeletePreset(model, name string) error {
	res, err := s.db.Exec(`DELETE FROM presets WHERE model = ? AND name = ?`, model, name)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (*Preset, error) {
	var p Preset
	var payload, created, updated string
	if err := row.Scan(&p.ID, &p.Model, &p.Name, &payload, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &p.Values); err != nil {
		return nil, fmt.Errorf("corrupt preset values for %s/%s: %w", p.Model, p.Name, err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &p, nil
}
