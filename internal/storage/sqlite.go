// Package storage provides SQLite-based persistence for game recordings.
// A recording holds everything needed to replay a run: the seed, the grid
// geometry and every direction input with the tick it was applied on.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a recording does not exist.
var ErrNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection for recordings.
type Store struct {
	db *sql.DB
}

// Recording describes one recorded run.
type Recording struct {
	ID        string
	Seed      int64
	Cols      int
	Rows      int
	TickRate  int
	Ticks     uint64 // Zero until FinishRecording is called
	CreatedAt time.Time
}

// Input is a single direction change applied on Tick.
type Input struct {
	Tick      uint64
	Direction string
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			cols INTEGER NOT NULL,
			rows INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_created ON recordings(created_at DESC);

		CREATE TABLE IF NOT EXISTS recording_inputs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recording_id TEXT NOT NULL REFERENCES recordings(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			direction TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recording_inputs_rec ON recording_inputs(recording_id, tick);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRecording starts a new recording and returns its ID.
func (s *Store) CreateRecording(seed int64, cols, rows, tickRate int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO recordings (id, seed, cols, rows, tick_rate) VALUES (?, ?, ?, ?, ?)",
		id, seed, cols, rows, tickRate,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create recording: %w", err)
	}
	return id, nil
}

// AppendInput stores a direction input for the recording.
func (s *Store) AppendInput(id string, tick uint64, direction string) error {
	_, err := s.db.Exec(
		"INSERT INTO recording_inputs (recording_id, tick, direction) VALUES (?, ?, ?)",
		id, tick, direction,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append input: %w", err)
	}
	return nil
}

// FinishRecording stores the total number of ticks the run lasted.
func (s *Store) FinishRecording(id string, ticks uint64) error {
	res, err := s.db.Exec("UPDATE recordings SET ticks = ? WHERE id = ?", ticks, id)
	if err != nil {
		return fmt.Errorf("storage: cannot finish recording: %w", err)
	}
	return requireRow(res)
}

// Recording returns the recording with the given ID.
func (s *Store) Recording(id string) (*Recording, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, cols, rows, tick_rate, ticks, created_at
		 FROM recordings
		 WHERE id = ?`,
		id,
	)

	rec, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	return rec, nil
}

// Inputs returns the recorded inputs of a recording in the order they
// were applied.
func (s *Store) Inputs(id string) ([]Input, error) {
	rows, err := s.db.Query(
		`SELECT tick, direction
		 FROM recording_inputs
		 WHERE recording_id = ?
		 ORDER BY tick, id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []Input
	for rows.Next() {
		var in Input
		if err := rows.Scan(&in.Tick, &in.Direction); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		inputs = append(inputs, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return inputs, nil
}

// ListRecordings returns the most recent recordings, newest first.
func (s *Store) ListRecordings(limit int) ([]Recording, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, cols, rows, tick_rate, ticks, created_at
		 FROM recordings
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		recs = append(recs, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return recs, nil
}

// DeleteRecording removes a recording and its inputs.
func (s *Store) DeleteRecording(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM recording_inputs WHERE recording_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	res, err := tx.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecording(sc scanner) (*Recording, error) {
	var rec Recording
	var createdAt any
	if err := sc.Scan(&rec.ID, &rec.Seed, &rec.Cols, &rec.Rows, &rec.TickRate, &rec.Ticks, &createdAt); err != nil {
		return nil, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
