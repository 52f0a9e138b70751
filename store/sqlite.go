package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so lexicographic comparison of stored UTC
// timestamps matches chronological order (RFC3339Nano trims zeros and
// does not).
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is a durable tier backed by a SQLite database file. Both
// the synced tier (file inside a sync-managed directory) and the
// local-only tier (file in the state directory) use it.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures the
// schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  planned_minutes INTEGER NOT NULL,
  actual_minutes REAL NOT NULL,
  elapsed_minutes REAL NOT NULL,
  is_valid INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  completed_at TEXT,
  was_paused INTEGER NOT NULL,
  pause_count INTEGER NOT NULL,
  synced_health INTEGER NOT NULL DEFAULT 0,
  synced_cloud INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

const recordColumns = `id, planned_minutes, actual_minutes, elapsed_minutes, is_valid,
  created_at, completed_at, was_paused, pause_count, synced_health, synced_cloud`

// Create inserts a new record.
func (s *SQLiteStore) Create(rec Record) error {
	const stmt = `
INSERT INTO sessions (` + recordColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := s.db.Exec(stmt,
		rec.ID,
		rec.PlannedMinutes,
		rec.ActualMinutes,
		rec.ElapsedMinutes,
		boolInt(rec.Valid),
		rec.CreatedAt.UTC().Format(timeLayout),
		nullableTime(rec.CompletedAt),
		boolInt(rec.WasPaused),
		rec.PauseCount,
		boolInt(rec.Synced.Health),
		boolInt(rec.Synced.Cloud),
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record with the given ID.
func (s *SQLiteStore) Get(id string) (Record, error) {
	row := s.db.QueryRow(`SELECT `+recordColumns+` FROM sessions WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return rec, nil
}

// List returns all records ordered by creation time.
func (s *SQLiteStore) List() ([]Record, error) {
	return s.query(`SELECT ` + recordColumns + ` FROM sessions ORDER BY created_at, id`)
}

// ListRange returns records created in [from, to).
func (s *SQLiteStore) ListRange(from, to time.Time) ([]Record, error) {
	return s.query(
		`SELECT `+recordColumns+` FROM sessions
		 WHERE created_at >= ? AND created_at < ?
		 ORDER BY created_at, id`,
		from.UTC().Format(timeLayout),
		to.UTC().Format(timeLayout),
	)
}

// ListValid returns finalized records that meet the validity floor.
func (s *SQLiteStore) ListValid() ([]Record, error) {
	return s.query(
		`SELECT ` + recordColumns + ` FROM sessions
		 WHERE is_valid = 1 AND completed_at IS NOT NULL
		 ORDER BY created_at, id`,
	)
}

// Active returns the in-progress record, if one exists.
func (s *SQLiteStore) Active() (Record, bool, error) {
	row := s.db.QueryRow(`SELECT ` + recordColumns + ` FROM sessions WHERE completed_at IS NULL LIMIT 1`)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("find active session: %w", err)
	}
	return rec, true, nil
}

// Update replaces the record with the same ID.
func (s *SQLiteStore) Update(rec Record) error {
	const stmt = `
UPDATE sessions SET
  planned_minutes = ?,
  actual_minutes = ?,
  elapsed_minutes = ?,
  is_valid = ?,
  created_at = ?,
  completed_at = ?,
  was_paused = ?,
  pause_count = ?,
  synced_health = ?,
  synced_cloud = ?
WHERE id = ?
`
	result, err := s.db.Exec(stmt,
		rec.PlannedMinutes,
		rec.ActualMinutes,
		rec.ElapsedMinutes,
		boolInt(rec.Valid),
		rec.CreatedAt.UTC().Format(timeLayout),
		nullableTime(rec.CompletedAt),
		boolInt(rec.WasPaused),
		rec.PauseCount,
		boolInt(rec.Synced.Health),
		boolInt(rec.Synced.Cloud),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update session %s: %w", rec.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session %s: %w", rec.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, rec.ID)
	}
	return nil
}

// Delete removes the record with the given ID.
func (s *SQLiteStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) query(stmt string, args ...any) ([]Record, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var results []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec          Record
		valid        int
		createdAt    string
		completedAt  sql.NullString
		wasPaused    int
		syncedHealth int
		syncedCloud  int
	)
	err := row.Scan(
		&rec.ID,
		&rec.PlannedMinutes,
		&rec.ActualMinutes,
		&rec.ElapsedMinutes,
		&valid,
		&createdAt,
		&completedAt,
		&wasPaused,
		&rec.PauseCount,
		&syncedHealth,
		&syncedCloud,
	)
	if err != nil {
		return Record{}, err
	}

	rec.Valid = valid != 0
	rec.WasPaused = wasPaused != 0
	rec.Synced.Health = syncedHealth != 0
	rec.Synced.Cloud = syncedCloud != 0

	rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at: %w", err)
	}
	if completedAt.Valid {
		rec.CompletedAt, err = time.Parse(timeLayout, completedAt.String)
		if err != nil {
			return Record{}, fmt.Errorf("parse completed_at: %w", err)
		}
	}
	return rec, nil
}

func boolInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func nullableTime(at time.Time) any {
	if at.IsZero() {
		return nil
	}
	return at.UTC().Format(timeLayout)
}
