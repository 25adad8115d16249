// Package history persists the routed-command audit log in SQLite.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/ports"
)

// SQLiteStore persists routed commands in a SQLite database. A store whose
// database cannot be opened degrades to a no-op rather than failing routing.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS commands (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		input TEXT,
		intent TEXT,
		subtype TEXT,
		provider TEXT,
		response TEXT,
		succeeded INTEGER
	);`)
	return err
}

// Save implements ports.HistoryRepository. A zero ID or Timestamp is filled
// in here.
func (s *SQLiteStore) Save(record domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO commands (id, timestamp, input, intent, subtype, provider, response, succeeded)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(time.RFC3339),
		record.Input,
		string(record.Intent),
		string(record.Subtype),
		record.Provider,
		record.Response,
		boolToInt(record.Succeeded),
	)
	return err
}

// Recent implements ports.HistoryRepository, newest first.
func (s *SQLiteStore) Recent(limit int) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, timestamp, input, intent, subtype, provider, response, succeeded
		 FROM commands ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts, intentStr, subtypeStr string
		var succeeded int
		if err := rows.Scan(&rec.ID, &ts, &rec.Input, &intentStr, &subtypeStr,
			&rec.Provider, &rec.Response, &succeeded); err != nil {
			return nil, err
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339, ts)
		rec.Intent = domain.IntentType(intentStr)
		rec.Subtype = domain.ActionSubtype(subtypeStr)
		rec.Succeeded = succeeded != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
