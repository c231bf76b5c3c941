/*
Package sqlite provides SQLite-backed persistence for audit entries and
user feedback.

PURPOSE:
  The validation engine itself holds no state; the only things worth
  persisting are the audit trail of financial-status decisions and the
  feedback caseworkers submit about results. Both are append-only.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on either table
  - No DELETE statements on either table

KEY TABLES:
  audit_entries: one row per recorded event, UUID primary key
  feedback:      raw feedback payloads, UUID primary key

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL, database-level
  concurrency control would handle this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/income.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - audit/audit.go: the Store interface this implements
  - api/handlers.go: the feedback endpoints
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/income-proving/audit"
)

// Feedback is one stored feedback payload.
type Feedback struct {
	ID        string
	Detail    string
	CreatedAt time.Time
}

// Store persists audit entries and feedback in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Audit trail (append-only)
	CREATE TABLE IF NOT EXISTS audit_entries (
		id TEXT PRIMARY KEY,
		event_type TEXT NOT NULL,
		nino TEXT NOT NULL,
		detail TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_entries_nino ON audit_entries(nino, created_at);
	CREATE INDEX IF NOT EXISTS idx_audit_entries_event_type ON audit_entries(event_type);

	-- Caseworker feedback (append-only)
	CREATE TABLE IF NOT EXISTS feedback (
		id TEXT PRIMARY KEY,
		detail TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// AUDIT ENTRIES
// =============================================================================

// SaveAuditEntry appends one audit entry.
func (s *Store) SaveAuditEntry(ctx context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (id, event_type, nino, detail, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.EventType, entry.Nino, entry.Detail, entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}
	return nil
}

// AuditEntriesForNino returns every entry recorded for one nino, oldest
// first.
func (s *Store) AuditEntriesForNino(ctx context.Context, nino string) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_type, nino, detail, created_at
		FROM audit_entries
		WHERE nino = ?
		ORDER BY created_at ASC`,
		nino,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.EventType, &entry.Nino, &entry.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse audit timestamp: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// =============================================================================
// FEEDBACK
// =============================================================================

// SaveFeedback appends one feedback payload.
func (s *Store) SaveFeedback(ctx context.Context, id, detail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (id, detail, created_at)
		VALUES (?, ?, ?)`,
		id, detail, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// ListFeedback returns every feedback payload, newest first.
func (s *Store) ListFeedback(ctx context.Context) ([]Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, detail, created_at
		FROM feedback
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var all []Feedback
	for rows.Next() {
		var f Feedback
		var createdAt string
		if err := rows.Scan(&f.ID, &f.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		f.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse feedback timestamp: %w", err)
		}
		all = append(all, f)
	}
	return all, rows.Err()
}
