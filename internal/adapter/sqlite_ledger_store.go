package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	m "checklist.dev/pkg/checklist/internal/model"
)

const sqliteLedgerFile = "ledger.db"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS pointers (
	target TEXT NOT NULL,
	test_id TEXT NOT NULL,
	PRIMARY KEY (target, test_id)
);
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	session_id TEXT NOT NULL
);
`

// SQLiteLedgerStore keeps the ledger in an SQLite database inside the cache
// directory. Each write runs in its own transaction, so several host
// worker processes may record concurrently.
type SQLiteLedgerStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteLedgerStore opens (and creates if needed) the ledger database.
func NewSQLiteLedgerStore(cacheDir m.Path) (*SQLiteLedgerStore, error) {
	dir := filepath.Join(string(cacheDir), cacheValuesDir, CacheNamespace)
	if err := os.MkdirAll(dir, cacheDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, sqliteLedgerFile)

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		slog.Error("failed to initialize ledger schema", "path", path, "error", err)

		return nil, fmt.Errorf("initialize ledger schema: %w", err)
	}

	return &SQLiteLedgerStore{db: db, path: path}, nil
}

// Path returns the database file.
func (s *SQLiteLedgerStore) Path() string {
	return s.path
}

// Reset implements LedgerStore.
func (s *SQLiteLedgerStore) Reset(ctx context.Context) error {
	sessionID := uuid.NewString()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM pointers`); err != nil {
			return fmt.Errorf("clear pointers: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session (id, session_id) VALUES (1, ?)
			 ON CONFLICT(id) DO UPDATE SET session_id = excluded.session_id`, sessionID); err != nil {
			return fmt.Errorf("store session id: %w", err)
		}

		slog.Debug("ledger reset", "path", s.path, "session", sessionID)

		return nil
	})
}

// Record implements LedgerStore.
func (s *SQLiteLedgerStore) Record(ctx context.Context, fqName, testID string) error {
	if fqName == "" {
		return nil
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO pointers (target, test_id) VALUES (?, ?)`, fqName, testID)
		if err != nil {
			return fmt.Errorf("record pointer: %w", err)
		}

		return nil
	})
}

// Snapshot implements LedgerStore.
func (s *SQLiteLedgerStore) Snapshot(ctx context.Context) (m.Ledger, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT target, test_id FROM pointers`)
	if err != nil {
		slog.Error("failed to read ledger", "path", s.path, "error", err)
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	defer rows.Close()

	ledger := m.Ledger{}

	for rows.Next() {
		var target, testID string
		if err := rows.Scan(&target, &testID); err != nil {
			return nil, fmt.Errorf("scan pointer: %w", err)
		}

		ledger.Add(target, testID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	return ledger, nil
}

// SessionID implements LedgerStore.
func (s *SQLiteLedgerStore) SessionID(ctx context.Context) (string, error) {
	var sessionID string

	err := s.db.QueryRowContext(ctx, `SELECT session_id FROM session WHERE id = 1`).Scan(&sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("read session id: %w", err)
	}

	return sessionID, nil
}

// Close implements LedgerStore.
func (s *SQLiteLedgerStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteLedgerStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		slog.Error("ledger transaction failed", "path", s.path, "error", err)

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
