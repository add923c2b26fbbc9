package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	m "checklist.dev/pkg/checklist/internal/model"
)

// LedgerStore persists the pointers recorded during one audit session.
type LedgerStore interface {
	// Reset clears all entries and starts a new session.
	Reset(ctx context.Context) error
	// Record adds testID to the pointers of fqName. Recording the same pair
	// twice is a no-op, and so is an empty fqName.
	Record(ctx context.Context, fqName, testID string) error
	// Snapshot reads the whole ledger.
	Snapshot(ctx context.Context) (m.Ledger, error)
	// SessionID returns the id stamped by the last Reset, or "" if none.
	SessionID(ctx context.Context) (string, error)
	// Close releases resources held by the store.
	Close() error
}

// Ledger backends selectable from configuration.
const (
	LedgerBackendMemory = "memory"
	LedgerBackendCache  = "cache"
	LedgerBackendSQLite = "sqlite"
)

// NewLedgerStore opens the store for backend rooted at cacheDir.
func NewLedgerStore(backend string, cacheDir m.Path) (LedgerStore, error) {
	switch backend {
	case LedgerBackendMemory:
		return NewMemoryLedgerStore(), nil
	case LedgerBackendCache, "":
		return NewCacheLedgerStore(cacheDir), nil
	case LedgerBackendSQLite:
		return NewSQLiteLedgerStore(cacheDir)
	}

	return nil, fmt.Errorf("unknown ledger backend %q (want %s, %s or %s)",
		backend, LedgerBackendCache, LedgerBackendSQLite, LedgerBackendMemory)
}

// MemoryLedgerStore keeps the ledger in process memory.
type MemoryLedgerStore struct {
	mu        sync.Mutex
	ledger    m.Ledger
	sessionID string
}

// NewMemoryLedgerStore returns an empty in-memory ledger.
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{ledger: m.Ledger{}}
}

// Reset implements LedgerStore.
func (s *MemoryLedgerStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = m.Ledger{}
	s.sessionID = uuid.NewString()

	return nil
}

// Record implements LedgerStore.
func (s *MemoryLedgerStore) Record(ctx context.Context, fqName, testID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if fqName == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Add(fqName, testID)

	return nil
}

// Snapshot implements LedgerStore. The returned ledger is a copy.
func (s *MemoryLedgerStore) Snapshot(ctx context.Context) (m.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return copyLedger(s.ledger), nil
}

// SessionID implements LedgerStore.
func (s *MemoryLedgerStore) SessionID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessionID, nil
}

// Close implements LedgerStore.
func (s *MemoryLedgerStore) Close() error {
	return nil
}

func copyLedger(ledger m.Ledger) m.Ledger {
	out := make(m.Ledger, len(ledger))
	for name, ids := range ledger {
		set := make(m.TestIDSet, len(ids))
		for id := range ids {
			set[id] = struct{}{}
		}

		out[name] = set
	}

	return out
}
