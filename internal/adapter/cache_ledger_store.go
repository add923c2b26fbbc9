package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	m "checklist.dev/pkg/checklist/internal/model"
)

// Cache namespace of the ledger, relative to the cache directory.
const (
	CacheNamespace   = "checklist"
	cacheValuesDir   = "v"
	cacheTargetsKey  = "targets"
	cacheSessionKey  = "session"
	cacheFilePerm    = 0o600
	cacheDirPerm     = 0o750
	cacheTempPattern = ".tmp-*"
)

// CacheLedgerStore keeps the ledger as a JSON document in a process-visible
// cache directory: {fq-name: [test ids]}. Every write loads the whole map
// and rewrites it. Writers are serialized inside one process only, so
// parallel host runners should use the SQLite backend.
type CacheLedgerStore struct {
	mu  sync.Mutex
	dir m.Path
}

// NewCacheLedgerStore returns a store rooted at cacheDir.
func NewCacheLedgerStore(cacheDir m.Path) *CacheLedgerStore {
	return &CacheLedgerStore{dir: cacheDir}
}

// TargetsPath is the file holding the pointer map.
func (s *CacheLedgerStore) TargetsPath() m.Path {
	return m.Path(filepath.Join(string(s.dir), cacheValuesDir, CacheNamespace, cacheTargetsKey))
}

func (s *CacheLedgerStore) sessionPath() string {
	return filepath.Join(string(s.dir), cacheValuesDir, CacheNamespace, cacheSessionKey)
}

// Reset implements LedgerStore.
func (s *CacheLedgerStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(map[string][]string{}); err != nil {
		return err
	}

	sessionID := uuid.NewString()
	if err := writeFileAtomic(s.sessionPath(), []byte(sessionID)); err != nil {
		slog.Error("failed to write session id", "path", s.sessionPath(), "error", err)
		return fmt.Errorf("write session id: %w", err)
	}

	slog.Debug("ledger reset", "path", s.TargetsPath(), "session", sessionID)

	return nil
}

// Record implements LedgerStore.
func (s *CacheLedgerStore) Record(ctx context.Context, fqName, testID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if fqName == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.read()
	if err != nil {
		return err
	}

	ledger := ledgerFromRaw(raw)
	if _, ok := ledger[fqName][testID]; ok {
		return nil
	}

	ledger.Add(fqName, testID)

	return s.write(rawFromLedger(ledger))
}

// Snapshot implements LedgerStore.
func (s *CacheLedgerStore) Snapshot(ctx context.Context) (m.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.read()
	if err != nil {
		return nil, err
	}

	return ledgerFromRaw(raw), nil
}

// SessionID implements LedgerStore.
func (s *CacheLedgerStore) SessionID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.sessionPath())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("read session id: %w", err)
	}

	return string(data), nil
}

// Close implements LedgerStore.
func (s *CacheLedgerStore) Close() error {
	return nil
}

// read loads the pointer map; a missing file is an empty ledger.
func (s *CacheLedgerStore) read() (map[string][]string, error) {
	path := string(s.TargetsPath())

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string][]string{}, nil
	}

	if err != nil {
		slog.Error("failed to read ledger", "path", path, "error", err)
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	raw := map[string][]string{}
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Error("failed to decode ledger", "path", path, "error", err)
		return nil, fmt.Errorf("decode ledger %s: %w", path, err)
	}

	return raw, nil
}

func (s *CacheLedgerStore) write(raw map[string][]string) error {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	path := string(s.TargetsPath())
	if err := writeFileAtomic(path, data); err != nil {
		slog.Error("failed to write ledger", "path", path, "error", err)
		return fmt.Errorf("write ledger: %w", err)
	}

	return nil
}

func ledgerFromRaw(raw map[string][]string) m.Ledger {
	ledger := make(m.Ledger, len(raw))
	for name, ids := range raw {
		set := make(m.TestIDSet, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}

		ledger[name] = set
	}

	return ledger
}

func rawFromLedger(ledger m.Ledger) map[string][]string {
	raw := make(map[string][]string, len(ledger))
	for name, ids := range ledger {
		raw[name] = ids.Sorted()
	}

	return raw
}

// writeFileAtomic replaces path with data through a rename so readers never
// observe a partially written file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, cacheDirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, cacheTempPattern)
	if err != nil {
		return err
	}

	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, cacheFilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
