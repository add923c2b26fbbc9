package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"checklist.dev/pkg/checklist/internal/adapter"
	m "checklist.dev/pkg/checklist/internal/model"
)

// Thresholds are the reconciliation settings of a session.
type Thresholds struct {
	MinPointers int
	FailUnder   float64
}

// Session is the two-phase host API: OnTestCaseCompleted once per executed
// test case, then Finalize once after the run.
type Session struct {
	store     adapter.LedgerStore
	discovery Discovery
	now       func() time.Time
}

// NewSession binds a session to a ledger store.
func NewSession(store adapter.LedgerStore, discovery Discovery) *Session {
	return &Session{store: store, discovery: discovery, now: time.Now}
}

// Start resets the ledger and stamps a new session id.
func (s *Session) Start(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		slog.Error("failed to reset ledger", "error", err)
		return fmt.Errorf("reset ledger: %w", err)
	}

	sessionID, err := s.store.SessionID(ctx)
	if err != nil {
		return err
	}

	slog.Info("checklist session started", "session", sessionID)

	return nil
}

// OnTestCaseCompleted records the pointer of one finished test case. A nil
// mark records nothing.
func (s *Session) OnTestCaseCompleted(ctx context.Context, testID string, mark *m.PointerMark) error {
	pointer, err := ResolveTargetPointer(testID, mark)
	if err != nil {
		slog.Error("invalid pointer mark", "test", testID, "error", err)
		return err
	}

	if pointer == nil {
		return nil
	}

	if err := s.store.Record(ctx, pointer.FullName, pointer.TestID); err != nil {
		slog.Error("failed to record pointer", "test", testID, "target", pointer.FullName, "error", err)
		return fmt.Errorf("record pointer: %w", err)
	}

	slog.Debug("recorded pointer", "test", testID, "target", pointer.FullName)

	return nil
}

// Finalize discovers targets, reads the ledger once and reconciles them.
func (s *Session) Finalize(ctx context.Context, collect CollectArgs, thresholds Thresholds) (m.CoverageReport, error) {
	discovered, err := s.discovery.Discover(ctx, collect)
	if err != nil {
		return m.CoverageReport{}, err
	}

	ledger, err := s.store.Snapshot(ctx)
	if err != nil {
		slog.Error("failed to read ledger", "error", err)
		return m.CoverageReport{}, fmt.Errorf("read ledger: %w", err)
	}

	sessionID, err := s.store.SessionID(ctx)
	if err != nil {
		return m.CoverageReport{}, err
	}

	result := Reconcile(discovered.Targets.Targets, ledger, thresholds.MinPointers, thresholds.FailUnder)

	slog.Info("checklist session finalized",
		"session", sessionID,
		"targets", len(result.Reports),
		"percent", result.Percent,
		"passes", result.Passes)

	return m.CoverageReport{
		SessionID:   sessionID,
		MinPointers: thresholds.MinPointers,
		FailUnder:   thresholds.FailUnder,
		Percent:     result.Percent,
		Passes:      result.Passes,
		Reports:     result.Reports,
		Excluded:    discovered.Excluded,
		GeneratedAt: s.now().UTC(),
	}, nil
}
