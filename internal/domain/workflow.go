package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"checklist.dev/pkg/checklist/internal/adapter"
	"checklist.dev/pkg/checklist/internal/controller"
	m "checklist.dev/pkg/checklist/internal/model"
)

var (
	// ErrCoverageFailed is returned when the achieved percent is below the
	// fail-under threshold.
	ErrCoverageFailed = errors.New("checklist unit coverage failed")
	// ErrHostFailed is returned by Run when the wrapped command exits non-zero.
	ErrHostFailed = errors.New("host command failed")
)

// Environment variables exported to a host command started by Run. They
// match the configuration keys so nested record calls share the ledger.
const (
	EnvLedgerBackend  = "CHECKLIST_LEDGER_BACKEND"
	EnvLedgerCacheDir = "CHECKLIST_LEDGER_CACHE_DIR"
	EnvSessionID      = "CHECKLIST_SESSION_ID"
	EnvDisabled       = "CHECKLIST_DISABLED"
)

// LedgerArgs selects the ledger store.
type LedgerArgs struct {
	Backend  string
	CacheDir m.Path
}

// StartArgs contains the arguments for starting a session.
type StartArgs struct {
	Ledger LedgerArgs
	// Active is false when neither collection nor reporting is enabled; the
	// ledger is then left untouched.
	Active   bool
	Disabled bool
}

// TestCase is one completed test case as reported by the host.
type TestCase struct {
	TestID string
	Mark   *m.PointerMark
}

// RecordArgs contains the arguments for recording completed test cases.
type RecordArgs struct {
	Ledger    LedgerArgs
	TestCases []TestCase
	// Active has the same meaning as in StartArgs; inactive sessions record
	// nothing.
	Active   bool
	Disabled bool
}

// ReportArgs contains the arguments for finalizing a session.
type ReportArgs struct {
	Ledger     LedgerArgs
	Collect    CollectArgs
	Thresholds Thresholds
	Display    controller.ReportOptions
	// ReportFile is where the report is saved for view. Empty skips saving.
	ReportFile  m.Path
	MetricsFile m.Path
	Disabled    bool
}

// ListArgs contains the arguments for listing targets.
type ListArgs struct {
	Collect CollectArgs
	Watch   bool
}

// ViewArgs contains the arguments for viewing a saved report.
type ViewArgs struct {
	ReportFile m.Path
}

// RunArgs contains the arguments for wrapping a host command in a session.
type RunArgs struct {
	Report  ReportArgs
	WorkDir string
	Command []string
}

// Workflow defines the interface of the checklist commands.
type Workflow interface {
	Start(ctx context.Context, args StartArgs) error
	Record(ctx context.Context, args RecordArgs) error
	Report(ctx context.Context, args ReportArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
	Run(ctx context.Context, args RunArgs) error
}

// LedgerFactory opens the ledger store for a backend.
type LedgerFactory func(backend string, cacheDir m.Path) (adapter.LedgerStore, error)

type workflow struct {
	adapter.ReportStore
	adapter.MetricsExporter
	Discovery

	fsAdapter adapter.SourceFSAdapter
	ui        controller.UI
	ledgers   LedgerFactory
	runner    adapter.HostRunnerAdapter
	watcher   adapter.SourceWatcher
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	metrics adapter.MetricsExporter,
	runner adapter.HostRunnerAdapter,
	watcher adapter.SourceWatcher,
	ui controller.UI,
	discovery Discovery,
	ledgers LedgerFactory,
) Workflow {
	return &workflow{
		ReportStore:     reportStore,
		MetricsExporter: metrics,
		Discovery:       discovery,
		fsAdapter:       fsAdapter,
		ui:              ui,
		ledgers:         ledgers,
		runner:          runner,
		watcher:         watcher,
	}
}

func (w *workflow) openSession(args LedgerArgs) (*Session, func(), error) {
	store, err := w.ledgers(args.Backend, args.CacheDir)
	if err != nil {
		slog.Error("failed to open ledger", "backend", args.Backend, "cache_dir", args.CacheDir, "error", err)
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}

	closeStore := func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close ledger", "error", err)
		}
	}

	return NewSession(store, w.Discovery), closeStore, nil
}

func (w *workflow) Start(ctx context.Context, args StartArgs) error {
	if args.Disabled || !args.Active {
		slog.Debug("session start skipped", "disabled", args.Disabled, "active", args.Active)
		return nil
	}

	session, closeStore, err := w.openSession(args.Ledger)
	if err != nil {
		return err
	}
	defer closeStore()

	return session.Start(ctx)
}

func (w *workflow) Record(ctx context.Context, args RecordArgs) error {
	if args.Disabled || !args.Active {
		slog.Debug("record skipped", "disabled", args.Disabled, "active", args.Active)
		return nil
	}

	session, closeStore, err := w.openSession(args.Ledger)
	if err != nil {
		return err
	}
	defer closeStore()

	for _, testCase := range args.TestCases {
		if err := session.OnTestCaseCompleted(ctx, testCase.TestID, testCase.Mark); err != nil {
			return err
		}
	}

	return nil
}

func (w *workflow) Report(ctx context.Context, args ReportArgs) error {
	if args.Disabled {
		slog.Debug("report skipped, checklist disabled")
		return nil
	}

	session, closeStore, err := w.openSession(args.Ledger)
	if err != nil {
		return err
	}
	defer closeStore()

	report, err := session.Finalize(ctx, args.Collect, args.Thresholds)
	if err != nil {
		return fmt.Errorf("finalize session: %w", err)
	}

	if err := w.ui.DisplayReport(ctx, report, args.Display); err != nil {
		slog.Error("failed to display report", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	if args.ReportFile != "" {
		if err := w.SaveReport(ctx, args.ReportFile, report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}

	if args.MetricsFile != "" {
		if err := w.Export(ctx, args.MetricsFile, report); err != nil {
			return fmt.Errorf("export metrics: %w", err)
		}
	}

	if !report.Passes {
		return fmt.Errorf("%w: target was %.2f, achieved %.2f", ErrCoverageFailed, report.FailUnder, report.Percent)
	}

	return nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	list := func(ctx context.Context) error {
		discovered, err := w.Discover(ctx, args.Collect)
		if err != nil {
			return err
		}

		return w.ui.DisplayTargets(ctx, discovered.Targets.Targets)
	}

	if err := list(ctx); err != nil {
		return err
	}

	if !args.Watch {
		return nil
	}

	slog.Info("watching sources", "root", args.Collect.CollectPath)

	return w.watcher.Watch(ctx, args.Collect.CollectPath, func(ctx context.Context) error {
		if err := list(ctx); err != nil {
			// A file mid-edit may not parse; keep watching.
			if errors.Is(err, adapter.ErrParse) {
				slog.Info("sources do not parse yet", "error", err)
				return nil
			}

			return err
		}

		return nil
	})
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(ctx, args.ReportFile)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	return w.ui.View(ctx, report)
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if len(args.Command) == 0 {
		return errors.New("no host command given")
	}

	ledger := args.Report.Ledger

	cacheDir, err := w.fsAdapter.Abs(ctx, ledger.CacheDir)
	if err != nil {
		return err
	}

	ledger.CacheDir = cacheDir
	args.Report.Ledger = ledger

	if err := w.Start(ctx, StartArgs{Ledger: ledger, Active: true, Disabled: args.Report.Disabled}); err != nil {
		return err
	}

	env, err := w.hostEnv(ctx, args.Report)
	if err != nil {
		return err
	}

	exitCode, err := w.runner.Run(ctx, args.WorkDir, env, args.Command)
	if err != nil {
		return fmt.Errorf("run host command: %w", err)
	}

	reportErr := w.Report(ctx, args.Report)

	if exitCode != 0 {
		slog.Error("host command failed", "command", args.Command, "exit_code", exitCode)
		return errors.Join(fmt.Errorf("%w: exit code %d", ErrHostFailed, exitCode), reportErr)
	}

	return reportErr
}

// hostEnv lists the variables the host command inherits on top of the
// current environment.
func (w *workflow) hostEnv(ctx context.Context, args ReportArgs) ([]string, error) {
	env := []string{
		EnvLedgerBackend + "=" + args.Ledger.Backend,
		EnvLedgerCacheDir + "=" + string(args.Ledger.CacheDir),
		EnvDisabled + "=" + strconv.FormatBool(args.Disabled),
	}

	if args.Disabled {
		return env, nil
	}

	store, err := w.ledgers(args.Ledger.Backend, args.Ledger.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer func() { _ = store.Close() }()

	sessionID, err := store.SessionID(ctx)
	if err != nil {
		return nil, err
	}

	return append(env, EnvSessionID+"="+sessionID), nil
}
