package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "checklist.dev/pkg/checklist/internal/model"
)

// ReportFileName is the file the last coverage report is saved to.
const ReportFileName = "report.yaml"

// ErrNoReport is returned by LoadReport when no report was saved yet.
var ErrNoReport = errors.New("no saved report")

// ReportStore saves and loads finalized coverage reports.
type ReportStore interface {
	SaveReport(ctx context.Context, path m.Path, report m.CoverageReport) error
	LoadReport(ctx context.Context, path m.Path) (m.CoverageReport, error)
}

// YAMLReportStore stores reports as YAML documents.
type YAMLReportStore struct{}

// NewReportStore constructs the default ReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// MarshalReport encodes report in the saved YAML layout.
func MarshalReport(report m.CoverageReport) ([]byte, error) {
	return yaml.Marshal(report.Document())
}

// SaveReport implements ReportStore.
func (s *YAMLReportStore) SaveReport(ctx context.Context, path m.Path, report m.CoverageReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := MarshalReport(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := writeFileAtomic(string(path), data); err != nil {
		slog.Error("failed to save report", "path", path, "error", err)
		return fmt.Errorf("save report: %w", err)
	}

	slog.Debug("saved report", "path", path, "targets", len(report.Reports))

	return nil
}

// LoadReport implements ReportStore.
func (s *YAMLReportStore) LoadReport(ctx context.Context, path m.Path) (m.CoverageReport, error) {
	if err := ctx.Err(); err != nil {
		return m.CoverageReport{}, err
	}

	data, err := os.ReadFile(filepath.Clean(string(path)))
	if errors.Is(err, os.ErrNotExist) {
		return m.CoverageReport{}, fmt.Errorf("%w at %s", ErrNoReport, path)
	}

	if err != nil {
		return m.CoverageReport{}, fmt.Errorf("read report: %w", err)
	}

	var doc m.ReportDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		slog.Error("failed to decode report", "path", path, "error", err)
		return m.CoverageReport{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return doc.Report(), nil
}
