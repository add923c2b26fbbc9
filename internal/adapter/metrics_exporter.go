package adapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	m "checklist.dev/pkg/checklist/internal/model"
)

// MetricsExporter publishes the aggregate result of a session.
type MetricsExporter interface {
	Export(ctx context.Context, path m.Path, report m.CoverageReport) error
}

// TextfileMetricsExporter writes Prometheus metrics in the node-exporter
// textfile format.
type TextfileMetricsExporter struct{}

// NewTextfileMetricsExporter constructs a TextfileMetricsExporter.
func NewTextfileMetricsExporter() *TextfileMetricsExporter {
	return &TextfileMetricsExporter{}
}

// Export implements MetricsExporter.
func (e *TextfileMetricsExporter) Export(ctx context.Context, path m.Path, report m.CoverageReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()

	targets := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "checklist",
		Name:      "targets",
		Help:      "Number of discovered targets by status.",
	}, []string{"status"})
	percent := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "checklist",
		Name:      "coverage_percent",
		Help:      "Percentage of non-ignored targets with enough pointers.",
	})
	threshold := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "checklist",
		Name:      "fail_under_percent",
		Help:      "Configured pass threshold.",
	})
	passed := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "checklist",
		Name:      "passed",
		Help:      "1 when the session met the threshold, 0 otherwise.",
	})
	pointers := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "checklist",
		Name:      "pointers",
		Help:      "Total number of recorded pointers to discovered targets.",
	})

	registry.MustRegister(targets, percent, threshold, passed, pointers)

	for _, status := range []m.Status{m.StatusPass, m.StatusFail, m.StatusIgnore} {
		targets.WithLabelValues(string(status)).Set(0)
	}

	total := 0

	for _, r := range report.Reports {
		targets.WithLabelValues(string(r.Status())).Inc()

		total += r.Result.NumPointers
	}

	percent.Set(report.Percent)
	threshold.Set(report.FailUnder)
	pointers.Set(float64(total))

	if report.Passes {
		passed.Set(1)
	}

	if err := prometheus.WriteToTextfile(string(path), registry); err != nil {
		slog.Error("failed to write metrics", "path", path, "error", err)
		return fmt.Errorf("write metrics: %w", err)
	}

	return nil
}
