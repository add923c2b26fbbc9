package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "checklist.dev/pkg/checklist/internal/model"
)

func TestTextfileMetricsExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checklist.prom")

	require.NoError(t, NewTextfileMetricsExporter().Export(context.Background(), m.Path(path), sampleCoverageReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	for _, want := range []string{
		"# TYPE checklist_targets gauge",
		`checklist_targets{status="PASS"} 1`,
		`checklist_targets{status="FAIL"} 1`,
		`checklist_targets{status="IGNORE"} 1`,
		"checklist_coverage_percent 50",
		"checklist_fail_under_percent 50",
		"checklist_passed 1",
		"checklist_pointers 2",
	} {
		assert.Contains(t, text, want)
	}
}

func TestTextfileMetricsExporter_EmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checklist.prom")

	require.NoError(t, NewTextfileMetricsExporter().Export(context.Background(), m.Path(path), m.CoverageReport{Percent: 100}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), `checklist_targets{status="FAIL"} 0`)
	assert.Contains(t, string(data), "checklist_passed 0")
}

func TestTextfileMetricsExporter_UnwritableDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "checklist.prom")

	require.Error(t, NewTextfileMetricsExporter().Export(context.Background(), m.Path(path), sampleCoverageReport()))
}
