package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "checklist.dev/pkg/checklist/internal/model"
)

func newTestUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd, false), &buf
}

// sampleReport has one passing, one under-pointed, one uncovered and one
// ignored target.
func sampleReport() m.CoverageReport {
	module := &m.Module{Path: "src/pkg/a.py", FullyQualifiedName: "pkg.a"}
	row := func(name string, pointers int, passes, ignored bool) m.TargetReport {
		return m.TargetReport{
			Result: m.TargetResult{Target: m.Target{Module: module, Name: name, Ignored: ignored}, NumPointers: pointers},
			Passes: passes,
		}
	}

	return m.CoverageReport{
		SessionID:   "3f2a",
		MinPointers: 2,
		FailUnder:   70,
		Percent:     100.0 / 3.0,
		Passes:      false,
		Reports: []m.TargetReport{
			row("covered", 2, true, false),
			row("Box.run", 1, false, false),
			row("uncovered", 0, false, false),
			row("legacy", 0, false, true),
		},
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestSimpleUI_DisplayReport_Text(t *testing.T) {
	tests := []struct {
		name            string
		options         ReportOptions
		wantContains    []string
		wantNotContains []string
	}{
		{
			name:    "summary only",
			options: ReportOptions{},
			wantContains: []string{
				"Checklist unit coverage\n",
				"Minimum number of pointers per target: 2",
				"Checklist unit coverage failed. Target was 70.00, achieved 33.33.",
				"END Checklist unit coverage",
			},
			wantNotContains: []string{reportListTitle, "pkg.a.covered"},
		},
		{
			name:         "failing rows",
			options:      ReportOptions{Show: true},
			wantContains: []string{reportListTitle, "STATUS", "POINTERS", "TARGET", "pkg.a.Box.run", "pkg.a.uncovered", "FAIL"},
			wantNotContains: []string{
				"pkg.a.covered", "pkg.a.legacy",
			},
		},
		{
			name:         "with ignored and passing rows",
			options:      ReportOptions{Show: true, ShowIgnored: true, ShowPassing: true},
			wantContains: []string{"pkg.a.covered", "pkg.a.legacy", "PASS", "IGNORE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestUI()

			require.NoError(t, ui.DisplayReport(context.Background(), sampleReport(), tt.options))

			output := buf.String()
			for _, want := range tt.wantContains {
				assert.Contains(t, output, want)
			}

			for _, unwanted := range tt.wantNotContains {
				assert.NotContains(t, output, unwanted)
			}
		})
	}
}

func TestSimpleUI_DisplayReport_AllCovered(t *testing.T) {
	ui, buf := newTestUI()

	report := sampleReport()
	report.Reports = report.Reports[:1]
	report.Percent = 100
	report.Passes = true

	require.NoError(t, ui.DisplayReport(context.Background(), report, ReportOptions{Show: true}))

	output := buf.String()
	assert.Contains(t, output, allCoveredText)
	assert.Contains(t, output, "Checklist unit coverage passed! Target was 70.00, achieved 100.00.")
}

func TestSimpleUI_DisplayReport_JSON(t *testing.T) {
	ui, buf := newTestUI()

	require.NoError(t, ui.DisplayReport(context.Background(), sampleReport(), ReportOptions{Format: FormatJSON}))

	var doc m.ReportDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "3f2a", doc.SessionID)
	assert.False(t, doc.Passes)
	require.Len(t, doc.Targets, 4)
	assert.Equal(t, "pkg.a.covered", doc.Targets[0].FQName)
	assert.Equal(t, m.StatusPass, doc.Targets[0].Status)
	assert.Equal(t, m.StatusIgnore, doc.Targets[3].Status)
}

func TestSimpleUI_DisplayReport_YAML(t *testing.T) {
	ui, buf := newTestUI()

	require.NoError(t, ui.DisplayReport(context.Background(), sampleReport(), ReportOptions{Format: FormatYAML}))

	var doc m.ReportDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, 2, doc.MinPointers)
	assert.Len(t, doc.Targets, 4)
	assert.True(t, strings.HasPrefix(buf.String(), "session_id: 3f2a"))
}

func TestSimpleUI_DisplayReport_Cancelled(t *testing.T) {
	ui, buf := newTestUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, ui.DisplayReport(ctx, sampleReport(), ReportOptions{}), context.Canceled)
	assert.Empty(t, buf.String())
}

func TestSimpleUI_DisplayTargets(t *testing.T) {
	ui, buf := newTestUI()

	module := &m.Module{FullyQualifiedName: "pkg.a"}
	targets := []m.Target{
		{Module: module, Name: "foo"},
		{Module: module, Name: "Box.run", Ignored: true},
	}

	require.NoError(t, ui.DisplayTargets(context.Background(), targets))

	output := buf.String()
	assert.Contains(t, output, "pkg.a.foo")
	assert.Contains(t, output, "pkg.a.Box.run")
	assert.Contains(t, output, "yes")
	assert.Contains(t, output, "TOTAL TARGETS 2")
}

func TestSimpleUI_View_NotATerminal(t *testing.T) {
	ui, buf := newTestUI()

	require.NoError(t, ui.View(context.Background(), sampleReport()))

	output := buf.String()
	for _, name := range []string{"pkg.a.covered", "pkg.a.Box.run", "pkg.a.uncovered", "pkg.a.legacy"} {
		assert.Contains(t, output, name)
	}
}

func TestRowColor(t *testing.T) {
	row := func(pointers int, passes, ignored bool) m.TargetReport {
		return m.TargetReport{
			Result: m.TargetResult{Target: m.Target{Name: "f", Ignored: ignored}, NumPointers: pointers},
			Passes: passes,
		}
	}

	assert.Equal(t, colorCyan, rowColor(row(1, true, true)))
	assert.Equal(t, colorGreen, rowColor(row(1, true, false)))
	assert.Equal(t, colorBlue, rowColor(row(1, false, false)))
	assert.Equal(t, colorBlue, rowColor(row(1, false, true)))
	assert.Equal(t, colorYellow, rowColor(row(0, false, true)))
	assert.Equal(t, colorRed, rowColor(row(0, false, false)))
}

func TestVisibleReports(t *testing.T) {
	reports := sampleReport().Reports

	assert.Len(t, visibleReports(reports, ReportOptions{}), 2)
	assert.Len(t, visibleReports(reports, ReportOptions{ShowIgnored: true}), 3)
	assert.Len(t, visibleReports(reports, ReportOptions{ShowPassing: true}), 3)
	assert.Len(t, visibleReports(reports, ReportOptions{ShowIgnored: true, ShowPassing: true}), 4)
}
