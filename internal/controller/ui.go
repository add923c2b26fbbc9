// Package controller provides output adapters for displaying checklist
// coverage results.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "checklist.dev/pkg/checklist/internal/model"
)

// Format selects how a report is written to the console.
type Format string

// Available formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. Empty means text.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	}

	return "", fmt.Errorf("unknown report format %q (expected text, json or yaml)", value)
}

// ReportOptions controls which rows of a report are listed.
type ReportOptions struct {
	// Show lists per-target rows; otherwise only the summary is printed.
	Show        bool
	ShowIgnored bool
	ShowPassing bool
	Format      Format
}

// UI defines the interface for presenting discovery and coverage results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayReport(ctx context.Context, report m.CoverageReport, options ReportOptions) error
	DisplayTargets(ctx context.Context, targets []m.Target) error
	// View presents a saved report interactively when possible.
	View(ctx context.Context, report m.CoverageReport) error
}

// NewUI returns the UI for cmd. Interactive viewing is only enabled on a
// terminal.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	return NewSimpleUI(cmd, isTTY)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
