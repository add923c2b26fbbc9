package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "checklist.dev/pkg/checklist/internal/model"
)

const (
	reportTitle     = "Checklist unit coverage"
	reportRule      = "========================================"
	reportListTitle = "List of functions in project and the number of tests for them"
	allCoveredText  = "All targets covered!"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
	tty bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, tty bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, tty: tty}
}

// DisplayReport prints the coverage summary and, when enabled, the target
// listing.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.CoverageReport, options ReportOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch options.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(report.Document(), "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

		s.printf("%s\n", data)

		return nil
	case FormatYAML:
		data, err := yaml.Marshal(report.Document())
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

		s.printf("%s", data)

		return nil
	}

	_, err := io.WriteString(s.out(), renderTextReport(newStyles(s.out()), report, options))

	return err
}

// DisplayTargets prints the discovered targets as a table.
func (s *SimpleUI) DisplayTargets(ctx context.Context, targets []m.Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderTargetsTable(targets))

	return nil
}

// View opens the interactive viewer on a terminal and prints the full
// listing otherwise.
func (s *SimpleUI) View(ctx context.Context, report m.CoverageReport) error {
	if s.tty {
		return NewTUI(s.out()).View(ctx, report)
	}

	return s.DisplayReport(ctx, report, ReportOptions{Show: true, ShowIgnored: true, ShowPassing: true})
}

func (s *SimpleUI) out() io.Writer {
	return s.cmd.OutOrStdout()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out(), format, args...)
}

type styles struct {
	bold   lipgloss.Style
	pass   lipgloss.Style
	failed lipgloss.Style
	status map[statusColor]lipgloss.Style
}

type statusColor int

const (
	colorGreen statusColor = iota
	colorBlue
	colorCyan
	colorYellow
	colorRed
)

// newStyles builds styles for w; writers that are not terminals get no
// escape sequences.
func newStyles(w io.Writer) styles {
	renderer := lipgloss.NewRenderer(w)
	color := func(c string) lipgloss.Style {
		return renderer.NewStyle().Foreground(lipgloss.Color(c))
	}

	return styles{
		bold:   renderer.NewStyle().Bold(true),
		pass:   color("2").Bold(true),
		failed: color("1").Bold(true),
		status: map[statusColor]lipgloss.Style{
			colorGreen:  color("2"),
			colorBlue:   color("4"),
			colorCyan:   color("6"),
			colorYellow: color("3"),
			colorRed:    color("1"),
		},
	}
}

// rowColor picks the listing color of a report row.
func rowColor(report m.TargetReport) statusColor {
	switch {
	case report.Passes && report.Result.Target.Ignored:
		return colorCyan
	case report.Passes:
		return colorGreen
	case report.Result.NumPointers > 0:
		return colorBlue
	case report.Result.Target.Ignored:
		return colorYellow
	}

	return colorRed
}

// visibleReports applies the ignored/passing filters.
func visibleReports(reports []m.TargetReport, options ReportOptions) []m.TargetReport {
	visible := make([]m.TargetReport, 0, len(reports))

	for _, report := range reports {
		if !options.ShowIgnored && report.Result.Target.Ignored {
			continue
		}

		if !options.ShowPassing && report.Passes {
			continue
		}

		visible = append(visible, report)
	}

	return visible
}

// renderTextReport renders the console report.
func renderTextReport(st styles, report m.CoverageReport, options ReportOptions) string {
	var b bytes.Buffer

	b.WriteString("\n\n----------------------\n")
	b.WriteString(reportTitle + "\n")
	b.WriteString(reportRule + "\n")
	fmt.Fprintf(&b, "Minimum number of pointers per target: %d\n", report.MinPointers)

	if options.Show {
		visible := visibleReports(report.Reports, options)
		if len(visible) == 0 {
			fmt.Fprintf(&b, "\n    %s\n\n", st.bold.Render(allCoveredText))
		} else {
			fmt.Fprintf(&b, "\n    %s\n\n", st.bold.Render(reportListTitle))
			b.WriteString(renderReportTable(st, visible))
			b.WriteString("\n")
		}
	}

	if report.Passes {
		b.WriteString(st.pass.Render(fmt.Sprintf("Checklist unit coverage passed! Target was %s, achieved %s.",
			formatPercent(report.FailUnder), formatPercent(report.Percent))))
	} else {
		b.WriteString(st.failed.Render(fmt.Sprintf("Checklist unit coverage failed. Target was %s, achieved %s.",
			formatPercent(report.FailUnder), formatPercent(report.Percent))))
	}

	b.WriteString("\n\nEND " + reportTitle + "\n")
	b.WriteString(reportRule + "\n")

	return b.String()
}

func renderReportTable(st styles, reports []m.TargetReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Status", "Pointers", "Target"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for _, report := range reports {
		style := st.status[rowColor(report)]
		table.Append([]string{
			style.Render(string(report.Status())),
			strconv.Itoa(report.Result.NumPointers),
			report.Result.Target.FQName(),
		})
	}

	table.Render()

	return tableBuffer.String()
}

func renderTargetsTable(targets []m.Target) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Target", "Ignored"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	ignored := 0

	for _, target := range targets {
		mark := ""
		if target.Ignored {
			mark = "yes"
			ignored++
		}

		table.Append([]string{target.FQName(), mark})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Targets %d", len(targets)),
		fmt.Sprintf("%d", ignored),
	})

	table.Render()

	return tableBuffer.String()
}

func formatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
