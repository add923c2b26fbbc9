package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "checklist.dev/pkg/checklist/internal/model"
)

const (
	defaultViewWidth  = 80
	defaultViewHeight = 24
	// header and footer lines around the viewport.
	reservedViewLines = 6
)

// TUI implements the interactive report viewer using Bubble Tea.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// View shows report in a scrollable pager until the user quits.
func (p *TUI) View(ctx context.Context, report m.CoverageReport) error {
	width, height := defaultViewWidth, defaultViewHeight

	if f, ok := p.output.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	model := newReportViewModel(report, newStyles(p.output), width, height)

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("report viewer: %w", err)
	}

	return nil
}

type viewKeyMap struct {
	Quit        key.Binding
	FailingOnly key.Binding
	Top         key.Binding
	Bottom      key.Binding
}

var viewKeys = viewKeyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	FailingOnly: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "failing only")),
	Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
}

// reportViewModel is the Bubble Tea model of the viewer.
type reportViewModel struct {
	report      m.CoverageReport
	styles      styles
	viewport    viewport.Model
	failingOnly bool
}

func newReportViewModel(report m.CoverageReport, st styles, width, height int) reportViewModel {
	rvm := reportViewModel{
		report:   report,
		styles:   st,
		viewport: viewport.New(width, viewportHeight(height)),
	}
	rvm.viewport.SetContent(rvm.content())

	return rvm
}

func viewportHeight(height int) int {
	if height-reservedViewLines < 1 {
		return 1
	}

	return height - reservedViewLines
}

func (rvm reportViewModel) Init() tea.Cmd {
	return nil
}

func (rvm reportViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rvm.viewport.Width = msg.Width
		rvm.viewport.Height = viewportHeight(msg.Height)

		return rvm, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, viewKeys.Quit):
			return rvm, tea.Quit
		case key.Matches(msg, viewKeys.FailingOnly):
			rvm.failingOnly = !rvm.failingOnly
			rvm.viewport.SetContent(rvm.content())
			rvm.viewport.GotoTop()

			return rvm, nil
		case key.Matches(msg, viewKeys.Top):
			rvm.viewport.GotoTop()
			return rvm, nil
		case key.Matches(msg, viewKeys.Bottom):
			rvm.viewport.GotoBottom()
			return rvm, nil
		}
	}

	var cmd tea.Cmd
	rvm.viewport, cmd = rvm.viewport.Update(msg)

	return rvm, cmd
}

func (rvm reportViewModel) View() string {
	var b strings.Builder

	b.WriteString(rvm.styles.bold.Render(reportTitle))
	fmt.Fprintf(&b, "  session %s\n", rvm.report.SessionID)
	fmt.Fprintf(&b, "Minimum pointers %d | Target %s | Achieved %s\n\n",
		rvm.report.MinPointers, formatPercent(rvm.report.FailUnder), formatPercent(rvm.report.Percent))
	b.WriteString(rvm.viewport.View())
	b.WriteString("\n\n")

	filter := "all"
	if rvm.failingOnly {
		filter = "failing"
	}

	fmt.Fprintf(&b, "%3.f%% | showing %s | ↑/k ↓/j scroll | f: failing only | g/G: top/bottom | q: quit",
		rvm.viewport.ScrollPercent()*100, filter)

	return b.String()
}

// content lists the rows the current filter keeps.
func (rvm reportViewModel) content() string {
	options := ReportOptions{Show: true, ShowIgnored: true, ShowPassing: !rvm.failingOnly}

	visible := visibleReports(rvm.report.Reports, options)
	if len(visible) == 0 {
		return allCoveredText
	}

	return renderReportTable(rvm.styles, visible)
}
