// Package tui provides the Bubble Tea terminal UI for llmscheck,
// displaying live link-check progress and a styled summary of failures.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lukemcguire/llmscheck/crawler"
	"github.com/lukemcguire/llmscheck/result"
)

// Runner runs a link check and returns its report.
type Runner interface {
	Run(ctx context.Context) (*result.Report, error)
}

// Model is the Bubble Tea model for the link-check TUI.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	runner     Runner
	spinner    spinner.Model
	progressCh <-chan crawler.CrawlEvent

	checked    int
	failed     int
	filesDone  int
	filesTotal int
	current    string
	warnings   []string
	quitting   bool
	done       bool
	report     *result.Report
	err        error
	width      int
}

// NewModel creates a TUI model wired to the given runner and progress channel.
func NewModel(ctx context.Context, cancel context.CancelFunc, runner Runner, progressCh <-chan crawler.CrawlEvent) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		runner:     runner,
		spinner:    spin,
		progressCh: progressCh,
	}
}

// Init starts the spinner, the run, and the progress listener concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCheck(), waitForProgress(m.progressCh))
}

// startCheck returns a tea.Cmd that runs the check and sends CheckDoneMsg.
func (m Model) startCheck() tea.Cmd {
	return func() tea.Msg {
		report, err := m.runner.Run(m.ctx)
		if err != nil {
			err = fmt.Errorf("check links: %w", err)
		}
		return CheckDoneMsg{Report: report, Err: err}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case CheckProgressMsg:
		m.apply(msg.Event)
		return m, waitForProgress(m.progressCh)

	case progressClosedMsg:
		return m, nil

	case CheckDoneMsg:
		m.done = true
		m.report = msg.Report
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// apply folds a progress event into the counters shown by View.
func (m *Model) apply(evt crawler.CrawlEvent) {
	if evt.Kind == crawler.EventDirSkipped {
		m.warnings = append(m.warnings, fmt.Sprintf("skipped %s: %v", evt.File, evt.Err))
		return
	}
	m.checked = evt.Checked
	m.failed = evt.Failed
	m.filesDone = evt.FilesDone
	m.filesTotal = evt.FilesTotal
	switch evt.Kind {
	case crawler.EventLinkChecked:
		m.current = evt.Outcome.URL
	case crawler.EventFileStarted:
		m.current = evt.File
	}
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done && m.err != nil {
		// main reports the error once the program exits.
		return ""
	}
	if m.done {
		return RenderWarnings(m.warnings) + RenderSummary(m.report)
	}
	if m.quitting {
		return dimStyle.Render("Cancelled.") + "\n"
	}
	return fmt.Sprintf("%s Checking links... files %d/%d, checked %d, failed %d\n%s\n",
		m.spinner.View(), m.filesDone, m.filesTotal, m.checked, m.failed,
		dimStyle.Render("  "+m.current))
}

// HasFailures reports whether the run recorded any failure.
func (m Model) HasFailures() bool {
	return m.report.HasFailures()
}

// Report returns the run report, nil until the run completed.
func (m Model) Report() *result.Report {
	return m.report
}

// Err returns the error the run ended with, if any.
func (m Model) Err() error {
	return m.err
}

// Quitting reports whether the user interrupted the run.
func (m Model) Quitting() bool {
	return m.quitting
}
