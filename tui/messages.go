package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lukemcguire/llmscheck/crawler"
	"github.com/lukemcguire/llmscheck/result"
)

// CheckProgressMsg carries one progress event from the crawler.
type CheckProgressMsg struct {
	Event crawler.CrawlEvent
}

// CheckDoneMsg signals the run has completed.
type CheckDoneMsg struct {
	Report *result.Report
	Err    error
}

// progressClosedMsg signals that the crawler closed its progress channel.
// The report itself arrives separately as CheckDoneMsg.
type progressClosedMsg struct{}

// waitForProgress returns a tea.Cmd that reads one event from the progress
// channel.
func waitForProgress(ch <-chan crawler.CrawlEvent) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return progressClosedMsg{}
		}
		return CheckProgressMsg{Event: evt}
	}
}
