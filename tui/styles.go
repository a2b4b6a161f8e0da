package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lukemcguire/llmscheck/result"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	successStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	fileStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle         = lipgloss.NewStyle().Faint(true)
	urlStyle         = lipgloss.NewStyle()
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderSummary produces a Lip Gloss styled summary of a run, one table of
// failures per documentation file.
func RenderSummary(report *result.Report) string {
	if report == nil {
		return errorStyle.Render("No results available.")
	}

	var builder strings.Builder
	stats := report.Stats

	if !report.HasFailures() {
		builder.WriteString(successStyle.Render("All links are valid!"))
		builder.WriteString("\n")
		builder.WriteString(dimStyle.Render(fmt.Sprintf(
			"Checked %d links in %d files (%d skipped) in %s",
			stats.Links,
			stats.Files,
			stats.Skipped,
			stats.Duration.Round(1_000_000), // round to ms
		)))
		builder.WriteString("\n")
		return builder.String()
	}

	for _, group := range report.Groups {
		builder.WriteString(fileStyle.Render(fmt.Sprintf("## %s (%d)", group.File, len(group.Failures))))
		builder.WriteString("\n")

		rows := make([][]string, 0, len(group.Failures))
		for _, failure := range group.Failures {
			url := failure.URL
			if failure.Category == result.CategoryFileError {
				url = "(file)"
			}
			rows = append(rows, []string{url, failure.Reason, result.FormatCategory(failure.Category)})
		}

		fileTable := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("URL", "Reason", "Type").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if col == 1 { // Reason column
					return statusErrorStyle
				}
				return urlStyle
			}).
			Rows(rows...)

		builder.WriteString(fileTable.Render())
		builder.WriteString("\n\n")
	}

	builder.WriteString(titleStyle.Render(fmt.Sprintf(
		"Found %d failures in %d files; checked %d links (%d skipped) in %s",
		stats.Failed,
		len(report.Groups),
		stats.Links,
		stats.Skipped,
		stats.Duration.Round(1_000_000),
	)))
	builder.WriteString("\n")

	return builder.String()
}

// RenderWarnings lists directories that were skipped during discovery.
func RenderWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, w := range warnings {
		builder.WriteString(warningStyle.Render("warning: " + w))
		builder.WriteString("\n")
	}
	builder.WriteString("\n")
	return builder.String()
}
