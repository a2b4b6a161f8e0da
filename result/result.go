// Package result defines link validation outcomes, the aggregated run report
// and the writers that render it.
package result

import (
	"sort"
	"time"
)

// Status tags the variant of an Outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusSkipped Status = "skipped"
)

// Outcome is the result of checking one link found in one documentation file.
type Outcome struct {
	Status     Status        `json:"status"`
	URL        string        `json:"url"`
	File       string        `json:"file"`
	StatusCode int           `json:"status_code"`
	Reason     string        `json:"reason,omitempty"`
	Category   ErrorCategory `json:"error_type,omitempty"`
}

// Success records a link that answered with a status in [200, 400).
func Success(url, file string, statusCode int) Outcome {
	return Outcome{Status: StatusSuccess, URL: url, File: file, StatusCode: statusCode}
}

// Failure records a link that could not be validated. statusCode is 0 when
// no HTTP response was received.
func Failure(url, file, reason string, category ErrorCategory, statusCode int) Outcome {
	return Outcome{
		Status:     StatusFailure,
		URL:        url,
		File:       file,
		StatusCode: statusCode,
		Reason:     reason,
		Category:   category,
	}
}

// Skipped records a link that was deliberately not checked.
func Skipped(url, file, reason string) Outcome {
	return Outcome{Status: StatusSkipped, URL: url, File: file, Reason: reason}
}

// FileFailure records a documentation file that could not be processed at
// all. It carries no URL.
func FileFailure(file, reason string) Outcome {
	return Failure("", file, reason, CategoryFileError, 0)
}

// IsFailure reports whether the outcome should be reported and fail the run.
func (o Outcome) IsFailure() bool {
	return o.Status == StatusFailure
}

// FileFailures groups the failures that belong to a single documentation file.
type FileFailures struct {
	File     string
	Failures []Outcome
}

// Stats contains aggregate statistics for a run.
type Stats struct {
	Files     int           // Documentation files discovered
	Links     int           // Links extracted across all files
	Succeeded int           // Links that answered with a non-error status
	Skipped   int           // Links that were not checked (non-HTTP)
	Failed    int           // Failure outcomes, including unreadable files
	Duration  time.Duration // Wall time of the run
}

// Report is the aggregate of a run: failures grouped by file plus stats.
type Report struct {
	Groups []FileFailures
	Stats  Stats
}

// NewReport filters outcomes down to failures and groups them by file.
// Groups are sorted by file path; failures keep their order within a file.
func NewReport(files int, outcomes []Outcome, duration time.Duration) *Report {
	report := &Report{Stats: Stats{Files: files, Duration: duration}}
	byFile := make(map[string]int)

	for _, outcome := range outcomes {
		if outcome.Category != CategoryFileError {
			report.Stats.Links++
		}
		switch outcome.Status {
		case StatusSuccess:
			report.Stats.Succeeded++
			continue
		case StatusSkipped:
			report.Stats.Skipped++
			continue
		}

		report.Stats.Failed++
		idx, ok := byFile[outcome.File]
		if !ok {
			idx = len(report.Groups)
			byFile[outcome.File] = idx
			report.Groups = append(report.Groups, FileFailures{File: outcome.File})
		}
		report.Groups[idx].Failures = append(report.Groups[idx].Failures, outcome)
	}

	sort.SliceStable(report.Groups, func(i, j int) bool {
		return report.Groups[i].File < report.Groups[j].File
	})

	return report
}

// HasFailures reports whether any failure was recorded.
func (r *Report) HasFailures() bool {
	return r != nil && r.Stats.Failed > 0
}

// Failures returns every failure in group order.
func (r *Report) Failures() []Outcome {
	if r == nil {
		return nil
	}
	failures := make([]Outcome, 0, r.Stats.Failed)
	for _, group := range r.Groups {
		failures = append(failures, group.Failures...)
	}
	return failures
}
