package result

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// WriteJSON writes the failures as a formatted JSON array to the writer.
// An empty run produces "[]".
func WriteJSON(w io.Writer, failures []Outcome) error {
	if failures == nil {
		failures = []Outcome{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(failures); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}

// WriteCSV writes the failures as CSV to the writer.
// Always includes a header row, even if there are no failures.
// Column order: file, url, status_code, error_type, reason
func WriteCSV(w io.Writer, failures []Outcome) error {
	cw := csv.NewWriter(w)

	header := []string{"file", "url", "status_code", "error_type", "reason"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, failure := range failures {
		record := []string{
			failure.File,
			failure.URL,
			statusCodeStr(failure.StatusCode),
			string(failure.Category),
			failure.Reason,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record for %s: %w", failure.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

// statusCodeStr converts an HTTP status code to a string.
// Returns empty string for 0 (no HTTP status).
func statusCodeStr(code int) string {
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code)
}
