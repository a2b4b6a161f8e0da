package result

import (
	"fmt"
	"io"
)

// PrintReport writes the failures grouped by file and a summary line to w.
func PrintReport(w io.Writer, r *Report) {
	writef := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

	if !r.HasFailures() {
		writef("All links are valid!\n")
		writef("Checked %d links in %d files (%d skipped)\n", r.Stats.Links, r.Stats.Files, r.Stats.Skipped)
		return
	}

	writef("Broken links:\n")
	for _, group := range r.Groups {
		writef("\n%s\n", group.File)
		for _, failure := range group.Failures {
			if failure.Category == CategoryFileError {
				writef("  Error: %s\n", failure.Reason)
				continue
			}
			writef("  URL: %s\n", failure.URL)
			writef("  Reason: %s\n", failure.Reason)
		}
	}
	writef("\nFound %d failures in %d files; checked %d links (%d skipped)\n",
		r.Stats.Failed, len(r.Groups), r.Stats.Links, r.Stats.Skipped)
}
