package crawler

import "github.com/lukemcguire/llmscheck/result"

// EventKind identifies what a CrawlEvent reports.
type EventKind int

const (
	// EventDirSkipped reports an unreadable subdirectory.
	EventDirSkipped EventKind = iota
	// EventFileStarted reports that a file was read and its links extracted.
	EventFileStarted
	// EventLinkChecked reports the outcome of one link.
	EventLinkChecked
	// EventFileDone reports that every link of a file has been checked.
	EventFileDone
)

// CrawlEvent reports progress of a run.
type CrawlEvent struct {
	Kind    EventKind
	File    string
	Links   int            // EventFileStarted: links extracted from File
	Outcome result.Outcome // EventLinkChecked
	Err     error          // EventDirSkipped

	Checked    int // links checked so far across all files
	Failed     int // failures so far
	FilesDone  int
	FilesTotal int
}
