package crawler

import (
	"regexp"
	"strings"
)

// LineKind classifies a single line of a documentation file.
type LineKind int

const (
	// LineBody is any line that is not a second-level heading.
	LineBody LineKind = iota
	// LineQualifyingHeading opens a link-bearing section.
	LineQualifyingHeading
	// LineOtherHeading is any other second-level heading; it closes a section.
	LineOtherHeading
)

// SectionState is the state of the line scanner.
type SectionState int

const (
	// OutOfSection skips lines until a qualifying heading appears.
	OutOfSection SectionState = iota
	// InSection collects links until the next second-level heading.
	InSection
)

var (
	qualifyingHeadingRe = regexp.MustCompile(`^##\s+(?:Resources|Documentation)(?:\s|$)`)
	headingRe           = regexp.MustCompile(`^##\s`)
	linkRe              = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)`)
)

// ClassifyLine reports whether line opens a link-bearing section, opens some
// other second-level section, or is plain body text.
// Deeper headings ("### ...") are body text and do not close a section.
func ClassifyLine(line string) LineKind {
	switch {
	case qualifyingHeadingRe.MatchString(line):
		return LineQualifyingHeading
	case headingRe.MatchString(line):
		return LineOtherHeading
	default:
		return LineBody
	}
}

// Next returns the state after a line of the given kind has been read.
func (s SectionState) Next(kind LineKind) SectionState {
	switch kind {
	case LineQualifyingHeading:
		return InSection
	case LineOtherHeading:
		return OutOfSection
	default:
		return s
	}
}

// ExtractLinks returns the targets of every Markdown inline link found inside
// "## Resources" and "## Documentation" sections of content, de-duplicated
// in first-seen order. The qualifying heading line is scanned too.
func ExtractLinks(content string) []string {
	state := OutOfSection
	seen := make(map[string]bool)
	links := []string{}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		state = state.Next(ClassifyLine(line))
		if state != InSection {
			continue
		}

		for _, match := range linkRe.FindAllStringSubmatch(line, -1) {
			target := match[1]
			if !seen[target] {
				seen[target] = true
				links = append(links, target)
			}
		}
	}

	return links
}
