package transforms

import (
	"regexp"
	"strings"
)

// titleHeading matches a single-# ATX heading; "##" and deeper never match since
// the hash must be followed by whitespace.
var titleHeading = regexp.MustCompile(`^\s*#\s+(.+?)\s*$`)

// SplitTitle finds the first level-1 heading in md and removes it, along with a blank
// line directly after it. ok is false when md has no such heading, in which case the
// body is md unchanged.
func SplitTitle(md string) (title string, body string, ok bool) {
	lines := splitLines(md)

	for i, line := range lines {
		m := titleHeading.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m == nil {
			continue
		}

		rest := lines[i+1:]
		if len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
			rest = rest[1:]
		}

		var b strings.Builder
		b.Grow(len(md))
		for _, l := range lines[:i] {
			b.WriteString(l)
		}
		for _, l := range rest {
			b.WriteString(l)
		}

		return strings.TrimSpace(m[1]), b.String(), true
	}

	return "", md, false
}

// splitLines splits s after each newline, keeping line endings
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
