package transforms

import (
	"slices"
	"strings"
)

// FrontmatterFence delimits a frontmatter block
const FrontmatterFence = "---"

// Frontmatter is an ordered set of lowercase key/value pairs read from the head of a document
type Frontmatter struct {
	keys   []string
	values map[string]string
}

// NewFrontmatter creates an empty Frontmatter
func NewFrontmatter() Frontmatter {
	return Frontmatter{values: make(map[string]string)}
}

// Set stores a value; keys are lowercased and trimmed, repeated keys keep their first position
func (f *Frontmatter) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}

	key = strings.ToLower(strings.TrimSpace(key))
	if _, ex := f.values[key]; !ex {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get looks up a key case-insensitively
func (f Frontmatter) Get(key string) (string, bool) {
	v, ok := f.values[strings.ToLower(strings.TrimSpace(key))]
	return v, ok
}

// Keys returns the keys in the order they first appeared
func (f Frontmatter) Keys() []string {
	return slices.Clone(f.keys)
}

// Len returns the number of distinct keys
func (f Frontmatter) Len() int {
	return len(f.keys)
}

// ParseFrontmatter splits a leading `---` delimited key: value block from doc.
// When the block is missing or unterminated the document is returned unmodified.
func ParseFrontmatter(doc string) (Frontmatter, string) {
	fm := NewFrontmatter()

	b := trimBOM(doc)
	if b == "" {
		return fm, doc
	}

	openEnd := lineEnd(b, 0)
	if strings.TrimSpace(b[:openEnd]) != FrontmatterFence {
		return fm, doc
	}

	payloadStart := openEnd
	payloadEnd, bodyStart := -1, -1
	for i := payloadStart; i < len(b); {
		next := lineEnd(b, i)
		if strings.TrimSpace(b[i:next]) == FrontmatterFence {
			payloadEnd, bodyStart = i, next
			break
		}
		i = next
	}
	if payloadEnd < 0 {
		return fm, doc
	}

	for i := payloadStart; i < payloadEnd; {
		next := lineEnd(b, i)
		parseFrontmatterLine(&fm, b[i:next])
		i = next
	}

	// one blank line after the closing fence belongs to the block
	if bodyStart < len(b) {
		next := lineEnd(b, bodyStart)
		if strings.TrimSpace(b[bodyStart:next]) == "" {
			bodyStart = next
		}
	}

	return fm, b[bodyStart:]
}

func parseFrontmatterLine(fm *Frontmatter, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	fm.Set(key, strings.TrimSpace(value))
}

// lineEnd returns the index just past the next line ending at or after start
func lineEnd(s string, start int) int {
	if i := strings.IndexByte(s[start:], '\n'); i >= 0 {
		return start + i + 1
	}
	return len(s)
}

// trimBOM removes a UTF-8 byte order mark
func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
