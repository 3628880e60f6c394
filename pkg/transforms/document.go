package transforms

import (
	"path/filepath"
	"strings"
)

// Document is a single source file resolved into the parts needed to render it
type Document struct {
	Source string
	Target string

	Title string
	Date  string

	// Body is the markdown to convert
	Body string

	// Heading is the first level-1 heading when it was left in the body because
	// frontmatter names a different title
	Heading string

	Frontmatter Frontmatter
}

// DocumentOptions controls how a Document is resolved
type DocumentOptions struct {
	// KeepTitleHeading leaves the first level-1 heading in the body
	KeepTitleHeading bool
}

// NewDocument resolves title, date and body for the markdown text read from source.
//
// Title precedence is frontmatter title, then the first level-1 heading, then the file
// name without its extension. The heading is removed from the body unless kept
// explicitly, or unless frontmatter declares a title that differs from the heading, in
// which case the heading is not the page title and stays in the body.
func NewDocument(source, text string, opts DocumentOptions) *Document {
	fm, stripped := ParseFrontmatter(text)

	fmTitle, _ := fm.Get("title")
	fmDate, _ := fm.Get("date")

	h1Title, split, _ := SplitTitle(stripped)

	title := strings.TrimSpace(firstNonzero(fmTitle, h1Title, stem(source)))

	doc := &Document{
		Source:      source,
		Title:       title,
		Date:        fmDate,
		Body:        split,
		Frontmatter: fm,
	}

	switch {
	case opts.KeepTitleHeading:
		doc.Body = stripped
	case fmTitle != "" && h1Title != "" && strings.TrimSpace(fmTitle) != strings.TrimSpace(h1Title):
		doc.Body = stripped
		doc.Heading = h1Title
	}

	return doc
}

func stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
