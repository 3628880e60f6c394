package transforms

import (
	"slices"
	"testing"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMeta map[string]string
		wantKeys []string
		wantBody string
	}{
		{
			name: "title and date",
			input: `---
title: Hello World
date: 2024-01-15
---

This is the body content.`,
			wantMeta: map[string]string{"title": "Hello World", "date": "2024-01-15"},
			wantKeys: []string{"title", "date"},
			wantBody: "This is the body content.",
		},
		{
			name:     "first line is not the fence",
			input:    "# Hi\nbody",
			wantMeta: map[string]string{},
			wantBody: "# Hi\nbody",
		},
		{
			name:     "no closing fence",
			input:    "---\ntitle: X\nbody text",
			wantMeta: map[string]string{},
			wantBody: "---\ntitle: X\nbody text",
		},
		{
			name:     "fence with surrounding whitespace",
			input:    "  ---  \ntitle: Padded\n --- \nbody",
			wantMeta: map[string]string{"title": "Padded"},
			wantKeys: []string{"title"},
			wantBody: "body",
		},
		{
			name: "comments blanks and lines without colon are skipped",
			input: `---
# a comment

not a pair
title: Kept
---
body`,
			wantMeta: map[string]string{"title": "Kept"},
			wantKeys: []string{"title"},
			wantBody: "body",
		},
		{
			name:     "keys are lowercased and values trimmed",
			input:    "---\n  TiTLE :   Spaced Out   \n---\nbody",
			wantMeta: map[string]string{"title": "Spaced Out"},
			wantKeys: []string{"title"},
			wantBody: "body",
		},
		{
			name:     "value keeps later colons",
			input:    "---\nurl: https://example.com:8080\n---\n",
			wantMeta: map[string]string{"url": "https://example.com:8080"},
			wantKeys: []string{"url"},
			wantBody: "",
		},
		{
			name:     "duplicate keys last wins",
			input:    "---\ntitle: First\ndate: d\nTitle: Second\n---\nbody",
			wantMeta: map[string]string{"title": "Second", "date": "d"},
			wantKeys: []string{"title", "date"},
			wantBody: "body",
		},
		{
			name:     "empty key is skipped",
			input:    "---\n: orphan\n---\nbody",
			wantMeta: map[string]string{},
			wantBody: "body",
		},
		{
			name:     "only one blank line is consumed",
			input:    "---\ntitle: T\n---\n\n\nbody",
			wantMeta: map[string]string{"title": "T"},
			wantKeys: []string{"title"},
			wantBody: "\nbody",
		},
		{
			name:     "empty frontmatter",
			input:    "---\n---\n\nBody after empty frontmatter.",
			wantMeta: map[string]string{},
			wantBody: "Body after empty frontmatter.",
		},
		{
			name:     "frontmatter only",
			input:    "---\ntitle: Only Frontmatter\n---",
			wantMeta: map[string]string{"title": "Only Frontmatter"},
			wantKeys: []string{"title"},
			wantBody: "",
		},
		{
			name:     "byte order mark",
			input:    "\xef\xbb\xbf---\ntitle: BOM Test\n---\n\nContent with BOM.",
			wantMeta: map[string]string{"title": "BOM Test"},
			wantKeys: []string{"title"},
			wantBody: "Content with BOM.",
		},
		{
			name:     "crlf line endings",
			input:    "---\r\ntitle: Windows\r\n---\r\n\r\nbody\r\n",
			wantMeta: map[string]string{"title": "Windows"},
			wantKeys: []string{"title"},
			wantBody: "body\r\n",
		},
		{
			name:     "empty document",
			input:    "",
			wantMeta: map[string]string{},
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := ParseFrontmatter(tt.input)

			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if fm.Len() != len(tt.wantMeta) {
				t.Errorf("len = %d, want %d", fm.Len(), len(tt.wantMeta))
			}
			for k, want := range tt.wantMeta {
				got, ok := fm.Get(k)
				if !ok {
					t.Errorf("missing key %q", k)
					continue
				}
				if got != want {
					t.Errorf("%s = %q, want %q", k, got, want)
				}
			}
			if tt.wantKeys != nil && !slices.Equal(fm.Keys(), tt.wantKeys) {
				t.Errorf("keys = %v, want %v", fm.Keys(), tt.wantKeys)
			}
		})
	}
}

func TestFrontmatterGetIsCaseInsensitive(t *testing.T) {
	fm, _ := ParseFrontmatter("---\nTitle: Mixed\n---\n")

	for _, key := range []string{"title", "TITLE", " Title "} {
		if got, ok := fm.Get(key); !ok || got != "Mixed" {
			t.Errorf("Get(%q) = %q, %v; want %q, true", key, got, ok, "Mixed")
		}
	}
	if _, ok := fm.Get("date"); ok {
		t.Error("Get(date) reported a missing key as present")
	}
}

func TestFrontmatterZeroValue(t *testing.T) {
	var fm Frontmatter
	if _, ok := fm.Get("title"); ok {
		t.Fatal("zero Frontmatter reported a key")
	}

	fm.Set("Title", "set on zero value")
	if got, _ := fm.Get("title"); got != "set on zero value" {
		t.Errorf("title = %q", got)
	}
}
