package build

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/olimci/mdpages/pkg/utils/set"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	gm "github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	gmext "github.com/yuin/goldmark/extension"
	gmparse "github.com/yuin/goldmark/parser"
	gmrenderer "github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	ErrUnknownExtension = errors.New("unknown markdown extension")
	ErrConversion       = errors.New("markdown conversion failed")
)

// Converter turns markdown text into an HTML fragment
type Converter interface {
	Convert(markdown string, extensions []string) (string, error)
}

// extensionAliases maps accepted extension names onto the features they enable. Fenced
// code and sane lists are part of CommonMark and need nothing. gfm is spelled out so
// features shared with other names are only registered once.
var extensionAliases = map[string][]string{
	"gfm":             {"table", "strikethrough", "linkify", "tasklist"},
	"table":           {"table"},
	"tables":          {"table"},
	"strikethrough":   {"strikethrough"},
	"tasklist":        {"tasklist"},
	"task-list":       {"tasklist"},
	"deflist":         {"deflist"},
	"def_list":        {"deflist"},
	"definition-list": {"deflist"},
	"footnote":        {"footnote"},
	"footnotes":       {"footnote"},
	"linkify":         {"linkify"},
	"typographer":     {"typographer"},
	"smartypants":     {"typographer"},
	"smarty":          {"typographer"},
	"highlight":       {"highlight"},
	"codehilite":      {"highlight"},
	"attr_list":       {"attribute"},
	"attribute":       {"attribute"},
	"toc":             {"heading_id"},
	"auto_heading_id": {"heading_id"},
	"nl2br":           {"hardbreaks"},
	"hardbreaks":      {"hardbreaks"},
	"xhtml":           {"xhtml"},
	"extra":           {"table", "footnote", "deflist", "attribute"},
	"fenced_code":     {},
	"sane_lists":      {},
}

// NormalizeExtension lowercases an extension name and drops a markdown.extensions. prefix
func NormalizeExtension(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimPrefix(name, "markdown.extensions.")
}

// NewMarkdown builds a goldmark instance with the named extensions enabled.
func NewMarkdown(extensions []string) (gm.Markdown, error) {
	var (
		exts       []gm.Extender
		parserOpts []gmparse.Option
		htmlOpts   []gmrenderer.Option
	)

	seen := set.New[string]()
	for _, name := range extensions {
		features, ok := extensionAliases[NormalizeExtension(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, name)
		}

		for _, feature := range features {
			if seen.Has(feature) {
				continue
			}
			seen.Add(feature)

			switch feature {
			case "table":
				exts = append(exts, gmext.Table)
			case "strikethrough":
				exts = append(exts, gmext.Strikethrough)
			case "tasklist":
				exts = append(exts, gmext.TaskList)
			case "deflist":
				exts = append(exts, gmext.DefinitionList)
			case "footnote":
				exts = append(exts, gmext.Footnote)
			case "linkify":
				exts = append(exts, gmext.Linkify)
			case "typographer":
				exts = append(exts, gmext.Typographer)
			case "highlight":
				exts = append(exts, highlighting.NewHighlighting(
					highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
				))
			case "attribute":
				parserOpts = append(parserOpts, gmparse.WithAttribute())
			case "heading_id":
				parserOpts = append(parserOpts, gmparse.WithAutoHeadingID())
			case "hardbreaks":
				htmlOpts = append(htmlOpts, gmhtml.WithHardWraps())
			case "xhtml":
				htmlOpts = append(htmlOpts, gmhtml.WithXHTML())
			}
		}
	}

	htmlOpts = append(htmlOpts, gmhtml.WithUnsafe())

	opts := make([]gm.Option, 0, 3)
	if len(exts) > 0 {
		opts = append(opts, gm.WithExtensions(exts...))
	}
	if len(parserOpts) > 0 {
		opts = append(opts, gm.WithParserOptions(parserOpts...))
	}
	opts = append(opts, gm.WithRendererOptions(htmlOpts...))

	return gm.New(opts...), nil
}

// GoldmarkConverter is the default Converter. Instances are cached per extension list.
type GoldmarkConverter struct {
	mu    sync.Mutex
	cache map[string]gm.Markdown
}

func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{
		cache: make(map[string]gm.Markdown),
	}
}

func (c *GoldmarkConverter) Convert(markdown string, extensions []string) (string, error) {
	md, err := c.markdown(extensions)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return buf.String(), nil
}

func (c *GoldmarkConverter) markdown(extensions []string) (gm.Markdown, error) {
	key := strings.Join(extensions, ",")

	c.mu.Lock()
	defer c.mu.Unlock()

	if md, ok := c.cache[key]; ok {
		return md, nil
	}

	md, err := NewMarkdown(extensions)
	if err != nil {
		return nil, err
	}
	c.cache[key] = md
	return md, nil
}
