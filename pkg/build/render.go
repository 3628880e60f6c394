package build

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/olimci/mdpages/pkg/config"
	"github.com/olimci/mdpages/pkg/events"
	"github.com/olimci/mdpages/pkg/transforms"
	"github.com/olimci/mdpages/pkg/utils/fileutils"
)

const (
	MarkdownExt = ".md"
	HTMLExt     = ".html"
)

var (
	ErrAlreadyExists = fmt.Errorf("refusing to overwrite existing file: %w", fs.ErrExist)
	ErrOutsideInput  = errors.New("source is outside the input directory")
)

// Page is a rendered document and where it was written
type Page struct {
	Source string
	Target string

	Title string
	Date  string

	HTML string
}

// Renderer renders single markdown files into pages
type Renderer struct {
	config    *config.Config
	converter Converter
	post      PostProcessor
	handler   events.Handler
}

// NewRenderer creates a Renderer for an already resolved config.
func NewRenderer(cfg *config.Config, opts ...Option) *Renderer {
	o := defaultOptions().Apply(opts...)

	converter := o.converter
	if converter == nil {
		converter = NewGoldmarkConverter()
	}

	return &Renderer{
		config:    cfg,
		converter: converter,
		post:      NewMinifier(cfg.Minify),
		handler:   o.handler,
	}
}

// RenderFile renders source into its mirrored location in the output directory.
// An existing target is only replaced when the config forces it.
func (r *Renderer) RenderFile(ctx context.Context, source string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	doc := transforms.NewDocument(source, string(text), transforms.DocumentOptions{
		KeepTitleHeading: r.config.KeepTitleHeading,
	})

	if doc.Heading != "" {
		r.handler.Handle(events.Event{
			Level:   events.Warn,
			Source:  source,
			Message: fmt.Sprintf("heading %q differs from frontmatter title %q, keeping it in the body", doc.Heading, doc.Title),
		})
	}

	target, err := TargetPath(r.config.Input, r.config.Output, source)
	if err != nil {
		return nil, err
	}
	doc.Target = target

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}

	href, err := StylesheetHref(r.config.StylesheetPath(), filepath.Dir(target))
	if err != nil {
		return nil, err
	}

	body, err := r.converter.Convert(doc.Body, r.config.Extensions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var b strings.Builder
	err = transforms.RenderShell(&b, transforms.ShellData{
		Title:      doc.Title,
		Date:       doc.Date,
		Stylesheet: href,
		Secondary:  r.config.SecondaryStylesheet,
		Body:       template.HTML(body),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to render page: %w", source, err)
	}

	page := &Page{
		Source: source,
		Target: target,
		Title:  doc.Title,
		Date:   doc.Date,
		HTML:   b.String(),
	}

	if err := r.write(page); err != nil {
		return nil, err
	}

	r.handler.Handle(events.Event{
		Level:   events.Debug,
		Source:  source,
		Message: fmt.Sprintf("rendered %q -> %s", page.Title, target),
	})

	return page, nil
}

func (r *Renderer) write(page *Page) error {
	exists := false
	if _, err := os.Stat(page.Target); err == nil {
		exists = true
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", page.Target, err)
	}

	if exists && !r.config.Force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrAlreadyExists, page.Target)
	}

	gen := WriterFunc(func(w io.Writer) error {
		_, err := io.WriteString(w, page.HTML)
		return err
	})
	if r.post != nil {
		gen = r.post(page.Target, gen)
	}

	if err := fileutils.WriteFile(page.Target, gen, exists); err != nil {
		return fmt.Errorf("failed to write %s: %w", page.Target, err)
	}
	return nil
}

// TargetPath mirrors source, which lives below input, into output with an .html extension
func TargetPath(input, output, source string) (string, error) {
	rel, err := filepath.Rel(input, source)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrOutsideInput, source, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideInput, source)
	}

	return filepath.Join(output, replaceExt(rel, HTMLExt)), nil
}

// StylesheetHref is the slash separated relative path from dir to stylesheet
func StylesheetHref(stylesheet, dir string) (string, error) {
	rel, err := filepath.Rel(dir, stylesheet)
	if err != nil {
		return "", fmt.Errorf("failed to link stylesheet %s from %s: %w", stylesheet, dir, err)
	}
	return filepath.ToSlash(rel), nil
}

// DisplayPath shows target relative to root, or as is when it lies outside root
func DisplayPath(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return target
	}
	return rel
}

// replaceExt swaps the extension of the last path element; a leading dot alone is not one
func replaceExt(p, ext string) string {
	base := filepath.Base(p)
	old := filepath.Ext(base)
	if old == base {
		old = ""
	}
	return strings.TrimSuffix(p, old) + ext
}
