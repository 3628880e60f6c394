package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/olimci/mdpages/pkg/config"
	"github.com/olimci/mdpages/pkg/events"
	"github.com/olimci/mdpages/pkg/utils/fileutils"
)

var (
	ErrInputDirNotFound = fmt.Errorf("markdown dir not found: %w", fs.ErrNotExist)
	ErrInputNotDir      = errors.New("markdown dir is not a directory")
)

// Result lists what a build rendered, in render order
type Result struct {
	Root  string
	Pages []*Page
}

// Targets returns the written paths for display, relative to the root where possible
func (r *Result) Targets() []string {
	out := make([]string, len(r.Pages))
	for i, page := range r.Pages {
		out[i] = DisplayPath(r.Root, page.Target)
	}
	return out
}

// Build renders every markdown file below cfg.Input, one at a time in sorted order.
// The first failure stops the build; pages written before it stay on disk and are
// returned alongside the error.
func Build(ctx context.Context, cfg *config.Config, opts ...Option) (*Result, error) {
	o := defaultOptions().Apply(opts...)
	result := &Result{Root: cfg.Root}

	info, err := os.Stat(cfg.Input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", ErrInputDirNotFound, cfg.Input)
		}
		return result, fmt.Errorf("failed to stat %s: %w", cfg.Input, err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("%w: %s", ErrInputNotDir, cfg.Input)
	}

	files, err := fileutils.FindFiles(cfg.Input, MarkdownExt)
	if err != nil {
		return result, fmt.Errorf("failed to find markdown files under %s: %w", cfg.Input, err)
	}

	if len(files) == 0 {
		o.handler.Handle(events.Event{
			Level:   events.Debug,
			Source:  cfg.Input,
			Message: "no markdown files found",
		})
		return result, nil
	}

	o.handler.Handle(events.Event{
		Level:   events.Debug,
		Source:  cfg.Input,
		Message: fmt.Sprintf("found %d markdown files", len(files)),
	})

	r := NewRenderer(cfg, opts...)
	for _, source := range files {
		page, err := r.RenderFile(ctx, source)
		if err != nil {
			return result, err
		}
		result.Pages = append(result.Pages, page)
	}

	return result, nil
}
