package build

import (
	"io"
	"path/filepath"

	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
)

// WriterFunc writes the content of a target file
type WriterFunc func(w io.Writer) error

// PostProcessor wraps the writer of a target file
type PostProcessor func(target string, next WriterFunc) WriterFunc

// NewMinifier returns a PostProcessor that minifies html targets, or nil when disabled.
func NewMinifier(enabled bool) PostProcessor {
	if !enabled {
		return nil
	}

	mimes := map[string]string{
		".html": "text/html",
	}

	m := minify.New()
	m.AddFunc("text/html", minhtml.Minify)

	return func(target string, next WriterFunc) WriterFunc {
		mime, ex := mimes[filepath.Ext(target)]
		if !ex {
			return next
		}

		return func(w io.Writer) error {
			x := m.Writer(mime, w)
			if err := next(x); err != nil {
				return err
			}
			return x.Close()
		}
	}
}
