// Package parser selects a document parser by file extension.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
	"github.com/yaklabco/a11ylint/pkg/parser/css"
	"github.com/yaklabco/a11ylint/pkg/parser/html"
	"github.com/yaklabco/a11ylint/pkg/parser/markdown"
)

// Extensions handled by each parser.
var (
	HTMLExtensions     = []string{".html", ".htm", ".xhtml"}
	CSSExtensions      = []string{".css"}
	MarkdownExtensions = []string{".md", ".markdown"}
)

// DefaultExtensions returns every extension a Router can parse.
func DefaultExtensions() []string {
	exts := make([]string, 0, len(HTMLExtensions)+len(CSSExtensions)+len(MarkdownExtensions))
	exts = append(exts, HTMLExtensions...)
	exts = append(exts, CSSExtensions...)
	return append(exts, MarkdownExtensions...)
}

// Options configures the Router.
type Options struct {
	// Markdown enables parsing of Markdown files.
	Markdown bool

	// DetectUntagged sniffs untagged Markdown code blocks.
	DetectUntagged bool
}

// Router implements lint.Parser by dispatching on the path extension.
type Router struct {
	html     *html.Parser
	css      *css.Parser
	markdown *markdown.Parser
}

// New creates a Router.
func New(opts Options) *Router {
	r := &Router{
		html: html.New(),
		css:  css.New(),
	}
	if opts.Markdown {
		r.markdown = markdown.New(markdown.Options{DetectUntagged: opts.DetectUntagged})
	}
	return r
}

// ForPath returns the parser for path, or false if the extension is not supported.
func (r *Router) ForPath(path string) (lint.Parser, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case slices.Contains(HTMLExtensions, ext):
		return r.html, true
	case slices.Contains(CSSExtensions, ext):
		return r.css, true
	case slices.Contains(MarkdownExtensions, ext) && r.markdown != nil:
		return r.markdown, true
	default:
		return nil, false
	}
}

// Parse parses content with the parser selected by path.
// Paths with no extension are treated as HTML.
func (r *Router) Parse(ctx context.Context, path string, content []byte) (*dom.Document, error) {
	if filepath.Ext(path) == "" {
		return r.html.Parse(ctx, path, content)
	}

	p, ok := r.ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	return p.Parse(ctx, path, content)
}

// ForPath returns a parser for path using default options.
func ForPath(path string) (lint.Parser, bool) {
	return New(Options{Markdown: true, DetectUntagged: true}).ForPath(path)
}
