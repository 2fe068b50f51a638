// Package markdown extracts the HTML and CSS embedded in Markdown files.
//
// Raw HTML blocks, paragraphs with inline HTML, and fenced code blocks
// holding HTML or CSS are parsed into one dom.Document whose spans point
// into the Markdown source. Markdown headings become h1-h6 elements so that
// heading order is checked across the whole file.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/langdetect"
	"github.com/yaklabco/a11ylint/pkg/lint"
	"github.com/yaklabco/a11ylint/pkg/parser/css"
	"github.com/yaklabco/a11ylint/pkg/parser/html"
)

// Options configures Markdown extraction.
type Options struct {
	// DetectUntagged sniffs fenced code blocks without a language tag.
	DetectUntagged bool
}

// Parser implements lint.Parser for Markdown files using goldmark.
// It is safe for concurrent use.
type Parser struct {
	opts Options
	md   goldmark.Markdown
}

// New creates a Markdown parser with GFM extensions enabled.
func New(opts Options) *Parser {
	return &Parser{
		opts: opts,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Parse extracts embedded markup from Markdown content.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*dom.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if !utf8.Valid(content) || bytes.IndexByte(content, 0) >= 0 {
		return nil, &lint.MalformedInputError{Path: path, Reason: "content is not valid UTF-8 text"}
	}

	doc := dom.NewDocument(path, content, dom.SourceMarkdown)
	tree := p.md.Parser().Parse(text.NewReader(content))

	e := &extractor{doc: doc, opts: p.opts}
	err := ast.Walk(tree, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if err := ctx.Err(); err != nil {
			return ast.WalkStop, fmt.Errorf("parse cancelled: %w", err)
		}
		return e.visit(node)
	})
	if err != nil {
		var malformed *lint.MalformedInputError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}

	return doc, nil
}

type extractor struct {
	doc  *dom.Document
	opts Options
}

func (e *extractor) visit(node ast.Node) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Heading:
		e.heading(n)
		return ast.WalkSkipChildren, nil

	case *ast.HTMLBlock:
		span, ok := blockSpan(n)
		if ok {
			if n.HasClosure() {
				span.End = max(span.End, n.ClosureLine.Stop)
			}
			e.markup(span)
		}
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock:
		e.codeBlock(n)
		return ast.WalkSkipChildren, nil

	case *ast.Paragraph, *ast.TextBlock:
		if hasRawHTML(n) {
			if span, ok := blockSpan(n); ok {
				e.markup(span)
			}
		}
		return ast.WalkSkipChildren, nil
	}

	return ast.WalkContinue, nil
}

// heading adds an hN element spanning the heading's source line.
func (e *extractor) heading(n *ast.Heading) {
	content, ok := blockSpan(n)
	if !ok {
		return
	}

	line, _ := e.doc.LineAt(content.Start)
	info := e.doc.Lines[line-1]
	span := dom.Span{Start: info.StartOffset, End: max(content.End, info.NewlineStart)}

	el := &dom.Node{
		Kind:     dom.NodeElement,
		Tag:      "h" + strconv.Itoa(n.Level),
		Span:     span,
		StartTag: span,
		Doc:      e.doc,
	}
	e.doc.Root.AppendChild(el)

	if hasRawHTML(n) {
		if err := html.Into(e.doc, el, content); err != nil {
			e.doc.AddProblem(content, err.Error())
		}
		return
	}

	el.AppendChild(&dom.Node{
		Kind: dom.NodeText,
		Data: segmentsText(n.Lines(), e.doc.Content),
		Span: content,
		Doc:  e.doc,
	})
}

func (e *extractor) codeBlock(n *ast.FencedCodeBlock) {
	span, ok := blockSpan(n)
	if !ok {
		return
	}

	lang := langdetect.LangOther
	switch {
	case n.Info != nil:
		lang = langdetect.FromInfo(string(n.Language(e.doc.Content)))
	case e.opts.DetectUntagged:
		lang = langdetect.Detect(e.doc.Text(span))
	}

	switch lang {
	case langdetect.LangHTML:
		e.markup(span)
	case langdetect.LangCSS:
		if _, err := css.ParseSheet(e.doc, span, dom.OriginMarkdownBlock, nil); err != nil {
			e.doc.AddProblem(span, err.Error())
		}
	}
}

func (e *extractor) markup(span dom.Span) {
	if err := html.Into(e.doc, e.doc.Root, span); err != nil {
		e.doc.AddProblem(span, err.Error())
	}
}

// blockSpan returns the byte range covered by a block's lines.
func blockSpan(n ast.Node) (dom.Span, bool) {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return dom.Span{}, false
	}
	return dom.Span{Start: lines.At(0).Start, End: lines.At(lines.Len() - 1).Stop}, true
}

func segmentsText(lines *text.Segments, source []byte) string {
	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}

func hasRawHTML(n ast.Node) bool {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Kind() == ast.KindRawHTML || hasRawHTML(child) {
			return true
		}
	}
	return false
}
