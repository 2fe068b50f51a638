// Package html builds dom.Documents from HTML using the golang.org/x/net/html
// tokenizer.
//
// The tokenizer is used instead of html.Parse because the tree builder drops
// source positions. Every token's raw length advances a byte cursor, so each
// node knows exactly where it came from.
package html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// Parser implements lint.Parser for HTML files.
// It holds no state and is safe for concurrent use.
type Parser struct{}

// New creates an HTML parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts HTML bytes into a Document. Inline and embedded styles are
// parsed into the document's stylesheets.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*dom.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if err := checkText(content); err != nil {
		err.Path = path
		return nil, err
	}

	doc := dom.NewDocument(path, content, dom.SourceHTML)
	if err := Into(doc, doc.Root, dom.Span{Start: 0, End: len(content)}); err != nil {
		var malformed *lint.MalformedInputError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}

	return doc, nil
}

// checkText rejects content that cannot be markup.
func checkText(content []byte) *lint.MalformedInputError {
	if !utf8.Valid(content) {
		return &lint.MalformedInputError{Reason: "content is not valid UTF-8"}
	}
	if bytes.IndexByte(content, 0) >= 0 {
		return &lint.MalformedInputError{Reason: "content contains NUL bytes"}
	}
	return nil
}

// Into parses doc.Content[span] as an HTML fragment and appends the nodes to
// parent. Spans are absolute offsets into doc.Content.
func Into(doc *dom.Document, parent *dom.Node, span dom.Span) error {
	b := &treeBuilder{
		doc:    doc,
		stack:  []*dom.Node{parent},
		offset: span.Start,
	}

	z := html.NewTokenizer(bytes.NewReader(doc.Content[span.Start:span.End]))
	for {
		tt := z.Next()
		start := b.offset
		b.offset += len(z.Raw())
		tokenSpan := dom.Span{Start: start, End: b.offset}

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return lint.NewMalformedInputError(tokenSpan, "tokenizer failed", err)
			}
			b.closeAll()
			b.attachStyles()
			return nil

		case html.TextToken:
			b.appendLeaf(&dom.Node{Kind: dom.NodeText, Data: string(z.Text()), Span: tokenSpan})

		case html.CommentToken:
			b.appendLeaf(&dom.Node{Kind: dom.NodeComment, Data: string(z.Text()), Span: tokenSpan})

		case html.DoctypeToken:
			b.appendLeaf(&dom.Node{Kind: dom.NodeDoctype, Data: string(z.Text()), Span: tokenSpan})

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			node := &dom.Node{
				Kind:     dom.NodeElement,
				Tag:      strings.ToLower(string(name)),
				Span:     tokenSpan,
				StartTag: tokenSpan,
			}
			node.Attrs = readAttrs(z, hasAttr, doc.Content, tokenSpan)
			b.open(node, tt == html.SelfClosingTagToken)

		case html.EndTagToken:
			name, _ := z.TagName()
			b.close(strings.ToLower(string(name)), tokenSpan)
		}
	}
}

// readAttrs pairs tokenizer attributes (unescaped values) with spans found
// by scanning the raw start tag.
func readAttrs(z *html.Tokenizer, hasAttr bool, content []byte, tag dom.Span) []dom.Attr {
	if !hasAttr {
		return nil
	}

	scanned := scanAttrs(content, tag)
	var attrs []dom.Attr
	cursor := 0

	for more := true; more; {
		var key, val []byte
		key, val, more = z.TagAttr()
		attr := dom.Attr{Name: strings.ToLower(string(key)), Value: string(val), Span: tag, ValueSpan: tag}
		for k := cursor; k < len(scanned); k++ {
			if scanned[k].Name == attr.Name {
				attr.Span = scanned[k].Span
				attr.ValueSpan = scanned[k].ValueSpan
				cursor = k + 1
				break
			}
		}
		attrs = append(attrs, attr)
	}

	return attrs
}
