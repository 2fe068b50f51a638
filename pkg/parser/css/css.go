// Package css parses stylesheets into dom.StyleSheets using douceur.
//
// douceur produces rules and declarations without source positions, so a
// small structural scanner walks the same source in the same order and the
// two results are paired to give every rule and declaration a byte span.
package css

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// Parser implements lint.Parser for standalone .css files.
// It holds no state and is safe for concurrent use.
type Parser struct{}

// New creates a CSS parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts a stylesheet into a Document with a single OriginFile sheet
// and an empty node tree.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*dom.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if !utf8.Valid(content) {
		return nil, &lint.MalformedInputError{Path: path, Reason: "content is not valid UTF-8"}
	}

	doc := dom.NewDocument(path, content, dom.SourceCSS)
	if _, err := ParseSheet(doc, dom.Span{Start: 0, End: len(content)}, dom.OriginFile, nil); err != nil {
		var malformed *lint.MalformedInputError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}

	return doc, nil
}

// ParseSheet parses doc.Content[span] as a stylesheet and appends the
// result to doc.StyleSheets.
func ParseSheet(doc *dom.Document, span dom.Span, origin dom.StyleOrigin, owner *dom.Node) (*dom.StyleSheet, error) {
	src := string(doc.Text(span))

	parsed, err := parser.Parse(src)
	if err != nil {
		return nil, lint.NewMalformedInputError(span, "invalid stylesheet", err)
	}

	sheet := &dom.StyleSheet{Origin: origin, Owner: owner, Span: span}
	b := &sheetBuilder{
		doc:    doc,
		sheet:  sheet,
		blocks: scanBlocks(doc.Content[span.Start:span.End], span.Start),
	}
	b.addRules(parsed.Rules, "", true)

	doc.StyleSheets = append(doc.StyleSheets, sheet)
	return sheet, nil
}

// ParseInline parses doc.Content[span] as a declaration list, as found in a
// style attribute, and appends a single-rule sheet to doc.StyleSheets.
func ParseInline(doc *dom.Document, span dom.Span, owner *dom.Node) (*dom.StyleSheet, error) {
	decls, err := parser.ParseDeclarations(terminateDeclarations(string(doc.Text(span))))
	if err != nil {
		return nil, lint.NewMalformedInputError(span, "invalid style attribute", err)
	}

	sheet := &dom.StyleSheet{Origin: dom.OriginStyleAttr, Owner: owner, Span: span}
	rule := &dom.StyleRule{Span: span, Sheet: sheet}
	rule.Declarations = pairDeclarations(decls, scanDeclarations(doc.Content[span.Start:span.End], span.Start, span), span)
	sheet.Rules = []*dom.StyleRule{rule}

	doc.StyleSheets = append(doc.StyleSheets, sheet)
	return sheet, nil
}

type sheetBuilder struct {
	doc    *dom.Document
	sheet  *dom.StyleSheet
	blocks []block
	next   int
}

// take returns the next scanned statement, or a block covering the whole
// sheet if the scanner ran out.
func (b *sheetBuilder) take() block {
	if b.next < len(b.blocks) {
		blk := b.blocks[b.next]
		b.next++
		return blk
	}
	return block{Prelude: b.sheet.Span, Full: b.sheet.Span}
}

// addRules walks douceur rules in pre-order, consuming one scanned
// statement per rule. Rules inside @keyframes are consumed but not recorded.
func (b *sheetBuilder) addRules(rules []*douceur.Rule, atRule string, record bool) {
	for _, rule := range rules {
		blk := b.take()

		switch {
		case rule.Kind == douceur.AtRule && rule.EmbedsRules():
			prelude := strings.TrimSpace(rule.Name + " " + rule.Prelude)
			if atRule != "" {
				prelude = atRule + " " + prelude
			}
			b.addRules(rule.Rules, prelude, record && !strings.HasSuffix(rule.Name, "keyframes"))

		case rule.Kind == douceur.AtRule:
			// @font-face, @page, @import and friends carry no selectors.

		case record:
			styleRule := &dom.StyleRule{
				Selectors: trimAll(rule.Selectors),
				AtRule:    atRule,
				Span:      blk.Full,
				Sheet:     b.sheet,
			}
			scanned := scanDeclarations(b.doc.Content[blk.Body.Start:blk.Body.End], blk.Body.Start, blk.Body)
			styleRule.Declarations = pairDeclarations(rule.Declarations, scanned, blk.Full)
			b.sheet.Rules = append(b.sheet.Rules, styleRule)
		}
	}
}

// pairDeclarations attaches scanned spans to parsed declarations by
// matching property names in order.
func pairDeclarations(parsed []*douceur.Declaration, scanned []declSpan, fallback dom.Span) []*dom.Declaration {
	out := make([]*dom.Declaration, 0, len(parsed))
	cursor := 0

	for _, decl := range parsed {
		property := strings.ToLower(strings.TrimSpace(decl.Property))
		span := fallback

		for k := cursor; k < len(scanned); k++ {
			if scanned[k].Property == property {
				span = scanned[k].Span
				cursor = k + 1
				break
			}
		}

		out = append(out, &dom.Declaration{
			Property:  property,
			Value:     strings.TrimSpace(decl.Value),
			Important: decl.Important,
			Span:      span,
		})
	}

	return out
}

// terminateDeclarations appends the ";" that douceur needs to keep the value
// of the final declaration.
func terminateDeclarations(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasSuffix(trimmed, ";") {
		return text
	}
	return text + ";"
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
