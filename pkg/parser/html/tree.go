package html

import (
	"slices"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/parser/css"
)

// voidElements never have children or end tags.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// closesParagraph lists start tags that implicitly end an open <p>.
var closesParagraph = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"details": true, "div": true, "dl": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "main": true, "nav": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "ul": true,
}

// impliedEnd reports whether opening next implicitly closes open.
func impliedEnd(open, next string) bool {
	switch open {
	case "p":
		return closesParagraph[next]
	case "li":
		return next == "li"
	case "dt", "dd":
		return next == "dt" || next == "dd"
	case "option":
		return next == "option" || next == "optgroup"
	case "tr":
		return next == "tr" || next == "tbody" || next == "tfoot"
	case "td", "th":
		return next == "td" || next == "th" || next == "tr" || next == "tbody" || next == "tfoot"
	case "thead", "tbody":
		return next == "tbody" || next == "tfoot"
	}
	return false
}

// treeBuilder maintains the stack of open elements while tokens stream in.
type treeBuilder struct {
	doc     *dom.Document
	stack   []*dom.Node
	offset  int
	created []*dom.Node
}

func (b *treeBuilder) top() *dom.Node {
	return b.stack[len(b.stack)-1]
}

func (b *treeBuilder) appendLeaf(n *dom.Node) {
	n.Doc = b.doc
	b.top().AppendChild(n)
}

func (b *treeBuilder) open(n *dom.Node, selfClosing bool) {
	for len(b.stack) > 1 && impliedEnd(b.top().Tag, n.Tag) {
		b.pop()
	}

	n.Doc = b.doc
	b.top().AppendChild(n)
	b.created = append(b.created, n)
	if !selfClosing && !voidElements[n.Tag] {
		b.stack = append(b.stack, n)
	}
}

// close pops to the nearest open element named tag. Stray end tags are ignored.
func (b *treeBuilder) close(tag string, span dom.Span) {
	for i := len(b.stack) - 1; i > 0; i-- {
		if b.stack[i].Tag != tag {
			continue
		}
		for len(b.stack)-1 > i {
			b.pop()
		}
		b.stack[i].Span.End = span.End
		b.stack = b.stack[:i]
		return
	}
}

// pop closes the top element without an end tag. The element then ends
// with its last child.
func (b *treeBuilder) pop() {
	n := b.top()
	n.Span.End = n.StartTag.End
	if n.LastChild != nil {
		n.Span.End = max(n.Span.End, n.LastChild.Span.End)
	}
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *treeBuilder) closeAll() {
	for len(b.stack) > 1 {
		b.pop()
	}
}

// attachStyles parses <style> bodies and style attributes of the elements
// this builder created. Failures are recorded as document problems so the
// markup can still be checked.
func (b *treeBuilder) attachStyles() {
	for _, n := range b.created {
		if n.Tag == "style" && isCSSType(n.AttrValue("type")) && n.FirstChild != nil {
			body := dom.Span{Start: n.FirstChild.Span.Start, End: n.LastChild.Span.End}
			if _, err := css.ParseSheet(b.doc, body, dom.OriginStyleElement, n); err != nil {
				b.doc.AddProblem(body, err.Error())
			}
		}

		if idx := slices.IndexFunc(n.Attrs, func(a dom.Attr) bool { return a.Name == "style" }); idx >= 0 {
			attr := n.Attrs[idx]
			if strings.TrimSpace(attr.Value) == "" || attr.ValueSpan.IsEmpty() {
				continue
			}
			if _, err := css.ParseInline(b.doc, attr.ValueSpan, n); err != nil {
				b.doc.AddProblem(attr.Span, err.Error())
			}
		}
	}
}

func isCSSType(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	return value == "" || value == "text/css"
}
