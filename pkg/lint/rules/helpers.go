package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/dom"
)

// attrSpan returns the span of the named attribute, falling back to the
// element's start tag when the attribute position is unknown.
func attrSpan(n *dom.Node, name string) dom.Span {
	if span, ok := n.AttrSpan(name); ok && !span.IsEmpty() {
		return span
	}
	if !n.StartTag.IsEmpty() {
		return n.StartTag
	}
	return n.Span
}

// elementLabel is a short description used when a finding points at an
// attribute rather than the start tag.
func elementLabel(n *dom.Node) string {
	var sb strings.Builder
	sb.WriteString("<" + n.Tag)
	if id := n.ID(); id != "" {
		fmt.Fprintf(&sb, " id=%q", id)
	}
	sb.WriteString(">")
	return sb.String()
}

// isCSSWideKeyword reports values that defer to the cascade and cannot be
// evaluated from a single rule.
func isCSSWideKeyword(value string) bool {
	v := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important")))
	switch v {
	case "inherit", "initial", "unset", "revert", "revert-layer", "currentcolor":
		return true
	}
	return strings.Contains(v, "var(")
}
