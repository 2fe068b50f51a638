package lint

import (
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/fix"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic for the given rule and node.
// The diagnostic points at the node's start tag when it has one.
func NewDiagnostic(ruleID string, node *dom.Node, message string) *DiagnosticBuilder {
	if node == nil {
		return &DiagnosticBuilder{diag: Diagnostic{RuleID: ruleID, Message: message}}
	}

	span := node.Span
	if !node.StartTag.IsEmpty() {
		span = node.StartTag
	}

	b := NewDiagnosticAt(ruleID, node.Doc, span, message)
	b.diag.Element = describeNode(node)
	return b
}

// NewDiagnosticAt starts building a diagnostic for a span in doc.
func NewDiagnosticAt(ruleID string, doc *dom.Document, span dom.Span, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:  ruleID,
			Message: message,
			Offset:  span.Start,
		},
	}
	if doc != nil {
		pos := doc.Position(span)
		b.diag.FilePath = doc.Path
		b.diag.StartLine = pos.StartLine
		b.diag.StartColumn = pos.StartColumn
		b.diag.EndLine = pos.EndLine
		b.diag.EndColumn = pos.EndColumn
	}
	return b
}

// NewDiagnosticForRule starts building a diagnostic for a style rule.
func NewDiagnosticForRule(ruleID string, doc *dom.Document, rule *dom.StyleRule, span dom.Span, message string) *DiagnosticBuilder {
	b := NewDiagnosticAt(ruleID, doc, span, message)
	switch {
	case rule == nil:
	case len(rule.Selectors) > 0:
		b.diag.Element = rule.SelectorText()
	case rule.Sheet != nil && rule.Sheet.Owner != nil:
		b.diag.Element = describeNode(rule.Sheet.Owner) + " style"
	}
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithElement overrides the offending element description.
func (b *DiagnosticBuilder) WithElement(s string) *DiagnosticBuilder {
	b.diag.Element = s
	return b
}

// WithFix adds fix edits from an EditBuilder.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

// WithEdit adds a single fix edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}

// describeNode renders an element as "<tag>" or "<tag id=...>".
func describeNode(n *dom.Node) string {
	if n == nil || n.Kind != dom.NodeElement {
		return ""
	}
	if id := n.ID(); id != "" {
		return "<" + n.Tag + " id=\"" + id + "\">"
	}
	return "<" + n.Tag + ">"
}
