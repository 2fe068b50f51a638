// Package lint runs accessibility rules over parsed HTML and CSS documents
// and applies the markup fixes they propose.
package lint

import (
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/fix"
)

// Diagnostic is one accessibility finding: a rule, the offending element or
// style declaration, and where it sits in the source. Engines build
// diagnostics through DiagnosticBuilder and never modify them afterwards.
type Diagnostic struct {
	RuleID   string // "A11Y001"; "A11Y000" for input that could not be read
	RuleName string // "img-alt"
	Message  string
	Severity config.Severity
	FilePath string

	// Offset is the byte offset of the finding in the file; output is
	// ordered by it before line and column.
	Offset int

	// Positions are 1-based. Columns count bytes.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Element names the node the finding is about, such as "<img>" or the
	// selector text of a style rule.
	Element string

	Suggestion string

	// FixEdits rewrite the markup when the rule can repair it; nil otherwise.
	FixEdits []fix.TextEdit
}

// HasFix reports whether applying the finding's edits would change the file.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// SourcePosition returns the finding's line and column range.
func (d *Diagnostic) SourcePosition() dom.SourcePosition {
	return dom.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Rule is a single accessibility check over a parsed document. A rule holds
// no per-document state, so the engine may run rules for the same document
// on several goroutines.
type Rule interface {
	ID() string   // stable identifier, "A11Y001"
	Name() string // kebab-case name, "img-alt"
	Description() string

	DefaultEnabled() bool

	// DefaultSeverity is "" when findings follow severity_default.
	DefaultSeverity() config.Severity

	// Tags group checks by topic and WCAG criterion, e.g. "css" or
	// "wcag-1.4.3"; selectors in config and rules --tag match them.
	Tags() []string

	// CanFix reports whether findings may carry FixEdits.
	CanFix() bool

	// Apply returns the findings for ctx.Doc. Values that cannot be read,
	// such as an unparseable color, are returned as *MalformedInputError
	// (joined with errors.Join when there are several) next to the findings
	// collected so far. Any other error means the check itself failed.
	// Apply stops early when ctx is cancelled.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}

// OptionDefaulter is implemented by rules with tunable options.
type OptionDefaulter interface {
	DefaultOptions() map[string]any
}
