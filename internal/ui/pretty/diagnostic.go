package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// maxContextWidth bounds the source excerpt printed under a finding.
// Minified stylesheets and markup often put a whole file on one line.
const maxContextWidth = 120

// DiagnosticView carries the display choices for one finding.
type DiagnosticView struct {
	// Path is the path to print, usually relative to the working directory.
	Path string

	// SourceLine is the text of the finding's first line. Empty hides context.
	SourceLine string

	// RuleFormat selects how the rule is named.
	RuleFormat config.RuleFormat
}

// FormatDiagnostic renders diag as
//
//	path:line:col  severity  message  <element>  (rule)
//
// followed by the source excerpt with a caret and the suggestion.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, view DiagnosticView) string {
	var builder strings.Builder

	path := view.Path
	if path == "" {
		path = diag.FilePath
	}
	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), diag.StartLine, diag.StartColumn)

	builder.WriteString("  " + location + "  " + s.FormatSeverity(diag.Severity) + "  " + s.Message.Render(diag.Message))
	if diag.Element != "" {
		builder.WriteString("  " + s.Element.Render(diag.Element))
	}
	rule := config.FormatRuleID(view.RuleFormat, diag.RuleID, diag.RuleName)
	builder.WriteString("  " + s.RuleID.Render("("+rule+")") + "\n")

	if view.SourceLine != "" {
		builder.WriteString(s.FormatSourceContext(view.SourceLine, diag.StartColumn))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " + s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity renders a severity name in its color.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders line with a caret under the 1-based byte
// column. Long lines are cut to a window around the column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	line = strings.TrimRight(line, "\r\n")
	line, column = contextWindow(line, column)

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 && column <= len(line)+1 {
		builder.WriteString(indent + caretPadding(line[:column-1]) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// caretPadding mirrors prefix with blanks, keeping tabs so the caret lines
// up with the source whatever the tab width.
func caretPadding(prefix string) string {
	var builder strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			builder.WriteByte('\t')
		} else {
			builder.WriteByte(' ')
		}
	}
	return builder.String()
}

// contextWindow trims line to at most maxContextWidth bytes around column
// and returns the column adjusted to the trimmed text.
func contextWindow(line string, column int) (string, int) {
	if len(line) <= maxContextWidth {
		return line, column
	}

	const ellipsis = "..."
	start := max(0, column-1-maxContextWidth/2)
	end := min(len(line), start+maxContextWidth)
	start = max(0, end-maxContextWidth)

	out := line[start:end]
	column -= start
	if start > 0 {
		out = ellipsis + out
		column += len(ellipsis)
	}
	if end < len(line) {
		out += ellipsis
	}
	return out, column
}

// FormatFileHeader renders the heading of a file group.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
