package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/runner"
)

const summaryDividerWidth = 40

// plural returns word with an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// severityParts renders the non-zero severity counts, errors first.
func (s *Styles) severityParts(bySeverity map[config.Severity]int) []string {
	var parts []string
	if n := bySeverity[config.SeverityError]; n > 0 {
		parts = append(parts, s.Error.Render(plural(n, "error")))
	}
	if n := bySeverity[config.SeverityWarning]; n > 0 {
		parts = append(parts, s.Warning.Render(plural(n, "warning")))
	}
	if n := bySeverity[config.SeverityInfo]; n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return parts
}

// FormatSummaryOneLine renders run statistics on one line, for example
// "5 issues (3 errors, 2 warnings) in 2 files, 1 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	fixed := ""
	if stats.DiagnosticsFixed > 0 {
		fixed = s.Success.Render(fmt.Sprintf("%d fixed in %s", stats.DiagnosticsFixed, plural(stats.FilesModified, "file")))
	}

	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No accessibility issues found") +
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file")))
		if fixed != "" {
			msg += ", " + fixed
		}
		return msg + "\n"
	}

	head := plural(stats.DiagnosticsTotal, "issue")
	if sev := s.severityParts(stats.DiagnosticsBySeverity); len(sev) > 0 {
		head += " (" + strings.Join(sev, ", ") + ")"
	}

	parts := []string{head + " in " + plural(stats.FilesWithIssues, "file")}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if fixed != "" {
		parts = append(parts, fixed)
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "file")+" could not be checked"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary renders run statistics as a block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	builder.WriteString("\n")

	row("Total issues", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
		row("  Errors", s.Error.Render(strconv.Itoa(n)))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
		row("  Warnings", s.Warning.Render(strconv.Itoa(n)))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
		row("  Info", s.Info.Render(strconv.Itoa(n)))
	}
	if stats.DiagnosticsMalformed > 0 {
		row("  Malformed input", s.Dim.Render(strconv.Itoa(stats.DiagnosticsMalformed)))
	}
	builder.WriteString("\n")

	switch {
	case stats.DiagnosticsBySeverity[config.SeverityError] > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.DiagnosticsBySeverity[config.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
