package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
	"github.com/yaklabco/a11ylint/pkg/runner"
)

const (
	fixableSymbol  = "+"
	heavySeparator = "="
	lightSeparator = "-"
	columnGap      = 2
	fixableWidth   = 3

	minFileWidth    = 20
	minLocWidth     = 8
	minMessageWidth = 35
	minRuleWidth    = 8
)

// TableRow is one finding in table form.
type TableRow struct {
	File     string
	Location string
	Message  string
	Rule     string
	Severity config.Severity
	Fixable  bool
}

// NewTableRow converts a finding for display.
func NewTableRow(path string, diag *lint.Diagnostic, ruleFormat config.RuleFormat) TableRow {
	return TableRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn),
		Message:  diag.Message,
		Rule:     config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName),
		Severity: diag.Severity,
		Fixable:  diag.HasFix(),
	}
}

// TableFormatter lays findings out in aligned columns that fit the terminal.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	ruleFormat   config.RuleFormat
	displayPath  func(string) string
}

// NewTableFormatter creates a formatter. displayPath maps absolute paths to
// the form shown to the user and may be nil.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, ruleFormat config.RuleFormat, displayPath func(string) string) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	if displayPath == nil {
		displayPath = func(p string) string { return p }
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		ruleFormat:   ruleFormat,
		displayPath:  displayPath,
	}
}

// columns holds the widths of the table, with file zero in per-file tables.
type columns struct {
	file, loc, message, rule int
}

func (c columns) total() int {
	n := 1 + c.loc + c.message + c.rule + 2*columnGap + fixableWidth
	if c.file > 0 {
		n += c.file + columnGap
	}
	return n
}

// FormatTable renders every finding in result, grouped by file.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	groups := t.rows(result)
	if len(groups) == 0 {
		return ""
	}

	var all []TableRow
	for _, g := range groups {
		all = append(all, g...)
	}
	widths := t.fit(all, true)

	var builder strings.Builder
	builder.WriteString(t.header(widths) + "\n")
	builder.WriteString(t.separator(widths, heavySeparator) + "\n")
	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.separator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.row(row, widths) + "\n")
		}
	}
	builder.WriteString(t.separator(widths, heavySeparator) + "\n")
	builder.WriteString(t.legend() + "\n")

	return builder.String()
}

// FormatFileTable renders one file's findings without a file column.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return ""
	}

	path := t.displayPath(file.Path)
	rows := make([]TableRow, 0, len(file.Result.Diagnostics))
	for i := range file.Result.Diagnostics {
		rows = append(rows, NewTableRow(path, &file.Result.Diagnostics[i], t.ruleFormat))
	}
	widths := t.fit(rows, false)

	var builder strings.Builder
	builder.WriteString(t.header(widths) + "\n")
	builder.WriteString(t.separator(widths, heavySeparator) + "\n")
	for _, row := range rows {
		builder.WriteString(t.row(row, widths) + "\n")
	}
	builder.WriteString(t.separator(widths, heavySeparator) + "\n")
	builder.WriteString(t.fileSummary(rows) + "\n")

	return builder.String()
}

// FormatTableSummary renders run totals as one line.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{plural(stats.FilesProcessed, "file") + " checked"}
	parts = append(parts, t.styles.severityParts(stats.DiagnosticsBySeverity)...)
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) rows(result *runner.Result) [][]TableRow {
	if result == nil {
		return nil
	}
	var groups [][]TableRow
	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}
		path := t.displayPath(file.Path)
		group := make([]TableRow, 0, len(file.Result.Diagnostics))
		for i := range file.Result.Diagnostics {
			group = append(group, NewTableRow(path, &file.Result.Diagnostics[i], t.ruleFormat))
		}
		groups = append(groups, group)
	}
	return groups
}

// fit sizes columns to their content, then shrinks the message column and
// after it the file column until the table fits the terminal.
func (t *TableFormatter) fit(rows []TableRow, withFile bool) columns {
	widths := columns{loc: minLocWidth, message: minMessageWidth, rule: minRuleWidth}
	if withFile {
		widths.file = minFileWidth
	}
	for _, row := range rows {
		if withFile {
			widths.file = max(widths.file, lipgloss.Width(row.File))
		}
		widths.loc = max(widths.loc, len(row.Location))
		widths.message = max(widths.message, lipgloss.Width(row.Message))
		widths.rule = max(widths.rule, len(row.Rule))
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.message = max(minMessageWidth, widths.message-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 && withFile {
		widths.file = max(minFileWidth, widths.file-excess)
	}
	return widths
}

func (t *TableFormatter) header(w columns) string {
	var cells []string
	if w.file > 0 {
		cells = append(cells, pad("FILE", w.file))
	}
	cells = append(cells, pad("LOC", w.loc), pad("MESSAGE", w.message), pad("RULE", w.rule))
	return t.styles.TableHeader.Render(" " + strings.Join(cells, "  "))
}

func (t *TableFormatter) separator(w columns, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, w.total()))
}

func (t *TableFormatter) row(row TableRow, w columns) string {
	var cells []string
	if w.file > 0 {
		cells = append(cells, pad(truncateLeft(row.File, w.file), w.file))
	}
	cells = append(cells,
		pad(truncateRight(row.Location, w.loc), w.loc),
		pad(truncateRight(row.Message, w.message), w.message),
		pad(truncateRight(row.Rule, w.rule), w.rule),
	)

	fixable := " "
	if row.Fixable {
		fixable = t.styles.TableFixable.Render(fixableSymbol)
	}

	return t.rowStyle(row.Severity).Render(" "+strings.Join(cells, "  ")) + "  " + fixable
}

func (t *TableFormatter) rowStyle(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) fileSummary(rows []TableRow) string {
	bySeverity := make(map[config.Severity]int)
	fixable := 0
	for _, row := range rows {
		bySeverity[row.Severity]++
		if row.Fixable {
			fixable++
		}
	}

	parts := t.styles.severityParts(bySeverity)
	if fixable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d fixable", fixable)))
	}
	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) legend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: " + fixableSymbol + " = fixable with --fix")
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s  %s  %s = fixable with --fix",
		t.styles.TableErrorRow.Render("error"),
		t.styles.TableWarnRow.Render("warning"),
		t.styles.TableFixable.Render(fixableSymbol)))
}

// pad right-pads s to width display cells.
func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncateRight cuts s to width runes, ending in "...".
func truncateRight(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// truncateLeft keeps the end of a path, which holds the file name.
func truncateLeft(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[len(r)-width:])
	}
	return "..." + string(r[len(r)-width+3:])
}
