package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/a11ylint/internal/ui/pretty"
	"github.com/yaklabco/a11ylint/pkg/analysis"
	"github.com/yaklabco/a11ylint/pkg/config"
)

// Column widths of the summary tables. Both tables share tableWidth.
const (
	tableWidth      = 90
	ruleColWidth    = 30
	fileColWidth    = 52
	numColWidth     = 7
	warnColWidth    = 9
	fixableColWidth = 8
)

// padRight pads s to width. It must run before styling.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads s to width on the left. It must run before styling.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// fitRight cuts s to width, keeping the start.
func fitRight(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// fitLeft cuts s to width, keeping the end where the file name is.
func fitLeft(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return "..." + s[len(s)-width+3:]
}

// SummaryRenderer formats results as per-rule and per-file count tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	if report.Totals.Issues == 0 {
		fmt.Fprintln(bw, r.styles.Success.Render("No accessibility issues found"))
		r.renderFileErrors(bw, report.FileErrors)
		return bw.Flush()
	}

	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		r.renderFileTable(bw, report.ByFile)
		fmt.Fprintln(bw)
		r.renderRuleTable(bw, report.ByRule)
	} else {
		r.renderRuleTable(bw, report.ByRule)
		fmt.Fprintln(bw)
		r.renderFileTable(bw, report.ByFile)
	}

	fmt.Fprintln(bw)
	r.renderFileErrors(bw, report.FileErrors)
	r.renderTotals(bw, report.Totals)

	return bw.Flush()
}

func (r *SummaryRenderer) separator(bw *bufio.Writer) {
	fmt.Fprintln(bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

// rowStyle picks the row color from the worst severity present.
func (r *SummaryRenderer) rowStyle(text string, errors, warnings int) string {
	switch {
	case errors > 0:
		return r.styles.TableErrorRow.Render(text)
	case warnings > 0:
		return r.styles.TableWarnRow.Render(text)
	default:
		return text
	}
}

func (r *SummaryRenderer) renderRuleTable(bw *bufio.Writer, rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(bw, r.styles.Bold.Render("Rules Summary"))
	r.separator(bw)
	fmt.Fprintf(bw, "%s %s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Info", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Fixable", fixableColWidth)),
	)
	r.separator(bw)

	for _, rule := range rules {
		label := rule.Rule
		if label == "" {
			label = config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName)
		}

		fixable := padLeft("", fixableColWidth)
		if rule.Fixable {
			fixable = r.styles.Success.Render(padLeft("yes", fixableColWidth))
		}

		fmt.Fprintf(bw, "%s %s %s %s %s %s\n",
			r.rowStyle(padRight(fitRight(label, ruleColWidth), ruleColWidth), rule.Errors, rule.Warnings),
			padLeft(strconv.Itoa(rule.Issues), numColWidth),
			padLeft(strconv.Itoa(rule.Errors), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			padLeft(strconv.Itoa(rule.Infos), numColWidth),
			fixable,
		)
	}
}

func (r *SummaryRenderer) renderFileTable(bw *bufio.Writer, files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(bw, r.styles.Bold.Render("Files Summary"))
	r.separator(bw)
	fmt.Fprintf(bw, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Info", numColWidth)),
	)
	r.separator(bw)

	for _, file := range files {
		fmt.Fprintf(bw, "%s %s %s %s %s\n",
			r.rowStyle(padRight(fitLeft(file.Path, fileColWidth), fileColWidth), file.Errors, file.Warnings),
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
			padLeft(strconv.Itoa(file.Infos), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileErrors(bw *bufio.Writer, errs []analysis.FileError) {
	for _, fe := range errs {
		fmt.Fprintf(bw, "%s: %s\n",
			r.styles.FilePath.Render(fe.FilePath),
			r.styles.Error.Render("error: "+fe.Error))
	}
}

func (r *SummaryRenderer) renderTotals(bw *bufio.Writer, totals analysis.Totals) {
	head := fmt.Sprintf("%d %s", totals.Issues, pluralWord(totals.Issues, "issue"))

	var severities []string
	if totals.Errors > 0 {
		severities = append(severities, r.styles.Error.Render(fmt.Sprintf("%d %s", totals.Errors, pluralWord(totals.Errors, "error"))))
	}
	if totals.Warnings > 0 {
		severities = append(severities, r.styles.Warning.Render(fmt.Sprintf("%d %s", totals.Warnings, pluralWord(totals.Warnings, "warning"))))
	}
	if totals.Infos > 0 {
		severities = append(severities, r.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}
	if len(severities) > 0 {
		head += " (" + strings.Join(severities, ", ") + ")"
	}

	line := fmt.Sprintf("%s in %d %s", head, totals.FilesWithIssues, pluralWord(totals.FilesWithIssues, "file"))
	if totals.Malformed > 0 {
		line += r.styles.Dim.Render(fmt.Sprintf(", %d malformed input", totals.Malformed))
	}

	fmt.Fprintln(bw, r.styles.Bold.Render("Total: ")+line)
}

// pluralWord adds an "s" to word unless n is 1.
func pluralWord(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
