package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yaklabco/a11ylint/internal/ui/pretty"
	"github.com/yaklabco/a11ylint/pkg/runner"
)

const fixHint = "Run with --fix to repair fixable issues"

// TableReporter formats results as a color-coded table sized to the terminal.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:   opts,
		styles: styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, pretty.TerminalWidth(opts.Writer),
			opts.RuleFormat, opts.displayPath),
		bw: bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := result.Stats.DiagnosticsTotal
	if total == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
		return 0, nil
	}

	if r.opts.PerFile {
		r.reportPerFile(result)
	} else {
		r.reportCombined(result)
	}

	return total, nil
}

func (r *TableReporter) reportCombined(result *runner.Result) {
	fmt.Fprint(r.bw, r.formatter.FormatTable(result))

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, formatDuration(result.Duration)))
		r.writeHint(result)
	}
}

func (r *TableReporter) reportPerFile(result *runner.Result) {
	for _, file := range result.Files {
		table := r.formatter.FormatFileTable(file)
		if table == "" {
			continue
		}
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(r.opts.displayPath(file.Path)))
		fmt.Fprint(r.bw, table)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("═", pretty.DefaultTermWidth)))
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
		r.writeHint(result)
	}
}

func (r *TableReporter) writeHint(result *runner.Result) {
	if result.Stats.DiagnosticsFixable > 0 {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Dim.Render(fixHint))
	}
}

// formatDuration renders d to the millisecond, or "" when it was not timed.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.Round(time.Millisecond).String()
}
